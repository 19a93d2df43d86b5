package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty content",
			content: "",
			want:    "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:    "known vector",
			content: "hello",
			want:    "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HashContent(tt.content))
		})
	}
}

func TestHashContent_Properties(t *testing.T) {
	t.Parallel()

	// Deterministic: same input, same digest.
	assert.Equal(t, HashContent("package main"), HashContent("package main"))

	// Sensitive to any byte change.
	assert.NotEqual(t, HashContent("package main"), HashContent("package main\n"))

	// Always 64 lowercase hex characters.
	h := HashContent("x")
	assert.Len(t, h, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", h)
}
