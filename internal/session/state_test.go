package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easelhq/easel/internal/artifact"
	"github.com/easelhq/easel/internal/session"
)

func TestStateFile_SaveLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sessionID := uuid.New()

	sf, err := session.NewStateFile(dir, sessionID)
	require.NoError(t, err)

	state := session.State{
		SessionID: sessionID,
		Artifacts: []session.Entry{
			{ArtifactID: uuid.New(), Type: artifact.TypeCode, Title: "a", VersionNumber: 2},
			{ArtifactID: uuid.New(), Type: artifact.TypeMarkdown, Title: "b", VersionNumber: 1},
		},
	}
	state.ActiveArtifactID = state.Artifacts[0].ArtifactID

	require.NoError(t, sf.Save(state))

	loaded, err := sf.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, state, *loaded)
}

func TestStateFile_LoadMissingIsNil(t *testing.T) {
	t.Parallel()

	sf, err := session.NewStateFile(t.TempDir(), uuid.New())
	require.NoError(t, err)

	loaded, err := sf.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStateFile_SaveOverwrites(t *testing.T) {
	t.Parallel()
	sessionID := uuid.New()

	sf, err := session.NewStateFile(t.TempDir(), sessionID)
	require.NoError(t, err)

	first := session.State{SessionID: sessionID}
	require.NoError(t, sf.Save(first))

	second := session.State{
		SessionID: sessionID,
		Artifacts: []session.Entry{
			{ArtifactID: uuid.New(), Type: artifact.TypeSVG, Title: "logo", VersionNumber: 1},
		},
	}
	require.NoError(t, sf.Save(second))

	loaded, err := sf.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, second, *loaded)
}

func TestStateFile_Clear(t *testing.T) {
	t.Parallel()
	sessionID := uuid.New()
	dir := t.TempDir()

	sf, err := session.NewStateFile(dir, sessionID)
	require.NoError(t, err)
	require.NoError(t, sf.Save(session.State{SessionID: sessionID}))

	require.NoError(t, sf.Clear())
	_, err = os.Stat(filepath.Join(dir, sessionID.String()+".json"))
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	require.NoError(t, sf.Clear())

	loaded, err := sf.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStateFile_PersistsManagerSnapshot(t *testing.T) {
	t.Parallel()
	sessionID := uuid.New()

	m := session.NewManager(3, nil)
	e := session.Entry{
		ArtifactID:    uuid.New(),
		Type:          artifact.TypeReact,
		Title:         "Sidebar",
		VersionNumber: 4,
	}
	require.NoError(t, m.Open(e))
	require.NoError(t, m.SetActive(e.ArtifactID))

	sf, err := session.NewStateFile(t.TempDir(), sessionID)
	require.NoError(t, err)
	require.NoError(t, sf.Save(m.State(sessionID)))

	loaded, err := sf.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	restored := session.NewManager(3, nil)
	restored.Restore(*loaded)
	active, ok := restored.Active()
	require.True(t, ok)
	assert.Equal(t, e, active)
}
