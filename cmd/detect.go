package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/easelhq/easel/internal/config"
	"github.com/easelhq/easel/internal/detect"
)

// runDetect classifies content read from stdin and prints the result as JSON.
// The optional -context flag supplies the user turn that asked for the
// content, which enables the intent heuristic.
func runDetect(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	userRequest := fs.String("context", "", "user request that produced the content")
	if err := fs.Parse(args); err != nil {
		return err
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	detector := detect.New(cfg.DetectConfig())
	result := detector.DetectInContext(string(content), *userRequest)

	out := struct {
		detect.Result
		Materialize bool `json:"materialize"`
	}{
		Result:      result,
		Materialize: detector.ShouldMaterialize(result),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
