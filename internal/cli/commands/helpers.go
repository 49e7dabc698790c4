package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapboard/internal/cli/config"
	"github.com/leapstack-labs/leapboard/pkg/core"
	"github.com/leapstack-labs/leapboard/pkg/document"
)

// loadDocument reads and decodes a dashboard document, applying the
// configured default model id when the document does not set one.
func loadDocument(path string, cfg *config.Config) (*core.Dashboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	d, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.ModelID == "" && cfg.ModelID != "" {
		d.ModelID = cfg.ModelID
	}
	if d.FolderID == "" && cfg.FolderID != "" {
		d.FolderID = cfg.FolderID
	}
	return d, nil
}

// loadCatalog reads a table→columns catalog file for validation.
func loadCatalog(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	var catalog map[string][]string
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog, nil
}

// writeOutput writes to the given path, or the command's stdout when path
// is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
