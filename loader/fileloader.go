package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// MaxFileSize is the maximum size (in bytes) allowed for schema files.
// This prevents resource exhaustion from loading arbitrarily large files.
const MaxFileSize = 10 * 1024 * 1024 // 10MB

// FileLoader returns a LoadFunc that reads schema documents from files
// beneath rootDir. Identities are interpreted as slash-separated paths
// relative to rootDir; attempts to escape the root directory are rejected.
// The YAML parser handles both YAML and JSON sources.
func FileLoader(rootDir string) LoadFunc {
	return func(identity string) (*yaml.Node, error) {
		filePath := filepath.Join(rootDir, filepath.FromSlash(identity))

		// Use filepath.Rel to detect path traversal attempts. This properly
		// handles all cases including different volumes on Windows.
		absBase, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, NewLoadError(identity, "failed to resolve root directory", err)
		}
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			return nil, NewLoadError(identity, "failed to resolve file path", err)
		}
		relPath, err := filepath.Rel(absBase, absPath)
		if err != nil || strings.HasPrefix(relPath, "..") {
			return nil, NewLoadError(identity, "path escapes schema root directory", nil)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, NewLoadError(identity, "failed to read file", err)
		}
		if int64(len(data)) > MaxFileSize {
			return nil, NewLoadError(identity,
				fmt.Sprintf("file exceeds maximum size limit (%d bytes): file is %d bytes", MaxFileSize, len(data)), nil)
		}

		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, NewLoadError(identity, "failed to parse document", err)
		}
		return &node, nil
	}
}
