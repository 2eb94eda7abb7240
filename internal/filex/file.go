// Package filex holds small filesystem helpers: making sure a database
// file's directory exists and turning a local image into a data URL.
package filex

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// EnsureParentDir creates the directory that will hold path, if any.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadDataURL reads the file at path and encodes it as
// "data:<mime>;base64,<payload>". The MIME type is sniffed from content.
func ReadDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	mt := mimetype.Detect(data)
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
