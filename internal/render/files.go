package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/meso/internal/output"
)

// SanitizeName turns a mesocycle name into a safe file base name.
func SanitizeName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "/", "_"))
}

// UniqueFilename returns path if unused, otherwise the first of
// "base (2).ext", "base (3).ext", ... that does not exist yet.
// Existing files are never overwritten.
func UniqueFilename(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// WriteMarkdown writes a rendered document as a whole buffer.
func WriteMarkdown(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

// WriteRawJSON writes an API payload pretty-printed for later inspection.
// Payloads that fail to re-indent are written verbatim.
func WriteRawJSON(path string, raw []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(raw)
	}

	if err := os.WriteFile(path, pretty.Bytes(), 0600); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}
