// Package headers loads HTTP request headers from a credentials file.
// The file format is one "Key: Value" pair per line, as copied from a
// browser's network inspector. Values never touch the process environment.
package headers

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gorewood/meso/internal/output"
)

// Load reads a headers file and returns the parsed key/value pairs.
// Blank lines, comments, and lines without a colon are skipped.
// A missing file is a user error: the file is the only auth source.
func Load(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, output.NewUserError(fmt.Sprintf("headers file not found at %s", path))
		}
		return nil, output.NewSystemErrorWithCause(fmt.Sprintf("opening headers file %s", path), err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	parsed := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseHeaderLine(line)
		if !ok {
			continue
		}
		parsed[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, output.NewSystemErrorWithCause(fmt.Sprintf("reading headers file %s", path), err)
	}

	if len(parsed) == 0 {
		return nil, output.NewUserError(fmt.Sprintf("headers file %s contains no 'Key: Value' lines", path))
	}

	return parsed, nil
}

// parseHeaderLine extracts "Key: Value" from a line.
// The value may itself contain colons (cookies commonly do), so only the
// first colon splits.
func parseHeaderLine(line string) (key, value string, ok bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}

	key = strings.TrimSpace(parts[0])
	value = strings.TrimSpace(parts[1])

	if key == "" {
		return "", "", false
	}

	return key, value, true
}
