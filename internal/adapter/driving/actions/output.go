// Package actions publishes GitHub Actions outputs and workflow commands.
package actions

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Writer publishes named outputs for downstream workflow jobs by appending to
// the runner's output file. When no path is configured it falls back to the
// legacy ::set-output command on stdout.
type Writer struct {
	path string
}

// NewWriter creates a Writer appending to the given output file path
// (normally $GITHUB_OUTPUT). An empty path selects the legacy fallback.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Set publishes one named value. Values are written as a delimited heredoc
// block so the runner reads multi-line content back as a single output. The
// delimiter is randomized per write so the value can never terminate the
// block early.
func (w *Writer) Set(key, value string) error {
	if w.path == "" {
		fmt.Printf("::set-output name=%s::%s\n", key, escapeLegacy(value))
		return nil
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	return nil
}

// escapeLegacy applies the runner's data escaping for single-line commands.
func escapeLegacy(v string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(v)
}

// Notice prints a notice workflow command, surfaced on the run summary.
func Notice(msg string) {
	fmt.Printf("::notice::%s\n", msg)
}

// Warning prints a warning workflow command, surfaced on the run summary.
func Warning(msg string) {
	fmt.Printf("::warning::%s\n", msg)
}

// Error prints an error workflow command, surfaced on the run summary.
func Error(msg string) {
	fmt.Printf("::error::%s\n", msg)
}
