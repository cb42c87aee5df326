// Package settings renders and writes the flat environment-settings artifact
// (.{environment}.env) produced by a provisioning or introspection run. The
// artifact is shell-sourceable: scalar outputs become KEY='value' lines,
// array outputs become KEY=('a' 'b') lines, and provider-fetched secrets are
// appended after a delimiter line.
package settings

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	dserrors "github.com/systmms/azup/internal/errors"
	"github.com/systmms/azup/internal/naming"
)

// ValueType distinguishes scalar from array entries.
type ValueType int

const (
	Scalar ValueType = iota
	Array
)

// Entry is one named, typed value destined for the artifact. Value holds the
// scalar form; Values holds the elements when Type is Array.
type Entry struct {
	Key    string
	Type   ValueType
	Value  string
	Values []string
}

// SecretsDelimiter separates deployment outputs from fetched credentials.
const SecretsDelimiter = "# ----- secrets -----"

// Path returns the artifact file name for an environment.
func Path(environment string) string {
	return "." + environment + ".env"
}

// Render serializes outputs and secrets into the artifact format. Entries are
// emitted in input order with canonicalized keys; the delimiter and the
// secrets block appear only when secrets exist.
func Render(environment string, outputs, secrets []Entry) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Generated by azup for environment '%s'. Do not edit:\n", environment)
	b.WriteString("# the file is rewritten in full on every update or env run.\n")

	for _, e := range outputs {
		b.WriteString(renderEntry(e))
	}

	if len(secrets) > 0 {
		b.WriteString(SecretsDelimiter + "\n")
		for _, e := range secrets {
			b.WriteString(renderEntry(e))
		}
	}

	return b.Bytes()
}

func renderEntry(e Entry) string {
	key := naming.CanonicalKey(e.Key)
	if e.Type == Array {
		quoted := make([]string, len(e.Values))
		for i, v := range e.Values {
			// Elements are escaped whole, never split further.
			quoted[i] = shellQuote(v)
		}
		return fmt.Sprintf("%s=(%s)\n", key, strings.Join(quoted, " "))
	}
	return fmt.Sprintf("%s=%s\n", key, shellQuote(e.Value))
}

// shellQuote single-quotes a value for shell sourcing. Embedded single quotes
// use the close-escape-reopen idiom.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Write renders the artifact and writes it in one atomic step: temp file in
// the target directory, then rename over the final path. Partial artifacts
// are never visible, and the previous artifact survives a failed run.
func Write(dir, environment string, outputs, secrets []Entry) (string, error) {
	path := filepath.Join(dir, Path(environment))

	tmp, err := os.CreateTemp(dir, Path(environment)+".tmp-*")
	if err != nil {
		return "", dserrors.UserError{
			Message:    fmt.Sprintf("Failed to create settings file in %s", dir),
			Details:    err.Error(),
			Suggestion: "Check that the directory exists and is writable",
			Err:        err,
		}
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := tmp.Chmod(0600); err != nil {
		return "", fmt.Errorf("failed to set settings file permissions: %w", err)
	}
	if _, err := tmp.Write(Render(environment, outputs, secrets)); err != nil {
		return "", fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to replace settings file: %w", err)
	}

	return path, nil
}

// Parse reads an artifact back as a flat key→value map. Array values are
// returned in their literal parenthesized form; comment and delimiter lines
// are skipped. Used by tests and by tooling that inspects a generated
// artifact.
func Parse(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[key] = unquote(raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	return values, nil
}

func unquote(raw string) string {
	if strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") && len(raw) >= 2 {
		inner := raw[1 : len(raw)-1]
		return strings.ReplaceAll(inner, `'\''`, "'")
	}
	return raw
}
