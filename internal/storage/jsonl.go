// Package storage reads match inputs and persists match reports.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/citematch/internal/matcher"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading lines (1MB per line).
// This constant is shared across all line-oriented readers.
const MaxJSONLLineCapacity = 1024 * 1024

// ParseError reports an input line that could not be decoded.
type ParseError struct {
	Path string
	Line int // 1-indexed
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Text is a string that decodes any non-string JSON value as "".
// A document with a stray number or null among its citations still runs.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Text(s)
	return nil
}

type documentLine struct {
	ID         Text   `json:"id"`
	Citations  []Text `json:"citations"`
	References []Text `json:"references"`
}

func texts(in []Text) []string {
	out := make([]string, len(in))
	for i, t := range in {
		out[i] = string(t)
	}
	return out
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)
	return scanner
}

// ReadDocuments reads batch documents from a JSONL file, one per line:
//
//	{"id": "doc-1", "citations": ["..."], "references": ["..."]}
//
// Documents without an id are named after their line number.
func ReadDocuments(path string) ([]matcher.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening documents file: %w", err)
	}
	defer f.Close()

	var docs []matcher.Document
	scanner := newScanner(f)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue // Skip empty lines
		}

		var dl documentLine
		if err := json.Unmarshal(line, &dl); err != nil {
			return nil, &ParseError{Path: path, Line: lineNum, Err: err}
		}
		id := string(dl.ID)
		if id == "" {
			id = fmt.Sprintf("line-%d", lineNum)
		}
		docs = append(docs, matcher.Document{
			ID:         id,
			Citations:  texts(dl.Citations),
			References: texts(dl.References),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading documents file: %w", err)
	}

	return docs, nil
}

// ReadLines reads a plain-text file holding one item per line.
// Blank lines are skipped.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := newScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WriteReports writes batch reports to a JSONL file, replacing existing content.
func WriteReports(path string, reports []matcher.DocumentReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating reports file: %w", err)
	}
	defer f.Close()

	for i, r := range reports {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding report %d: %w", i, err)
		}

		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing report %d: %w", i, err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}
