package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/citematch/internal/matcher"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadDocuments(t *testing.T) {
	content := `{"id": "doc-1", "citations": ["Smith（2020）"], "references": ["Smith, J. (2020)."]}

{"citations": ["张三（2024）", 42, null], "references": ["张三. 标题. 期刊, 2024.", {"bad": true}]}
`
	docs, err := ReadDocuments(writeFile(t, "docs.jsonl", content))
	if err != nil {
		t.Fatalf("ReadDocuments: %v", err)
	}

	want := []matcher.Document{
		{
			ID:         "doc-1",
			Citations:  []string{"Smith（2020）"},
			References: []string{"Smith, J. (2020)."},
		},
		{
			ID:         "line-3",
			Citations:  []string{"张三（2024）", "", ""},
			References: []string{"张三. 标题. 期刊, 2024.", ""},
		},
	}
	if !reflect.DeepEqual(docs, want) {
		t.Errorf("ReadDocuments() = %+v, want %+v", docs, want)
	}
}

func TestReadDocuments_ParseError(t *testing.T) {
	content := `{"id": "ok", "citations": [], "references": []}
{"id": "broken", "citations": [
`
	_, err := ReadDocuments(writeFile(t, "docs.jsonl", content))

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ReadDocuments error = %v, want *ParseError", err)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error message %q lacks line number", err.Error())
	}
}

func TestReadDocuments_Missing(t *testing.T) {
	if _, err := ReadDocuments(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Text
	}{
		{`"Smith（2020）"`, "Smith（2020）"},
		{`null`, ""},
		{`17`, ""},
		{`true`, ""},
		{`["a"]`, ""},
		{`{"a": 1}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got Text
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadLines(t *testing.T) {
	content := "Smith, J. (2020).\n\n   \n  张三，李四. 标题. 期刊, 2024.  \r\nDoe, A. (2019)."
	lines, err := ReadLines(writeFile(t, "refs.txt", content))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}

	want := []string{"Smith, J. (2020).", "张三，李四. 标题. 期刊, 2024.", "Doe, A. (2019)."}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("ReadLines() = %q, want %q", lines, want)
	}
}

func TestReadLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", MaxJSONLLineCapacity/2)
	lines, err := ReadLines(writeFile(t, "long.txt", long+"\nshort\n"))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != long {
		t.Errorf("got %d lines", len(lines))
	}
}

func TestWriteReports(t *testing.T) {
	m := matcher.New(matcher.DefaultOptions(), nil)
	reports := []matcher.DocumentReport{
		{ID: "a", Report: m.Run([]string{"Smith（2020）"}, []string{"Smith, J. (2020)."})},
		{ID: "b", Report: m.Run(nil, nil)},
	}
	path := filepath.Join(t.TempDir(), "out.jsonl")

	if err := WriteReports(path, reports); err != nil {
		t.Fatalf("WriteReports: %v", err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var first matcher.DocumentReport
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decoding line 1: %v", err)
	}
	if first.ID != "a" || first.Report.Stats.Matched != 1 {
		t.Errorf("line 1 = %+v", first)
	}
}
