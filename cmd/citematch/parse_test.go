package main

import (
	"testing"

	"github.com/matsen/citematch/internal/matcher"
)

func TestParseCitationText(t *testing.T) {
	tests := []struct {
		input      string
		wantKind   matcher.Kind
		wantAuthor string
		wantYear   string
	}{
		{"Smith（2O2O）", matcher.KindAuthorYear, "Smith", "2O2O"},
		{"[AUTH:张三（2024）]", matcher.KindAuthorYear, "张三", "2024"},
		{"[12]", matcher.KindNumeric, "", ""},
		{"no marker here", matcher.KindUnparseable, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			resp := parseCitationText(tt.input)
			if resp.Kind != tt.wantKind {
				t.Fatalf("Kind = %q, want %q", resp.Kind, tt.wantKind)
			}
			if tt.wantKind != matcher.KindAuthorYear {
				if resp.Mention != nil {
					t.Errorf("unexpected mention %+v", resp.Mention)
				}
				return
			}
			if resp.Mention.Author != tt.wantAuthor || resp.Mention.Year != tt.wantYear {
				t.Errorf("Mention = %+v, want %s/%s", resp.Mention, tt.wantAuthor, tt.wantYear)
			}
		})
	}
}
