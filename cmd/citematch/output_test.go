package main

import (
	"testing"

	"github.com/matsen/citematch/internal/matcher"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"张三李四王五赵六", 6, "张三李..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padLeft("7", 3); got != "  7" {
		t.Errorf("padLeft = %q", got)
	}
	if got := padRight("张三", 3); got != "张三 " {
		t.Errorf("padRight counts runes: %q", got)
	}
	if got := padLeft("toolong", 3); got != "toolong" {
		t.Errorf("padLeft should not truncate: %q", got)
	}
}

func TestResultStatus(t *testing.T) {
	tests := []struct {
		name string
		r    matcher.Result
		want string
	}{
		{"unmatched", matcher.Result{}, "unmatched"},
		{"corrected", matcher.Result{Matched: true, NeedsCorrection: true, NeedsFormatting: true}, "corrected"},
		{"reformat", matcher.Result{Matched: true, NeedsFormatting: true}, "reformat"},
		{"ok", matcher.Result{Matched: true}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resultStatus(tt.r); got != tt.want {
				t.Errorf("resultStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
