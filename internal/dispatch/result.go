// Package dispatch holds the tool registry and the dispatcher that routes calls to
// handlers and normalizes every outcome into a Result.
package dispatch

import (
	"fmt"
	"strings"
)

// ContentTypeText is the only content block type handlers produce.
const ContentTypeText = "text"

// Content is one block of a result.
type Content struct {
	Type string `json:"type" yaml:"type"`
	Text string `json:"text" yaml:"text"`
}

// Result is the envelope every dispatched call ends in.
type Result struct {
	Content []Content `json:"content" yaml:"content"`
	IsError bool      `json:"isError" yaml:"isError"`
}

// TextResult returns a successful result with one text block.
func TextResult(text string) *Result {
	return &Result{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// TextResultf is TextResult with formatting.
func TextResultf(format string, args ...any) *Result {
	return TextResult(fmt.Sprintf(format, args...))
}

// ErrorResult returns an error result with one text block.
func ErrorResult(text string) *Result {
	return &Result{Content: []Content{{Type: ContentTypeText, Text: text}}, IsError: true}
}

// ErrorResultf is ErrorResult with formatting.
func ErrorResultf(format string, args ...any) *Result {
	return ErrorResult(fmt.Sprintf(format, args...))
}

// Text joins the text of every block with newlines.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n")
}
