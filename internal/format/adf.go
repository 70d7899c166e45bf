package format

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// adfNode is the subset of an Atlassian Document Format node needed to read text out of it.
type adfNode struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []adfNode      `json:"content,omitempty"`
}

type adfDoc struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []adfNode `json:"content"`
}

var blockTypes = map[string]bool{
	"paragraph": true, "heading": true, "bulletList": true, "orderedList": true, "listItem": true,
	"codeBlock": true, "blockquote": true, "rule": true, "panel": true, "table": true,
	"tableRow": true, "tableCell": true, "tableHeader": true, "mediaSingle": true, "mediaGroup": true,
}

// PlainText flattens a rich-text value to plain text. Plain JSON strings pass through,
// ADF documents are walked, and anything else is returned as compact JSON.
func PlainText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	var doc adfNode
	if err := json.Unmarshal(trimmed, &doc); err != nil || doc.Type == "" {
		return compact(trimmed)
	}
	return strings.TrimRight(doc.plain(), "\n")
}

func (n adfNode) plain() string {
	switch n.Type {
	case "text":
		return n.Text
	case "hardBreak":
		return "\n"
	case "rule":
		return "----"
	case "mention", "emoji", "status", "date":
		return attr(n.Attrs, "text")
	case "inlineCard", "blockCard":
		return attr(n.Attrs, "url")
	}

	parts := make([]string, 0, len(n.Content))
	block := false
	for i, child := range n.Content {
		text := child.plain()
		switch n.Type {
		case "bulletList":
			text = "- " + text
		case "orderedList":
			text = strconv.Itoa(i+1) + ". " + text
		}
		if blockTypes[child.Type] {
			block = true
		}
		parts = append(parts, text)
	}
	if block {
		return strings.Join(parts, "\n")
	}
	return strings.Join(parts, "")
}

func attr(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// DocumentFromText wraps plain text in an ADF document. Blank lines separate paragraphs
// and single newlines become hard breaks.
func DocumentFromText(text string) json.RawMessage {
	doc := adfDoc{Type: "doc", Version: 1, Content: []adfNode{}}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	for _, para := range paragraphBreak.Split(normalized, -1) {
		para = strings.Trim(para, "\n")
		if strings.TrimSpace(para) == "" {
			continue
		}
		var inline []adfNode
		for i, line := range strings.Split(para, "\n") {
			if i > 0 {
				inline = append(inline, adfNode{Type: "hardBreak"})
			}
			if line != "" {
				inline = append(inline, adfNode{Type: "text", Text: line})
			}
		}
		doc.Content = append(doc.Content, adfNode{Type: "paragraph", Content: inline})
	}
	out, _ := json.Marshal(doc)
	return out
}

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
