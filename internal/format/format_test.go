package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karolswdev/jiramcp/internal/jira"
)

const issueFixture = `{
  "id": "10001",
  "key": "ABC-1",
  "self": "https://example.atlassian.net/rest/api/3/issue/10001",
  "fields": {
    "summary": "Login button does nothing",
    "description": {"type":"doc","version":1,"content":[
      {"type":"paragraph","content":[{"type":"text","text":"Steps:"},{"type":"hardBreak"},{"type":"text","text":"click login"}]},
      {"type":"bulletList","content":[
        {"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"Chrome"}]}]},
        {"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"Firefox"}]}]}
      ]}
    ]},
    "issuetype": {"id":"1","name":"Bug","subtask":false},
    "project": {"id":"100","key":"ABC","name":"Alpha"},
    "status": {"name":"In Progress","statusCategory":{"name":"In Progress"}},
    "priority": {"name":"High"},
    "labels": ["frontend","auth"],
    "components": [{"id":"5","name":"Web"}],
    "timespent": 3600,
    "votes": {"votes": 2, "hasVoted": true},
    "reporter": {"accountId":"r1","displayName":"Rita Reporter","emailAddress":"rita@example.com"},
    "issuelinks": [{"type":{"name":"Blocks","inward":"is blocked by","outward":"blocks"},"outwardIssue":{"key":"ABC-2","fields":{"summary":"Fix session"}}}],
    "comment": {"total":1,"comments":[{"author":{"displayName":"Sam"},"created":"2025-01-01","body":{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"Seen it too"}]}]}}]},
    "customfield_10020": {"value":"Sev-2","id":"3"},
    "customfield_10010": 5,
    "customfield_10030": null,
    "customfield_10040": [{"name":"Sprint 4"},{"name":"Sprint 5"}]
  }
}`

func decodeFixture(t *testing.T) *jira.Issue {
	t.Helper()
	var issue jira.Issue
	require.NoError(t, json.Unmarshal([]byte(issueFixture), &issue))
	return &issue
}

func TestIssue(t *testing.T) {
	out := Issue(decodeFixture(t))
	lines := strings.Split(out, "\n")

	assert.Equal(t, "========== Issue ABC-1 ==========", lines[0])
	assert.Equal(t, "Id: 10001", lines[1])
	assert.Equal(t, "Key: ABC-1", lines[2])
	assert.Contains(t, out, "Issue Type: Bug\n")
	assert.Contains(t, out, "Subtask: false\n")
	assert.Contains(t, out, "Components: Web\n")
	assert.Contains(t, out, "Time Spent: 3600\n")
	assert.Contains(t, out, "Time Original Estimate: None\n")
	assert.Contains(t, out, "Description: Steps:\nclick login\n- Chrome\n- Firefox\n")
	assert.Contains(t, out, "Status Category: In Progress\n")
	assert.Contains(t, out, "Labels: frontend, auth\n")
	assert.Contains(t, out, "Reporter Name: Rita Reporter\n")
	assert.Contains(t, out, "Creator Name: None\n")
	assert.Contains(t, out, "Votes: 2\nHas Voted: true\n")
	assert.Contains(t, out, "Issue Links: blocks ABC-2 (Fix session)\n")
	assert.Contains(t, out, "Comments: [Sam 2025-01-01] Seen it too\n")
	assert.Contains(t, out, "Assignee Name: Unassigned\nAssignee Email: Unassigned\n")
	assert.Contains(t, out, "\nStatus: In Progress\n")

	tail := lines[len(lines)-3:]
	assert.Equal(t, []string{
		"customfield_10010: 5",
		"customfield_10020: Sev-2",
		"customfield_10040: Sprint 4, Sprint 5",
	}, tail)
	assert.NotContains(t, out, "customfield_10030")
}

func TestIssue_Idempotent(t *testing.T) {
	first := Issue(decodeFixture(t))
	second := Issue(decodeFixture(t))
	assert.Equal(t, first, second)
}

func TestIssue_Empty(t *testing.T) {
	out := Issue(&jira.Issue{Key: "ABC-9"})
	assert.True(t, strings.HasPrefix(out, "========== Issue ABC-9 =========="))
	assert.Contains(t, out, "Summary: None")
	assert.Contains(t, out, "Subtask: None")
	assert.Contains(t, out, "Progress: None")
	assert.True(t, strings.HasSuffix(out, "Status: None"))
}

func TestPlainText(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"Empty", ``, ""},
		{"Null", `null`, ""},
		{"Plain string", `"just text"`, "just text"},
		{"Paragraphs", `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"a"}]},{"type":"paragraph","content":[{"type":"text","text":"b"}]}]}`, "a\nb"},
		{"Ordered list", `{"type":"doc","content":[{"type":"orderedList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"one"}]}]},{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"two"}]}]}]}]}`, "1. one\n2. two"},
		{"Mention", `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"ping "},{"type":"mention","attrs":{"text":"@sam"}}]}]}`, "ping @sam"},
		{"Not ADF", `{"a": 1}`, `{"a":1}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PlainText(json.RawMessage(tc.raw)))
		})
	}
}

func TestDocumentFromText(t *testing.T) {
	doc := DocumentFromText("First line\nsecond line\n\nNext paragraph")
	assert.JSONEq(t, `{"type":"doc","version":1,"content":[
		{"type":"paragraph","content":[{"type":"text","text":"First line"},{"type":"hardBreak"},{"type":"text","text":"second line"}]},
		{"type":"paragraph","content":[{"type":"text","text":"Next paragraph"}]}
	]}`, string(doc))
	assert.Equal(t, "First line\nsecond line\nNext paragraph", PlainText(doc))

	assert.JSONEq(t, `{"type":"doc","version":1,"content":[]}`, string(DocumentFromText("  ")))
}
