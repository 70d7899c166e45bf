//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/karolswdev/jiramcp/cmd"
)

func issueJSON(id, key, summary, status string) string {
	return `{"id":"` + id + `","key":"` + key + `","fields":{"summary":"` + summary + `","status":{"name":"` + status + `"}}}`
}

func TestSearchWorkflow(t *testing.T) {
	var searchBody []byte
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rest/api/3/search/jql", func(w http.ResponseWriter, r *http.Request) {
		searchBody, _ = io.ReadAll(r.Body)
		if gjson.GetBytes(searchBody, "jql").String() == "project = EMPTY" {
			writeJSON(w, http.StatusOK, `{"issues":[],"isLast":true}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"issues":[{"id":"10001"},{"id":"10002"}],"nextPageToken":"page-2"}`)
	})
	mux.HandleFunc("GET /rest/api/3/issue/10001", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, issueJSON("10001", "WEB-1", "Fix login", "Open"))
	})
	mux.HandleFunc("GET /rest/api/3/issue/10002", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, issueJSON("10002", "WEB-2", "Dark mode", "In Progress"))
	})
	jira := fakeJira(t, mux)
	setupTestEnvironment(t, jira.URL, "http://127.0.0.1:0")

	t.Run("Text", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "search", "--jql", "project = WEB", "--max-results", "2", "--fields", "summary,status", "--next-page-token", "", "-o", "text")

		require.NoError(t, err)
		assert.Contains(t, stdout, "========== Issue WEB-1 ==========")
		assert.Contains(t, stdout, "========== Issue WEB-2 ==========")
		assert.Contains(t, stdout, "Fix login")
		assert.Contains(t, stdout, "nextPageToken: page-2")
		assert.Equal(t, int64(2), gjson.GetBytes(searchBody, "maxResults").Int())
		assert.Equal(t, `["summary","status"]`, gjson.GetBytes(searchBody, "fields").Raw)
	})

	t.Run("JSON envelope", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "search", "--jql", "project = WEB", "--max-results", "2", "--fields", "", "--next-page-token", "", "-o", "json")

		require.NoError(t, err)
		var envelope map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &envelope))
		assert.Equal(t, false, envelope["isError"])
	})

	t.Run("No results exits non-zero", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "search", "--jql", "project = EMPTY", "--max-results", "50", "--fields", "", "--next-page-token", "", "-o", "text")

		assert.ErrorIs(t, err, cmd.ErrToolFailed)
		assert.Contains(t, stdout, "No issues found for query.")
	})
}

func TestToolsWorkflow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/api/3/issue/WEB-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, issueJSON("10001", "WEB-1", "Fix login", "Open"))
	})
	jira := fakeJira(t, mux)
	setupTestEnvironment(t, jira.URL, "http://127.0.0.1:0")

	t.Run("List", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "tools", "list", "-o", "json")

		require.NoError(t, err)
		names := gjson.Get(stdout, "#.name").Array()
		require.Len(t, names, 8)
		assert.Equal(t, "get_issue_by_key", names[0].String())
		assert.Equal(t, "object", gjson.Get(stdout, "0.inputSchema.type").String())
	})

	t.Run("Call", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "tools", "call", "get_issue_by_key", "--args", `{"key":"WEB-1"}`, "--args-file", "", "-o", "text")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Issue WEB-1:\n\n========== Issue WEB-1 ==========")
	})

	t.Run("Unknown tool", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "tools", "call", "delete_everything", "--args", `{}`, "--args-file", "", "-o", "text")

		assert.ErrorIs(t, err, cmd.ErrToolFailed)
		assert.Contains(t, stdout, "Tool delete_everything not found.")
	})
}
