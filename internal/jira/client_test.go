package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMockServer starts a fake Jira whose REST base is <server>/rest/api/3.
func setupMockServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Options{
		BaseURL: server.URL + "/rest/api/3",
		Email:   "dev@example.com",
		Token:   "secret",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return server, client
}

func TestNew(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client, err := New(Options{BaseURL: "https://example.atlassian.net/rest/api/3", Email: "a@b.c", Token: "t"})
		require.NoError(t, err)
		assert.Equal(t, DefaultTimeout, client.Timeout)
		assert.Equal(t, "https://example.atlassian.net", client.SiteURL())
		assert.Equal(t, "https://example.atlassian.net/browse/ABC-1", client.BrowseURL("ABC-1"))
	})

	t.Run("MissingBaseURL", func(t *testing.T) {
		_, err := New(Options{Email: "a@b.c", Token: "t"})
		assert.ErrorIs(t, err, ErrBaseURLMissing)
	})

	t.Run("RelativeBaseURL", func(t *testing.T) {
		_, err := New(Options{BaseURL: "example.atlassian.net", Email: "a@b.c", Token: "t"})
		assert.ErrorIs(t, err, ErrBaseURLParse)
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		_, err := New(Options{BaseURL: "https://example.atlassian.net/rest/api/3", Email: "a@b.c"})
		assert.ErrorIs(t, err, ErrCredentialsMissing)
	})
}

func TestGetIssue(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, client := setupMockServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/rest/api/3/issue/ABC-1", r.URL.Path)
			expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("dev@example.com:secret"))
			assert.Equal(t, expectedAuth, r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":"10001","key":"ABC-1","fields":{"summary":"Broken login","status":{"name":"Open"},"customfield_10010":{"value":"High"},"customfield_10020":null}}`)
		})

		issue, err := client.GetIssue(context.Background(), "ABC-1")
		require.NoError(t, err)
		assert.Equal(t, "ABC-1", issue.Key)
		assert.Equal(t, "Broken login", issue.Fields.Summary)
		require.NotNil(t, issue.Fields.Status)
		assert.Equal(t, "Open", issue.Fields.Status.Name)
		require.Contains(t, issue.Fields.Extra, "customfield_10010")
		assert.JSONEq(t, `{"value":"High"}`, string(issue.Fields.Extra["customfield_10010"]))
		assert.NotContains(t, issue.Fields.Extra, "summary")
	})

	t.Run("NotFound", func(t *testing.T) {
		_, client := setupMockServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"errorMessages":["Issue does not exist or you do not have permission to see it."],"errors":{}}`)
		})

		_, err := client.GetIssue(context.Background(), "ABC-404")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Equal(t, []string{"Issue does not exist or you do not have permission to see it."}, statusErr.Messages())
		assert.Contains(t, Detail(err), "Issue does not exist")
	})

	t.Run("DeadlineExceeded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()
		client, err := New(Options{BaseURL: server.URL + "/rest/api/3", Email: "a@b.c", Token: "t", Timeout: 50 * time.Millisecond})
		require.NoError(t, err)

		_, err = client.GetIssue(context.Background(), "ABC-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRequestExecute)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestGetIssueByURL(t *testing.T) {
	server, client := setupMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/issue/10001", r.URL.Path)
		fmt.Fprint(w, `{"id":"10001","key":"ABC-1","fields":{}}`)
	})

	issue, err := client.GetIssueByURL(context.Background(), server.URL+"/rest/api/3/issue/10001")
	require.NoError(t, err)
	assert.Equal(t, "ABC-1", issue.Key)

	_, err = client.GetIssueByURL(context.Background(), "https://evil.example.com/rest/api/3/issue/10001")
	assert.ErrorIs(t, err, ErrForeignURL)
}

func TestSearchJQL(t *testing.T) {
	server, client := setupMockServer(t, nil)
	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/3/search/jql", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"jql":"project = ABC","maxResults":50}`, string(body))
		fmt.Fprintf(w, `{"issues":[{"id":"1","self":"%[1]s/rest/api/3/issue/1"},{"id":"2"}],"nextPageToken":"tok","isLast":false}`, server.URL)
	})

	result, err := client.SearchJQL(context.Background(), SearchRequest{JQL: "project = ABC", MaxResults: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{server.URL + "/rest/api/3/issue/1", server.URL + "/rest/api/3/issue/2"}, result.SelfLinks)
	assert.Equal(t, "tok", result.NextPageToken)
	assert.False(t, result.IsLast)
}

func TestMutations(t *testing.T) {
	type call struct {
		method string
		path   string
		body   string
	}
	var calls []call
	_, client := setupMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, call{r.Method, r.URL.Path, string(body)})
		switch r.URL.Path {
		case "/rest/api/3/issue/":
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":"10002","key":"ABC-2","self":"x"}`)
		case "/rest/api/3/issue/archive":
			fmt.Fprint(w, `{"numberOfIssuesUpdated":1,"errors":{"issuesNotFound":{"count":1,"issueIdsOrKeys":["ABC-9"],"message":"not found"}}}`)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	created, err := client.CreateIssue(ctx, json.RawMessage(`{"fields":{"summary":"s"}}`))
	require.NoError(t, err)
	assert.Equal(t, "ABC-2", created.Key)

	require.NoError(t, client.SetAssignee(ctx, "ABC-2", UnassignedAccountID))
	require.NoError(t, client.UpdateIssue(ctx, "ABC-2", map[string]any{"update": map[string]any{}}))
	require.NoError(t, client.DoTransition(ctx, "ABC-2", "31"))

	archived, err := client.ArchiveIssues(ctx, []string{"ABC-2", "ABC-9"})
	require.NoError(t, err)
	assert.Equal(t, 1, archived.NumberOfIssuesUpdated)
	assert.Equal(t, []string{"ABC-9"}, archived.Errors["issuesNotFound"].IssueIDsOrKeys)

	require.Len(t, calls, 5)
	assert.Equal(t, call{http.MethodPut, "/rest/api/3/issue/ABC-2/assignee", `{"accountId":"-1"}`}, calls[1])
	assert.Equal(t, call{http.MethodPost, "/rest/api/3/issue/ABC-2/transitions", `{"transition":{"id":"31"}}`}, calls[3])
	assert.Equal(t, `{"issueIdsOrKeys":["ABC-2","ABC-9"]}`, calls[4].body)
}

func TestSearchUsersAndCatalog(t *testing.T) {
	_, client := setupMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/api/3/user/search":
			assert.Equal(t, "jane doe", r.URL.Query().Get("query"))
			fmt.Fprint(w, `[{"accountId":"acc-1","displayName":"Jane Doe","active":true}]`)
		case "/rest/api/3/field":
			fmt.Fprint(w, `[{"id":"labels","name":"Labels","custom":false,"schema":{"type":"array","items":"string","system":"labels"}}]`)
		case "/rest/api/3/issue/ABC-1/transitions":
			fmt.Fprint(w, `{"transitions":[{"id":"11","name":"Open"},{"id":"21","name":"In Progress"}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	users, err := client.SearchUsers(ctx, "jane doe")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "acc-1", users[0].AccountID)

	fields, err := client.ListFields(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "string", fields[0].Schema.Items)

	transitions, err := client.GetTransitions(ctx, "ABC-1")
	require.NoError(t, err)
	assert.Equal(t, []Transition{{ID: "11", Name: "Open"}, {ID: "21", Name: "In Progress"}}, transitions)
}

func TestStatusError_BodyText(t *testing.T) {
	assert.Equal(t, `{"a":1}`, (&StatusError{StatusCode: 400, Body: []byte("{ \"a\" : 1 }\n")}).BodyText())
	assert.Equal(t, "Bad Gateway", (&StatusError{StatusCode: 502}).BodyText())
	assert.Equal(t, "plain failure", (&StatusError{StatusCode: 500, Body: []byte("plain failure")}).BodyText())

	se := &StatusError{StatusCode: 400, Body: []byte(`{"errorMessages":[],"errors":{"summary":"required","b":"x"}}`)}
	assert.Equal(t, []string{"b: x", "summary: required"}, se.Messages())
}
