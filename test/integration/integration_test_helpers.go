//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	keyring "github.com/zalando/go-keyring"

	"github.com/karolswdev/jiramcp/cmd"
	"github.com/karolswdev/jiramcp/internal/config"
)

const (
	testEmail = "dev@example.com"
	testToken = "jira-token"
)

// fakeJira serves mux behind a Basic auth check for the test credentials.
func fakeJira(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != testEmail || pass != testToken {
			http.Error(w, `{"errorMessages":["unauthorized"]}`, http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

// fakeLLM serves an OpenAI-compatible chat completions endpoint under /v1.
func fakeLLM(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// setupTestEnvironment writes config.yaml and links.yaml into a temp config directory,
// points JIRAMCP_CONFIG_DIR at it and supplies secrets through the environment.
// The keychain is replaced by go-keyring's in-memory mock.
func setupTestEnvironment(t *testing.T, jiraURL, llmURL string) string {
	t.Helper()
	keyring.MockInit()

	dir := t.TempDir()
	configContent := fmt.Sprintf(`
jira:
  base_url: "%s/rest/api/3"
  email: "%s"
  project_key: "WEB"
  request_timeout: 5s
llm:
  provider: "openai"
  openai:
    model_name: "test-model"
    base_url: "%s/v1"
`, jiraURL, testEmail, llmURL)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigFileName), []byte(configContent), 0600))

	linksContent := `
projects:
  - name: "Web App"
    key: "WEB"
    default_issue_type: "Story"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultLinksFileName), []byte(linksContent), 0600))

	t.Setenv(config.ConfigDirEnvVar, dir)
	t.Setenv(config.EnvJiraTokenName, testToken)
	t.Setenv(config.EnvAPIKeyName, "llm-key")
	for _, env := range []string{config.EnvJiraBaseURL, config.EnvJiraEmail, config.EnvJiraProjectKey} {
		t.Setenv(env, "")
	}
	return dir
}

// executeCommand runs the root command in-process and captures its output streams.
// Flags keep their values between runs, so callers pass every flag they rely on.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer

	root := cmd.RootCmd()
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	err = root.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
