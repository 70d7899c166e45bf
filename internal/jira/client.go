package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds a remote call when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// UnassignedAccountID is the reserved account id that clears an assignee.
const UnassignedAccountID = "-1"

var restSuffix = regexp.MustCompile(`/rest/api/\d+/?$`)

// Options configures a Client.
type Options struct {
	// BaseURL is the REST base, e.g. https://example.atlassian.net/rest/api/3.
	BaseURL    string
	Email      string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client performs authenticated calls against the Jira REST API.
// Every call runs under its own deadline of Timeout.
type Client struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
	Timeout    time.Duration

	authHeader string
}

// New validates opts and builds a Client. The Basic auth header is encoded once here.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, ErrBaseURLMissing
	}
	baseURL, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBaseURLParse, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrBaseURLParse, opts.BaseURL)
	}
	if opts.Email == "" || opts.Token == "" {
		return nil, ErrCredentialsMissing
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(opts.Email + ":" + opts.Token))
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
		Timeout:    timeout,
		authHeader: "Basic " + credentials,
	}, nil
}

// SiteURL is the browsable site root: the base URL without its /rest/api/N suffix.
func (c *Client) SiteURL() string {
	return strings.TrimSuffix(restSuffix.ReplaceAllString(c.BaseURL.String(), ""), "/")
}

// BrowseURL is the web link of an issue.
func (c *Client) BrowseURL(key string) string {
	return c.SiteURL() + "/browse/" + key
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.BaseURL
	// Path is stored unescaped; String() escapes it.
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	u.RawPath = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) issuePath(key string, rest ...string) string {
	return strings.Join(append([]string{"issue", key}, rest...), "/")
}

// GetIssue fetches one issue by key or id.
func (c *Client) GetIssue(ctx context.Context, key string) (*Issue, error) {
	var issue Issue
	if err := c.do(ctx, http.MethodGet, c.endpoint(c.issuePath(key), nil), nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetIssueByURL fetches an issue through its self link. Only links on the configured
// site are followed so credentials never leave it.
func (c *Client) GetIssueByURL(ctx context.Context, self string) (*Issue, error) {
	u, err := url.Parse(self)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestCreate, err)
	}
	if !strings.EqualFold(u.Host, c.BaseURL.Host) || (u.Scheme != "" && u.Scheme != c.BaseURL.Scheme) {
		return nil, fmt.Errorf("%w: %s", ErrForeignURL, self)
	}
	var issue Issue
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// SearchJQL runs POST /search/jql and returns the self link of each matched issue.
func (c *Client) SearchJQL(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodPost, c.endpoint("search/jql", nil), req, &raw); err != nil {
		return nil, err
	}

	result := &SearchResult{
		NextPageToken: gjson.GetBytes(raw, "nextPageToken").String(),
		IsLast:        gjson.GetBytes(raw, "isLast").Bool(),
	}
	gjson.GetBytes(raw, "issues").ForEach(func(_, issue gjson.Result) bool {
		if self := issue.Get("self").String(); self != "" {
			result.SelfLinks = append(result.SelfLinks, self)
		} else if id := issue.Get("id").String(); id != "" {
			result.SelfLinks = append(result.SelfLinks, c.endpoint(c.issuePath(id), nil))
		}
		return true
	})
	return result, nil
}

// CreateIssue posts a create payload ({"fields": {...}}) to POST /issue/.
func (c *Client) CreateIssue(ctx context.Context, payload json.RawMessage) (*CreatedIssue, error) {
	var created CreatedIssue
	if err := c.do(ctx, http.MethodPost, c.endpoint("issue/", nil), payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SearchUsers resolves a free-text query to candidate accounts.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, c.endpoint("user/search", url.Values{"query": {query}}), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetAssignee assigns an issue to accountID. UnassignedAccountID clears the assignee.
func (c *Client) SetAssignee(ctx context.Context, key, accountID string) error {
	body := map[string]string{"accountId": accountID}
	return c.do(ctx, http.MethodPut, c.endpoint(c.issuePath(key, "assignee"), nil), body, nil)
}

// UpdateIssue applies an update payload with PUT /issue/{key}.
func (c *Client) UpdateIssue(ctx context.Context, key string, payload any) error {
	return c.do(ctx, http.MethodPut, c.endpoint(c.issuePath(key), nil), payload, nil)
}

// GetTransitions lists the transitions currently available to an issue.
func (c *Client) GetTransitions(ctx context.Context, key string) ([]Transition, error) {
	var resp struct {
		Transitions []Transition `json:"transitions"`
	}
	if err := c.do(ctx, http.MethodGet, c.endpoint(c.issuePath(key, "transitions"), nil), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transitions, nil
}

// DoTransition applies the transition with the given id.
func (c *Client) DoTransition(ctx context.Context, key, transitionID string) error {
	body := map[string]any{"transition": map[string]string{"id": transitionID}}
	return c.do(ctx, http.MethodPost, c.endpoint(c.issuePath(key, "transitions"), nil), body, nil)
}

// ListFields fetches the field catalog.
func (c *Client) ListFields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.do(ctx, http.MethodGet, c.endpoint("field", nil), nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ArchiveIssues archives issues by id or key with PUT /issue/archive.
func (c *Client) ArchiveIssues(ctx context.Context, idsOrKeys []string) (*ArchiveResult, error) {
	var result ArchiveResult
	body := map[string][]string{"issueIdsOrKeys": idsOrKeys}
	if err := c.do(ctx, http.MethodPut, c.endpoint("issue/archive", nil), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do performs one request under the client deadline. out may be nil, a *[]byte for the
// raw body, or any value the JSON body decodes into.
func (c *Client) do(ctx context.Context, method, rawURL string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var reader io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRequestMarshal, err)
		}
		reader = bytes.NewReader(payload)
	}

	logEvent := log.Debug().Str("method", method).Str("url", rawURL)
	if len(payload) > 0 {
		logEvent = logEvent.RawJSON("request_body", payload)
	}
	logEvent.Msg("Sending Jira request")

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestCreate, err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestExecute, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrResponseRead, err)
	}
	respEvent := log.Debug().Int("status_code", resp.StatusCode).Str("url", rawURL)
	if json.Valid(respBody) {
		respEvent = respEvent.RawJSON("response_body", respBody)
	}
	respEvent.Msg("Received Jira response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Method: method, URL: rawURL, StatusCode: resp.StatusCode, Body: respBody}
		log.Warn().Int("status_code", resp.StatusCode).Strs("remote_errors", statusErr.Messages()).Str("url", rawURL).Msg("Jira request failed")
		return statusErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = respBody
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %w", ErrResponseDecode, err)
	}
	return nil
}
