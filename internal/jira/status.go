package jira

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/tidwall/gjson"
)

// StatusError reports a non-2xx response. It unwraps to ErrUnexpectedStatus.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.URL, e.StatusCode, e.BodyText())
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// BodyText is the remote error body, compacted when it is JSON. An empty body falls back
// to the status text.
func (e *StatusError) BodyText() string {
	trimmed := bytes.TrimSpace(e.Body)
	if len(trimmed) == 0 {
		return http.StatusText(e.StatusCode)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err == nil {
		return compact.String()
	}
	return string(trimmed)
}

// Messages collects the errorMessages and errors members of a Jira error body.
func (e *StatusError) Messages() []string {
	if !gjson.ValidBytes(e.Body) {
		return nil
	}
	var msgs []string
	for _, m := range gjson.GetBytes(e.Body, "errorMessages").Array() {
		msgs = append(msgs, m.String())
	}
	var fieldMsgs []string
	gjson.GetBytes(e.Body, "errors").ForEach(func(field, msg gjson.Result) bool {
		fieldMsgs = append(fieldMsgs, field.String()+": "+msg.String())
		return true
	})
	sort.Strings(fieldMsgs)
	return append(msgs, fieldMsgs...)
}

// Detail renders err for a user: the remote body for status errors, the error text otherwise.
func Detail(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.BodyText()
	}
	return err.Error()
}
