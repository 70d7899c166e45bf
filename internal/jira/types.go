package jira

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Issue is a single Jira issue as returned by GET /issue/{key}.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self"`
	Fields IssueFields `json:"fields"`
}

// IssueFields is the fixed core of an issue's fields. Every member the core does not
// know about, custom fields included, is kept verbatim in Extra.
type IssueFields struct {
	Summary                       string          `json:"summary"`
	Description                   json.RawMessage `json:"description"`
	Environment                   json.RawMessage `json:"environment"`
	IssueType                     *IssueType      `json:"issuetype"`
	Project                       *Project        `json:"project"`
	Status                        *Status         `json:"status"`
	Priority                      *Named          `json:"priority"`
	Resolution                    *Resolution     `json:"resolution"`
	Labels                        []string        `json:"labels"`
	Components                    []Named         `json:"components"`
	FixVersions                   []Named         `json:"fixVersions"`
	Versions                      []Named         `json:"versions"`
	Assignee                      *User           `json:"assignee"`
	Reporter                      *User           `json:"reporter"`
	Creator                       *User           `json:"creator"`
	Created                       string          `json:"created"`
	Updated                       string          `json:"updated"`
	ResolutionDate                string          `json:"resolutiondate"`
	LastViewed                    string          `json:"lastViewed"`
	StatusCategoryChangeDate      string          `json:"statuscategorychangedate"`
	DueDate                       string          `json:"duedate"`
	TimeSpent                     *int64          `json:"timespent"`
	TimeEstimate                  *int64          `json:"timeestimate"`
	TimeOriginalEstimate          *int64          `json:"timeoriginalestimate"`
	AggregateTimeSpent            *int64          `json:"aggregatetimespent"`
	AggregateTimeEstimate         *int64          `json:"aggregatetimeestimate"`
	AggregateTimeOriginalEstimate *int64          `json:"aggregatetimeoriginalestimate"`
	WorkRatio                     *int64          `json:"workratio"`
	TimeTracking                  *TimeTracking   `json:"timetracking"`
	Progress                      *Progress       `json:"progress"`
	Votes                         *Votes          `json:"votes"`
	Subtasks                      []IssueRef      `json:"subtasks"`
	IssueLinks                    []IssueLink     `json:"issuelinks"`
	Comment                       *CommentPage    `json:"comment"`
	Worklog                       *WorklogPage    `json:"worklog"`

	Extra map[string]json.RawMessage `json:"-"`
}

var coreFieldKeys = jsonKeys(reflect.TypeOf(IssueFields{}))

func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}

// UnmarshalJSON decodes the core members and collects the rest into Extra.
func (f *IssueFields) UnmarshalJSON(data []byte) error {
	type core IssueFields
	var c core
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key := range coreFieldKeys {
		delete(all, key)
	}
	*f = IssueFields(c)
	if len(all) > 0 {
		f.Extra = all
	}
	return nil
}

// IssueType is the issuetype member of an issue.
type IssueType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subtask bool   `json:"subtask"`
}

// Project is the project member of an issue.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Status is the workflow status of an issue.
type Status struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StatusCategory *Named `json:"statusCategory"`
}

// Named covers the many Jira objects that are only shown by name.
type Named struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Resolution is the resolution member of an issue.
type Resolution struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// User is a Jira account as embedded in issues and returned by user search.
type User struct {
	AccountID    string `json:"accountId"`
	AccountType  string `json:"accountType,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	DisplayName  string `json:"displayName"`
	Active       bool   `json:"active"`
	TimeZone     string `json:"timeZone,omitempty"`
	Locale       string `json:"locale,omitempty"`
}

// TimeTracking is the timetracking member of an issue.
type TimeTracking struct {
	OriginalEstimate         string `json:"originalEstimate"`
	OriginalEstimateSeconds  *int64 `json:"originalEstimateSeconds"`
	RemainingEstimate        string `json:"remainingEstimate"`
	RemainingEstimateSeconds *int64 `json:"remainingEstimateSeconds"`
	TimeSpent                string `json:"timeSpent"`
	TimeSpentSeconds         *int64 `json:"timeSpentSeconds"`
}

// Progress is the progress member of an issue.
type Progress struct {
	Progress int64 `json:"progress"`
	Total    int64 `json:"total"`
}

// Votes is the votes member of an issue.
type Votes struct {
	Votes    int64 `json:"votes"`
	HasVoted bool  `json:"hasVoted"`
}

// IssueRef is a reference to another issue (subtask or link target).
type IssueRef struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary string  `json:"summary"`
		Status  *Status `json:"status"`
	} `json:"fields"`
}

// IssueLink is one entry of the issuelinks member.
type IssueLink struct {
	ID           string        `json:"id"`
	Type         IssueLinkType `json:"type"`
	InwardIssue  *IssueRef     `json:"inwardIssue"`
	OutwardIssue *IssueRef     `json:"outwardIssue"`
}

// IssueLinkType names both directions of a link.
type IssueLinkType struct {
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

// CommentPage is the comment member of an issue.
type CommentPage struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
}

// Comment is a single issue comment. Body is an ADF document.
type Comment struct {
	ID      string          `json:"id"`
	Author  *User           `json:"author"`
	Body    json.RawMessage `json:"body"`
	Created string          `json:"created"`
}

// WorklogPage is the worklog member of an issue.
type WorklogPage struct {
	Worklogs []Worklog `json:"worklogs"`
	Total    int       `json:"total"`
}

// Worklog is a single logged unit of work.
type Worklog struct {
	Author    *User  `json:"author"`
	TimeSpent string `json:"timeSpent"`
	Started   string `json:"started"`
}

// SearchRequest is the body of POST /search/jql.
type SearchRequest struct {
	JQL             string   `json:"jql"`
	MaxResults      int      `json:"maxResults,omitempty"`
	Fields          []string `json:"fields,omitempty"`
	Expand          string   `json:"expand,omitempty"`
	NextPageToken   string   `json:"nextPageToken,omitempty"`
	FieldsByKeys    bool     `json:"fieldsByKeys,omitempty"`
	ReconcileIssues []int64  `json:"reconcileIssues,omitempty"`
}

// SearchResult lists the self links of the matched issues.
type SearchResult struct {
	SelfLinks     []string
	NextPageToken string
	IsLast        bool
}

// CreatedIssue is the response of POST /issue/.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// Transition is one workflow transition available to an issue.
type Transition struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	To   *Status `json:"to,omitempty"`
}

// Field is one entry of the field catalog (GET /field).
type Field struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Custom bool         `json:"custom"`
	Schema *FieldSchema `json:"schema,omitempty"`
}

// FieldSchema describes the value shape of a field.
type FieldSchema struct {
	Type     string `json:"type"`
	Items    string `json:"items,omitempty"`
	Custom   string `json:"custom,omitempty"`
	CustomID int64  `json:"customId,omitempty"`
	System   string `json:"system,omitempty"`
}

// ArchiveResult is the response of PUT /issue/archive.
type ArchiveResult struct {
	NumberOfIssuesUpdated int                     `json:"numberOfIssuesUpdated"`
	Errors                map[string]ArchiveError `json:"errors"`
}

// ArchiveError groups issues that could not be archived for one reason.
type ArchiveError struct {
	Count          int      `json:"count"`
	IssueIDsOrKeys []string `json:"issueIdsOrKeys"`
	Message        string   `json:"message"`
}
