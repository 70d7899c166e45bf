// Package format renders Jira records as flat, ordered text blocks.
package format

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/karolswdev/jiramcp/internal/jira"
)

// None is printed for every missing value.
const None = "None"

// Unassigned is printed for the assignee lines of an unassigned issue.
const Unassigned = "Unassigned"

// Issue renders an issue as a header line followed by one "Label: value" line per field,
// in a fixed order, then custom fields sorted by id. The output depends only on issue.
func Issue(issue *jira.Issue) string {
	f := issue.Fields
	var issueType jira.IssueType
	if f.IssueType != nil {
		issueType = *f.IssueType
	}
	var project jira.Project
	if f.Project != nil {
		project = *f.Project
	}
	var tt jira.TimeTracking
	if f.TimeTracking != nil {
		tt = *f.TimeTracking
	}
	var creator, reporter jira.User
	if f.Creator != nil {
		creator = *f.Creator
	}
	if f.Reporter != nil {
		reporter = *f.Reporter
	}

	var b lines
	b.add("", fmt.Sprintf("========== Issue %s ==========", issue.Key))
	b.add("Id", issue.ID)
	b.add("Key", issue.Key)
	b.add("Status Category Change Date", f.StatusCategoryChangeDate)
	b.add("Issue Type", issueType.Name)
	b.add("Subtask", boolOrNone(f.IssueType != nil, issueType.Subtask))
	b.add("Components", names(f.Components))
	b.add("Time Spent", int64OrNone(f.TimeSpent))
	b.add("Time Original Estimate", int64OrNone(f.TimeOriginalEstimate))
	b.add("Project", project.Name)
	b.add("Project Id", project.ID)
	b.add("Project Key", project.Key)
	b.add("Description", PlainText(f.Description))
	b.add("Fix Versions", names(f.FixVersions))
	b.add("Aggregate Time Spent", int64OrNone(f.AggregateTimeSpent))
	b.add("Status Category", statusCategory(f.Status))
	b.add("Resolution", resolution(f.Resolution))
	b.add("Resolution Date", f.ResolutionDate)
	b.add("Time Tracking - Original Estimate", tt.OriginalEstimate)
	b.add("Time Tracking - Original Estimate in Seconds", int64OrNone(tt.OriginalEstimateSeconds))
	b.add("Time Tracking - Remaining Estimate", tt.RemainingEstimate)
	b.add("Time Tracking - Remaining Estimate in Seconds", int64OrNone(tt.RemainingEstimateSeconds))
	b.add("Time Tracking - Time Spent", tt.TimeSpent)
	b.add("Time Tracking - Time Spent in Seconds", int64OrNone(tt.TimeSpentSeconds))
	b.add("Aggregate Time Estimate", int64OrNone(f.AggregateTimeEstimate))
	b.add("Work Ratio", int64OrNone(f.WorkRatio))
	b.add("Summary", f.Summary)
	b.add("Last Viewed Date", f.LastViewed)
	b.add("Creator Name", creator.DisplayName)
	b.add("Creator Email", creator.EmailAddress)
	b.add("Subtasks", subtasks(f.Subtasks))
	b.add("Created Date", f.Created)
	b.add("Reporter Name", reporter.DisplayName)
	b.add("Reporter Email", reporter.EmailAddress)
	if f.Progress != nil {
		b.add("Progress", strconv.FormatInt(f.Progress.Progress, 10))
		b.add("Progress Total", strconv.FormatInt(f.Progress.Total, 10))
	} else {
		b.add("Progress", "")
		b.add("Progress Total", "")
	}
	b.add("Priority", namedOrEmpty(f.Priority))
	b.add("Labels", strings.Join(f.Labels, ", "))
	b.add("Environment", PlainText(f.Environment))
	b.add("Time Estimate", int64OrNone(f.TimeEstimate))
	b.add("Aggregate Time Original Estimate", int64OrNone(f.AggregateTimeOriginalEstimate))
	b.add("Versions", names(f.Versions))
	b.add("Due Date", f.DueDate)
	if f.Votes != nil {
		b.add("Votes", strconv.FormatInt(f.Votes.Votes, 10))
		b.add("Has Voted", strconv.FormatBool(f.Votes.HasVoted))
	} else {
		b.add("Votes", "")
		b.add("Has Voted", "")
	}
	b.add("Comments", comments(f.Comment))
	b.add("Issue Links", issueLinks(f.IssueLinks))
	b.add("Work Log", worklogs(f.Worklog))
	assigneeName, assigneeEmail := Unassigned, Unassigned
	if f.Assignee != nil {
		assigneeName = orDefault(f.Assignee.DisplayName, Unassigned)
		assigneeEmail = orDefault(f.Assignee.EmailAddress, Unassigned)
	}
	b.add("Assignee Name", assigneeName)
	b.add("Assignee Email", assigneeEmail)
	b.add("Updated Date", f.Updated)
	b.add("Status", statusName(f.Status))

	for _, id := range sortedKeys(f.Extra) {
		raw := f.Extra[id]
		if value := customValue(raw); value != "" {
			b.add(id, value)
		}
	}
	return b.String()
}

type lines []string

func (l *lines) add(label, value string) {
	if label == "" {
		*l = append(*l, value)
		return
	}
	*l = append(*l, label+": "+orDefault(value, None))
}

func (l lines) String() string { return strings.Join(l, "\n") }

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func int64OrNone(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func boolOrNone(present, v bool) string {
	if !present {
		return ""
	}
	return strconv.FormatBool(v)
}

func names(items []jira.Named) string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.Name)
	}
	return strings.Join(out, ", ")
}

func namedOrEmpty(n *jira.Named) string {
	if n == nil {
		return ""
	}
	return n.Name
}

func statusName(s *jira.Status) string {
	if s == nil {
		return ""
	}
	return s.Name
}

func statusCategory(s *jira.Status) string {
	if s == nil || s.StatusCategory == nil {
		return ""
	}
	return s.StatusCategory.Name
}

func resolution(r *jira.Resolution) string {
	if r == nil {
		return ""
	}
	return orDefault(r.Name, r.Description)
}

func subtasks(refs []jira.IssueRef) string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, issueRef(&r))
	}
	return strings.Join(out, ", ")
}

func issueRef(r *jira.IssueRef) string {
	text := r.Key
	if r.Fields.Summary != "" {
		text += " (" + r.Fields.Summary + ")"
	}
	return text
}

func issueLinks(links []jira.IssueLink) string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		switch {
		case l.OutwardIssue != nil:
			out = append(out, l.Type.Outward+" "+issueRef(l.OutwardIssue))
		case l.InwardIssue != nil:
			out = append(out, l.Type.Inward+" "+issueRef(l.InwardIssue))
		}
	}
	return strings.Join(out, "; ")
}

func comments(page *jira.CommentPage) string {
	if page == nil {
		return ""
	}
	out := make([]string, 0, len(page.Comments))
	for _, c := range page.Comments {
		author := "Unknown"
		if c.Author != nil {
			author = orDefault(c.Author.DisplayName, author)
		}
		out = append(out, fmt.Sprintf("[%s %s] %s", author, c.Created, PlainText(c.Body)))
	}
	return strings.Join(out, "; ")
}

func worklogs(page *jira.WorklogPage) string {
	if page == nil {
		return ""
	}
	out := make([]string, 0, len(page.Worklogs))
	for _, w := range page.Worklogs {
		author := "Unknown"
		if w.Author != nil {
			author = orDefault(w.Author.DisplayName, author)
		}
		out = append(out, fmt.Sprintf("%s logged %s on %s", author, w.TimeSpent, w.Started))
	}
	return strings.Join(out, "; ")
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// customValue renders the value of an unrecognised field. Null and empty values render
// as "" so the caller can skip them; option, user and version objects show their label.
func customValue(raw json.RawMessage) string {
	v := gjson.ParseBytes(raw)
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return ""
	case v.Type == gjson.String, v.Type == gjson.Number, v.Type == gjson.True, v.Type == gjson.False:
		return v.String()
	case v.IsArray():
		var items []string
		v.ForEach(func(_, item gjson.Result) bool {
			if s := customValue(json.RawMessage(item.Raw)); s != "" {
				items = append(items, s)
			}
			return true
		})
		return strings.Join(items, ", ")
	case v.Get("type").String() == "doc":
		return PlainText(raw)
	}
	for _, key := range []string{"value", "name", "displayName", "key"} {
		if label := v.Get(key); label.Exists() && label.Type == gjson.String {
			return label.String()
		}
	}
	return compact(raw)
}
