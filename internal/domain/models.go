package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Repository represents a remote source repository
type Repository struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// FullName returns the owner/name form used in routes and titles
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Commit represents a single commit as served by the API
type Commit struct {
	SHA         string    `json:"sha"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail string    `json:"authorEmail"`
	CommitDate  Timestamp `json:"commitDate"`
	Message     string    `json:"message"`
}

// ShortSHA returns the abbreviated commit hash
func (c Commit) ShortSHA() string {
	if len(c.SHA) <= 7 {
		return c.SHA
	}
	return c.SHA[:7]
}

// Subject returns the first line of the commit message
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// FileStatus is the change kind reported for a file
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusRemoved  FileStatus = "removed"
)

// Known reports whether the status is one of added/modified/removed
func (s FileStatus) Known() bool {
	switch s {
	case StatusAdded, StatusModified, StatusRemoved:
		return true
	default:
		return false
	}
}

// ChangedFile is one file touched by a commit
type ChangedFile struct {
	FileName  string     `json:"fileName"`
	Status    FileStatus `json:"status"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	Patch     string     `json:"patch,omitempty"`
}

// FileDiffContent holds the before/after text of a single changed file
type FileDiffContent struct {
	OldContent string `json:"oldContent"`
	NewContent string `json:"newContent"`
}

// CommitDetail is a commit together with its ordered changed files
type CommitDetail struct {
	Commit       Commit
	ChangedFiles []ChangedFile
}

// CommitPage is one page of a repository's commit history
type CommitPage struct {
	Owner   string
	Repo    string
	Page    int
	PerPage int
	Commits []Commit
}

// First returns the 1-based position of the first commit on the page
func (p CommitPage) First() int {
	return (p.Page-1)*p.PerPage + 1
}

// Last returns the 1-based position of the last commit on the page
func (p CommitPage) Last() int {
	return (p.Page-1)*p.PerPage + len(p.Commits)
}

// HasPrev reports whether an earlier page exists
func (p CommitPage) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether the page came back full, implying more may follow.
// A history that is an exact multiple of PerPage therefore ends on an empty
// page, which renders as "No commits found".
func (p CommitPage) HasNext() bool {
	return p.PerPage > 0 && len(p.Commits) >= p.PerPage
}

// User is the identity the API session is authenticated as
type User struct {
	Username      string `json:"username"`
	Authenticated bool   `json:"authenticated"`
}

// Timestamp decodes either epoch milliseconds or an ISO-8601 string
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05.000+00:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		t.Time = time.UnixMilli(ms)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp format: %q", raw)
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Display formats the timestamp in local time for tables and headers
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
