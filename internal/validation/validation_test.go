package validation

import (
	"errors"
	"net/url"
	"testing"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/repository"
)

var topics = []string{"mitch", "cats", "paper"}

// message extracts the client-facing message, or "" for a nil error.
func message(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		return ""
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error %v is not an *apperror.AppError", err)
	}
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("error %v is not a bad request", err)
	}
	return appErr.Message
}

// =========================================================================
// ARTICLE LIST QUERY TESTS
// =========================================================================

func TestArticleListQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    repository.ArticleListOptions
		wantMsg string
	}{
		{name: "defaults", query: "", want: repository.ArticleListOptions{
			Sort: repository.SortByCreatedAt, Order: repository.Descending,
		}},
		{name: "sort by votes", query: "sort_by=votes", want: repository.ArticleListOptions{
			Sort: repository.SortByVotes,
		}},
		{name: "order is case-insensitive", query: "order=asc", want: repository.ArticleListOptions{
			Order: repository.Ascending,
		}},
		{name: "all three", query: "sort_by=comment_count&order=DESC&topic=cats", want: repository.ArticleListOptions{
			Sort: repository.SortByCommentCount, Order: repository.Descending, Topic: "cats",
		}},
		{name: "unknown parameter", query: "limit=10", wantMsg: "not on greenlist"},
		{name: "unknown parameter wins over bad value", query: "sort_by=nope&limit=10", wantMsg: "not on greenlist"},
		{name: "sort_by is case-sensitive", query: "sort_by=Votes", wantMsg: "Bad Request"},
		{name: "sql injection in sort_by", query: "sort_by=author%3BDROP%20TABLE%20comments", wantMsg: "Bad Request"},
		{name: "bad order", query: "order=sideways", wantMsg: "Bad Request"},
		{name: "duplicate key", query: "sort_by=votes&sort_by=title", wantMsg: "Bad Request"},
		{name: "unknown topic", query: "topic=dogs", wantMsg: "not a valid topic"},
		{name: "empty topic is not a topic", query: "topic=", wantMsg: "not a valid topic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad test query %q: %v", tt.query, err)
			}

			got, err := ArticleListQuery(params, topics)
			if msg := message(t, err); msg != tt.wantMsg {
				t.Fatalf("ArticleListQuery(%q) message = %q, want %q", tt.query, msg, tt.wantMsg)
			}
			if tt.wantMsg == "" && got != tt.want {
				t.Errorf("ArticleListQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

// =========================================================================
// ID / VOTE TESTS
// =========================================================================

func TestID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9999", 9999, false},
		{"-3", -3, false},
		{"banana", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
		{"1; DROP TABLE articles", 0, true},
	}
	for _, tt := range tests {
		got, err := ID(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err != nil {
			if msg := message(t, err); msg != "Bad Request" {
				t.Errorf("ID(%q) message = %q", tt.raw, msg)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ID(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestVoteDelta(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int
		wantErr bool
	}{
		{"positive", float64(1), 1, false},
		{"negative", float64(-40), -40, false},
		{"zero", float64(0), 0, false},
		{"missing", nil, 0, true},
		{"string", "1", 0, true},
		{"bool", true, 0, true},
		{"fraction", 1.5, 0, true},
		{"object", map[string]any{}, 0, true},
		{"too large", float64(1 << 40), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VoteDelta(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VoteDelta(%v) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil {
				if msg := message(t, err); msg != "Votes must be a valid number" {
					t.Errorf("message = %q", msg)
				}
				return
			}
			if got != tt.want {
				t.Errorf("VoteDelta(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

// =========================================================================
// COMMENT TESTS
// =========================================================================

func TestNewComment(t *testing.T) {
	tests := []struct {
		name     string
		username any
		body     any
		wantMsg  string
	}{
		{"valid", "lurker", "hello", ""},
		{"missing username", nil, "hello", "must have both username and body properties"},
		{"missing body", "lurker", nil, "must have both username and body properties"},
		{"numeric body", "lurker", float64(5), "Invalid Comment Type"},
		{"numeric body beats bad username", float64(1), float64(5), "Invalid Comment Type"},
		{"numeric username", float64(1), "hello", "Invalid Username"},
		{"blank body", "lurker", "", "Comment cannot be blank"},
		{"whitespace body is kept", "lurker", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, b, err := NewComment(tt.username, tt.body)
			if msg := message(t, err); msg != tt.wantMsg {
				t.Fatalf("NewComment() message = %q, want %q", msg, tt.wantMsg)
			}
			if tt.wantMsg == "" && (u != tt.username || b != tt.body) {
				t.Errorf("NewComment() = (%q, %q), want (%v, %v)", u, b, tt.username, tt.body)
			}
		})
	}
}
