// Package validation turns raw request input into typed, checked values.
//
// Every function here is pure: no I/O, no logging. Failures are
// *apperror.AppError values carrying the exact message the client sees.
package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/repository"
)

// Query parameters GET /api/articles accepts.
const (
	ParamSortBy = "sort_by"
	ParamOrder  = "order"
	ParamTopic  = "topic"
)

// sortColumns maps the public sort_by values (case-sensitive) to the enum the
// store turns into SQL. Nothing outside this table can reach ORDER BY.
var sortColumns = map[string]repository.ArticleSort{
	"created_at":      repository.SortByCreatedAt,
	"author":          repository.SortByAuthor,
	"title":           repository.SortByTitle,
	"topic":           repository.SortByTopic,
	"article_img_url": repository.SortByArticleImgURL,
	"comment_count":   repository.SortByCommentCount,
	"votes":           repository.SortByVotes,
}

var sortOrders = map[string]repository.SortOrder{
	"ASC":  repository.Ascending,
	"DESC": repository.Descending,
}

// ArticleListQuery validates the article list query string.
//
// params is a url.Values (or anything shaped like it); a key with more than
// one value means the parameter was supplied twice. Checks run in order:
// unknown names, repeated names, sort_by, order, topic.
func ArticleListQuery(params map[string][]string, knownTopics []string) (repository.ArticleListOptions, error) {
	var opts repository.ArticleListOptions

	for name := range params {
		if name != ParamSortBy && name != ParamOrder && name != ParamTopic {
			return opts, apperror.Invalid(name, "not on greenlist")
		}
	}
	for name, values := range params {
		if len(values) > 1 {
			return opts, apperror.Invalid(name, "Bad Request")
		}
	}

	if v, ok := single(params, ParamSortBy); ok {
		sort, known := sortColumns[v]
		if !known {
			return opts, apperror.Invalid(ParamSortBy, "Bad Request")
		}
		opts.Sort = sort
	}

	if v, ok := single(params, ParamOrder); ok {
		order, known := sortOrders[strings.ToUpper(v)]
		if !known {
			return opts, apperror.Invalid(ParamOrder, "Bad Request")
		}
		opts.Order = order
	}

	if v, ok := single(params, ParamTopic); ok {
		if !contains(knownTopics, v) {
			return opts, apperror.Invalid(ParamTopic, "not a valid topic")
		}
		opts.Topic = v
	}

	return opts, nil
}

func single(params map[string][]string, name string) (string, bool) {
	values, ok := params[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ID parses a path id. Anything that is not a base-10 integer is rejected
// before it reaches the store.
func ID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.Invalid("id", "Bad Request")
	}
	return id, nil
}

// VoteDelta checks inc_votes as decoded by encoding/json into an `any`:
// numbers arrive as float64. Missing (nil), strings, booleans and fractional
// numbers are all rejected.
func VoteDelta(raw any) (int, error) {
	f, ok := raw.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f > math.MaxInt32 || f < math.MinInt32 {
		return 0, apperror.Invalid("inc_votes", "Votes must be a valid number")
	}
	return int(f), nil
}

// NewComment checks the POST comment body. A JSON null counts as missing.
func NewComment(username, body any) (string, string, error) {
	if username == nil || body == nil {
		return "", "", apperror.BadRequest("must have both username and body properties")
	}

	b, ok := body.(string)
	if !ok {
		return "", "", apperror.Invalid("body", "Invalid Comment Type")
	}
	u, ok := username.(string)
	if !ok {
		return "", "", apperror.Invalid("username", "Invalid Username")
	}
	if b == "" {
		return "", "", apperror.Invalid("body", "Comment cannot be blank")
	}
	return u, b, nil
}
