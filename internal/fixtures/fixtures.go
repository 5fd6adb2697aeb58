// Package fixtures holds the seed data the store is loaded with before each
// test run (and, optionally, at server start).
//
// The JSON files under data/ are compiled into the binary with go:embed, so
// seeding never depends on the working directory.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"github.com/sakif/news-api/internal/model"
)

//go:embed data/*.json
var embedded embed.FS

// Data is one complete seed set. Articles and comments are inserted in slice
// order; a comment's ArticleID is the 1-based position of its article.
type Data struct {
	Topics   []model.Topic
	Users    []model.User
	Articles []model.Article
	Comments []model.Comment
}

// Load returns the embedded seed set.
func Load() (*Data, error) {
	return LoadFS(embedded, "data")
}

// LoadFS reads topics.json, users.json, articles.json and comments.json from
// dir inside fsys. cmd/seed uses it with os.DirFS to seed from a custom set.
func LoadFS(fsys fs.FS, dir string) (*Data, error) {
	var d Data
	files := []struct {
		name string
		dst  any
	}{
		{"topics.json", &d.Topics},
		{"users.json", &d.Users},
		{"articles.json", &d.Articles},
		{"comments.json", &d.Comments},
	}

	for _, f := range files {
		raw, err := fs.ReadFile(fsys, path.Join(dir, f.name))
		if err != nil {
			return nil, fmt.Errorf("fixtures: reading %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("fixtures: decoding %s: %w", f.name, err)
		}
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// validate catches broken references before they reach the database, where
// they would surface as an opaque constraint failure halfway through a seed.
func (d *Data) validate() error {
	topics := make(map[string]bool, len(d.Topics))
	for _, t := range d.Topics {
		topics[t.Slug] = true
	}
	users := make(map[string]bool, len(d.Users))
	for _, u := range d.Users {
		users[u.Username] = true
	}

	for i, a := range d.Articles {
		if !topics[a.Topic] {
			return fmt.Errorf("fixtures: article %d: unknown topic %q", i+1, a.Topic)
		}
		if !users[a.Author] {
			return fmt.Errorf("fixtures: article %d: unknown author %q", i+1, a.Author)
		}
	}
	for i, c := range d.Comments {
		if c.ArticleID < 1 || c.ArticleID > int64(len(d.Articles)) {
			return fmt.Errorf("fixtures: comment %d: unknown article %d", i+1, c.ArticleID)
		}
		if !users[c.Author] {
			return fmt.Errorf("fixtures: comment %d: unknown author %q", i+1, c.Author)
		}
	}
	return nil
}

// CommentCount returns how many fixture comments reference the article with
// the given 1-based id. Tests use it as the expected comment_count.
func (d *Data) CommentCount(articleID int64) int {
	n := 0
	for _, c := range d.Comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}
