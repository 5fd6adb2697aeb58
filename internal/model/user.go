package model

// User is a registered reader/author.
//
// Username is the primary key: articles and comments reference users by it,
// and the store enforces that every author exists.
type User struct {
	Username  string `json:"username"   db:"username"`
	Name      string `json:"name"       db:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"` // Profile picture URL
}
