package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	Email                  string    `json:"email" db:"email"`
	FirstName              string    `json:"firstName" db:"first_name"`
	LastName               string    `json:"lastName" db:"last_name"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	Role                   string    `json:"role" db:"role"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	DateJoined             time.Time `json:"dateJoined" db:"date_joined"`
}

// FullName mirrors what the profile page shows: "first last", or the username
// when neither is set.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

// Actor is the authenticated caller of an operation. A nil *Actor is an
// anonymous visitor.
type Actor struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

type Group struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

func (g Group) String() string {
	return g.Title
}

type Post struct {
	ID             int64     `json:"id" db:"id"`
	Text           string    `json:"text" db:"text"`
	PubDate        time.Time `json:"pubDate" db:"pub_date"`
	AuthorID       string    `json:"authorId" db:"author_id"`
	AuthorUsername string    `json:"author" db:"author_username"`
	GroupID        *int64    `json:"groupId" db:"group_id"`
	GroupTitle     *string   `json:"groupTitle" db:"group_title"`
	GroupSlug      *string   `json:"groupSlug" db:"group_slug"`
	Image          string    `json:"image" db:"image"`
	ImageURL       string    `json:"imageUrl,omitempty" db:"-"`
	Published      string    `json:"published,omitempty" db:"-"`
}

func (p Post) String() string {
	return truncate(p.Text, 15)
}

type Comment struct {
	ID             int64     `json:"id" db:"id"`
	PostID         int64     `json:"postId" db:"post_id"`
	AuthorID       string    `json:"authorId" db:"author_id"`
	AuthorUsername string    `json:"author" db:"author_username"`
	Text           string    `json:"text" db:"text"`
	Created        time.Time `json:"created" db:"created"`
	Published      string    `json:"published,omitempty" db:"-"`
}

func (c Comment) String() string {
	return truncate(c.Text, 15)
}

// Follow is a directed edge: UserID reads AuthorID's posts in the feed.
type Follow struct {
	ID       int64  `json:"id" db:"id"`
	UserID   string `json:"userId" db:"user_id"`
	AuthorID string `json:"authorId" db:"author_id"`
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
