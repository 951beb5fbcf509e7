// Package forms holds the user-submitted forms of the blog and the validation
// that runs before anything reaches storage.
package forms

import (
	"io"
	"strings"
)

// InvalidChoice is reported for a select value that doesn't name an existing option.
const InvalidChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."

// Upload is a file attached to a form. File must be seekable so the content
// can be sniffed and then streamed to storage.
type Upload struct {
	Filename    string
	Size        int64
	File        io.ReadSeeker
	ContentType string
	Extension   string
}

type PostForm struct {
	Text       string  `form:"text" json:"text" validate:"required"`
	Group      *int64  `form:"group" json:"group" validate:"omitempty,gt=0"`
	Image      *Upload `form:"image" json:"-" validate:"-"`
	ImageClear bool    `form:"image-clear" json:"imageClear" validate:"-"`
}

func (f *PostForm) Clean() {
	f.Text = strings.TrimSpace(f.Text)
}

type CommentForm struct {
	Text string `form:"text" json:"text" validate:"required"`
}

func (f *CommentForm) Clean() {
	f.Text = strings.TrimSpace(f.Text)
}

type SignupForm struct {
	FirstName string `form:"first_name" json:"firstName" validate:"max=150"`
	LastName  string `form:"last_name" json:"lastName" validate:"max=150"`
	Username  string `form:"username" json:"username" validate:"required,max=150,username"`
	Email     string `form:"email" json:"email" validate:"omitempty,email"`
	Password  string `form:"password" json:"password" validate:"required,min=8"`
}

func (f *SignupForm) Clean() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

func (f *LoginForm) Clean() {
	f.Username = strings.TrimSpace(f.Username)
}

type RefreshForm struct {
	RefreshToken string `form:"refresh_token" json:"refreshToken" validate:"required"`
}

type GroupForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Slug        string `form:"slug" json:"slug" validate:"required,max=50,slug"`
	Description string `form:"description" json:"description" validate:"required"`
}

func (f *GroupForm) Clean() {
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Description = strings.TrimSpace(f.Description)
}

// Field describes one input of a form for clients rendering it.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

var (
	PostFields = []Field{
		{Name: "text", Type: "textarea", Required: true},
		{Name: "group", Type: "select", Required: false},
		{Name: "image", Type: "file", Required: false},
	}
	CommentFields = []Field{
		{Name: "text", Type: "textarea", Required: true},
	}
	SignupFields = []Field{
		{Name: "first_name", Type: "text"},
		{Name: "last_name", Type: "text"},
		{Name: "username", Type: "text", Required: true},
		{Name: "email", Type: "email"},
		{Name: "password", Type: "password", Required: true},
	}
	LoginFields = []Field{
		{Name: "username", Type: "text", Required: true},
		{Name: "password", Type: "password", Required: true},
	}
)
