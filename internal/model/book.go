package model //import "github.com/Xunop/e-library/internal/model"

import "strings"

// Book is one stored e-book entry. The file itself is never stored, only a
// link to it.
type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Language    string `json:"language"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Label is the text shown on the book's button in the result list.
func (b *Book) Label() string {
	return b.Title + " by " + b.Author + " (" + b.Language + ")"
}

// BookCreate carries the fields of the add-book form and of POST /api/v1/books.
type BookCreate struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Language    string `json:"language"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Normalize trims surrounding whitespace from every field.
func (c *BookCreate) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Author = strings.TrimSpace(c.Author)
	c.Language = strings.TrimSpace(c.Language)
	c.Description = strings.TrimSpace(c.Description)
	c.Link = strings.TrimSpace(c.Link)
}

type FindBook struct {
	// Term is matched as a case-insensitive substring of title, author or
	// language. Empty matches every book.
	Term string `json:"term"`
}
