package main

import "fmt"

// Book represents a book record. It is handled by value so a
// stored record can not be changed once it was added.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
}

// NewBook builds a book record from the user provided fields.
func NewBook(title, author, year string) Book {
	return Book{
		Title:  title,
		Author: author,
		Year:   year,
	}
}

// String formats the book the way it is shown in the library listing.
func (b Book) String() string {
	return fmt.Sprintf("Title: %s, Author: %s, Year: %s", b.Title, b.Author, b.Year)
}
