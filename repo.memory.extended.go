package main

import "context"

// ExtendedBookStore adds author lookup on top of the in-memory
// store without changing any of its existing behavior.
type ExtendedBookStore struct {
	*MemoryBookStore
}

// NewExtendedBookStore wraps the given in-memory store.
func NewExtendedBookStore(base *MemoryBookStore) *ExtendedBookStore {
	return &ExtendedBookStore{MemoryBookStore: base}
}

// FindByAuthor returns the books written by exactly the given author
// in insertion order.
func (es *ExtendedBookStore) FindByAuthor(_ context.Context, author string) ([]Book, error) {
	books := []Book{}
	for _, book := range es.books {
		if book.Author == author {
			books = append(books, book)
		}
	}
	return books, nil
}
