package main

import "context"

// MemoryBookStore keeps the books into an ordered in-memory sequence.
type MemoryBookStore struct {
	books []Book
}

// NewMemoryBookStore provides an empty in-memory book store.
func NewMemoryBookStore() *MemoryBookStore {
	return &MemoryBookStore{books: []Book{}}
}

// Add appends the book at the end of the sequence.
func (ms *MemoryBookStore) Add(_ context.Context, book Book) error {
	ms.books = append(ms.books, book)
	return nil
}

// Remove deletes every book with exactly the given title. The
// order of the remaining books is preserved.
func (ms *MemoryBookStore) Remove(_ context.Context, title string) error {
	kept := ms.books[:0]
	for _, book := range ms.books {
		if book.Title != title {
			kept = append(kept, book)
		}
	}
	// clear the tail so removed records are not retained.
	for i := len(kept); i < len(ms.books); i++ {
		ms.books[i] = Book{}
	}
	ms.books = kept
	return nil
}

// List returns a copy of the books in insertion order.
func (ms *MemoryBookStore) List(_ context.Context) ([]Book, error) {
	books := make([]Book, len(ms.books))
	copy(books, ms.books)
	return books, nil
}
