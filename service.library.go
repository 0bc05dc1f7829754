package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LibraryManager orchestrates the library operations on top of any store
// and reports their outcome through the logger.
type LibraryManager struct {
	logger *zap.Logger
	store  BookStore
}

func NewLibraryManager(logger *zap.Logger, store BookStore) *LibraryManager {
	return &LibraryManager{
		logger: logger,
		store:  store,
	}
}

// AddBook stores a new book built from the provided fields.
func (lm *LibraryManager) AddBook(ctx context.Context, title, author, year string) error {
	if err := lm.store.Add(ctx, NewBook(title, author, year)); err != nil {
		lm.logger.Error("manager: failed to add book", zap.String("title", title), zap.Error(err))
		return err
	}
	lm.logger.Info(fmt.Sprintf("Book \"%s\" added successfully.", title))
	return nil
}

// RemoveBook removes all books with the given title. The confirmation
// is reported even when no book matched.
func (lm *LibraryManager) RemoveBook(ctx context.Context, title string) error {
	if err := lm.store.Remove(ctx, title); err != nil {
		lm.logger.Error("manager: failed to remove book", zap.String("title", title), zap.Error(err))
		return err
	}
	lm.logger.Info(fmt.Sprintf("Book \"%s\" removed successfully.", title))
	return nil
}

// ShowBooks reports every stored book in insertion order.
func (lm *LibraryManager) ShowBooks(ctx context.Context) error {
	books, err := lm.store.List(ctx)
	if err != nil {
		lm.logger.Error("manager: failed to list books", zap.Error(err))
		return err
	}
	if len(books) == 0 {
		lm.logger.Info("The library is empty.")
		return nil
	}
	lm.logger.Info("Books in the library:")
	for _, book := range books {
		lm.logger.Info(book.String())
	}
	return nil
}
