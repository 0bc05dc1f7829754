package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStore struct {
	AddFunc    func(ctx context.Context, book Book) error
	RemoveFunc func(ctx context.Context, title string) error
	ListFunc   func(ctx context.Context) ([]Book, error)
}

// Add mocks the behavior of book creation by the store.
func (m *MockBookStore) Add(ctx context.Context, book Book) error {
	return m.AddFunc(ctx, book)
}

// Remove mocks the behavior of deleting books by the store.
func (m *MockBookStore) Remove(ctx context.Context, title string) error {
	return m.RemoveFunc(ctx, title)
}

// List mocks the behavior of retrieving all books by the store.
func (m *MockBookStore) List(ctx context.Context) ([]Book, error) {
	return m.ListFunc(ctx)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// MockApp implements a fake AppProvider.
type MockApp struct {
	RunFunc func() error
}

// Run mocks the library session.
func (ma *MockApp) Run() error {
	return ma.RunFunc()
}

// Serve is never called through the mock.
func (ma *MockApp) Serve(context.Context, context.CancelFunc) func() error {
	return func() error { return nil }
}

// Stop is never called through the mock.
func (ma *MockApp) Stop(context.Context, context.Context) func() error {
	return func() error { return nil }
}
