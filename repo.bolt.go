package main

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltBookStore struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient opens the database and recreates an empty books
// bucket then provides a ready to use client. Records never outlive
// the session that created them. Warning: any existing content of the
// configured bucket is deleted, so never point it at data to keep.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("bolt store: failed to open the database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		bucket := []byte(config.BoltDB.BucketName)
		if errD := tx.DeleteBucket(bucket); errD != nil && errD != bolt.ErrBucketNotFound {
			return fmt.Errorf("failed to reset %s bucket: %w", config.BoltDB.BucketName, errD)
		}
		if _, errB := tx.CreateBucket(bucket); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %w", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt store: failed to set up bucket: %w", err)
	}
	return db, nil
}

// NewBoltBookStore provides an instance of bolt-based book store.
func NewBoltBookStore(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) *boltBookStore {
	return &boltBookStore{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based book store.
func (bs *boltBookStore) Close() error {
	return bs.client.Close()
}

// Add appends a book record. Keys come from the bucket sequence
// so a cursor walks the records in insertion order.
func (bs *boltBookStore) Add(_ context.Context, book Book) error {
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("bolt store: %w", err)
	}
	err = bs.client.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bs.config.BucketName))
		seq, errS := b.NextSequence()
		if errS != nil {
			return errS
		}
		return b.Put(sequenceKey(seq), bookBytes)
	})
	if err != nil {
		return fmt.Errorf("bolt store: %w", err)
	}
	return nil
}

// Remove deletes all book records matching the title.
func (bs *boltBookStore) Remove(_ context.Context, title string) error {
	err := bs.client.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bs.config.BucketName))
		var keys [][]byte
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var book Book
			if err := json.Unmarshal(v, &book); err != nil {
				return err
			}
			if book.Title == title {
				// keys are only valid for the life of the transaction.
				keys = append(keys, append([]byte(nil), k...))
			}
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		bs.logger.Debug("bolt store: removed records", zap.String("title", title), zap.Int("count", len(keys)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("bolt store: %w", err)
	}
	return nil
}

// List retrieves all books stored in the bolt database in insertion order.
func (bs *boltBookStore) List(_ context.Context) ([]Book, error) {
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("bolt store: %w", err)
	}
	defer tx.Rollback()

	// Create a cursor on the books' bucket.
	c := tx.Bucket([]byte(bs.config.BucketName)).Cursor()

	books := []Book{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var book Book
		if err = json.Unmarshal(v, &book); err != nil {
			return nil, fmt.Errorf("bolt store: %w", err)
		}
		books = append(books, book)
	}
	return books, nil
}

// sequenceKey returns the big endian representation of seq.
func sequenceKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
