package store

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketName = []byte("cineverse")

// BoltKV is a bbolt-backed KV. All documents live in a single bucket of one
// database file.
type BoltKV struct {
	db *bbolt.DB
}

// OpenBolt opens (creating if needed) the database file at path.
func OpenBolt(path string) (*BoltKV, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltKV{db: db}, nil
}

// Close closes the underlying database file.
func (b *BoltKV) Close() error {
	return b.db.Close()
}

// Get returns the document stored under key, if any.
func (b *BoltKV) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, value != nil, nil
}

// Put stores value under key synchronously; the write is committed before
// Put returns.
func (b *BoltKV) Put(key string, value []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an absent key is not an error.
func (b *BoltKV) Delete(key string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
