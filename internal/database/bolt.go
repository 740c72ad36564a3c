// Package database contains kv stores keeping fetched contributors between restarts.
package database

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// BoltKVStore keeps contributors data in a single bucket of a local bolt file.
// The file is locked by one process at a time.
type BoltKVStore struct {
	db     *bbolt.DB
	bucket []byte
}

// NewBoltKVStore opens (or creates) the bolt file at dbPath and makes sure bucket exists.
// When the file is locked by another process opening fails after openTimeout, zero waits forever.
func NewBoltKVStore(dbPath string, bucket string, openTimeout time.Duration) (*BoltKVStore, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening bolt file %s: %w", dbPath, err)
	}

	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bucket %s: %w", bucket, err)
	}

	return &BoltKVStore{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// ReadKey returns a copy of the value stored under key, nil when missing.
func (s *BoltKVStore) ReadKey(key []byte) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// bolt values live only as long as the transaction.
		if v := tx.Bucket(s.bucket).Get(key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	return data, nil
}

// UpdateKey replaces the value stored under key.
func (s *BoltKVStore) UpdateKey(key []byte, data []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put(key, data)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Close releases the file lock.
func (s *BoltKVStore) Close() error {
	return s.db.Close()
}
