package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

var quizBucket = []byte("quizzes")

// BoltStore is a single-file embedded store; values are quiz JSON.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(quizBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error { return s.db.Close() }

func (s *BoltStore) Put(_ context.Context, q Quiz) error {
	buf, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(quizBucket).Put([]byte(q.ID), buf)
	})
}

func (s *BoltStore) Get(_ context.Context, id string) (Quiz, error) {
	var q Quiz
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(quizBucket).Get([]byte(id))
		if v == nil {
			return apperr.ErrNotFound
		}
		return json.Unmarshal(v, &q)
	})
	if err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *BoltStore) List(_ context.Context, opts ListOpts) ([]Summary, error) {
	var all []Summary
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(quizBucket).ForEach(func(_, v []byte) error {
			var q Quiz
			if err := json.Unmarshal(v, &q); err != nil {
				return err
			}
			all = append(all, q.Summary())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return page(all, opts), nil
}
