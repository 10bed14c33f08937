package triecache

import (
	"fmt"

	"github.com/boltdb/bolt"
)

var trieBucket = []byte("trie_nodes")

// BoltStore is a Store backed by github.com/boltdb/bolt, the node's default
// durable backing for the state trie. Keys are the trie-node hash.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if necessary) a bolt-backed Store at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open trie store at %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(trieBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create trie bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(key []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(trieBucket).Get(key)
		if v == nil {
			return ErrNotFound
		}
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltStore) Contains(key []byte) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(trieBucket).Get(key) != nil
		return nil
	})
	return found, err
}

func (s *BoltStore) Put(key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(trieBucket).Put(key, value)
	})
}

func (s *BoltStore) PutBatch(keys, values [][]byte) error {
	if len(keys) != len(values) {
		return ErrLengthMismatch
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(trieBucket)
		for i, key := range keys {
			if err := b.Put(key, values[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
