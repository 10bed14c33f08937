// Package storage implements the node's durable Storage adapter: blocks,
// headers, transactions, and receipts under dedicated bolt buckets, keyed
// by height or hash, with sentinel keys for the latest header and proof.
package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/empower1/corechain/internal/types"
)

var (
	blocksBucket       = []byte("blocks")
	headersBucket      = []byte("headers")
	transactionsBucket = []byte("transactions")
	receiptsBucket     = []byte("receipts")
	metaBucket         = []byte("meta")

	latestHeaderKey = []byte("latest_header")
	latestProofKey  = []byte("latest_proof")
)

var buckets = [][]byte{blocksBucket, headersBucket, transactionsBucket, receiptsBucket, metaBucket}

// Storage is the BoltStorage adapter, grounded on
// original_source/core/storage/src/adapter/memory.rs's per-category map
// layout, ported to one bolt bucket per category.
type Storage struct {
	db *bolt.DB
}

// Open opens (creating if necessary) a bolt-backed Storage at path.
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open storage at %s: %v", types.ErrCreateDB, path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create buckets: %v", types.ErrCreateDB, err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error { return s.db.Close() }

func numberKey(number types.BlockNumber) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(number))
	return b
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStore, err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", types.ErrStore, err)
	}
	return nil
}

func (s *Storage) InsertBlock(ctx context.Context, block *types.Block) error {
	raw, err := encode(block)
	if err != nil {
		return err
	}
	headerRaw, err := encode(&block.Header)
	if err != nil {
		return err
	}
	key := numberKey(block.Header.Number)
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(blocksBucket).Put(key, raw); err != nil {
			return err
		}
		if err := tx.Bucket(headersBucket).Put(key, headerRaw); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put(latestHeaderKey, headerRaw)
	})
}

func (s *Storage) UpdateLatestProof(ctx context.Context, proof *types.Proof) error {
	raw, err := encode(proof)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put(latestProofKey, raw)
	})
}

func (s *Storage) InsertTransactions(ctx context.Context, number types.BlockNumber, txs []types.SignedTransaction) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(transactionsBucket)
		for i := range txs {
			raw, err := encode(&txs[i])
			if err != nil {
				return err
			}
			if err := b.Put(txs[i].Hash[:], raw); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) InsertReceipts(ctx context.Context, number types.BlockNumber, receipts []types.Receipt) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(receiptsBucket)
		for i := range receipts {
			raw, err := encode(&receipts[i])
			if err != nil {
				return err
			}
			if err := b.Put(receipts[i].TxHash[:], raw); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) GetBlock(ctx context.Context, number types.BlockNumber) (*types.Block, error) {
	var block types.Block
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(blocksBucket).Get(numberKey(number))
		if raw == nil {
			return types.ErrStorageItemNotFound
		}
		return decode(raw, &block)
	})
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (s *Storage) GetBlockHeader(ctx context.Context, number types.BlockNumber) (*types.Header, error) {
	var header types.Header
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(headersBucket).Get(numberKey(number))
		if raw == nil {
			return types.ErrStorageItemNotFound
		}
		return decode(raw, &header)
	})
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (s *Storage) GetLatestBlockHeader(ctx context.Context) (*types.Header, error) {
	var header types.Header
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(metaBucket).Get(latestHeaderKey)
		if raw == nil {
			return types.ErrStorageItemNotFound
		}
		return decode(raw, &header)
	})
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (s *Storage) GetLatestProof(ctx context.Context) (*types.Proof, error) {
	var proof types.Proof
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(metaBucket).Get(latestProofKey)
		if raw == nil {
			return types.ErrStorageItemNotFound
		}
		return decode(raw, &proof)
	})
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

func (s *Storage) GetTransactionByHash(ctx context.Context, hash types.Hash) (*types.SignedTransaction, error) {
	var tx types.SignedTransaction
	err := s.db.View(func(btx *bolt.Tx) error {
		raw := btx.Bucket(transactionsBucket).Get(hash[:])
		if raw == nil {
			return types.ErrStorageItemNotFound
		}
		return decode(raw, &tx)
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
