package repositories

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// A write transaction that lost an optimistic concurrency race is retried
// with a jittered, doubling pause until txnRetryDeadline has passed. Each
// retry re-reads its keys, so uniqueness checks done inside the transaction
// see the winner's writes.
const (
	txnRetryDeadline  = 5 * time.Second
	initialTxnBackoff = time.Millisecond
	maxTxnBackoff     = 100 * time.Millisecond
)

func update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	deadline := time.Now().Add(txnRetryDeadline)
	backoff := initialTxnBackoff
	for attempt := 1; ; attempt++ {
		err := db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("transaction kept conflicting after %d attempts: %w", attempt, err)
		}
		time.Sleep(backoff/2 + rand.N(backoff/2+1))
		backoff = min(backoff*2, maxTxnBackoff)
	}
}

// idLease is how many ids a sequence reserves in Badger at once. Ids
// reserved but not handed out before a crash are skipped after restart.
const idLease = 100

// sequence hands out the ids of one entity from a Badger sequence stored
// under seq:{entity}. Ids are unique and increasing but may have gaps.
type sequence struct {
	db  *badger.DB
	key []byte

	mu  sync.Mutex
	seq *badger.Sequence
}

func newSequence(db *badger.DB, entity string) *sequence {
	return &sequence{db: db, key: seqKey(entity)}
}

// next returns the next id. The first id handed out is 1.
func (s *sequence) next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq == nil {
		seq, err := s.db.GetSequence(s.key, idLease)
		if err != nil {
			return 0, fmt.Errorf("open sequence %s: %w", s.key, err)
		}
		s.seq = seq
	}
	for {
		id, err := s.seq.Next()
		if err != nil {
			return 0, fmt.Errorf("next id of %s: %w", s.key, err)
		}
		if id > 0 {
			return int64(id), nil
		}
	}
}

func (s *sequence) take(n int) ([]int64, error) {
	ids := make([]int64, 0, n)
	for range n {
		id, err := s.next()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// release gives the unused part of the lease back, so the next process
// continues right after the last id handed out.
func (s *sequence) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq == nil {
		return nil
	}
	err := s.seq.Release()
	s.seq = nil
	return err
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

// getRecord decodes the value stored under key into v. It returns
// badger.ErrKeyNotFound untouched so callers can map it to a domain error.
func getRecord(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshal(val, v)
	})
}

func setRecord(txn *badger.Txn, key []byte, v any) error {
	data, err := marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// scanKeys returns the keys under prefix without fetching values.
func scanKeys(txn *badger.Txn, prefix []byte) ([][]byte, error) {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}

// scanRecords decodes every value under prefix in key order.
func scanRecords[T any](txn *badger.Txn, prefix []byte) ([]T, error) {
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	var records []T
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var record T
		if err := it.Item().Value(func(val []byte) error {
			return unmarshal(val, &record)
		}); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
