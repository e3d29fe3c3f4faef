package session

import (
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// slotTTL lets Badger reap abandoned sessions on its own. Freshness is
// still enforced at read time; the TTL is only storage hygiene, so it is
// deliberately longer than the freshness window.
const slotTTL = 48 * time.Hour

// BadgerStorage implements Storage on an embedded Badger database, giving
// guest sessions durability across process restarts.
type BadgerStorage struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the session database at path.
func OpenBadger(path string) (*BadgerStorage, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStorage{db: db}, nil
}

func (s *BadgerStorage) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStorage) Set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(slotTTL)
		return txn.SetEntry(entry)
	})
}

func (s *BadgerStorage) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Close closes the underlying database. Call during shutdown.
func (s *BadgerStorage) Close() error {
	return s.db.Close()
}

// Compile-time interface check
var _ Storage = (*BadgerStorage)(nil)
