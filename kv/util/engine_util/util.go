package engine_util

import (
	"github.com/coocood/badger"
)

// Get reads the value stored under key, or nil if the key is absent.
func Get(db *badger.DB, key []byte) (val []byte, err error) {
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.Value()
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	return
}

// NewMetaIterator returns an iterator suitable for point-ish seeks over
// metadata records. It uses the engine's default iterator options.
func NewMetaIterator(txn *badger.Txn) *badger.Iterator {
	opts := badger.DefaultIteratorOptions
	return txn.NewIterator(opts)
}
