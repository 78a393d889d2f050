// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package kv

// Store is the persistence surface of the reward log: ordered iteration
// to load it at startup, single puts to append, batched deletes to
// truncate on reorg. Point lookups are not part of the surface.
type Store interface {
	Put(key, value []byte) error
	Delete(key []byte) error

	NewBatch() Batch
	NewIterator(r Range) Iterator
}

// StoreCloser is a Store with a close method.
type StoreCloser interface {
	Store
	Close() error
}

// Batch accumulates write ops to be applied atomically.
type Batch interface {
	Put(key, value []byte) error
	Delete(key []byte) error

	Len() int
	Write() error
}

// Iterator iterates kvs in key order.
type Iterator interface {
	Next() bool
	Release()
	Error() error

	Key() []byte
	Value() []byte
}

// Range describes a key range [From, To).
// A zero To means unbounded.
type Range struct {
	From []byte
	To   []byte
}
