// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket provides a logical key space inside a kv store by key prefixing.
type Bucket string

// NewStore wraps src so that all keys live under the bucket prefix.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{string(b), src}
}

type bucketStore struct {
	prefix string
	src    Store
}

func (s *bucketStore) key(key []byte) []byte {
	return append([]byte(s.prefix), key...)
}

func (s *bucketStore) Put(key, value []byte) error {
	return s.src.Put(s.key(key), value)
}

func (s *bucketStore) Delete(key []byte) error {
	return s.src.Delete(s.key(key))
}

func (s *bucketStore) NewBatch() Batch {
	return &bucketBatch{s.prefix, s.src.NewBatch()}
}

func (s *bucketStore) NewIterator(r Range) Iterator {
	from := append([]byte(s.prefix), r.From...)
	var to []byte
	if len(r.To) == 0 {
		to = util.BytesPrefix([]byte(s.prefix)).Limit
	} else {
		to = append([]byte(s.prefix), r.To...)
	}
	return &bucketIterator{len(s.prefix), s.src.NewIterator(Range{From: from, To: to})}
}

type bucketBatch struct {
	prefix string
	batch  Batch
}

func (b *bucketBatch) Put(key, value []byte) error {
	return b.batch.Put(append([]byte(b.prefix), key...), value)
}

func (b *bucketBatch) Delete(key []byte) error {
	return b.batch.Delete(append([]byte(b.prefix), key...))
}

func (b *bucketBatch) Len() int     { return b.batch.Len() }
func (b *bucketBatch) Write() error { return b.batch.Write() }

type bucketIterator struct {
	prefixLen int
	iter      Iterator
}

func (i *bucketIterator) Next() bool    { return i.iter.Next() }
func (i *bucketIterator) Release()      { i.iter.Release() }
func (i *bucketIterator) Error() error  { return i.iter.Error() }
func (i *bucketIterator) Value() []byte { return i.iter.Value() }

// Key returns the key with the bucket prefix stripped.
func (i *bucketIterator) Key() []byte {
	return i.iter.Key()[i.prefixLen:]
}
