// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/locktrip/go-locktrip/kv"
	"github.com/locktrip/go-locktrip/loc"
)

// RewardEntry records a passed block reward vote.
type RewardEntry struct {
	Height     uint64 `json:"height"` // effective from this block height
	Percentage uint8  `json:"percentage"`
}

// RewardHistory is the height-ordered log of block reward percentage
// changes. Unlike the live cache it answers point-in-time queries: block N
// must always be validated against the percentage that was in force when N
// was built, even after later votes changed it.
//
// Append/Truncate take the write side, At the read side. The log is purely
// local state, so At stays valid during reorgs and historical replay.
type RewardHistory struct {
	mu      sync.RWMutex
	store   kv.Store // nil for memory only
	entries []RewardEntry
}

// NewRewardHistory creates a history backed by the given store, loading any
// persisted entries. A nil store keeps the log in memory only.
func NewRewardHistory(store kv.Store) (*RewardHistory, error) {
	h := &RewardHistory{store: store}
	if store == nil {
		return h, nil
	}

	iter := store.NewIterator(kv.Range{})
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		val := iter.Value()
		if len(key) != 8 || len(val) != 1 {
			return nil, errors.New("reward history: corrupt entry")
		}
		// big-endian keys iterate in height order
		h.entries = append(h.entries, RewardEntry{binary.BigEndian.Uint64(key), val[0]})
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "load reward history")
	}
	return h, nil
}

// Append adds an entry to the log. The log is a causal record of votes, so
// the entry's height must be strictly greater than the last recorded one.
func (h *RewardHistory) Append(entry RewardEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.append(entry)
}

// append does the work of Append. Caller holds the write lock.
func (h *RewardHistory) append(entry RewardEntry) error {
	if n := len(h.entries); n > 0 && entry.Height <= h.entries[n-1].Height {
		return errors.WithMessagef(ErrNonMonotonic,
			"height %d after %d", entry.Height, h.entries[n-1].Height)
	}
	if h.store != nil {
		if err := h.store.Put(entryKey(entry.Height), []byte{entry.Percentage}); err != nil {
			return errors.Wrap(err, "persist reward history entry")
		}
	}
	h.entries = append(h.entries, entry)
	return nil
}

// At returns the percentage in force at the given height. Heights before the
// first recorded vote carry the catalog default.
func (h *RewardHistory) At(height uint64) uint8 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	// first entry above height; the one before governs
	i := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].Height > height
	})
	if i == 0 {
		return uint8(loc.DefaultBlockRewardPercentage)
	}
	return h.entries[i-1].Percentage
}

// Truncate drops entries that became effective past the new tip. Called on
// chain reorganization after blocks are disconnected, so At never answers
// with data from an abandoned fork.
func (h *RewardHistory) Truncate(tip uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	keep := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].Height > tip
	})
	if keep == len(h.entries) {
		return nil
	}
	if h.store != nil {
		batch := h.store.NewBatch()
		for _, entry := range h.entries[keep:] {
			if err := batch.Delete(entryKey(entry.Height)); err != nil {
				return errors.Wrap(err, "truncate reward history")
			}
		}
		if err := batch.Write(); err != nil {
			return errors.Wrap(err, "truncate reward history")
		}
	}
	h.entries = h.entries[:keep]
	return nil
}

// Seed replaces an empty log with the vote record kept by the governance
// contract, given as parallel height/percentage slices. The write lock is
// held for the whole operation, so of two concurrent seeds exactly one
// takes effect.
func (h *RewardHistory) Seed(heights, percentages []uint64) error {
	if len(heights) != len(percentages) {
		return errors.New("reward history: mismatched seed lengths")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) > 0 {
		return errors.New("reward history: already seeded")
	}
	for i := range heights {
		if percentages[i] > loc.MaxBlockRewardPercentage {
			return errors.Errorf("reward history: seed percentage %d out of range", percentages[i])
		}
		if err := h.append(RewardEntry{heights[i], uint8(percentages[i])}); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of recorded entries.
func (h *RewardHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Entries returns a copy of the log.
func (h *RewardHistory) Entries() []RewardEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]RewardEntry(nil), h.entries...)
}

func entryKey(height uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], height)
	return key[:]
}
