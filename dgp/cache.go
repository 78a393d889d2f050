// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import (
	"sync"

	"github.com/locktrip/go-locktrip/loc"
	"github.com/locktrip/go-locktrip/log"
)

var logger = log.WithContext("pkg", "dgp")

// ActivationHeight the first height at which the governance contract is
// guaranteed to be deployed and seeded. Refreshing below it keeps catalog
// defaults. This is a permanent consensus invariant, not a workaround:
// lifting it would need a consensus level activation height.
const ActivationHeight = 2

type cachedParam struct {
	value       uint64
	refreshedAt uint64
}

// Cache holds the current effective value of every votable parameter, safe
// to read from hot consensus and wallet paths without touching the gateway.
//
// Refresh runs on the serialized block connection thread; Get is called
// concurrently from RPC and wallet threads.
type Cache struct {
	mu      sync.RWMutex
	reader  *VoteReader
	history *RewardHistory
	params  map[loc.DgpParam]cachedParam
}

// NewCache creates a cache seeded with catalog defaults.
func NewCache(reader *VoteReader, history *RewardHistory) *Cache {
	params := make(map[loc.DgpParam]cachedParam, len(Votable()))
	for _, p := range Votable() {
		params[p] = cachedParam{value: BoundsOf(p).Default}
	}
	return &Cache{reader: reader, history: history, params: params}
}

// Get returns the current effective value of a votable parameter.
// It never fails; the value is always within the parameter's bounds.
func (c *Cache) Get(p loc.DgpParam) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params[p].value
}

// MinGasPrice minimum gas price. Not votable.
func (c *Cache) MinGasPrice() uint64 { return loc.DefaultMinGasPrice }

// MinBytePrice minimum transaction byte price. Not votable.
func (c *Cache) MinBytePrice() uint64 { return loc.DefaultMinBytePrice }

// Refresh re-reads every votable parameter through the governance contract.
// Called exactly once per connected block, in height order, including reorg
// replay. A governance read failure keeps the catalog default rather than
// halting block connection.
func (c *Cache) Refresh(height uint64) {
	if height < ActivationHeight {
		return
	}

	// gateway round trips happen before taking the lock, so concurrent
	// Get calls are never held up by contract reads
	resolved := make(map[loc.DgpParam]uint64, len(Votable()))
	for _, p := range Votable() {
		resolved[p] = c.resolve(p)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range Votable() {
		accepted := resolved[p]
		if p == loc.BlockRewardPercentage && accepted != c.params[p].value {
			if err := c.history.Append(RewardEntry{height, uint8(accepted)}); err != nil {
				// heights strictly increase when refresh is driven by block
				// connection; anything else is a caller bug
				panic(err)
			}
			metricRewardHistoryLen().Set(int64(c.history.Len()))
		}
		c.params[p] = cachedParam{accepted, height}
		metricParamValue().SetWithLabel(int64(accepted), map[string]string{"param": p.String()})
	}
	logger.Trace("cache refreshed", "height", height)
}

// resolve reads the accepted value for one parameter. It only touches the
// reader, never cached state, so no lock is required.
func (c *Cache) resolve(p loc.DgpParam) uint64 {
	bounds := BoundsOf(p)

	voted, err := c.reader.IsParamVoted(p)
	if err != nil {
		logger.Debug("governance read failed, keeping default", "param", p, "err", err)
		metricRefresh().AddWithLabel(1, map[string]string{"param": p.String(), "outcome": "unreachable"})
		return bounds.Default
	}
	if !voted {
		metricRefresh().AddWithLabel(1, map[string]string{"param": p.String(), "outcome": "default"})
		return bounds.Default
	}

	value, err := c.reader.VotedValue(p)
	if err != nil {
		logger.Debug("governance read failed, keeping default", "param", p, "err", err)
		metricRefresh().AddWithLabel(1, map[string]string{"param": p.String(), "outcome": "unreachable"})
		return bounds.Default
	}
	if value < bounds.Min || value > bounds.Max {
		// evidence of malicious or buggy contract state; fall back to the
		// default instead of clamping to the nearest bound
		logger.Warn("voted value out of bounds, keeping default", "param", p, "value", value)
		metricRefresh().AddWithLabel(1, map[string]string{"param": p.String(), "outcome": "outOfRange"})
		return bounds.Default
	}
	metricRefresh().AddWithLabel(1, map[string]string{"param": p.String(), "outcome": "voted"})
	return value
}

// RefreshedAt returns the height the parameter's value was last refreshed at.
func (c *Cache) RefreshedAt(p loc.DgpParam) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params[p].refreshedAt
}

// RewardHistory returns the reward history the cache maintains.
func (c *Cache) RewardHistory() *RewardHistory {
	return c.history
}

// SeedRewardHistory fills an empty reward history from the vote record kept
// by the governance contract. Meant for first start of a node whose local
// history database is empty.
func (c *Cache) SeedRewardHistory() error {
	if c.history.Len() > 0 {
		return nil
	}
	heights, percentages, err := c.reader.BlockRewardVotes()
	if err != nil {
		return err
	}
	return c.history.Seed(heights, percentages)
}

// BlockSizeAt reads the block size limit in force at the given height
// directly from the contract, bypassing the cache. Read failures and out of
// bounds values yield the catalog default.
func (c *Cache) BlockSizeAt(height uint64) uint64 {
	return c.resolveAt(loc.BlockSize, height)
}

// BlockGasLimitAt reads the block gas limit in force at the given height
// directly from the contract, bypassing the cache.
func (c *Cache) BlockGasLimitAt(height uint64) uint64 {
	return c.resolveAt(loc.BlockGasLimit, height)
}

// MinGasPriceAt minimum gas price at the given height. Constant.
func (c *Cache) MinGasPriceAt(_ uint64) uint64 { return loc.DefaultMinGasPrice }

func (c *Cache) resolveAt(p loc.DgpParam, height uint64) uint64 {
	if height < ActivationHeight {
		return BoundsOf(p).Default
	}
	return c.resolve(p)
}
