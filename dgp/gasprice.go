// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import (
	"github.com/pkg/errors"

	"github.com/locktrip/go-locktrip/builtin"
	"github.com/locktrip/go-locktrip/loc"
)

// PriceSource provides fiat pegged reference prices in OneCentEqual units.
type PriceSource interface {
	Price() (uint64, error)
	BytePrice() (uint64, error)
}

var _ PriceSource = (*builtin.OracleCaller)(nil)

// Quote is the gas price a wallet should attach to a contract transaction.
// Recomputed per call, never persisted.
type Quote struct {
	OraclePrice    uint64 `json:"oraclePrice"`
	DgpFiatPrice   uint64 `json:"dgpFiatPrice"`
	BurnRatePct    uint64 `json:"burnRatePct"`
	Buffer         uint64 `json:"buffer"`
	EffectivePrice uint64 `json:"effectivePrice"`
}

// GasPricer derives transaction gas prices from the oracle feed and the
// governance controlled economy split.
type GasPricer struct {
	cache  *Cache
	oracle PriceSource
}

// NewGasPricer creates a pricer over the given cache and oracle.
func NewGasPricer(cache *Cache, oracle PriceSource) *GasPricer {
	return &GasPricer{cache, oracle}
}

// Quote computes the effective gas price. The oracle is the primary signal
// and the governance minimum is a floor, never a ceiling. If the oracle
// cannot be read the quote fails closed with ErrOracleUnavailable: wallet
// code must not fund real transactions from a stale or default price.
func (g *GasPricer) Quote() (*Quote, error) {
	oraclePrice, err := g.oracle.Price()
	if err != nil {
		return nil, errors.WithMessage(ErrOracleUnavailable, err.Error())
	}

	base := max(g.cache.MinGasPrice(), oraclePrice)
	buffer := g.Buffer(base)
	metricGasPriceQuote().Add(1)

	return &Quote{
		OraclePrice:    oraclePrice,
		DgpFiatPrice:   g.cache.Get(loc.FiatGasPrice),
		BurnRatePct:    g.cache.Get(loc.BurnRate),
		Buffer:         buffer,
		EffectivePrice: base + buffer,
	}, nil
}

// Buffer computes the margin added on top of the base price so a transaction
// signed now stays valid if the price drifts upward before inclusion.
//
// The margin tracks the governance controlled burn/dividend split: a fifth
// of the base price when nothing is burned, growing as the burn rate rises
// or the dividend share shrinks, since both imply more price volatility.
// It is recomputed from the cache on every call, never cached.
func (g *GasPricer) Buffer(base uint64) uint64 {
	burn := g.cache.Get(loc.BurnRate)
	dividend := g.cache.Get(loc.EconomyDividend)

	// both are bounded by 50, so drift stays within [100, 200]
	drift := 100 + burn + (loc.MaxEconomyDividend - dividend)
	// base*drift wraps uint64 for oracle prices past ~2^57; splitting the
	// multiply at 500 keeps base*drift/500 exact without the wide product
	return base/500*drift + base%500*drift/500 + base%5
}

// BytePrice computes the per-byte price for fee estimation, floored at the
// governance minimum.
func (g *GasPricer) BytePrice() (uint64, error) {
	price, err := g.oracle.BytePrice()
	if err != nil {
		return 0, errors.WithMessage(ErrOracleUnavailable, err.Error())
	}
	return max(g.cache.MinBytePrice(), price), nil
}
