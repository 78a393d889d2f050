// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locktrip/go-locktrip/loc"
)

func TestQuote(t *testing.T) {
	oracle := &staticOracle{price: loc.OneCentEqual}
	pricer := NewGasPricer(newTestCache(newMockGateway()), oracle)

	quote, err := pricer.Quote()
	require.NoError(t, err)

	// at default burn rate 0 and dividend 50 the buffer is base/5 + base%5
	base := loc.OneCentEqual
	assert.Equal(t, base, quote.OraclePrice)
	assert.Equal(t, base/5+base%5, quote.Buffer)
	assert.Equal(t, base+base/5+base%5, quote.EffectivePrice)
	assert.Equal(t, uint64(0), quote.BurnRatePct)
}

func TestQuoteFlooredAtMinimum(t *testing.T) {
	oracle := &staticOracle{price: 0}
	pricer := NewGasPricer(newTestCache(newMockGateway()), oracle)

	quote, err := pricer.Quote()
	require.NoError(t, err)

	// oracle under the governance minimum: the floor takes over
	assert.GreaterOrEqual(t, quote.EffectivePrice, loc.DefaultMinGasPrice)
	assert.Equal(t, uint64(0), quote.OraclePrice)
}

func TestQuoteOracleUnavailable(t *testing.T) {
	oracle := &staticOracle{err: errors.New("revert")}
	pricer := NewGasPricer(newTestCache(newMockGateway()), oracle)

	quote, err := pricer.Quote()
	assert.True(t, errors.Is(err, ErrOracleUnavailable))
	assert.Nil(t, quote)
}

func TestBufferTracksEconomySplit(t *testing.T) {
	gw := newMockGateway()
	cache := newTestCache(gw)
	pricer := NewGasPricer(cache, &staticOracle{})

	base := uint64(1000)
	assert.Equal(t, base/5, pricer.Buffer(base))

	// max burn rate and zero dividend double the margin
	gw.votedParams[loc.BurnRate] = 50
	gw.votedParams[loc.EconomyDividend] = 0
	cache.Refresh(100)
	assert.Equal(t, base*2/5, pricer.Buffer(base))
}

func TestBufferRoundingRemainder(t *testing.T) {
	pricer := NewGasPricer(newTestCache(newMockGateway()), &staticOracle{})

	// bases not divisible by five keep the remainder in the margin
	assert.Equal(t, uint64(1003/5+3), pricer.Buffer(1003))
}

func TestBufferExtremeBase(t *testing.T) {
	gw := newMockGateway()
	cache := newTestCache(gw)
	pricer := NewGasPricer(cache, &staticOracle{})

	// a rogue oracle price near the uint64 ceiling must not wrap the margin
	base := uint64(math.MaxUint64)
	assert.Equal(t, base/5+base%5, pricer.Buffer(base))

	gw.votedParams[loc.BurnRate] = 50
	gw.votedParams[loc.EconomyDividend] = 0
	cache.Refresh(100)
	// doubled margin at max burn, still no wraparound
	assert.Equal(t, base/5*2, pricer.Buffer(base))
}

func TestBytePrice(t *testing.T) {
	cache := newTestCache(newMockGateway())

	price, err := NewGasPricer(cache, &staticOracle{bytePrice: 7}).BytePrice()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), price)

	// floored at the governance minimum
	price, err = NewGasPricer(cache, &staticOracle{bytePrice: 0}).BytePrice()
	require.NoError(t, err)
	assert.Equal(t, loc.DefaultMinBytePrice, price)

	_, err = NewGasPricer(cache, &staticOracle{err: errors.New("revert")}).BytePrice()
	assert.True(t, errors.Is(err, ErrOracleUnavailable))
}
