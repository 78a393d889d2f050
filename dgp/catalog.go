// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import (
	"math"

	"github.com/locktrip/go-locktrip/loc"
)

// Bounds hard-coded safety bounds of a governance parameter. A voted value
// outside [Min, Max] is discarded in favor of Default.
type Bounds struct {
	Default uint64
	Min     uint64
	Max     uint64
}

// BoundsOf returns the bounds for the given parameter.
// Every parameter has an entry; the enumeration is closed.
func BoundsOf(p loc.DgpParam) Bounds {
	switch p {
	case loc.AdminVote, loc.RemoveAdminVote:
		// vote subjects, not cacheable values
		return Bounds{}
	case loc.FiatGasPrice:
		return Bounds{loc.DefaultMinGasPrice, loc.DefaultMinGasPrice, math.MaxUint64}
	case loc.BurnRate:
		return Bounds{loc.DefaultBurnRate, loc.MinBurnRate, loc.MaxBurnRate}
	case loc.EconomyDividend:
		return Bounds{loc.DefaultEconomyDividend, loc.MinEconomyDividend, loc.MaxEconomyDividend}
	case loc.BlockSize:
		return Bounds{loc.DefaultBlockSize, loc.MinBlockSize, loc.MaxBlockSize}
	case loc.BlockGasLimit:
		return Bounds{loc.DefaultBlockGasLimit, loc.MinBlockGasLimit, loc.MaxBlockGasLimit}
	case loc.FiatBytePrice:
		return Bounds{loc.DefaultMinBytePrice, loc.DefaultMinBytePrice, math.MaxUint64}
	case loc.BlockRewardPercentage:
		return Bounds{loc.DefaultBlockRewardPercentage, loc.MinBlockRewardPercentage, loc.MaxBlockRewardPercentage}
	default:
		panic("unknown dgp param")
	}
}

// Votable lists the parameters whose effective value is governed by vote,
// in cache refresh order.
func Votable() []loc.DgpParam {
	return []loc.DgpParam{
		loc.FiatGasPrice,
		loc.BurnRate,
		loc.EconomyDividend,
		loc.BlockSize,
		loc.BlockGasLimit,
		loc.FiatBytePrice,
		loc.BlockRewardPercentage,
	}
}
