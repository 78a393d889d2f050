// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package loc

import "fmt"

// Constants of block chain.
const (
	// OneCentEqual fixed-point scale of fiat-pegged values: one fiat cent
	// equals this many base units of the reference value.
	OneCentEqual uint64 = 1_000_000

	DefaultMinGasPrice  uint64 = 1 // not votable
	DefaultMinBytePrice uint64 = 1 // not votable

	DefaultBlockTime uint64 = 32 // (unit: second)
	MinBlockTime     uint64 = 32
	MaxBlockTime     uint64 = 1200

	DefaultBurnRate uint64 = 0 // (%)
	MinBurnRate     uint64 = 0
	MaxBurnRate     uint64 = 50

	DefaultEconomyDividend uint64 = 50 // (%)
	MinEconomyDividend     uint64 = 0
	MaxEconomyDividend     uint64 = 50

	DefaultBlockSize uint64 = 2_000_000 // (unit: byte)
	MinBlockSize     uint64 = 500_000
	MaxBlockSize     uint64 = 32_000_000

	DefaultBlockGasLimit uint64 = 40_000_000
	MinBlockGasLimit     uint64 = 1_000_000
	MaxBlockGasLimit     uint64 = 1_000_000_000

	DefaultBlockRewardPercentage uint64 = 25 // (%)
	MinBlockRewardPercentage     uint64 = 0
	MaxBlockRewardPercentage     uint64 = 25
)

// DgpParam identifies a governance-controlled parameter.
//
// The numeric values are part of the governance contract ABI and are
// consensus visible. Renumbering them is a hard fork.
type DgpParam uint8

const (
	AdminVote             DgpParam = 0
	RemoveAdminVote       DgpParam = 1
	FiatGasPrice          DgpParam = 2
	BurnRate              DgpParam = 3
	EconomyDividend       DgpParam = 4
	BlockSize             DgpParam = 5
	BlockGasLimit         DgpParam = 6
	FiatBytePrice         DgpParam = 7
	BlockRewardPercentage DgpParam = 8
)

func (p DgpParam) String() string {
	switch p {
	case AdminVote:
		return "adminVote"
	case RemoveAdminVote:
		return "removeAdminVote"
	case FiatGasPrice:
		return "fiatGasPrice"
	case BurnRate:
		return "burnRate"
	case EconomyDividend:
		return "economyDividend"
	case BlockSize:
		return "blockSize"
	case BlockGasLimit:
		return "blockGasLimit"
	case FiatBytePrice:
		return "fiatBytePrice"
	case BlockRewardPercentage:
		return "blockRewardPercentage"
	default:
		return fmt.Sprintf("dgpParam(%d)", uint8(p))
	}
}

// ParseDgpParam maps the textual parameter name back to its identifier.
func ParseDgpParam(s string) (DgpParam, error) {
	for p := AdminVote; p <= BlockRewardPercentage; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown dgp param %q", s)
}

// VoteHeadlines human readable subjects of governance votes, indexed by DgpParam.
var VoteHeadlines = [...]string{
	AdminVote:             "Vote for adding new admin",
	RemoveAdminVote:       "Vote for removing admin",
	FiatGasPrice:          "Vote for fiat gas price change",
	BurnRate:              "Vote for burn rate % change",
	EconomyDividend:       "Vote for economy dividend % change",
	BlockSize:             "Vote for block size change",
	BlockGasLimit:         "Vote for block gas limit change",
	FiatBytePrice:         "Vote for fiat transaction byte price change",
	BlockRewardPercentage: "Vote for block reward % change",
}
