// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package loc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDgpParamIdentity(t *testing.T) {
	// frozen contract ABI values, renumbering is a hard fork
	assert.Equal(t, DgpParam(0), AdminVote)
	assert.Equal(t, DgpParam(1), RemoveAdminVote)
	assert.Equal(t, DgpParam(2), FiatGasPrice)
	assert.Equal(t, DgpParam(3), BurnRate)
	assert.Equal(t, DgpParam(4), EconomyDividend)
	assert.Equal(t, DgpParam(5), BlockSize)
	assert.Equal(t, DgpParam(6), BlockGasLimit)
	assert.Equal(t, DgpParam(7), FiatBytePrice)
	assert.Equal(t, DgpParam(8), BlockRewardPercentage)
}

func TestParseDgpParam(t *testing.T) {
	for p := AdminVote; p <= BlockRewardPercentage; p++ {
		parsed, err := ParseDgpParam(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParseDgpParam("noSuchParam")
	assert.Error(t, err)
}

func TestVoteHeadlines(t *testing.T) {
	assert.Equal(t, int(BlockRewardPercentage)+1, len(VoteHeadlines))
	for _, headline := range VoteHeadlines {
		assert.NotEmpty(t, headline)
	}
}

func TestScheduleFor(t *testing.T) {
	assert.Equal(t, ScheduleConstantinople, NoUpgrades.ScheduleFor(0))
	assert.Equal(t, ScheduleConstantinople, NoUpgrades.ScheduleFor(1_000_000))

	sc := ScheduleConfig{MuirGlacier: 100}
	assert.Equal(t, ScheduleConstantinople, sc.ScheduleFor(99))
	assert.Equal(t, ScheduleMuirGlacier, sc.ScheduleFor(100))
}
