// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import (
	"github.com/pkg/errors"

	"github.com/locktrip/go-locktrip/builtin"
	"github.com/locktrip/go-locktrip/loc"
)

// mockGateway simulates the governance contract state.
type mockGateway struct {
	votedParams map[loc.DgpParam]uint64
	voteOpen    bool
	vote        map[builtin.DgpFunc]uint64
	addrs       map[builtin.DgpFunc]loc.Address
	arrays      map[builtin.DgpFunc][]uint64
	locPerCent  uint64

	// failing functions return an error
	failing map[builtin.DgpFunc]bool
	failAll bool
	calls   int
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		votedParams: make(map[loc.DgpParam]uint64),
		vote:        make(map[builtin.DgpFunc]uint64),
		addrs:       make(map[builtin.DgpFunc]loc.Address),
		arrays:      make(map[builtin.DgpFunc][]uint64),
		failing:     make(map[builtin.DgpFunc]bool),
		locPerCent:  1,
	}
}

func (m *mockGateway) fails(fn builtin.DgpFunc) error {
	m.calls++
	if m.failAll || m.failing[fn] {
		return errors.New("revert")
	}
	return nil
}

func (m *mockGateway) CallUint(fn builtin.DgpFunc, args ...any) (uint64, error) {
	if err := m.fails(fn); err != nil {
		return 0, err
	}
	switch fn {
	case builtin.DgpGetParam:
		return m.votedParams[args[0].(loc.DgpParam)], nil
	case builtin.DgpGetVoteExpiration:
		return m.vote[builtin.DgpCurrentVoteStartBlock] + m.vote[builtin.DgpCurrentVoteBlocksExpiration], nil
	case builtin.DgpConvertFiatThresholdToLoc:
		return args[0].(uint64) * m.locPerCent, nil
	default:
		return m.vote[fn], nil
	}
}

func (m *mockGateway) CallUintArray(fn builtin.DgpFunc, _ ...any) ([]uint64, error) {
	if err := m.fails(fn); err != nil {
		return nil, err
	}
	return m.arrays[fn], nil
}

func (m *mockGateway) CallBool(fn builtin.DgpFunc, args ...any) (bool, error) {
	if err := m.fails(fn); err != nil {
		return false, err
	}
	switch fn {
	case builtin.DgpHasVoteInProgress:
		return m.voteOpen, nil
	case builtin.DgpParamVoted:
		_, voted := m.votedParams[args[0].(loc.DgpParam)]
		return voted, nil
	default:
		return false, nil
	}
}

func (m *mockGateway) CallAddress(fn builtin.DgpFunc, _ ...any) (loc.Address, error) {
	if err := m.fails(fn); err != nil {
		return loc.Address{}, err
	}
	return m.addrs[fn], nil
}

// staticOracle is a PriceSource with fixed answers.
type staticOracle struct {
	price     uint64
	bytePrice uint64
	err       error
}

func (o *staticOracle) Price() (uint64, error) {
	if o.err != nil {
		return 0, o.err
	}
	return o.price, nil
}

func (o *staticOracle) BytePrice() (uint64, error) {
	if o.err != nil {
		return 0, o.err
	}
	return o.bytePrice, nil
}
