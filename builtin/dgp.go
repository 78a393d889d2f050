// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/locktrip/go-locktrip/loc"
)

// DgpFunc identifies a function of the governance contract.
//
// The numeric values mirror the contract's function table and are part of
// the consensus visible interface. They must never change.
type DgpFunc uint8

const (
	DgpFinishVote                  DgpFunc = 1
	DgpGetParam                    DgpFunc = 2
	DgpCurrentVoteNewAdmin         DgpFunc = 6
	DgpVote                        DgpFunc = 7
	DgpCurrentVoteStartBlock       DgpFunc = 8
	DgpCurrentVoteBlocksExpiration DgpFunc = 9
	DgpCurrentVoteParam            DgpFunc = 10
	DgpGetVoteExpiration           DgpFunc = 12
	DgpCurrentVoteThreshold        DgpFunc = 13
	DgpParamVoted                  DgpFunc = 15
	DgpHasVoteInProgress           DgpFunc = 18
	DgpCurrentVoteVotesAgainst     DgpFunc = 19
	DgpCurrentVoteCreator          DgpFunc = 22
	DgpConvertFiatThresholdToLoc   DgpFunc = 23
	DgpBlockRewardVoteBlocks       DgpFunc = 24
	DgpBlockRewardVotePercentages  DgpFunc = 25
	DgpCurrentVoteVotesFor         DgpFunc = 26
	DgpCurrentVoteValue            DgpFunc = 27
)

// dgpMethods maps function identifiers to ABI method names.
var dgpMethods = map[DgpFunc]string{
	DgpFinishVote:                  "finishVote",
	DgpGetParam:                    "getParam",
	DgpCurrentVoteNewAdmin:         "currentVoteNewAdmin",
	DgpVote:                        "vote",
	DgpCurrentVoteStartBlock:       "currentVoteStartBlock",
	DgpCurrentVoteBlocksExpiration: "currentVoteBlocksExpiration",
	DgpCurrentVoteParam:            "currentVoteParam",
	DgpGetVoteExpiration:           "getVoteExpirationBlock",
	DgpCurrentVoteThreshold:        "currentVoteThreshold",
	DgpParamVoted:                  "paramVoted",
	DgpHasVoteInProgress:           "hasVoteInProgress",
	DgpCurrentVoteVotesAgainst:     "currentVoteVotesAgainst",
	DgpCurrentVoteCreator:          "currentVoteCreator",
	DgpConvertFiatThresholdToLoc:   "convertFiatThresholdToLoc",
	DgpBlockRewardVoteBlocks:       "getBlockRewardVoteBlocks",
	DgpBlockRewardVotePercentages:  "getBlockRewardVotePercentages",
	DgpCurrentVoteVotesFor:         "currentVoteVotesFor",
	DgpCurrentVoteValue:            "currentVoteValue",
}

const dgpABI = `[
	{"type":"function","name":"finishVote","constant":false,"inputs":[],"outputs":[]},
	{"type":"function","name":"vote","constant":false,"inputs":[{"name":"_support","type":"bool"}],"outputs":[]},
	{"type":"function","name":"getParam","constant":true,"inputs":[{"name":"_param","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"paramVoted","constant":true,"inputs":[{"name":"_param","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"hasVoteInProgress","constant":true,"inputs":[],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getVoteExpirationBlock","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"convertFiatThresholdToLoc","constant":true,"inputs":[{"name":"_fiatAmount","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"currentVoteNewAdmin","constant":true,"inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"currentVoteCreator","constant":true,"inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"currentVoteVotesFor","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"currentVoteVotesAgainst","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"currentVoteStartBlock","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"currentVoteBlocksExpiration","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"currentVoteParam","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"currentVoteValue","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"currentVoteThreshold","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getBlockRewardVoteBlocks","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"function","name":"getBlockRewardVotePercentages","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256[]"}]}
]`

// DgpCaller performs read-only calls against the governance contract.
type DgpCaller struct {
	contract *contract
	exec     CallExecutor
}

func (c *DgpCaller) call(fn DgpFunc, args ...any) (string, []any, error) {
	method, ok := dgpMethods[fn]
	if !ok {
		return "", nil, errors.Errorf("unknown dgp function %d", fn)
	}
	data, err := c.contract.pack(method, args...)
	if err != nil {
		return "", nil, err
	}
	output, err := c.exec.Call(c.contract.Address, data, loc.DefaultBlockGasLimit)
	if err != nil {
		return "", nil, errors.WithMessagef(err, "call %s", method)
	}
	vals, err := c.contract.unpack(method, output)
	if err != nil {
		return "", nil, err
	}
	return method, vals, nil
}

// CallUint calls fn and decodes a single uint256 output.
func (c *DgpCaller) CallUint(fn DgpFunc, args ...any) (uint64, error) {
	method, vals, err := c.call(fn, args...)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, errors.Errorf("%s: expected one output", method)
	}
	return toUint64(vals[0])
}

// CallUintArray calls fn and decodes a single uint256[] output.
func (c *DgpCaller) CallUintArray(fn DgpFunc, args ...any) ([]uint64, error) {
	method, vals, err := c.call(fn, args...)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, errors.Errorf("%s: expected one output", method)
	}
	nums, ok := vals[0].([]*big.Int)
	if !ok {
		return nil, errors.Errorf("%s: unexpected output type %T", method, vals[0])
	}
	out := make([]uint64, len(nums))
	for i, n := range nums {
		if !n.IsUint64() {
			return nil, errors.Errorf("%s: output exceeds uint64", method)
		}
		out[i] = n.Uint64()
	}
	return out, nil
}

// CallBool calls fn and decodes a single bool output.
func (c *DgpCaller) CallBool(fn DgpFunc, args ...any) (bool, error) {
	method, vals, err := c.call(fn, args...)
	if err != nil {
		return false, err
	}
	if len(vals) != 1 {
		return false, errors.Errorf("%s: expected one output", method)
	}
	b, ok := vals[0].(bool)
	if !ok {
		return false, errors.Errorf("%s: unexpected output type %T", method, vals[0])
	}
	return b, nil
}

// CallAddress calls fn and decodes a single address output.
func (c *DgpCaller) CallAddress(fn DgpFunc, args ...any) (loc.Address, error) {
	method, vals, err := c.call(fn, args...)
	if err != nil {
		return loc.Address{}, err
	}
	if len(vals) != 1 {
		return loc.Address{}, errors.Errorf("%s: expected one output", method)
	}
	addr, ok := vals[0].(common.Address)
	if !ok {
		return loc.Address{}, errors.Errorf("%s: unexpected output type %T", method, vals[0])
	}
	return loc.Address(addr), nil
}

// FinishVoteData builds the call data for finishing the open vote.
// The wallet wraps it into a coinstake contract call.
func (d *dgpContract) FinishVoteData() ([]byte, error) {
	return d.contract.pack(dgpMethods[DgpFinishVote])
}

// VoteData builds the call data for casting a vote on the open proposal.
func (d *dgpContract) VoteData(support bool) ([]byte, error) {
	return d.contract.pack(dgpMethods[DgpVote], support)
}
