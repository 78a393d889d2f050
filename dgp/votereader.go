// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import (
	"github.com/locktrip/go-locktrip/builtin"
	"github.com/locktrip/go-locktrip/loc"
)

// Gateway is the raw call surface of the governance contract.
type Gateway interface {
	CallUint(fn builtin.DgpFunc, args ...any) (uint64, error)
	CallUintArray(fn builtin.DgpFunc, args ...any) ([]uint64, error)
	CallBool(fn builtin.DgpFunc, args ...any) (bool, error)
	CallAddress(fn builtin.DgpFunc, args ...any) (loc.Address, error)
}

var _ Gateway = (*builtin.DgpCaller)(nil)

// VoteSnapshot is a read-only view of the single open governance vote.
// The contract supports at most one open vote at a time.
type VoteSnapshot struct {
	VotesFor         uint64       `json:"votesFor"`
	VotesAgainst     uint64       `json:"votesAgainst"`
	StartBlock       uint64       `json:"startBlock"`
	BlocksExpiration uint64       `json:"blocksExpiration"`
	Param            loc.DgpParam `json:"param"`
	ParamValue       uint64       `json:"paramValue"`
	Threshold        uint64       `json:"threshold"`
	NewAdmin         loc.Address  `json:"newAdmin"`
	Creator          loc.Address  `json:"creator"`
}

// Headline returns the human readable subject of the vote.
func (v *VoteSnapshot) Headline() string {
	if int(v.Param) < len(loc.VoteHeadlines) {
		return loc.VoteHeadlines[v.Param]
	}
	return ""
}

// ExpirationBlock returns the height at which the vote expires.
func (v *VoteSnapshot) ExpirationBlock() uint64 {
	return v.StartBlock + v.BlocksExpiration
}

// VoteReader translates governance contract call results into validated
// snapshots. It never substitutes defaults: a failed read surfaces as
// ErrCallFailed, so defaulting stays an explicit policy of the cache.
type VoteReader struct {
	gw Gateway
}

// NewVoteReader creates a reader over the given gateway.
func NewVoteReader(gw Gateway) *VoteReader {
	return &VoteReader{gw}
}

// HasVoteInProgress reports whether the contract has an open, unexpired vote.
func (r *VoteReader) HasVoteInProgress() (bool, error) {
	open, err := r.gw.CallBool(builtin.DgpHasVoteInProgress)
	if err != nil {
		return false, callFailed(err)
	}
	return open, nil
}

// IsParamVoted reports whether a vote on the parameter ever passed.
// A parameter never voted on keeps its catalog default forever.
func (r *VoteReader) IsParamVoted(p loc.DgpParam) (bool, error) {
	voted, err := r.gw.CallBool(builtin.DgpParamVoted, p)
	if err != nil {
		return false, callFailed(err)
	}
	return voted, nil
}

// VotedValue returns the raw value the contract holds for a voted parameter.
// The value is untrusted; bounds checking is the cache's job.
func (r *VoteReader) VotedValue(p loc.DgpParam) (uint64, error) {
	val, err := r.gw.CallUint(builtin.DgpGetParam, p)
	if err != nil {
		return 0, callFailed(err)
	}
	return val, nil
}

// CurrentVote fetches the open vote, or nil when none is in progress.
// The contract exposes the fields as separate accessors; if any fetch fails
// the whole snapshot fails, so a torn read of on-chain state is never acted on.
func (r *VoteReader) CurrentVote() (*VoteSnapshot, error) {
	open, err := r.HasVoteInProgress()
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, nil
	}

	var snapshot VoteSnapshot
	uintFields := []struct {
		fn   builtin.DgpFunc
		dest *uint64
	}{
		{builtin.DgpCurrentVoteVotesFor, &snapshot.VotesFor},
		{builtin.DgpCurrentVoteVotesAgainst, &snapshot.VotesAgainst},
		{builtin.DgpCurrentVoteStartBlock, &snapshot.StartBlock},
		{builtin.DgpCurrentVoteBlocksExpiration, &snapshot.BlocksExpiration},
		{builtin.DgpCurrentVoteValue, &snapshot.ParamValue},
		{builtin.DgpCurrentVoteThreshold, &snapshot.Threshold},
	}
	for _, field := range uintFields {
		val, err := r.gw.CallUint(field.fn)
		if err != nil {
			return nil, callFailed(err)
		}
		*field.dest = val
	}

	param, err := r.gw.CallUint(builtin.DgpCurrentVoteParam)
	if err != nil {
		return nil, callFailed(err)
	}
	snapshot.Param = loc.DgpParam(param)

	if snapshot.NewAdmin, err = r.gw.CallAddress(builtin.DgpCurrentVoteNewAdmin); err != nil {
		return nil, callFailed(err)
	}
	if snapshot.Creator, err = r.gw.CallAddress(builtin.DgpCurrentVoteCreator); err != nil {
		return nil, callFailed(err)
	}
	return &snapshot, nil
}

// VoteExpirationBlock returns the expiration height of the open vote.
// ok is false when no vote is in progress.
func (r *VoteReader) VoteExpirationBlock() (expiration uint64, ok bool, err error) {
	open, err := r.HasVoteInProgress()
	if err != nil {
		return 0, false, err
	}
	if !open {
		return 0, false, nil
	}
	expiration, err = r.gw.CallUint(builtin.DgpGetVoteExpiration)
	if err != nil {
		return 0, false, callFailed(err)
	}
	return expiration, true, nil
}

// ConvertFiatThresholdToLoc converts a fiat threshold, given in cents, into
// native coin units. The contract owns the fiat/native exchange policy.
func (r *VoteReader) ConvertFiatThresholdToLoc(cents uint64) (uint64, error) {
	val, err := r.gw.CallUint(builtin.DgpConvertFiatThresholdToLoc, cents*loc.OneCentEqual)
	if err != nil {
		return 0, callFailed(err)
	}
	return val, nil
}

// BlockRewardVotes returns the contract's log of passed block reward votes
// as parallel height/percentage slices.
func (r *VoteReader) BlockRewardVotes() (heights, percentages []uint64, err error) {
	if heights, err = r.gw.CallUintArray(builtin.DgpBlockRewardVoteBlocks); err != nil {
		return nil, nil, callFailed(err)
	}
	if percentages, err = r.gw.CallUintArray(builtin.DgpBlockRewardVotePercentages); err != nil {
		return nil, nil, callFailed(err)
	}
	return heights, percentages, nil
}
