// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package governance

import (
	"github.com/locktrip/go-locktrip/dgp"
	"github.com/locktrip/go-locktrip/loc"
)

// Param is the API view of one votable parameter.
type Param struct {
	Name        string `json:"name"`
	Value       uint64 `json:"value"`
	Default     uint64 `json:"default"`
	Min         uint64 `json:"min"`
	Max         uint64 `json:"max"`
	RefreshedAt uint64 `json:"refreshedAt"`
}

// Vote is the API view of the open governance vote.
type Vote struct {
	dgp.VoteSnapshot
	Headline        string `json:"headline"`
	ExpirationBlock uint64 `json:"expirationBlock"`
}

// VoteStatus wraps the open vote, if any.
type VoteStatus struct {
	InProgress bool  `json:"inProgress"`
	Vote       *Vote `json:"vote"`
}

// RewardPercentage is the block reward share at a given height.
type RewardPercentage struct {
	Height     uint64 `json:"height"`
	Percentage uint8  `json:"percentage"`
}

func convertParam(cache *dgp.Cache, p loc.DgpParam) *Param {
	bounds := dgp.BoundsOf(p)
	return &Param{
		Name:        p.String(),
		Value:       cache.Get(p),
		Default:     bounds.Default,
		Min:         bounds.Min,
		Max:         bounds.Max,
		RefreshedAt: cache.RefreshedAt(p),
	}
}

func convertVote(snapshot *dgp.VoteSnapshot) *VoteStatus {
	if snapshot == nil {
		return &VoteStatus{}
	}
	return &VoteStatus{
		InProgress: true,
		Vote: &Vote{
			VoteSnapshot:    *snapshot,
			Headline:        snapshot.Headline(),
			ExpirationBlock: snapshot.ExpirationBlock(),
		},
	}
}
