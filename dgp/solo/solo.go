// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package solo provides deterministic in-memory stand-ins for the on-chain
// governance and oracle contracts, for development and integration testing
// without a chain backend.
package solo

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/locktrip/go-locktrip/builtin"
	"github.com/locktrip/go-locktrip/dgp"
	"github.com/locktrip/go-locktrip/loc"
)

var (
	_ dgp.Gateway     = (*Gateway)(nil)
	_ dgp.PriceSource = (*Oracle)(nil)
)

// VoteConfig describes a permanently open vote.
type VoteConfig struct {
	Param            string `yaml:"param"`
	Value            uint64 `yaml:"value"`
	VotesFor         uint64 `yaml:"votesFor"`
	VotesAgainst     uint64 `yaml:"votesAgainst"`
	StartBlock       uint64 `yaml:"startBlock"`
	BlocksExpiration uint64 `yaml:"blocksExpiration"`
	Threshold        uint64 `yaml:"threshold"`
	Creator          string `yaml:"creator"`
}

// Config is the YAML description of the simulated governance state.
type Config struct {
	// Params maps parameter names to voted values. Absent parameters
	// report as never voted.
	Params map[string]uint64 `yaml:"params"`

	// Vote, when set, is reported as the open vote.
	Vote *VoteConfig `yaml:"vote"`

	// GasPrice and BytePrice are the oracle answers, in OneCentEqual units.
	// Zero values fall through to the oracle defaults.
	GasPrice  uint64 `yaml:"gasPrice"`
	BytePrice uint64 `yaml:"bytePrice"`

	// LocPerCent is the fiat conversion rate used by threshold conversion.
	LocPerCent uint64 `yaml:"locPerCent"`

	// RewardVotes is the simulated log of passed block reward votes.
	RewardVotes []RewardVote `yaml:"rewardVotes"`
}

// RewardVote is one simulated passed block reward vote.
type RewardVote struct {
	Height     uint64 `yaml:"height"`
	Percentage uint64 `yaml:"percentage"`
}

// DefaultConfig is the zero-vote configuration: catalog defaults everywhere
// and an oracle answering one cent per gas unit.
func DefaultConfig() *Config {
	return &Config{
		GasPrice:   loc.OneCentEqual,
		BytePrice:  loc.DefaultMinBytePrice,
		LocPerCent: 1,
	}
}

// LoadConfig reads a YAML config, using strict decoding so typos in
// parameter names fail loudly.
func LoadConfig(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "decode solo config")
	}
	for name := range config.Params {
		if _, err := loc.ParseDgpParam(name); err != nil {
			return nil, errors.Wrap(err, "solo config")
		}
	}
	if config.Vote != nil {
		if _, err := loc.ParseDgpParam(config.Vote.Param); err != nil {
			return nil, errors.Wrap(err, "solo config vote")
		}
	}
	return config, nil
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open solo config")
	}
	defer file.Close()
	return LoadConfig(file)
}

// Gateway answers governance contract calls from static config.
type Gateway struct {
	params map[loc.DgpParam]uint64
	config *Config
}

// NewGateway creates a gateway over the given config.
func NewGateway(config *Config) *Gateway {
	params := make(map[loc.DgpParam]uint64, len(config.Params))
	for name, value := range config.Params {
		p, err := loc.ParseDgpParam(name)
		if err != nil {
			panic(err) // LoadConfig validates names
		}
		params[p] = value
	}
	return &Gateway{params: params, config: config}
}

func (g *Gateway) vote() *VoteConfig { return g.config.Vote }

func (g *Gateway) CallUint(fn builtin.DgpFunc, args ...any) (uint64, error) {
	switch fn {
	case builtin.DgpGetParam:
		return g.params[args[0].(loc.DgpParam)], nil
	case builtin.DgpConvertFiatThresholdToLoc:
		return args[0].(uint64) * g.config.LocPerCent, nil
	}

	vote := g.vote()
	if vote == nil {
		return 0, errors.New("no vote in progress")
	}
	switch fn {
	case builtin.DgpCurrentVoteVotesFor:
		return vote.VotesFor, nil
	case builtin.DgpCurrentVoteVotesAgainst:
		return vote.VotesAgainst, nil
	case builtin.DgpCurrentVoteStartBlock:
		return vote.StartBlock, nil
	case builtin.DgpCurrentVoteBlocksExpiration:
		return vote.BlocksExpiration, nil
	case builtin.DgpCurrentVoteValue:
		return vote.Value, nil
	case builtin.DgpCurrentVoteThreshold:
		return vote.Threshold, nil
	case builtin.DgpCurrentVoteParam:
		p, err := loc.ParseDgpParam(vote.Param)
		if err != nil {
			return 0, err
		}
		return uint64(p), nil
	case builtin.DgpGetVoteExpiration:
		return vote.StartBlock + vote.BlocksExpiration, nil
	default:
		return 0, errors.Errorf("solo gateway: unsupported call %d", fn)
	}
}

func (g *Gateway) CallUintArray(fn builtin.DgpFunc, _ ...any) ([]uint64, error) {
	switch fn {
	case builtin.DgpBlockRewardVoteBlocks:
		heights := make([]uint64, 0, len(g.config.RewardVotes))
		for _, v := range g.config.RewardVotes {
			heights = append(heights, v.Height)
		}
		return heights, nil
	case builtin.DgpBlockRewardVotePercentages:
		percentages := make([]uint64, 0, len(g.config.RewardVotes))
		for _, v := range g.config.RewardVotes {
			percentages = append(percentages, v.Percentage)
		}
		return percentages, nil
	default:
		return nil, errors.Errorf("solo gateway: unsupported call %d", fn)
	}
}

func (g *Gateway) CallBool(fn builtin.DgpFunc, args ...any) (bool, error) {
	switch fn {
	case builtin.DgpHasVoteInProgress:
		return g.vote() != nil, nil
	case builtin.DgpParamVoted:
		_, voted := g.params[args[0].(loc.DgpParam)]
		return voted, nil
	default:
		return false, errors.Errorf("solo gateway: unsupported call %d", fn)
	}
}

func (g *Gateway) CallAddress(fn builtin.DgpFunc, _ ...any) (loc.Address, error) {
	vote := g.vote()
	switch fn {
	case builtin.DgpCurrentVoteCreator:
		if vote == nil || vote.Creator == "" {
			return loc.Address{}, nil
		}
		creator, err := loc.ParseAddress(vote.Creator)
		if err != nil {
			return loc.Address{}, err
		}
		return *creator, nil
	case builtin.DgpCurrentVoteNewAdmin:
		return loc.Address{}, nil
	default:
		return loc.Address{}, errors.Errorf("solo gateway: unsupported call %d", fn)
	}
}

// Oracle answers price queries from static config.
type Oracle struct {
	config *Config
}

// NewOracle creates an oracle over the given config.
func NewOracle(config *Config) *Oracle {
	return &Oracle{config}
}

func (o *Oracle) Price() (uint64, error) {
	if o.config.GasPrice == 0 {
		return builtin.DefaultOracleGasPrice, nil
	}
	return o.config.GasPrice, nil
}

func (o *Oracle) BytePrice() (uint64, error) {
	if o.config.BytePrice == 0 {
		return builtin.DefaultOracleBytePrice, nil
	}
	return o.config.BytePrice, nil
}
