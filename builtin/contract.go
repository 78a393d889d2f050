// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package builtin

import (
	"fmt"
	"math/big"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/locktrip/go-locktrip/loc"
)

type contract struct {
	name    string
	Address loc.Address
	ABI     ethabi.ABI

	// memoizes call data of argument-less methods
	packed *lru.Cache
}

func mustLoadContract(name string, addrHex string, abiJSON string) *contract {
	abi, err := ethabi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(fmt.Errorf("load ABI for '%s': %w", name, err))
	}
	cache, err := lru.New(32)
	if err != nil {
		panic(err)
	}
	return &contract{
		name,
		loc.MustParseAddress(addrHex),
		abi,
		cache,
	}
}

// pack builds call data for the named method.
func (c *contract) pack(method string, args ...any) ([]byte, error) {
	if len(args) == 0 {
		if data, ok := c.packed.Get(method); ok {
			return data.([]byte), nil
		}
	}
	data, err := c.ABI.Pack(method, abiArgs(args)...)
	if err != nil {
		return nil, errors.WithMessagef(err, "pack %s.%s", c.name, method)
	}
	if len(args) == 0 {
		c.packed.Add(method, data)
	}
	return data, nil
}

// unpack decodes the raw call output of the named method.
func (c *contract) unpack(method string, output []byte) ([]any, error) {
	vals, err := c.ABI.Unpack(method, output)
	if err != nil {
		return nil, errors.WithMessagef(err, "unpack %s.%s", c.name, method)
	}
	return vals, nil
}

// abiArgs lifts native argument types to their ABI representations.
func abiArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case uint64:
			out[i] = new(big.Int).SetUint64(v)
		case loc.DgpParam:
			out[i] = new(big.Int).SetUint64(uint64(v))
		case loc.Address:
			out[i] = common.Address(v)
		default:
			out[i] = arg
		}
	}
	return out
}

// toUint64 narrows an unpacked uint256 to uint64.
func toUint64(val any) (uint64, error) {
	n, ok := val.(*big.Int)
	if !ok {
		return 0, errors.Errorf("unexpected output type %T", val)
	}
	if !n.IsUint64() {
		return 0, errors.New("output exceeds uint64")
	}
	return n.Uint64(), nil
}
