// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package builtin

import (
	"github.com/pkg/errors"

	"github.com/locktrip/go-locktrip/loc"
)

const oracleABI = `[
	{"type":"function","name":"getPrice","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getBytePrice","constant":true,"inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

// Oracle defaults used when the oracle reports a zero quote. A zero price
// would make contract transactions free, so it is treated as "not yet seeded".
const (
	DefaultOracleGasPrice  = loc.OneCentEqual
	DefaultOracleBytePrice = loc.DefaultMinBytePrice
)

// OracleCaller performs read-only calls against the price oracle contract.
type OracleCaller struct {
	contract *contract
	exec     CallExecutor
}

func (c *OracleCaller) callUint(method string, zeroDefault uint64) (uint64, error) {
	data, err := c.contract.pack(method)
	if err != nil {
		return 0, err
	}
	output, err := c.exec.Call(c.contract.Address, data, loc.DefaultBlockGasLimit)
	if err != nil {
		return 0, errors.WithMessagef(err, "call %s", method)
	}
	vals, err := c.contract.unpack(method, output)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, errors.Errorf("%s: expected one output", method)
	}
	price, err := toUint64(vals[0])
	if err != nil {
		return 0, err
	}
	if price == 0 {
		price = zeroDefault
	}
	return price, nil
}

// Price returns the fiat pegged reference gas price in OneCentEqual units.
func (c *OracleCaller) Price() (uint64, error) {
	return c.callUint("getPrice", DefaultOracleGasPrice)
}

// BytePrice returns the fiat pegged reference byte price in OneCentEqual units.
func (c *OracleCaller) BytePrice() (uint64, error) {
	return c.callUint("getBytePrice", DefaultOracleBytePrice)
}
