// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package builtin

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/locktrip/go-locktrip/loc"
)

const economyABI = `[
	{"type":"function","name":"contractOwners","constant":true,"inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"addContract","constant":false,"inputs":[{"name":"_contractAddresses","type":"address[]"},{"name":"_ownerAddresses","type":"address[]"}],"outputs":[]},
	{"type":"function","name":"updateContract","constant":false,"inputs":[{"name":"_contractAddress","type":"address"},{"name":"_ownerAddress","type":"address"}],"outputs":[]}
]`

// EconomyCaller performs read-only calls against the economy contract.
type EconomyCaller struct {
	contract *contract
	exec     CallExecutor
}

// ContractOwner returns the registered owner of the given contract, to whom
// the economy dividend of its fees is routed. The zero address means the
// contract is not registered.
func (c *EconomyCaller) ContractOwner(addr loc.Address) (loc.Address, error) {
	data, err := c.contract.pack("contractOwners", addr)
	if err != nil {
		return loc.Address{}, err
	}
	output, err := c.exec.Call(c.contract.Address, data, loc.DefaultBlockGasLimit)
	if err != nil {
		return loc.Address{}, errors.WithMessage(err, "call contractOwners")
	}
	vals, err := c.contract.unpack("contractOwners", output)
	if err != nil {
		return loc.Address{}, err
	}
	if len(vals) != 1 {
		return loc.Address{}, errors.New("contractOwners: expected one output")
	}
	owner, ok := vals[0].(common.Address)
	if !ok {
		return loc.Address{}, errors.Errorf("contractOwners: unexpected output type %T", vals[0])
	}
	return loc.Address(owner), nil
}

// AddContractData builds the call data registering contracts with their owners.
func (e *economyContract) AddContractData(contracts, owners []loc.Address) ([]byte, error) {
	toCommon := func(addrs []loc.Address) []common.Address {
		out := make([]common.Address, len(addrs))
		for i, a := range addrs {
			out[i] = common.Address(a)
		}
		return out
	}
	return e.contract.pack("addContract", toCommon(contracts), toCommon(owners))
}

// UpdateContractData builds the call data reassigning a contract's owner.
func (e *economyContract) UpdateContractData(contract, owner loc.Address) ([]byte, error) {
	return e.contract.pack("updateContract", contract, owner)
}
