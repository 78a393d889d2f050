// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package builtin binds the protocol reserved contracts.
package builtin

import (
	"github.com/locktrip/go-locktrip/loc"
)

// Builtin contracts binding.
//
// The addresses are reserved, protocol defined accounts. Moving a contract
// to another address is a hard fork.
var (
	Economy     = &economyContract{mustLoadContract("Economy", "0x0000000000000000000000000000000000000090", economyABI)}
	Dgp         = &dgpContract{mustLoadContract("Dgp", "0x0000000000000000000000000000000000000091", dgpABI)}
	PriceOracle = &oracleContract{mustLoadContract("PriceOracle", "0x0000000000000000000000000000000000000092", oracleABI)}
)

type (
	dgpContract     struct{ *contract }
	economyContract struct{ *contract }
	oracleContract  struct{ *contract }
)

// CallExecutor executes a read-only call against the contract's persisted
// state at the current chain tip and returns the raw EVM output.
type CallExecutor interface {
	Call(contract loc.Address, data []byte, gas uint64) (output []byte, err error)
}

func (d *dgpContract) Caller(exec CallExecutor) *DgpCaller {
	return &DgpCaller{d.contract, exec}
}

func (e *economyContract) Caller(exec CallExecutor) *EconomyCaller {
	return &EconomyCaller{e.contract, exec}
}

func (o *oracleContract) Caller(exec CallExecutor) *OracleCaller {
	return &OracleCaller{o.contract, exec}
}
