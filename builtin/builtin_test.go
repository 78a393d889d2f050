// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package builtin

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locktrip/go-locktrip/loc"
)

type mockExec struct {
	output       []byte
	err          error
	calls        int
	lastContract loc.Address
	lastInput    []byte
	lastGas      uint64
}

func (m *mockExec) Call(contract loc.Address, data []byte, gas uint64) ([]byte, error) {
	m.calls++
	m.lastContract = contract
	m.lastInput = data
	m.lastGas = gas
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func encodeUint(v *big.Int) []byte {
	out := make([]byte, 32)
	v.FillBytes(out)
	return out
}

func encodeBool(b bool) []byte {
	out := make([]byte, 32)
	if b {
		out[31] = 1
	}
	return out
}

func encodeAddress(addr loc.Address) []byte {
	out := make([]byte, 32)
	copy(out[12:], addr.Bytes())
	return out
}

func encodeUintArray(vals ...uint64) []byte {
	out := encodeUint(big.NewInt(32)) // offset
	out = append(out, encodeUint(big.NewInt(int64(len(vals))))...)
	for _, v := range vals {
		out = append(out, encodeUint(new(big.Int).SetUint64(v))...)
	}
	return out
}

func TestContractAddresses(t *testing.T) {
	// reserved protocol accounts, frozen
	assert.Equal(t, "0x0000000000000000000000000000000000000090", Economy.Address.String())
	assert.Equal(t, "0x0000000000000000000000000000000000000091", Dgp.Address.String())
	assert.Equal(t, "0x0000000000000000000000000000000000000092", PriceOracle.Address.String())
}

func TestDgpCallUint(t *testing.T) {
	exec := &mockExec{output: encodeUint(big.NewInt(2_500_000))}
	caller := Dgp.Caller(exec)

	v, err := caller.CallUint(DgpGetParam, loc.BlockSize)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500_000), v)

	assert.Equal(t, Dgp.Address, exec.lastContract)
	assert.Equal(t, loc.DefaultBlockGasLimit, exec.lastGas)
	// selector + one uint256 argument
	require.Equal(t, 4+32, len(exec.lastInput))
	assert.Equal(t, Dgp.ABI.Methods["getParam"].ID, exec.lastInput[:4])
	assert.Equal(t, byte(loc.BlockSize), exec.lastInput[4+31])
}

func TestDgpCallUintOverflow(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 70)
	exec := &mockExec{output: encodeUint(huge)}

	_, err := Dgp.Caller(exec).CallUint(DgpCurrentVoteValue)
	assert.Error(t, err)
}

func TestDgpCallBool(t *testing.T) {
	exec := &mockExec{output: encodeBool(true)}
	voted, err := Dgp.Caller(exec).CallBool(DgpParamVoted, loc.BurnRate)
	require.NoError(t, err)
	assert.True(t, voted)
}

func TestDgpCallAddress(t *testing.T) {
	admin := loc.BytesToAddress([]byte("new-admin"))
	exec := &mockExec{output: encodeAddress(admin)}

	got, err := Dgp.Caller(exec).CallAddress(DgpCurrentVoteNewAdmin)
	require.NoError(t, err)
	assert.Equal(t, admin, got)
}

func TestDgpCallUintArray(t *testing.T) {
	exec := &mockExec{output: encodeUintArray(1000, 2000, 3000)}

	vals, err := Dgp.Caller(exec).CallUintArray(DgpBlockRewardVoteBlocks)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1000, 2000, 3000}, vals)
}

func TestDgpCallErrorPropagation(t *testing.T) {
	exec := &mockExec{err: errors.New("evm unavailable")}

	_, err := Dgp.Caller(exec).CallUint(DgpGetParam, loc.BurnRate)
	assert.ErrorContains(t, err, "evm unavailable")
}

func TestDgpUnknownFunc(t *testing.T) {
	exec := &mockExec{output: encodeUint(big.NewInt(1))}
	_, err := Dgp.Caller(exec).CallUint(DgpFunc(99))
	assert.ErrorContains(t, err, "unknown dgp function")
}

func TestDgpCallDataMemoized(t *testing.T) {
	exec := &mockExec{output: encodeBool(false)}
	caller := Dgp.Caller(exec)

	_, err := caller.CallBool(DgpHasVoteInProgress)
	require.NoError(t, err)
	first := exec.lastInput

	_, err = caller.CallBool(DgpHasVoteInProgress)
	require.NoError(t, err)
	assert.Equal(t, first, exec.lastInput)
	assert.Equal(t, 2, exec.calls)
}

func TestFinishVoteData(t *testing.T) {
	data, err := Dgp.FinishVoteData()
	require.NoError(t, err)
	assert.Equal(t, Dgp.ABI.Methods["finishVote"].ID, data)
}

func TestVoteData(t *testing.T) {
	data, err := Dgp.VoteData(true)
	require.NoError(t, err)
	require.Equal(t, 4+32, len(data))
	assert.Equal(t, byte(1), data[4+31])
}

func TestOraclePrice(t *testing.T) {
	exec := &mockExec{output: encodeUint(big.NewInt(3_000_000))}
	price, err := PriceOracle.Caller(exec).Price()
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000_000), price)
}

func TestOracleZeroQuoteDefaults(t *testing.T) {
	exec := &mockExec{output: encodeUint(big.NewInt(0))}
	caller := PriceOracle.Caller(exec)

	price, err := caller.Price()
	require.NoError(t, err)
	assert.Equal(t, DefaultOracleGasPrice, price)

	bytePrice, err := caller.BytePrice()
	require.NoError(t, err)
	assert.Equal(t, DefaultOracleBytePrice, bytePrice)
}

func TestEconomyContractOwner(t *testing.T) {
	owner := loc.BytesToAddress([]byte("owner"))
	exec := &mockExec{output: encodeAddress(owner)}

	got, err := Economy.Caller(exec).ContractOwner(loc.BytesToAddress([]byte("contract")))
	require.NoError(t, err)
	assert.Equal(t, owner, got)
	assert.Equal(t, Economy.Address, exec.lastContract)
}

func TestEconomyPackedCalls(t *testing.T) {
	contracts := []loc.Address{loc.BytesToAddress([]byte("c1"))}
	owners := []loc.Address{loc.BytesToAddress([]byte("o1"))}

	data, err := Economy.AddContractData(contracts, owners)
	require.NoError(t, err)
	assert.Equal(t, Economy.ABI.Methods["addContract"].ID, data[:4])

	data, err = Economy.UpdateContractData(contracts[0], owners[0])
	require.NoError(t, err)
	assert.Equal(t, 4+64, len(data))
}
