// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package dgp implements the decentralized governance protocol engine: the
// catalog of votable consensus parameters with their safety bounds, the
// per-block refreshed parameter cache consensus code reads on the hot path,
// the block reward history used to validate historical blocks, and the gas
// price derivation wallets use to build contract transactions.
//
// Every node must interpret vote results identically or the chain diverges,
// so vote values are validated against hard-coded bounds and out-of-range
// results fall back to catalog defaults, never to the nearest bound.
package dgp
