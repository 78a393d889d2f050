// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import "github.com/pkg/errors"

var (
	// ErrCallFailed a call to the governance contract failed.
	// Refresh recovers it by keeping catalog defaults; callers asking for a
	// live value observe it directly.
	ErrCallFailed = errors.New("governance call failed")

	// ErrOracleUnavailable the price oracle could not be read. Surfaced to
	// wallet callers; there is no fallback price for real transactions.
	ErrOracleUnavailable = errors.New("price oracle unavailable")

	// ErrNonMonotonic a reward history entry was appended out of height
	// order. Indicates a caller bug, not an on-chain condition.
	ErrNonMonotonic = errors.New("reward history append out of order")
)

func callFailed(cause error) error {
	return errors.WithMessage(ErrCallFailed, cause.Error())
}
