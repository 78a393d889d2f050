// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package loc

// GasSchedule opaque tag of the EVM gas schedule a block is executed with.
// The execution engine resolves the tag to concrete gas costs.
type GasSchedule string

const (
	ScheduleConstantinople GasSchedule = "constantinople"
	ScheduleMuirGlacier    GasSchedule = "muirGlacier"
)

// ScheduleConfig per-network activation heights of gas schedules.
type ScheduleConfig struct {
	MuirGlacier uint64
}

// NoUpgrades a special config that stays on the initial schedule forever.
var NoUpgrades = ScheduleConfig{
	MuirGlacier: ^uint64(0),
}

// ScheduleFor selects the gas schedule in force at the given block height.
func (sc ScheduleConfig) ScheduleFor(height uint64) GasSchedule {
	if height >= sc.MuirGlacier {
		return ScheduleMuirGlacier
	}
	return ScheduleConstantinople
}
