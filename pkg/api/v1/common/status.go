package common

import (
	"sort"
	"strings"

	"github.com/stratolab/strato/internal/db/models"
)

// statusByPowerState maps every power state to the user-facing status
// string. A nil power state (no report from the compute layer yet) maps
// to BUILD.
var statusByPowerState = map[models.PowerState]string{
	models.PowerStateNoState:   "BUILD",
	models.PowerStateRunning:   "ACTIVE",
	models.PowerStateBlocked:   "ACTIVE",
	models.PowerStateSuspended: "SUSPENDED",
	models.PowerStatePaused:    "PAUSED",
	models.PowerStateShutdown:  "SHUTDOWN",
	models.PowerStateShutoff:   "SHUTOFF",
	models.PowerStateCrashed:   "ERROR",
	models.PowerStateFailed:    "ERROR",
	models.PowerStateBuilding:  "BUILD",
}

// StatusFromPowerState maps a power state to the server status string.
// A nil state maps to BUILD.
func StatusFromPowerState(state *models.PowerState) (string, error) {
	if state == nil {
		return "BUILD", nil
	}
	status, ok := statusByPowerState[*state]
	if !ok {
		return "", &UnknownPowerStateError{State: int(*state)}
	}
	return status, nil
}

// PowerStatesFromStatus maps a server status string to the power states
// it may correspond to. The match is case-insensitive and the nil state
// is never included. An unknown status yields an empty slice.
func PowerStatesFromStatus(status string) []models.PowerState {
	var states []models.PowerState
	for state, mapped := range statusByPowerState {
		if strings.EqualFold(status, mapped) {
			states = append(states, state)
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}
