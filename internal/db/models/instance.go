// Package models defines the database models
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

// PowerState is the hypervisor-reported execution state of an instance.
type PowerState int

// Power states as reported by the compute layer.
const (
	PowerStateNoState PowerState = iota
	PowerStateRunning
	PowerStateBlocked
	PowerStatePaused
	PowerStateShutdown
	PowerStateShutoff
	PowerStateCrashed
	PowerStateSuspended
	PowerStateFailed
	PowerStateBuilding
)

var powerStateNames = []string{
	"nostate",
	"running",
	"blocked",
	"paused",
	"shutdown",
	"shutoff",
	"crashed",
	"suspended",
	"failed",
	"building",
}

func (s PowerState) String() string {
	if s < 0 || int(s) >= len(powerStateNames) {
		return fmt.Sprintf("powerstate(%d)", int(s))
	}
	return powerStateNames[s]
}

// ParsePowerState converts a power state name into its PowerState value
func ParsePowerState(str string) (PowerState, error) {
	for i, name := range powerStateNames {
		if name == str {
			return PowerState(i), nil
		}
	}
	return PowerState(0), fmt.Errorf("invalid power state: %s", str)
}

// Metadata is the free-form key/value mapping attached to an instance.
// It is stored as a JSON column.
type Metadata map[string]string

// Value implements driver.Valuer for storing metadata as JSON
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for loading metadata from a JSON column
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
	if len(data) == 0 {
		*m = Metadata{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Instance represents a compute instance
type Instance struct {
	gorm.Model
	Name       string     `json:"name" gorm:"not null;index"`
	Region     string     `json:"region" gorm:"varchar(255)"`
	Size       string     `json:"size" gorm:"varchar(255)"`
	Image      string     `json:"image" gorm:"varchar(255)"`
	PowerState PowerState `json:"power_state" gorm:"index"`
	Metadata   Metadata   `json:"metadata" gorm:"type:json"`
}

// MarkerID returns the identifier clients use as a pagination marker
func (i Instance) MarkerID() string {
	return strconv.FormatUint(uint64(i.ID), 10)
}
