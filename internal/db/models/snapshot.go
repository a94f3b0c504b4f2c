package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// SnapshotStatus tracks the lifecycle of a snapshot request
type SnapshotStatus int

const (
	// SnapshotStatusUnknown must stay first so the zero value never
	// collides with a real status
	SnapshotStatusUnknown SnapshotStatus = iota
	SnapshotStatusPending
	SnapshotStatusSaving
	SnapshotStatusComplete
	SnapshotStatusFailed
)

var snapshotStatusNames = []string{
	"unknown",
	"pending",
	"saving",
	"complete",
	"failed",
}

func (s SnapshotStatus) String() string {
	if s < 0 || int(s) >= len(snapshotStatusNames) {
		return "unknown"
	}
	return snapshotStatusNames[s]
}

// ParseSnapshotStatus converts a status name into its SnapshotStatus value
func ParseSnapshotStatus(str string) (SnapshotStatus, error) {
	for i, status := range snapshotStatusNames {
		if status == str {
			return SnapshotStatus(i), nil
		}
	}
	return SnapshotStatus(0), fmt.Errorf("invalid snapshot status: %s", str)
}

// MarshalJSON renders the status as its string name
func (s SnapshotStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the status from its string name
func (s *SnapshotStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseSnapshotStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// Snapshot represents a point-in-time image of an instance
type Snapshot struct {
	gorm.Model
	InstanceID uint           `json:"instance_id" gorm:"not null;index"`
	Name       string         `json:"name" gorm:"not null"`
	Status     SnapshotStatus `json:"status" gorm:"index"`
}
