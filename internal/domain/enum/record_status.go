package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// RecordStatus marks catalog entries as usable or retired
type RecordStatus int

const (
	StatusActive   RecordStatus = 0
	StatusInactive RecordStatus = 1
)

func (s RecordStatus) String() string {
	if s == StatusInactive {
		return "inactive"
	}
	return "active"
}

// ParseRecordStatus accepts "active"/"inactive" as well as "Activo"/"Inactivo".
func ParseRecordStatus(s string) (RecordStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "activo":
		return StatusActive, nil
	case "inactive", "inactivo":
		return StatusInactive, nil
	}
	return StatusActive, fmt.Errorf("unknown status %q", s)
}

func (s RecordStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *RecordStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = RecordStatus(i)
		return nil
	}
	parsed, err := ParseRecordStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s RecordStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *RecordStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = RecordStatus(v)
	case int32:
		*s = RecordStatus(v)
	case int:
		*s = RecordStatus(v)
	}
	return nil
}
