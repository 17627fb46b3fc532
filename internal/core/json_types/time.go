package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a time of day without a date, e.g. "09:00" or "09:00:00".
type ClockTime struct {
	Time time.Time
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("failed to parse time: %s", string(data))
	}
	str := string(data[1 : len(data)-1])

	parsedTime, err := time.Parse("15:04:05", str)
	if err != nil {
		parsedTime, err = time.Parse("15:04", str)
		if err != nil {
			return fmt.Errorf("failed to parse time: %v", err)
		}
	}

	*t = ClockTime{Time: parsedTime}
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format("15:04:05"))
}

// Offset returns the time of day as an offset from midnight.
func (t ClockTime) Offset() time.Duration {
	return time.Duration(t.Time.Hour())*time.Hour +
		time.Duration(t.Time.Minute())*time.Minute +
		time.Duration(t.Time.Second())*time.Second
}
