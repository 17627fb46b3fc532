package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	// Fall back to a datetime without timezone, then to a plain date.
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, time.UTC)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02", str, time.UTC)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}

type DateTime struct {
	Date time.Time
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("failed to parse date: %s", string(data))
	}
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = DateTime{Date: parsedDate}
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format(time.RFC3339))
}

type Date struct {
	Date time.Time
}

func (t *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("failed to parse date: %s", string(data))
	}
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02"))
}
