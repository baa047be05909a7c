package models

import (
	"encoding/json"
	"time"

	"github.com/Enfoirer/3D-building-generator/internal/common"
	"github.com/Enfoirer/3D-building-generator/internal/timex"
)

// Timestamp is a time.Time that decodes tolerantly from the backend's
// timestamp formats and always encodes as RFC 3339 with sub-second precision.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &common.DecodingError{Value: string(data), Err: err}
	}
	parsed, err := timex.ParseTimestamp(s)
	if err != nil {
		return &common.DecodingError{Value: s, Err: err}
	}
	t.Time = parsed
	return nil
}
