package events

import (
	"encoding/json"
	"time"
)

// Event types published to the UI.
const (
	TypePing               = "ping"
	TypeDigestGenerated    = "digest_generated"
	TypePreferencesUpdated = "preferences_updated"
	TypeJobSaved           = "job_saved"
	TypeJobUnsaved         = "job_unsaved"
	TypeStatusChanged      = "status_changed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent builds the JSON envelope a subscriber receives.
func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
