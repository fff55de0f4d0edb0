package events

import (
	"encoding/json"
	"time"
)

// ReportWrittenMessage announces that one report was uploaded to its sink.
// Downstream consumers (a notifier, a dashboard refresher) react to it; the
// exporter itself never consumes.
type ReportWrittenMessage struct {
	Report    string    `json:"report"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportWrittenMessage(report string, rows int) *ReportWrittenMessage {
	return &ReportWrittenMessage{
		Report:    report,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ReportWrittenMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportWrittenMessageFromJSON creates a message from JSON bytes.
func ReportWrittenMessageFromJSON(data []byte) (*ReportWrittenMessage, error) {
	var msg ReportWrittenMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
