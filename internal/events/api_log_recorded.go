package events

import "time"

const (
	APILogRecordedTopic     = "firme.api-log.recorded.v1"
	APILogRecordedEventType = "api_log.recorded"
)

// APILogRecordedEvent mirrors one api_logs row without the bodies.
type APILogRecordedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	CUI             string    `json:"cui"`
	RequestURL      string    `json:"request_url"`
	HTTPMethod      string    `json:"http_method"`
	ResponseStatus  int       `json:"response_status"`
	RequestDuration float64   `json:"request_duration"`
	ErrorMessage    *string   `json:"error_message,omitempty"`
	UserIP          *string   `json:"user_ip,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
