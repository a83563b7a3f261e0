package apilog

import (
	"time"

	"go-firme/internal/audit"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// APILog is one row of api_logs. Rows are only ever inserted, and removed
// in bulk by the retention sweep.
type APILog struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	CUI             string            `gorm:"index"`
	RequestURL      string
	HTTPMethod      string
	RequestHeaders  datatypes.JSONMap
	RequestBody     string
	ResponseStatus  int `gorm:"index"`
	ResponseHeaders datatypes.JSONMap
	ResponseBody    string
	RequestDuration float64
	ErrorMessage    *string
	UserIP          *string
	CreatedAt       time.Time `gorm:"index"`
}

func (APILog) TableName() string {
	return "api_logs"
}

func (l *APILog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// FromEntry converts an audit entry into a row ready to insert.
func FromEntry(e audit.Entry) *APILog {
	created := e.OccurredAt
	if created.IsZero() {
		created = time.Now()
	}

	return &APILog{
		CUI:             e.CUI,
		RequestURL:      e.RequestURL,
		HTTPMethod:      e.HTTPMethod,
		RequestHeaders:  toJSONMap(e.RequestHeaders),
		RequestBody:     e.RequestBody,
		ResponseStatus:  e.ResponseStatus,
		ResponseHeaders: toJSONMap(e.ResponseHeaders),
		ResponseBody:    e.ResponseBody,
		RequestDuration: e.DurationSeconds(),
		ErrorMessage:    e.ErrorMessage,
		UserIP:          e.UserIP,
		CreatedAt:       created.UTC(),
	}
}

func toJSONMap(h map[string]string) datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(h))
	for k, v := range h {
		m[k] = v
	}
	return m
}
