package apilog

import "time"

const (
	defaultPageSize = 20
	maxPageSize     = 100
	defaultRecent   = 50
)

type ListQuery struct {
	CUI      string `form:"cui" binding:"omitempty,number"`
	Status   int    `form:"status" binding:"omitempty,min=0,max=599"`
	Failed   *bool  `form:"failed"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
}

// Normalize fills paging defaults and clamps the page size.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type PurgeRequest struct {
	OlderThanDays int `form:"older_than_days" binding:"required,min=1"`
}

type PurgeResponse struct {
	Deleted       int64 `json:"deleted"`
	OlderThanDays int   `json:"older_than_days"`
}

type APILogResponse struct {
	ID              string         `json:"id"`
	CUI             string         `json:"cui"`
	RequestURL      string         `json:"request_url"`
	HTTPMethod      string         `json:"http_method"`
	RequestHeaders  map[string]any `json:"request_headers"`
	RequestBody     string         `json:"request_body"`
	ResponseStatus  int            `json:"response_status"`
	ResponseHeaders map[string]any `json:"response_headers"`
	ResponseBody    string         `json:"response_body"`
	RequestDuration float64        `json:"request_duration"`
	ErrorMessage    *string        `json:"error_message"`
	UserIP          *string        `json:"user_ip"`
	CreatedAt       time.Time      `json:"created_at"`
}

func toResponse(l APILog) APILogResponse {
	return APILogResponse{
		ID:              l.ID.String(),
		CUI:             l.CUI,
		RequestURL:      l.RequestURL,
		HTTPMethod:      l.HTTPMethod,
		RequestHeaders:  l.RequestHeaders,
		RequestBody:     l.RequestBody,
		ResponseStatus:  l.ResponseStatus,
		ResponseHeaders: l.ResponseHeaders,
		ResponseBody:    l.ResponseBody,
		RequestDuration: l.RequestDuration,
		ErrorMessage:    l.ErrorMessage,
		UserIP:          l.UserIP,
		CreatedAt:       l.CreatedAt,
	}
}

func toResponses(logs []APILog) []APILogResponse {
	out := make([]APILogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toResponse(l))
	}
	return out
}
