package response

import (
	"encoding/json"
	"time"
)

type APICallLogResponse struct {
	CreatedAt    time.Time       `json:"created_at"`
	AdapterType  string          `json:"adapter_type"`
	Request      json.RawMessage `json:"request"`
	Response     json.RawMessage `json:"response"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message"`
	ElapsedMs    int64           `json:"elapsed_ms"`
}

type GetAPICallLogsResponse struct {
	Logs []APICallLogResponse `json:"logs"`
}
