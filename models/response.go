package models

type ApiResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ApiError   `json:"error,omitempty"`
	Meta      *MetaData   `json:"meta,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type MetaData struct {
	ProcessTime string `json:"process_time_ms"`
	ApiVersion  string `json:"api_version"`
	ResultCount *int   `json:"result_count,omitempty"`
}

type AddressList struct {
	Addresses []string `json:"addresses"`
	Count     int      `json:"count"`
}
