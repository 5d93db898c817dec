// Package api implements the HTTP transport for the MedXScan backend:
// the success/error response envelope, a timed-out client wrapper, and a
// typed facade over the /api/v1 surface.
package api

// Response is the discriminated envelope every remote operation returns.
// Exactly one of Data/Error is populated, depending on Success. Callers
// branch on Success for application-level failures; transport failures are
// returned as Go errors by the layer beneath and never reach an envelope.
type Response[T any] struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Data    *T     `json:"data"`
	Error   string `json:"error,omitempty"`
}

// Ok builds a success envelope around data. The mock data source uses it so
// local and remote results reach the caller in the same shape.
func Ok[T any](status int, data T) *Response[T] {
	return &Response[T]{Success: true, Status: status, Data: &data}
}

// Fail builds an error envelope with the given status and message.
func Fail[T any](status int, msg string) *Response[T] {
	return &Response[T]{Success: false, Status: status, Error: msg}
}

// Prediction is the payload returned by POST /api/v1/xray/predict.
type Prediction struct {
	Prediction  string  `json:"prediction"`
	Confidence  float64 `json:"confidence"`
	HeatmapPath string  `json:"heatmap_path"`
	ReportPath  string  `json:"report_path"`
}

// ChatAnswer is the payload returned by POST /api/v1/chat/ask.
type ChatAnswer struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// Health is the payload returned by GET /api/v1/health.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
