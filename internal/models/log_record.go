package models

// LogRecord is one (url, duration) extraction from a single access log line.
type LogRecord struct {
	URL             string
	DurationSeconds float64
	// UserAgent is the raw $http_user_agent value, empty when the line carries none.
	UserAgent string
}
