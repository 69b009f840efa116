package models

// LogDescriptor identifies the log file selected for analysis.
type LogDescriptor struct {
	FullPath     string
	FileName     string
	Date         LogDate
	IsCompressed bool
}
