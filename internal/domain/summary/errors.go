package summary

import "errors"

var (
	ErrSummaryFailed = errors.New("failed to generate summary")
	ErrEmptyResponse = errors.New("summary model returned an empty response")
	ErrNotConfigured = errors.New("summary service is not configured")
)
