package gaze

import (
	"GazeDashboard/pkg/response"
	"errors"
	"fmt"
)

// ErrEmptyDataset is reported as a warning; the pipeline still renders zero ratios.
var ErrEmptyDataset = errors.New("dataset contains no samples")

var (
	ErrDataDirUnreadable   = response.NewError(500, "gaze data directory is missing or unreadable")
	ErrParticipantNotFound = response.NewError(404, "participant not found")
	ErrMalformedFile       = response.NewError(422, "malformed participant file")
	ErrNoParticipants      = response.NewError(404, "no participants available")
	ErrInvalidRadius       = response.NewError(400, "center radius must be between 1 and 20 degrees in steps of 0.5")
	ErrInvalidFormat       = response.NewError(400, "unsupported chart format")
	ErrInvalidUpload       = response.NewError(400, "invalid upload")
	ErrUploadTooLarge      = response.NewError(413, "uploaded file too large")
	ErrRenderChart         = response.NewError(500, "failed to render chart")
)

// FileSystemError reports a data directory or participant file that could not be read.
type FileSystemError struct {
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataDirUnreadable.Error(), e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() []error {
	return []error{ErrDataDirUnreadable, e.Err}
}

// ParseError points at the row (1-based) and column of a participant file that failed to parse.
// Column is empty when the whole row is wrong, e.g. a bad field count.
type ParseError struct {
	Source string
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s row %d: %v", ErrMalformedFile.Error(), e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: %s row %d column %q: %v", ErrMalformedFile.Error(), e.Source, e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedFile, e.Err}
}
