package menu

import "errors"

var (
	ErrNotFound     = errors.New("analysis not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrFileType     = errors.New("file type not allowed")
	ErrFileTooLarge = errors.New("file too large")
)

// AnalyzeError wraps a failure of the vision analyzer.
type AnalyzeError struct {
	Err error
}

func (e *AnalyzeError) Error() string {
	return e.Err.Error()
}

func (e *AnalyzeError) Unwrap() error {
	return e.Err
}
