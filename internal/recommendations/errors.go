package recommendations

import "errors"

var (
	ErrNotFound         = errors.New("product not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
)

// ValidationError reports an out-of-range query parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
