package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrUploadInProgress is returned by Submit while another upload is loading.
	ErrUploadInProgress = errors.New("an upload is already in progress")
	// ErrCleared is returned when Clear ran while the operation was in flight; its result was discarded.
	ErrCleared = errors.New("workflow cleared before completion")
	// ErrNoResults is returned by FetchRecommendations before any successful upload.
	ErrNoResults = errors.New("no menu analysis to recommend for")
)

// ValidationKind says which local check a file failed.
type ValidationKind int

const (
	InvalidType ValidationKind = iota + 1
	TooLarge
)

// ValidationError is a local rejection; no request was sent.
type ValidationError struct {
	Kind        ValidationKind
	ContentType string
	Size        int64
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InvalidType:
		return fmt.Sprintf("invalid file type %q", e.ContentType)
	case TooLarge:
		return fmt.Sprintf("file too large: %d bytes", e.Size)
	default:
		return "invalid file"
	}
}

// Title and Message are the user-facing notification texts.
func (e *ValidationError) Title() string {
	if e.Kind == TooLarge {
		return "File too large"
	}
	return "Invalid file type"
}

func (e *ValidationError) Message() string {
	if e.Kind == TooLarge {
		return "Please upload an image smaller than 10MB."
	}
	return "Please upload a JPG or PNG image."
}

const genericUploadMessage = "Failed to analyze menu"

// UploadError is a failed analyze-menu call. Status is 0 for transport failures.
type UploadError struct {
	Status  int
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// FormatError is a 2xx analyze-menu body without well-formed menu items.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "Invalid response format"
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// RecommendationFetchError is logged and observed but never shown to the user.
type RecommendationFetchError struct {
	Status int
	Err    error
}

func (e *RecommendationFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch recommendations: status %d", e.Status)
	}
	return fmt.Sprintf("fetch recommendations: %v", e.Err)
}

func (e *RecommendationFetchError) Unwrap() error {
	return e.Err
}
