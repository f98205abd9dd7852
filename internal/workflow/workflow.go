package workflow

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"sales-assistant/internal/apiclient"
	"sales-assistant/internal/shared/telemetry"
)

// MaxFileSize is the largest accepted upload (10 MiB).
const MaxFileSize = 10 * 1024 * 1024

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// API is the pair of endpoints the workflow drives. *apiclient.Client satisfies it.
type API interface {
	AnalyzeMenu(ctx context.Context, upload apiclient.Upload) (apiclient.Response, error)
	Products(ctx context.Context) (apiclient.Response, error)
}

// File is a selected menu image. ContentType is the declared media type.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Outcome summarizes a successful Submit.
type Outcome struct {
	Items       int
	Recommended int
	// RecommendationErr is set when the chained recommendation fetch failed.
	// The upload itself still succeeded.
	RecommendationErr error
}

// Workflow owns the upload, analyze and recommend cycle for one dashboard.
type Workflow struct {
	api      API
	notifier Notifier
	observer Observer
	input    FileInput

	mu    sync.Mutex
	state State
	gen   uint64
	scope context.Context
	stop  context.CancelFunc
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithNotifier sets the user notification sink.
func WithNotifier(n Notifier) Option {
	return func(w *Workflow) {
		if n != nil {
			w.notifier = n
		}
	}
}

// WithObserver sets the diagnostics hook.
func WithObserver(o Observer) Option {
	return func(w *Workflow) {
		if o != nil {
			w.observer = o
		}
	}
}

// WithFileInput sets the file-selection control to reset after each completion.
func WithFileInput(in FileInput) Option {
	return func(w *Workflow) {
		if in != nil {
			w.input = in
		}
	}
}

// New creates a Workflow in the cleared state.
func New(api API, opts ...Option) *Workflow {
	w := &Workflow{
		api:      api,
		notifier: nopNotifier{},
		observer: NopObserver{},
		input:    nopInput{},
		state:    Cleared(),
	}
	w.scope, w.stop = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Snapshot returns a deep copy of the current state.
func (w *Workflow) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// Validate checks the declared media type and size of f.
func Validate(f File) error {
	if err := validate(f); err != nil {
		return err
	}
	return nil
}

func validate(f File) *ValidationError {
	contentType := strings.ToLower(strings.TrimSpace(f.ContentType))
	if !allowedContentTypes[contentType] {
		return &ValidationError{Kind: InvalidType, ContentType: f.ContentType, Size: f.Size}
	}
	if f.Size > MaxFileSize {
		return &ValidationError{Kind: TooLarge, ContentType: f.ContentType, Size: f.Size}
	}
	return nil
}

// Submit validates f, uploads it for analysis and, on success, fetches
// recommendations. Validation failures send no request and leave state untouched.
// Upload failures keep previously shown results.
func (w *Workflow) Submit(ctx context.Context, f File) (Outcome, error) {
	if vErr := validate(f); vErr != nil {
		w.notifier.Notify(Notification{Level: LevelError, Title: vErr.Title(), Message: vErr.Message()})
		return Outcome{}, vErr
	}

	w.mu.Lock()
	if w.state.IsLoading {
		w.mu.Unlock()
		return Outcome{}, ErrUploadInProgress
	}
	w.state = StartUpload(w.state)
	gen := w.gen
	opCtx, cancel := w.bind(ctx)
	w.mu.Unlock()
	defer cancel()

	w.observer.UploadStarted()
	items, err := w.analyze(opCtx, f)
	w.input.Reset()

	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		telemetry.Info("workflow.upload.discarded", map[string]any{"file": f.Name})
		return Outcome{}, ErrCleared
	}
	if err != nil {
		w.state = UploadFailed(w.state)
		w.mu.Unlock()
		w.observer.UploadFinished(err)
		telemetry.Warn("workflow.upload.failed", map[string]any{"file": f.Name, "err": err.Error()})
		w.notifier.Notify(Notification{Level: LevelError, Title: "Error", Message: err.Error()})
		return Outcome{}, err
	}
	w.state = UploadSucceeded(w.state, items)
	w.mu.Unlock()

	w.observer.UploadFinished(nil)
	w.notifier.Notify(Notification{
		Level:   LevelSuccess,
		Title:   "Success",
		Message: "Menu analysis completed successfully",
		Items:   len(items),
	})

	out := Outcome{Items: len(items)}
	n, recErr := w.fetchRecommendations(opCtx, gen)
	if recErr != nil && !errors.Is(recErr, ErrCleared) {
		out.RecommendationErr = recErr
	}
	out.Recommended = n
	return out, nil
}

// FetchRecommendations refreshes the product list for the current analysis.
// Failures are logged and observed, never notified, and leave products as they were.
func (w *Workflow) FetchRecommendations(ctx context.Context) error {
	w.mu.Lock()
	if !w.state.HasResults {
		w.mu.Unlock()
		return ErrNoResults
	}
	gen := w.gen
	opCtx, cancel := w.bind(ctx)
	w.mu.Unlock()
	defer cancel()

	_, err := w.fetchRecommendations(opCtx, gen)
	return err
}

// Clear resets the state and cancels any in-flight request. Results that
// arrive afterwards are discarded. Safe to call repeatedly.
func (w *Workflow) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	w.stop()
	w.scope, w.stop = context.WithCancel(context.Background())
	w.state = Cleared()
}

// bind derives an operation context cancelled by either ctx or the next Clear.
// Callers hold w.mu.
func (w *Workflow) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	opCtx, cancel := context.WithCancel(ctx)
	release := context.AfterFunc(w.scope, cancel)
	return opCtx, func() {
		release()
		cancel()
	}
}

func (w *Workflow) analyze(ctx context.Context, f File) ([]MenuItem, error) {
	resp, err := w.api.AnalyzeMenu(ctx, apiclient.Upload{
		Name:        f.Name,
		ContentType: f.ContentType,
		Body:        f.Body,
	})
	if err != nil {
		return nil, &UploadError{Message: err.Error(), Err: err}
	}
	if !resp.OK() {
		msg := apiclient.DetailMessage(resp.Body)
		if msg == "" {
			msg = genericUploadMessage
		}
		return nil, &UploadError{Status: resp.Status, Message: msg}
	}
	items, err := apiclient.DecodeMenuItems(resp.Body)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return items, nil
}

func (w *Workflow) fetchRecommendations(ctx context.Context, gen uint64) (int, error) {
	products, err := w.loadProducts(ctx)

	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		return 0, ErrCleared
	}
	if err != nil {
		w.mu.Unlock()
		telemetry.Warn("workflow.recommendations.failed", map[string]any{"err": err.Error()})
		w.observer.RecommendationsFailed(err)
		return 0, err
	}
	w.state = RecommendationsLoaded(w.state, products)
	w.mu.Unlock()

	w.observer.RecommendationsFetched(len(products))
	return len(products), nil
}

func (w *Workflow) loadProducts(ctx context.Context) ([]Product, error) {
	resp, err := w.api.Products(ctx)
	if err != nil {
		return nil, &RecommendationFetchError{Err: err}
	}
	if !resp.OK() {
		return nil, &RecommendationFetchError{Status: resp.Status}
	}
	products, err := apiclient.DecodeProducts(resp.Body)
	if err != nil {
		return nil, &RecommendationFetchError{Err: err}
	}
	return products, nil
}
