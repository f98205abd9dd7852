package workflow

// Level is the severity of a Notification.
type Level int

const (
	LevelSuccess Level = iota + 1
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a user-visible toast.
type Notification struct {
	Level   Level
	Title   string
	Message string
	// Items is the parsed item count on success.
	Items int
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Observer receives lifecycle events for diagnostics. Recommendation failures
// are reported here and nowhere user-visible.
type Observer interface {
	UploadStarted()
	UploadFinished(err error)
	RecommendationsFetched(count int)
	RecommendationsFailed(err error)
}

// NopObserver ignores every event. Embed it to implement part of Observer.
type NopObserver struct{}

func (NopObserver) UploadStarted()              {}
func (NopObserver) UploadFinished(error)        {}
func (NopObserver) RecommendationsFetched(int)  {}
func (NopObserver) RecommendationsFailed(error) {}

// FileInput is the file-selection control, reset after every network completion
// so the same file can be chosen again.
type FileInput interface {
	Reset()
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

type nopInput struct{}

func (nopInput) Reset() {}
