package dashboard

import (
	"fmt"
	"io"
	"sync"

	"sales-assistant/internal/workflow"
)

// Printer prints notifications as single lines.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Notify implements workflow.Notifier.
func (p *Printer) Notify(n workflow.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n.Level == workflow.LevelSuccess && n.Items > 0 {
		fmt.Fprintf(p.w, "[%s] %s: %s (%d items)\n", n.Level, n.Title, n.Message, n.Items)
		return
	}
	fmt.Fprintf(p.w, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
}

var _ workflow.Notifier = (*Printer)(nil)
