package formatter

import (
	"fmt"
	"io"
	"sync"

	"github.com/alexanderramin/servio/internal/notify"
)

// FormatToast renders a toast as one or two lines.
func FormatToast(t notify.Toast) string {
	style := LevelStyle(t.Level)
	head := style.Render(LevelIcon(t.Level) + " " + t.Title)
	if t.Message == "" {
		return head
	}
	return head + "\n  " + StyleFg.Render(t.Message)
}

// TerminalNotifier prints toasts to a writer as they arrive.
type TerminalNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{w: w}
}

func (n *TerminalNotifier) Notify(t notify.Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, FormatToast(t))
}
