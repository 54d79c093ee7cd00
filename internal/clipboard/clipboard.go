package clipboard

import (
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard copies text to the user's clipboard.
type Clipboard interface {
	Copy(text string) error
}

// OSC52 writes an OSC 52 escape sequence to a terminal. Terminals that
// support it (and tmux/screen when configured) place text on the system
// clipboard, which also works over SSH.
type OSC52 struct {
	w   io.Writer
	env string
}

// NewOSC52 writes to w. A nil w means the controlling terminal's stderr.
func NewOSC52(w io.Writer) *OSC52 {
	if w == nil {
		w = os.Stderr
	}
	return &OSC52{w: w, env: terminalMultiplexer()}
}

func (c *OSC52) Copy(text string) error {
	seq := osc52.New(text)
	switch c.env {
	case "tmux":
		seq = seq.Tmux()
	case "screen":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.w); err != nil {
		return fmt.Errorf("clipboard: write osc52: %w", err)
	}
	return nil
}

func terminalMultiplexer() string {
	if os.Getenv("TMUX") != "" {
		return "tmux"
	}
	if os.Getenv("STY") != "" {
		return "screen"
	}
	return ""
}
