package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taigrr/colorhash"

	"github.com/dendrascience/gdcsort/gdc"
)

const (
	colorReset = "\033[0m"
	cursorUp3  = "\033[3A"
	clearLine  = "\033[2K"
)

// palette holds the foreground colours categories are spread over.
var palette = []string{
	"\033[31m", "\033[32m", "\033[33m", "\033[34m", "\033[35m", "\033[36m",
}

// DefaultEvery is how often a plain line is printed when not on a terminal.
const DefaultEvery = 100

// Display renders organizer steps. On a terminal it redraws the same three
// lines for every file; otherwise it prints one line for the first file,
// every Every-th file and the last one.
type Display struct {
	w       io.Writer
	tty     bool
	every   int
	started bool
	colors  map[string]string
}

// New returns a display writing to w, detecting whether w is a terminal.
func New(w io.Writer) *Display {
	return NewWithTTY(w, IsTTY(w))
}

// NewWithTTY returns a display with terminal rendering forced on or off.
func NewWithTTY(w io.Writer, tty bool) *Display {
	return &Display{w: w, tty: tty, every: DefaultEvery, colors: make(map[string]string)}
}

// IsTTY reports whether w is a character device.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// CategoryColor returns the stable colour used for a category.
func (d *Display) CategoryColor(category string) string {
	if c, ok := d.colors[category]; ok {
		return c
	}
	n := colorhash.HashString(category)
	if n < 0 {
		n = -n
	}
	c := palette[n%len(palette)]
	d.colors[category] = c
	return c
}

// Step shows one organizer step.
func (d *Display) Step(s gdc.Step) {
	if !d.tty {
		if s.N == 1 || s.N%d.every == 0 || s.N == s.Total {
			fmt.Fprintf(d.w, "%d / %d %s from: %s to: %s\n", s.N, s.Total, s.Verb, s.From, s.To)
		}
		return
	}

	if !d.started {
		fmt.Fprint(d.w, "\n\n\n")
		d.started = true
	}
	var b strings.Builder
	b.WriteString(cursorUp3)
	fmt.Fprintf(&b, "%s%d / %d\n", clearLine, s.N, s.Total)
	fmt.Fprintf(&b, "%s%s from: %s\n", clearLine, s.Verb, s.From)
	fmt.Fprintf(&b, "%sTo: %s\n", clearLine, d.colorize(s.To, s.Category))
	io.WriteString(d.w, b.String())
}

// colorize colours the leading category segment of a destination path.
func (d *Display) colorize(dest, category string) string {
	if category == "" || !strings.HasPrefix(dest, category) {
		return dest
	}
	return d.CategoryColor(category) + category + colorReset + dest[len(category):]
}
