// Package console provides widget handles for terminal use. Text written to a
// handle is echoed as a line to the configured writer; clicks and input are
// driven programmatically.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/neomorfeo/serialgen/internal/app"
	"github.com/neomorfeo/serialgen/internal/domain"
)

// Button is a clickable control. It satisfies domain.Trigger and domain.CopyControl.
type Button struct {
	mu      sync.Mutex
	label   string
	visible bool
	onClick func(context.Context)
}

func (b *Button) OnClick(fn func(ctx context.Context)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onClick = fn
}

func (b *Button) SetLabel(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = label
}

// Label returns the current label.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

func (b *Button) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = true
}

// Visible reports whether Show has been called.
func (b *Button) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Click runs the registered hook, if any.
func (b *Button) Click(ctx context.Context) {
	b.mu.Lock()
	fn := b.onClick
	b.mu.Unlock()
	if fn != nil {
		fn(ctx)
	}
}

// Text is a line of output. It satisfies domain.TextTarget.
type Text struct {
	mu   sync.Mutex
	w    io.Writer
	text string
}

// NewText creates a text target that echoes every update to w. A nil w keeps
// the text in memory only.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) SetText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text = text
	if t.w != nil {
		fmt.Fprintln(t.w, text)
	}
}

func (t *Text) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// ColorInput is a color picker. It satisfies domain.ColorControl.
type ColorInput struct {
	mu      sync.Mutex
	value   string
	onInput func(context.Context, string)
}

func (c *ColorInput) OnInput(fn func(ctx context.Context, value string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onInput = fn
}

func (c *ColorInput) SetValue(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
}

// Value returns the current color.
func (c *ColorInput) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Input sets the value and runs the registered hook.
func (c *ColorInput) Input(ctx context.Context, value string) {
	c.mu.Lock()
	c.value = value
	fn := c.onInput
	c.mu.Unlock()
	if fn != nil {
		fn(ctx, value)
	}
}

// Region records the applied background. It satisfies domain.Region.
type Region struct {
	mu         sync.Mutex
	w          io.Writer
	background string
}

// NewRegion creates a region that echoes every background to w. A nil w
// keeps it in memory only.
func NewRegion(w io.Writer) *Region {
	return &Region{w: w}
}

func (r *Region) SetBackground(css string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.background = css
	if r.w != nil {
		fmt.Fprintf(r.w, "background: %s\n", css)
	}
}

// Background returns the last applied CSS value.
func (r *Region) Background() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.background
}

// Notifier prints notifications. It satisfies domain.Notifier.
type Notifier struct {
	w io.Writer
}

// NewNotifier creates a notifier writing to w. A nil w drops messages.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) Notify(message string) {
	if n.w == nil {
		return
	}
	fmt.Fprintln(n.w, message)
}

// Compile-time checks.
var (
	_ domain.Trigger      = (*Button)(nil)
	_ domain.CopyControl  = (*Button)(nil)
	_ domain.TextTarget   = (*Text)(nil)
	_ domain.ColorControl = (*ColorInput)(nil)
	_ domain.Region       = (*Region)(nil)
	_ domain.Notifier     = (*Notifier)(nil)
)

// Shell bundles one console handle per widget slot.
type Shell struct {
	Trigger  *Button
	Serial   *Text
	Copy     *Button
	Color    *ColorInput
	Region   *Region
	Footer   *Text
	Notifier *Notifier
}

// NewShell creates handles where the serial and notifications go to out and
// everything else stays in memory.
func NewShell(out io.Writer) *Shell {
	return &Shell{
		Trigger:  &Button{},
		Serial:   NewText(out),
		Copy:     &Button{},
		Color:    &ColorInput{},
		Region:   NewRegion(nil),
		Footer:   NewText(nil),
		Notifier: NewNotifier(out),
	}
}

// Handles returns the shell as app.Handles.
func (s *Shell) Handles() app.Handles {
	return app.Handles{
		Trigger:  s.Trigger,
		Serial:   s.Serial,
		Copy:     s.Copy,
		Color:    s.Color,
		Region:   s.Region,
		Footer:   s.Footer,
		Notifier: s.Notifier,
	}
}
