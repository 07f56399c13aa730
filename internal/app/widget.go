package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// Button labels.
const (
	LabelGenerate   = "Generate"
	LabelRegenerate = "Regenerate"
)

// Notifications shown after a copy attempt.
const (
	NoticeCopied     = "Text copied to clipboard!"
	noticeCopyFailed = "Failed to copy text: "
)

// Handles are the UI elements the widget drives. A nil handle turns the
// operations that need it into no-ops.
type Handles struct {
	Trigger  domain.Trigger
	Serial   domain.TextTarget
	Copy     domain.CopyControl
	Color    domain.ColorControl
	Region   domain.Region
	Footer   domain.TextTarget
	Notifier domain.Notifier
}

// Widget is the UI shell around SerialService. Randomness stays in the
// generator; the widget only moves values between handles.
type Widget struct {
	handles   Handles
	serials   *SerialService
	clipboard domain.Clipboard
	validator domain.TransitionValidator
	logger    *slog.Logger

	mu         sync.Mutex
	copyState  domain.CopyState
	footerOnce sync.Once
}

// WidgetOption configures a Widget.
type WidgetOption func(*Widget)

// WithWidgetLogger sets the logger used for copy failures.
func WithWidgetLogger(logger *slog.Logger) WidgetOption {
	return func(w *Widget) { w.logger = logger }
}

// NewWidget creates a widget over injected handles.
func NewWidget(handles Handles, serials *SerialService, clipboard domain.Clipboard, validator domain.TransitionValidator, opts ...WidgetOption) *Widget {
	w := &Widget{
		handles:   handles,
		serials:   serials,
		clipboard: clipboard,
		validator: validator,
		logger:    slog.Default(),
		copyState: domain.CopyHidden,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Bind registers the widget's hooks on its handles and seeds the color
// control and display region with domain.DefaultColor.
func (w *Widget) Bind(ctx context.Context) {
	if w.handles.Trigger != nil {
		w.handles.Trigger.SetLabel(LabelGenerate)
		w.handles.Trigger.OnClick(func(ctx context.Context) {
			_, _ = w.OnGenerateRequested(ctx)
		})
	}
	if w.handles.Copy != nil {
		w.handles.Copy.OnClick(func(ctx context.Context) {
			_ = w.OnCopyRequested(ctx)
		})
	}
	if w.handles.Color != nil {
		w.handles.Color.SetValue(domain.DefaultColor)
		w.handles.Color.OnInput(func(ctx context.Context, value string) {
			_ = w.OnColorChanged(ctx, value)
		})
	}
	if w.handles.Region != nil {
		w.handles.Region.SetBackground(domain.NewGradient(domain.DefaultColor).CSS())
	}
}

// CopyState returns the current copy control state.
func (w *Widget) CopyState() domain.CopyState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copyState
}

// OnGenerateRequested displays a fresh identifier and reveals the copy
// control the first time it runs.
func (w *Widget) OnGenerateRequested(ctx context.Context) (domain.Identifier, error) {
	id, err := w.serials.GenerateDefault(ctx)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.handles.Serial != nil {
		w.handles.Serial.SetText(id.String())
	}

	next, err := w.validator.Apply(ctx, w.copyState, domain.EventGenerate)
	if err == nil {
		w.copyState = next
		if w.handles.Copy != nil {
			w.handles.Copy.Show()
		}
	} else {
		var trErr *domain.TransitionError
		if !errors.As(err, &trErr) {
			return "", err
		}
	}

	if w.handles.Trigger != nil {
		w.handles.Trigger.SetLabel(LabelRegenerate)
	}
	return id, nil
}

// OnCopyRequested writes the displayed identifier to the clipboard. It is a
// no-op until the copy control has been revealed. A failed write is notified
// and returned as a *domain.ClipboardError.
func (w *Widget) OnCopyRequested(ctx context.Context) error {
	w.mu.Lock()
	if w.copyState != domain.CopyRevealed || w.handles.Serial == nil {
		w.mu.Unlock()
		return nil
	}
	text := w.handles.Serial.Text()
	w.mu.Unlock()

	err := w.clipboard.WriteText(ctx, text)
	w.serials.RecordCopy(ctx, err)

	if err != nil {
		w.logger.ErrorContext(ctx, "failed to copy text", "error", err)
		w.notify(noticeCopyFailed + err.Error())
		return &domain.ClipboardError{Err: err}
	}

	w.notify(NoticeCopied)
	return nil
}

// OnColorChanged restyles the display region. Invalid colors leave it untouched.
func (w *Widget) OnColorChanged(ctx context.Context, value string) error {
	g, err := w.serials.Background(ctx, value)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.handles.Region != nil {
		w.handles.Region.SetBackground(g.CSS())
	}
	return nil
}

// OnPageLoad writes the current year to the footer, once.
func (w *Widget) OnPageLoad(ctx context.Context) {
	w.footerOnce.Do(func() {
		if w.handles.Footer == nil {
			return
		}
		year := w.serials.PageLoaded(ctx)
		w.handles.Footer.SetText(strconv.Itoa(year))
	})
}

func (w *Widget) notify(message string) {
	if w.handles.Notifier != nil {
		w.handles.Notifier.Notify(message)
	}
}
