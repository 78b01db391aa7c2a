package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"flightrec/pkg/chart"
	"flightrec/pkg/logging"
	"flightrec/pkg/view"
)

// Ticker is the host heartbeat, core.Scheduler in production.
type Ticker interface {
	Tick(ctx context.Context) bool
	Interval() time.Duration
}

// buttonView is implemented by views with soft buttons, pressed with
// F1 to F12.
type buttonView interface {
	HandleButton(ctx context.Context, bt int) (*view.Prompt, bool)
}

// App runs one view on a screen. Steps, key presses and redraws all happen
// on the goroutine that calls Run.
type App struct {
	screen tcell.Screen
	canvas *Canvas
	view   view.View
	ticker Ticker
	frame  time.Duration

	prompt    *view.Prompt
	input     []rune
	promptErr string
}

// New builds an app. frame is the redraw interval.
func New(screen tcell.Screen, v view.View, ticker Ticker, frame time.Duration) *App {
	if frame <= 0 {
		frame = 100 * time.Millisecond
	}
	return &App{
		screen: screen,
		canvas: NewCanvas(screen),
		view:   v,
		ticker: ticker,
		frame:  frame,
	}
}

// Run processes events and ticks until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	step := time.NewTicker(a.ticker.Interval())
	defer step.Stop()
	redraw := time.NewTicker(a.frame)
	defer redraw.Stop()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if a.HandleEvent(ctx, ev) {
				return nil
			}
			a.Draw()
		case <-step.C:
			a.ticker.Tick(ctx)
		case <-redraw.C:
			a.Draw()
		}
	}
}

// HandleEvent applies one terminal event and reports whether to quit.
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ctx, ev.Key(), ev.Rune())
	}
	return false
}

func (a *App) handleKey(ctx context.Context, key tcell.Key, r rune) bool {
	if a.prompt != nil {
		a.editPrompt(key, r)
		return false
	}

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if p, ok := a.view.HandleKey(ctx, r); ok {
			a.open(p)
		}
	default:
		if key >= tcell.KeyF1 && key <= tcell.KeyF12 {
			if bv, ok := a.view.(buttonView); ok {
				if p, ok := bv.HandleButton(ctx, int(key-tcell.KeyF1)); ok {
					a.open(p)
				}
			}
		}
	}
	return false
}

func (a *App) open(p *view.Prompt) {
	a.prompt = p
	a.input = a.input[:0]
	a.promptErr = ""
}

func (a *App) editPrompt(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape:
		a.prompt = nil
	case tcell.KeyEnter:
		if err := a.prompt.Submit(string(a.input)); err != nil {
			// Rejected input keeps the prompt open for another try.
			a.promptErr = err.Error()
			return
		}
		a.prompt = nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case tcell.KeyRune:
		a.input = append(a.input, r)
		a.promptErr = ""
	}
}

// Prompting reports whether a prompt is open.
func (a *App) Prompting() bool { return a.prompt != nil }

// Draw repaints the whole screen.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	full := chart.Rect{W: w, H: h}

	a.view.Draw(a.canvas, chart.Rect{W: w, H: h - 2})

	switch {
	case a.prompt != nil && a.promptErr != "":
		chart.Text(a.canvas, full, 0, h-2, a.prompt.Title+" "+string(a.input)+"_  "+a.promptErr, chart.Red)
	case a.prompt != nil:
		chart.Text(a.canvas, full, 0, h-2, a.prompt.Title+" "+string(a.input)+"_", chart.Yellow)
	default:
		chart.Text(a.canvas, full, 0, h-2, a.view.Help()+"  Esc quit", chart.Gray)
	}
	status, warn := logging.GlobalLogCapture.Status()
	col := chart.Cyan
	if warn {
		col = chart.Red
	}
	chart.Text(a.canvas, full, 0, h-1, status, col)
	a.screen.Show()
}
