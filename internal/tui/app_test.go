package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightrec/pkg/chart"
	"flightrec/pkg/logging"
	"flightrec/pkg/view"
)

type fakeView struct {
	keys    []rune
	buttons []int
	got     []string
}

func (v *fakeView) HandleKey(ctx context.Context, key rune) (*view.Prompt, bool) {
	v.keys = append(v.keys, key)
	switch key {
	case 'r':
		return &view.Prompt{Title: "Rate:", Submit: func(text string) error {
			if text == "bad" {
				return errors.New("not a rate")
			}
			v.got = append(v.got, text)
			return nil
		}}, true
	case 'a':
		return nil, true
	}
	return nil, false
}

func (v *fakeView) HandleButton(ctx context.Context, bt int) (*view.Prompt, bool) {
	v.buttons = append(v.buttons, bt)
	return nil, true
}

func (v *fakeView) Draw(c chart.Canvas, r chart.Rect) {
	chart.Text(c, r, r.X, r.Y, "VIEW", chart.White)
}

func (v *fakeView) Help() string { return "a acq  r rate" }

type fakeTicker struct{ ticks int }

func (t *fakeTicker) Tick(ctx context.Context) bool { t.ticks++; return true }
func (t *fakeTicker) Interval() time.Duration       { return time.Millisecond }

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(60, 10)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func typeText(ctx context.Context, a *App, text string) {
	for _, r := range text {
		a.handleKey(ctx, tcell.KeyRune, r)
	}
}

func TestCanvas(t *testing.T) {
	s := newScreen(t)
	c := NewCanvas(s)
	w, h := c.Size()
	assert.Equal(t, 60, w)
	assert.Equal(t, 10, h)

	c.Set(3, 2, '*', chart.Yellow)
	r, _, style, _ := s.GetContent(3, 2)
	assert.Equal(t, '*', r)
	assert.Equal(t, palette[chart.Yellow], style)
}

func TestKeysReachView(t *testing.T) {
	ctx := context.Background()
	v := &fakeView{}
	a := New(newScreen(t), v, &fakeTicker{}, 0)

	assert.False(t, a.handleKey(ctx, tcell.KeyRune, 'a'))
	assert.False(t, a.Prompting())
	assert.False(t, a.handleKey(ctx, tcell.KeyF3, 0))
	assert.Equal(t, []int{2}, v.buttons)
	assert.Equal(t, []rune{'a'}, v.keys)

	assert.True(t, a.handleKey(ctx, tcell.KeyEscape, 0), "Esc quits")
}

func TestPromptFlow(t *testing.T) {
	ctx := context.Background()
	v := &fakeView{}
	a := New(newScreen(t), v, &fakeTicker{}, 0)

	a.handleKey(ctx, tcell.KeyRune, 'r')
	require.True(t, a.Prompting())

	// Keys go to the prompt, not the view.
	typeText(ctx, a, "bad")
	a.handleKey(ctx, tcell.KeyEnter, 0)
	assert.True(t, a.Prompting(), "rejected input keeps the prompt")
	assert.Equal(t, "not a rate", a.promptErr)
	assert.Equal(t, []rune{'r'}, v.keys)

	for range "bad" {
		a.handleKey(ctx, tcell.KeyBackspace2, 0)
	}
	typeText(ctx, a, "10")
	a.handleKey(ctx, tcell.KeyEnter, 0)
	assert.False(t, a.Prompting())
	assert.Equal(t, []string{"10"}, v.got)

	a.handleKey(ctx, tcell.KeyRune, 'r')
	assert.False(t, a.handleKey(ctx, tcell.KeyEscape, 0), "Esc in a prompt only cancels it")
	assert.False(t, a.Prompting())
}

func TestDrawRows(t *testing.T) {
	ctx := context.Background()
	s := newScreen(t)
	a := New(s, &fakeView{}, &fakeTicker{}, 0)

	_, _ = logging.GlobalLogCapture.Write([]byte("level=INFO msg=\"Range target set\" target=ISS\n"))
	a.Draw()
	assert.Equal(t, "VIEW", row(s, 0))
	assert.Equal(t, "a acq  r rate  Esc quit", row(s, 8))
	assert.Equal(t, "Range target set  target=ISS", row(s, 9))

	a.handleKey(ctx, tcell.KeyRune, 'r')
	typeText(ctx, a, "4")
	a.Draw()
	assert.Equal(t, "Rate: 4_", row(s, 8))
}

func TestRunTicksUntilCancelled(t *testing.T) {
	ticker := &fakeTicker{}
	a := New(newScreen(t), &fakeView{}, ticker, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, a.Run(ctx))
	assert.Positive(t, ticker.ticks)
}
