package widget

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/a-h/templ"
	"github.com/dasdy/bookvote/model"
)

// ActiveColor is the style of an active vote indicator.
const ActiveColor = "rgb(255, 102, 0)"

// Indicator is one of the two vote arrows of a row.
type Indicator struct {
	active bool
}

func (i *Indicator) Active() bool {
	return i.active
}

// Color returns the indicator style, empty when inactive.
func (i *Indicator) Color() string {
	if i.active {
		return ActiveColor
	}

	return ""
}

// CountDisplay holds the rendered vote count of a row. It is written from
// submission goroutines, hence the lock.
type CountDisplay struct {
	lock sync.RWMutex
	html string
}

func (c *CountDisplay) HTML() string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.html
}

// Render replaces the display with the output of component. The previous
// content is kept if rendering fails.
func (c *CountDisplay) Render(ctx context.Context, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return fmt.Errorf("could not render count: %w", err)
	}

	c.lock.Lock()
	c.html = buf.String()
	c.lock.Unlock()

	return nil
}

// Row is the handle to one listed bookmark and its vote controls.
type Row struct {
	Index int
	Title string
	Up    Indicator
	Down  Indicator
	Count CountDisplay

	lock sync.Mutex
}

// NewRow creates a row whose indicators reflect the given state.
func NewRow(index int, title string, state model.VoteState) *Row {
	row := &Row{Index: index, Title: title}
	row.setState(state)

	return row
}

// State derives the row state from its indicators.
func (r *Row) State() model.VoteState {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.state()
}

func (r *Row) state() model.VoteState {
	switch {
	case r.Up.active:
		return model.StateUp
	case r.Down.active:
		return model.StateDown
	default:
		return model.StateNone
	}
}

func (r *Row) setState(state model.VoteState) {
	r.Up.active = state == model.StateUp
	r.Down.active = state == model.StateDown
}

// toggle applies the click and returns the resulting state.
func (r *Row) toggle(d model.Direction) model.VoteState {
	r.lock.Lock()
	defer r.lock.Unlock()

	next := r.state().Next(d)
	r.setState(next)

	return next
}

// Colors returns the up and down indicator styles.
func (r *Row) Colors() (string, string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.Up.Color(), r.Down.Color()
}
