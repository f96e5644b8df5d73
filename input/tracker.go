package input

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slingshot/parameter"
	"github.com/lixenwraith/slingshot/physics"
)

// Action is what the game loop should do after an input event
type Action uint8

const (
	ActionNone Action = iota
	ActionReset
	ActionQuit
	ActionResize
)

func (a Action) String() string {
	switch a {
	case ActionReset:
		return "reset"
	case ActionQuit:
		return "quit"
	case ActionResize:
		return "resize"
	default:
		return "none"
	}
}

// World is the part of the simulation the pointer interacts with
// *physics.World satisfies it
type World interface {
	BodyAt(p physics.Point) (physics.BodyRef, bool)
	AddConstraint(spec physics.ConstraintSpec) (physics.ConstraintRef, error)
	RemoveConstraint(ref physics.ConstraintRef) error
	SetConstraintAnchor(ref physics.ConstraintRef, anchor physics.Point) error
}

// Region is a rectangle of terminal cells
type Region struct {
	X, Y, Width, Height int
}

// Contains reports whether cell (x, y) lies inside r
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// CellToWorld maps a terminal cell to the world pixel at its center
func CellToWorld(x, y int) physics.Point {
	return physics.Point{
		X: float64(x)*parameter.CellWidth + parameter.CellWidth/2,
		Y: float64(y)*parameter.CellHeight + parameter.CellHeight/2,
	}
}

// Tracker turns terminal mouse events into pointer drags on bodies
// A drag attaches a pointer joint from the cursor to the grabbed point of the body; releasing it
// removes the joint and reports the body to every drag-end subscriber
type Tracker struct {
	world World

	held   bool
	body   physics.BodyRef
	spring physics.ConstraintRef

	resetButton Region
	handlers    []func(physics.BodyRef)
	log         zerolog.Logger
}

// NewTracker creates a tracker picking bodies from world
func NewTracker(world World, logger zerolog.Logger) *Tracker {
	return &Tracker{
		world: world,
		log:   logger.With().Str("component", "input").Logger(),
	}
}

// OnDragEnd subscribes h to drag releases, it receives the body that was dragged
func (t *Tracker) OnDragEnd(h func(body physics.BodyRef)) {
	if h != nil {
		t.handlers = append(t.handlers, h)
	}
}

// SetResetButton sets the clickable cells of the reset button
func (t *Tracker) SetResetButton(r Region) {
	t.resetButton = r
}

// Dragging returns the body under the pointer spring, if any
func (t *Tracker) Dragging() (physics.BodyRef, bool) {
	return t.body, t.body != 0
}

// HandleEvent processes one terminal event
func (t *Tracker) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keyAction(ev)

	case *tcell.EventMouse:
		x, y := ev.Position()
		if ev.Buttons()&tcell.Button1 != 0 {
			if t.held {
				t.move(CellToWorld(x, y))
				return ActionNone
			}
			t.held = true
			if t.resetButton.Contains(x, y) {
				return ActionReset
			}
			t.press(CellToWorld(x, y))
			return ActionNone
		}
		if t.held {
			t.held = false
			t.release()
		}

	case *tcell.EventResize:
		return ActionResize
	}
	return ActionNone
}

func keyAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return ActionQuit
		case 'r', 'R':
			return ActionReset
		}
	}
	return ActionNone
}

// press picks the body under p and starts dragging it
func (t *Tracker) press(p physics.Point) {
	ref, ok := t.world.BodyAt(p)
	if !ok {
		return
	}
	spring, err := t.world.AddConstraint(physics.ConstraintSpec{
		Kind:      physics.ConstraintPointer,
		Anchor:    p,
		Body:      ref,
		Stiffness: parameter.DragStiffness,
		Damping:   parameter.DragDamping,
	})
	if err != nil {
		t.log.Warn().Err(err).Uint64("body", uint64(ref)).Msg("start drag")
		return
	}
	t.body, t.spring = ref, spring
	t.log.Debug().Uint64("body", uint64(ref)).Msg("drag start")
}

// move drags the spring anchor to p
func (t *Tracker) move(p physics.Point) {
	if t.body == 0 {
		return
	}
	if err := t.world.SetConstraintAnchor(t.spring, p); err != nil {
		// body was removed underneath the pointer
		t.log.Debug().Err(err).Msg("drag lost")
		t.spring = 0
	}
}

// release ends the drag and notifies subscribers
func (t *Tracker) release() {
	body := t.body
	if body == 0 {
		return
	}
	if t.spring != 0 {
		if err := t.world.RemoveConstraint(t.spring); err != nil && !errors.Is(err, physics.ErrStaleConstraint) {
			t.log.Warn().Err(err).Msg("end drag")
		}
	}
	t.body, t.spring = 0, 0
	t.log.Debug().Uint64("body", uint64(body)).Msg("drag end")
	for _, h := range t.handlers {
		h(body)
	}
}

// Cancel drops an active drag without notifying subscribers
func (t *Tracker) Cancel() {
	if t.spring != 0 {
		_ = t.world.RemoveConstraint(t.spring)
	}
	t.held = false
	t.body, t.spring = 0, 0
}
