package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cutin-killer/vmath"
)

// ActionKind is what a terminal event asks the game loop to do
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionAttack
	ActionResize
)

// Action is a translated terminal event
type Action struct {
	Kind   ActionKind
	Target vmath.Vec2 // Level point for ActionAttack
}

// Input translates tcell events using the canvas viewport
// Only the press edge of the primary button attacks; holding does not repeat
type Input struct {
	canvas  *Canvas
	pressed bool
}

// NewInput binds input translation to canvas
func NewInput(canvas *Canvas) *Input {
	return &Input{canvas: canvas}
}

// Translate converts ev into an Action
func (in *Input) Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return Action{Kind: ActionQuit}
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return Action{Kind: ActionQuit}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		edge := down && !in.pressed
		in.pressed = down
		if !edge {
			return Action{}
		}
		x, y := ev.Position()
		if p, ok := in.canvas.ToWorld(x, y); ok {
			return Action{Kind: ActionAttack, Target: p}
		}

	case *tcell.EventResize:
		return Action{Kind: ActionResize}
	}
	return Action{}
}
