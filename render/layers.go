package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// Glyphs
const (
	GlyphTrack      = '═'
	GlyphTrain      = '█'
	GlyphEscalator  = '▲'
	GlyphCompliant  = 'o'
	GlyphDisruptive = '@'
	GlyphExiting    = '·'
	GlyphBlast      = '*'
	GlyphBombArmed  = '◎'
	GlyphBeam       = '┃'
)

var (
	styleTrack      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTrain      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleEscalator  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCompliant  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDisruptive = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFaded      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleEffect     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleGameOver   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

func drawTracks(s *engine.Snapshot, c *Canvas) {
	cols, _ := c.Size()
	for _, y := range s.Tracks {
		_, row, ok := c.ToCell(vmath.V(0, y))
		if !ok {
			continue
		}
		for x := 0; x < cols; x++ {
			c.PutCell(x, row, GlyphTrack, styleTrack)
		}
	}
}

func drawEscalators(s *engine.Snapshot, c *Canvas) {
	for _, e := range s.Escalators {
		x, y, ok := c.ToCell(e.Position)
		if !ok {
			continue
		}
		half := c.Length(e.Width) / 2
		for dx := -half; dx <= half; dx++ {
			c.PutCell(x+dx, y, GlyphEscalator, styleEscalator)
		}
		if e.QueueLen > 0 {
			c.Text(x+half+1, y, fmt.Sprintf("%d", e.QueueLen), styleEscalator)
		}
	}
}

func drawTrains(s *engine.Snapshot, c *Canvas) {
	for _, t := range s.Trains {
		x, y, ok := c.ToCell(t.Position)
		if !ok {
			continue
		}
		half := c.Length(parameter.TrainWidth) / 2
		for dx := -half; dx <= half; dx++ {
			c.PutCell(x+dx, y, GlyphTrain, styleTrain)
		}
	}
}

func drawNPCs(s *engine.Snapshot, c *Canvas) {
	for _, n := range s.NPCs {
		glyph, style := GlyphCompliant, styleCompliant
		if n.Disposition == component.Disruptive {
			glyph, style = GlyphDisruptive, styleDisruptive
		}
		if n.State == component.StateExiting {
			if n.Opacity < 0.5 {
				glyph = GlyphExiting
			}
			style = styleFaded
		}
		c.Put(n.Position, glyph, style)
	}
}

func drawEffects(s *engine.Snapshot, c *Canvas) {
	for _, e := range s.Effects {
		switch e.Kind {
		case attack.KindArea:
			ring(c, e.Origin, e.Radius*(0.5+0.5*e.Progress()), GlyphBlast)
		case attack.KindBomb:
			if e.Armed {
				c.Put(e.Origin, GlyphBombArmed, styleEffect)
				continue
			}
			ring(c, e.Origin, e.Radius*(0.5+0.5*e.Progress()), GlyphBlast)
		case attack.KindBeam:
			beam(c, e)
		}
	}
}

func ring(c *Canvas, origin vmath.Vec2, radius float64, glyph rune) {
	for i := 0; i < parameter.EffectRingPoints; i++ {
		a := 2 * math.Pi * float64(i) / parameter.EffectRingPoints
		c.Put(origin.Add(vmath.V(math.Cos(a), math.Sin(a)).Scale(radius)), glyph, styleEffect)
	}
}

func beam(c *Canvas, e attack.Effect) {
	dir := e.Direction.Normalize()
	if dir.IsZero() {
		return
	}
	// Step finer than a cell so no row is skipped
	step := 1.0
	if c.scaleY > 0 {
		step = 0.5 / c.scaleY
	}
	for d := 0.0; d <= e.Length; d += step {
		c.Put(e.Origin.Add(dir.Scale(d)), GlyphBeam, styleEffect)
	}
}

func drawHUD(s *engine.Snapshot, c *Canvas) {
	cols, _ := c.Size()
	for x := 0; x < cols; x++ {
		c.PutCell(x, 0, ' ', styleHUD)
	}

	x := c.Text(1, 0, s.LevelName, styleHUD)
	x = c.Text(x+2, 0, fmt.Sprintf("SCORE %d", s.Score), styleHUD)
	x = c.Text(x+2, 0, formatRemaining(s.Remaining), styleHUD)
	if s.Attack.Name != "" {
		x = c.Text(x+2, 0, s.Attack.Name+" ", styleHUD)
		c.Text(x, 0, CooldownBar(s.Attack.Cooldown, parameter.CooldownBarWidth), styleHUD)
	}

	if s.Over {
		msg := fmt.Sprintf(" GAME OVER  score %d ", s.Score)
		_, rows := c.Size()
		c.Text(max((cols-len(msg))/2, 0), rows/2, msg, styleGameOver)
	}
}

// CooldownBar renders fraction (1 = ready) as a fixed-width gauge
func CooldownBar(fraction float64, width int) string {
	filled := int(math.Round(vmath.Clamp(fraction, 0, 1) * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
