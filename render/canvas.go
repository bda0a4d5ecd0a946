package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// Canvas maps level coordinates onto terminal cells below the HUD rows
type Canvas struct {
	screen tcell.Screen

	cols, rows     int
	worldW, worldH float64
	scaleX, scaleY float64
}

// NewCanvas wraps screen
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen}
}

// begin clears the screen and fits the level into the current size
func (c *Canvas) begin(worldW, worldH float64) {
	c.screen.Clear()
	c.Fit(worldW, worldH)
}

// Fit recomputes the scale for the current screen size
func (c *Canvas) Fit(worldW, worldH float64) {
	c.cols, c.rows = c.screen.Size()
	c.worldW, c.worldH = worldW, worldH
	field := c.rows - parameter.HUDRows
	if worldW <= 0 || worldH <= 0 || c.cols <= 0 || field <= 0 {
		c.scaleX, c.scaleY = 0, 0
		return
	}
	c.scaleX = float64(c.cols) / worldW
	c.scaleY = float64(field) / worldH
}

// ToCell converts a level point to a cell, ok false outside the field
func (c *Canvas) ToCell(p vmath.Vec2) (x, y int, ok bool) {
	if c.scaleX == 0 || !p.IsFinite() {
		return 0, 0, false
	}
	x = int(p.X * c.scaleX)
	y = parameter.HUDRows + int(p.Y*c.scaleY)
	if p.X < 0 || p.Y < 0 || x >= c.cols || y >= c.rows {
		return 0, 0, false
	}
	return x, y, true
}

// ToWorld converts a cell to the level point at its center, ok false on the HUD or off-field
func (c *Canvas) ToWorld(x, y int) (vmath.Vec2, bool) {
	if c.scaleX == 0 || x < 0 || x >= c.cols || y < parameter.HUDRows || y >= c.rows {
		return vmath.Vec2{}, false
	}
	return vmath.V(
		(float64(x)+0.5)/c.scaleX,
		(float64(y-parameter.HUDRows)+0.5)/c.scaleY,
	), true
}

// Length converts a level distance along x into cells
func (c *Canvas) Length(d float64) int {
	return int(d * c.scaleX)
}

// Put draws r at a level point
func (c *Canvas) Put(p vmath.Vec2, r rune, style tcell.Style) {
	if x, y, ok := c.ToCell(p); ok {
		c.screen.SetContent(x, y, r, nil, style)
	}
}

// PutCell draws r at a cell, clipped to the screen
func (c *Canvas) PutCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// Text writes s starting at a cell, returns the column after it
func (c *Canvas) Text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		c.PutCell(x, y, r, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}

// Size returns the screen size in cells
func (c *Canvas) Size() (int, int) {
	return c.cols, c.rows
}
