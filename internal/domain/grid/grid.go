// Package grid provides the isometric floor-plan coordinate system.
// This package is PURE and must NOT import any infrastructure packages.
package grid

import "math"

// Tile geometry and canvas offsets shared with the renderer.
const (
	TileWidth  = 64
	TileHeight = 32
	OffsetX    = 640
	OffsetY    = 100
)

// Position is a grid (tile) coordinate on the office floor.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ScreenPoint is a pixel coordinate on the renderer's canvas.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToScreen projects a grid position onto the renderer's canvas.
func (p Position) ToScreen() ScreenPoint {
	return ScreenPoint{
		X: float64(p.X-p.Y)*(TileWidth/2) + OffsetX,
		Y: float64(p.X+p.Y)*(TileHeight/2) + OffsetY,
	}
}

// FromScreen inverts ToScreen. Fractional tiles are truncated toward zero.
func FromScreen(s ScreenPoint) Position {
	x := s.X - OffsetX
	y := s.Y - OffsetY

	isoX := (x/(TileWidth/2) + y/(TileHeight/2)) / 2
	isoY := (y/(TileHeight/2) - x/(TileWidth/2)) / 2

	return Position{X: int(isoX), Y: int(isoY)}
}

// Distance returns the euclidean distance between two grid positions.
func Distance(a, b Position) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
