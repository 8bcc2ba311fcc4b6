package grid

import "testing"

func TestToScreen(t *testing.T) {
	// Origin tile lands on the canvas offsets.
	s := Position{X: 0, Y: 0}.ToScreen()
	if s.X != OffsetX || s.Y != OffsetY {
		t.Errorf("Expected origin at (%d,%d), got (%v,%v)", OffsetX, OffsetY, s.X, s.Y)
	}

	s = Position{X: 18, Y: 14}.ToScreen()
	if s.X != float64(18-14)*(TileWidth/2)+OffsetX {
		t.Errorf("Unexpected screen X for kitchen tile: %v", s.X)
	}
	if s.Y != float64(18+14)*(TileHeight/2)+OffsetY {
		t.Errorf("Unexpected screen Y for kitchen tile: %v", s.Y)
	}
}

func TestFromScreenRoundTrip(t *testing.T) {
	tiles := []Position{{0, 0}, {10, 1}, {5, 12}, {18, 14}, {12, 12}}
	for _, p := range tiles {
		got := FromScreen(p.ToScreen())
		if got != p {
			t.Errorf("Round trip for %v returned %v", p, got)
		}
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Position{0, 0}, Position{3, 4}); d != 5 {
		t.Errorf("Expected distance 5, got %v", d)
	}
	if d := Distance(Position{7, 7}, Position{7, 7}); d != 0 {
		t.Errorf("Expected zero distance, got %v", d)
	}
}
