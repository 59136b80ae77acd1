package game

// Tile kinds stored in the world grid.
const (
	TileEmpty uint8 = iota
	TileLetter
	TileWord
	TileDecoration
	TileGame
)

// World is the player's land, a row-major grid of tile kinds plus the name
// of whatever was placed on each cell.
type World struct {
	W, H  int
	cells []uint8
	names []string
}

// NewWorld allocates a world with the given dimensions.
func NewWorld(w, h int) *World {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &World{W: w, H: h, cells: make([]uint8, w*h), names: make([]string, w*h)}
}

// Cells exposes the backing slice for rendering.
func (w *World) Cells() []uint8 { return w.cells }

// Index returns the linear slice index for coordinates (x, y).
func (w *World) Index(x, y int) int { return y*w.W + x }

// In reports whether (x, y) lies inside the world.
func (w *World) In(x, y int) bool { return x >= 0 && y >= 0 && x < w.W && y < w.H }

// At returns the tile kind and name at (x, y).
func (w *World) At(x, y int) (uint8, string) {
	if !w.In(x, y) {
		return TileEmpty, ""
	}
	i := w.Index(x, y)
	return w.cells[i], w.names[i]
}

// Place puts a tile on an empty cell and reports whether it was placed.
func (w *World) Place(x, y int, kind uint8, name string) bool {
	if !w.In(x, y) || kind == TileEmpty {
		return false
	}
	i := w.Index(x, y)
	if w.cells[i] != TileEmpty {
		return false
	}
	w.cells[i] = kind
	w.names[i] = name
	return true
}

// Clear removes every tile.
func (w *World) Clear() {
	for i := range w.cells {
		w.cells[i] = TileEmpty
		w.names[i] = ""
	}
}

// Workshop is the decoration that opens the word workshop when tapped.
const Workshop = "workshop"

// Decorations lists the placeable decorations.
var Decorations = []string{Workshop, "tree", "fountain", "flowers"}
