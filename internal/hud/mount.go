package hud

// Mount is the render-tree slot that displays the active panel. It holds at
// most one child and never owns it.
type Mount interface {
	Attach(p Panel)
	DetachAll()
	SetVisible(visible bool)
	IsVisible() bool
}

// Slot is the default single-child Mount.
type Slot struct {
	child  Panel
	hidden bool
}

// NewSlot returns an empty, visible slot.
func NewSlot() *Slot { return &Slot{} }

// Attach replaces the current child with p.
func (s *Slot) Attach(p Panel) { s.child = p }

// DetachAll removes the child, if any.
func (s *Slot) DetachAll() { s.child = nil }

// Child returns the attached panel or nil.
func (s *Slot) Child() Panel { return s.child }

// SetVisible toggles visibility of the whole layer.
func (s *Slot) SetVisible(visible bool) { s.hidden = !visible }

// IsVisible reports whether the layer is drawn.
func (s *Slot) IsVisible() bool { return !s.hidden }
