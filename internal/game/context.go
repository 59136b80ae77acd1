// Package game holds the state shared between panels: the locale, the
// player's inventory and coins, their land and the current level.
package game

import "phoenicia/internal/level"

// Placement is an item picked in a placement panel waiting to be put on the
// world by the next unconsumed tap.
type Placement struct {
	Kind uint8
	Name string
}

// Context is handed to every panel at construction. Only the panel currently
// handling input writes to it.
type Context struct {
	Locale    *level.Locale
	Inventory *Inventory
	Bank      *Bank
	World     *World
	Level     *level.Level
	Debug     bool

	pending *Placement
}

// NewContext builds a context positioned at the level with index start.
func NewContext(loc *level.Locale, start, coins, worldW, worldH int) *Context {
	lvl, ok := loc.Level(start)
	if !ok {
		lvl, _ = loc.Level(0)
	}
	return &Context{
		Locale:    loc,
		Inventory: NewInventory(),
		Bank:      NewBank(coins),
		World:     NewWorld(worldW, worldH),
		Level:     lvl,
	}
}

// Select records an item to place on the world.
func (c *Context) Select(kind uint8, name string) {
	c.pending = &Placement{Kind: kind, Name: name}
}

// Pending returns the selected placement, if any.
func (c *Context) Pending() (Placement, bool) {
	if c.pending == nil {
		return Placement{}, false
	}
	return *c.pending, true
}

// PlaceAt drops the pending selection at world cell (x, y). Letters and
// words are taken out of the inventory.
func (c *Context) PlaceAt(x, y int) bool {
	p, ok := c.Pending()
	if !ok {
		return false
	}
	if p.Kind == TileLetter || p.Kind == TileWord {
		if c.Inventory.Count(p.Name) == 0 {
			c.pending = nil
			return false
		}
	}
	if !c.World.Place(x, y, p.Kind, p.Name) {
		return false
	}
	if p.Kind == TileLetter || p.Kind == TileWord {
		_ = c.Inventory.Subtract(p.Name)
	}
	c.pending = nil
	return true
}

// RequirementsMet reports whether the inventory satisfies the current
// level's requirements.
func (c *Context) RequirementsMet() bool {
	if c.Level == nil {
		return false
	}
	for _, req := range c.Level.Requirements {
		if c.Inventory.Count(req.Item) < req.Count {
			return false
		}
	}
	return true
}

// Advance moves to the next level and reports whether there was one.
func (c *Context) Advance() (*level.Level, bool) {
	next, ok := c.Locale.Next(c.Level)
	if !ok {
		return nil, false
	}
	c.Level = next
	return next, true
}
