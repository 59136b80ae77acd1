package game

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfStock is returned when removing more items than are held.
	ErrOutOfStock = errors.New("out of stock")
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Item is one inventory line.
type Item struct {
	Name  string
	Count int
}

// Inventory holds item counts in the order items were first acquired.
type Inventory struct {
	order  []string
	counts map[string]int
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{counts: map[string]int{}}
}

// Add increases the count of name by n.
func (inv *Inventory) Add(name string, n int) {
	if n <= 0 {
		return
	}
	if _, ok := inv.counts[name]; !ok {
		inv.order = append(inv.order, name)
	}
	inv.counts[name] += n
}

// Subtract removes one of name.
func (inv *Inventory) Subtract(name string) error {
	return inv.Take(name, 1)
}

// Take removes n of name, or nothing if fewer are held.
func (inv *Inventory) Take(name string, n int) error {
	if inv.counts[name] < n {
		return fmt.Errorf("take %d %q: %w", n, name, ErrOutOfStock)
	}
	inv.counts[name] -= n
	return nil
}

// Count returns how many of name are held.
func (inv *Inventory) Count(name string) int { return inv.counts[name] }

// Items lists every item ever acquired, including those at zero.
func (inv *Inventory) Items() []Item {
	out := make([]Item, 0, len(inv.order))
	for _, name := range inv.order {
		out = append(out, Item{Name: name, Count: inv.counts[name]})
	}
	return out
}

// Bank tracks the player's coins.
type Bank struct {
	balance int
}

// NewBank returns a bank holding balance coins.
func NewBank(balance int) *Bank { return &Bank{balance: balance} }

// Balance returns the current coin count.
func (b *Bank) Balance() int { return b.balance }

// Credit adds amount coins.
func (b *Bank) Credit(amount int) {
	if amount > 0 {
		b.balance += amount
	}
}

// Debit removes amount coins if the balance allows it.
func (b *Bank) Debit(amount int) error {
	if amount > b.balance {
		return fmt.Errorf("debit %d of %d: %w", amount, b.balance, ErrInsufficientFunds)
	}
	b.balance -= amount
	return nil
}
