package hud

import (
	"log/slog"
	"reflect"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostic logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithGlobalHandler installs a handler that sees every event before the
// active panel does.
func WithGlobalHandler(h InputHandler) Option {
	return func(m *Manager) { m.global = h }
}

// Manager owns the active panel, the stack of suspended panels and the mount
// point the active panel is attached to.
//
// All methods must be called from the goroutine driving the game loop. A
// transition requested while another is running (typically from inside a
// lifecycle hook) is queued and runs once the current one has finished.
type Manager struct {
	mount     Mount
	active    Panel
	suspended []Panel
	modal     Modal
	global    InputHandler
	log       *slog.Logger

	busy    bool
	pending []transition
	journal journal
}

// journal records the hooks a running transition has called so a fault can
// be compensated. Closes are held back until the transition commits.
type journal struct {
	touched []touch
	closing []Panel
}

type touch struct {
	panel  Panel
	shown  bool
	opened bool
}

func (j *journal) track(p Panel) *touch {
	for i := range j.touched {
		if j.touched[i].panel == p {
			return &j.touched[i]
		}
	}
	j.touched = append(j.touched, touch{panel: p})
	return &j.touched[len(j.touched)-1]
}

type transition struct {
	op  string
	run func()
}

type snapshot struct {
	active    Panel
	suspended []Panel
}

// NewManager returns a Manager attached to mount. A nil mount gets a fresh Slot.
func NewManager(mount Mount, opts ...Option) *Manager {
	if mount == nil {
		mount = NewSlot()
	}
	m := &Manager{mount: mount, log: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Push suspends the active panel and makes p active. The displaced panel is
// hidden, not closed.
func (m *Manager) Push(p Panel) error {
	if isNil(p) {
		m.log.Error("hud: rejected transition", "op", "push", "err", ErrNilPanel)
		return ErrNilPanel
	}
	return m.transition("push", func() { m.push(p) })
}

// Pop closes the active panel and restores the most recently suspended one.
// With nothing suspended it does nothing.
func (m *Manager) Pop() error {
	return m.transition("pop", func() { m.pop() })
}

// Clear pops until nothing is suspended, leaving the bottom panel active.
func (m *Manager) Clear() error {
	return m.transition("clear", m.clear)
}

// Set discards every panel, the bottom one included, and makes p the only
// panel. Back navigation from p is a no-op.
func (m *Manager) Set(p Panel) error {
	if isNil(p) {
		m.log.Error("hud: rejected transition", "op", "set", "err", ErrNilPanel)
		return ErrNilPanel
	}
	return m.transition("set", func() {
		m.clear()
		if old := m.active; old != nil {
			m.hide(old)
			m.close(old)
			m.active = nil
			m.mount.DetachAll()
		}
		m.push(p)
	})
}

// InsertBelowTop opens p and places it directly beneath the active panel.
// p stays hidden until a later Pop makes it active; it is not re-opened then.
func (m *Manager) InsertBelowTop(p Panel) error {
	if isNil(p) {
		m.log.Error("hud: rejected transition", "op", "insert", "err", ErrNilPanel)
		return ErrNilPanel
	}
	return m.transition("insert", func() {
		m.open(p)
		m.suspended = append(m.suspended, p)
	})
}

// RouteInput delivers ev to the modal if one is showing, otherwise to the
// global handler and then to the active panel. It reports whether any layer
// consumed the event.
func (m *Manager) RouteInput(ev Event) (handled bool) {
	target := m.active
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("hud: input handler fault", "panel", Name(target), "panic", r)
			handled = true
		}
	}()
	if m.modal != nil {
		target = nil
		m.modal.HandleInput(ev)
		return true
	}
	if m.global != nil && m.global.HandleInput(ev) {
		return true
	}
	if target == nil {
		return false
	}
	return target.HandleInput(ev)
}

// StartModal shows content above the panel stack. Modals do not nest.
func (m *Manager) StartModal(content Modal) (err error) {
	if isNil(content) {
		return ErrNilModal
	}
	if m.modal != nil {
		m.log.Warn("hud: modal rejected", "current", Name(m.modal), "requested", Name(content))
		return ErrModalActive
	}
	m.modal = content
	defer func() {
		if r := recover(); r != nil {
			m.modal = nil
			err = &FaultError{Op: "start modal", Value: r}
			m.log.Error("hud: modal fault", "err", err)
		}
	}()
	content.Show()
	m.log.Debug("hud: modal started", "modal", Name(content))
	return nil
}

// EndModal removes the modal. The panel stack is untouched.
func (m *Manager) EndModal() error {
	if m.modal == nil {
		return ErrNoModal
	}
	m.log.Debug("hud: modal ended", "modal", Name(m.modal))
	m.modal = nil
	return nil
}

// SetLayerVisible shows or hides the whole panel layer.
func (m *Manager) SetLayerVisible(visible bool) { m.mount.SetVisible(visible) }

// LayerVisible reports whether the panel layer is drawn.
func (m *Manager) LayerVisible() bool { return m.mount.IsVisible() }

// Active returns the active panel or nil.
func (m *Manager) Active() Panel { return m.active }

// Suspended returns a copy of the suspended stack, bottom first.
func (m *Manager) Suspended() []Panel {
	out := make([]Panel, len(m.suspended))
	copy(out, m.suspended)
	return out
}

// Depth is the number of suspended panels.
func (m *Manager) Depth() int { return len(m.suspended) }

// Modal returns the showing modal or nil.
func (m *Manager) Modal() Modal { return m.modal }

// Busy reports whether a transition is running.
func (m *Manager) Busy() bool { return m.busy }

func (m *Manager) transition(op string, run func()) error {
	if m.busy {
		m.pending = append(m.pending, transition{op: op, run: run})
		m.log.Debug("hud: transition deferred", "op", op, "queued", len(m.pending))
		return nil
	}
	m.busy = true
	defer func() { m.busy = false }()

	err := m.apply(op, run)
	for len(m.pending) > 0 {
		next := m.pending[0]
		m.pending = m.pending[1:]
		if perr := m.apply(next.op, next.run); perr != nil && err == nil {
			err = perr
		}
	}
	m.pending = nil
	return err
}

func (m *Manager) apply(op string, run func()) (err error) {
	snap := snapshot{active: m.active, suspended: append([]Panel(nil), m.suspended...)}
	queued := len(m.pending)
	m.journal = journal{}
	defer func() {
		if r := recover(); r != nil {
			m.rollback(snap)
			// Work queued by the failed transition's hooks is dropped with it.
			m.pending = m.pending[:queued]
			err = &FaultError{Op: op, Value: r}
			m.log.Error("hud: transition rolled back", "op", op, "err", err)
		}
		m.journal = journal{}
	}()
	run()
	m.commit(op)
	m.log.Debug("hud: transition", "op", op, "active", Name(m.active), "depth", len(m.suspended))
	return nil
}

// commit closes the panels the transition left behind. The stack is already
// consistent, so a faulting Close is only logged.
func (m *Manager) commit(op string) {
	closing := m.journal.closing
	m.journal.closing = nil
	for _, p := range closing {
		m.guard(op+": close", p, p.Close)
	}
}

// rollback restores the snapshot and undoes the visibility changes made
// since: suspended panels are hidden again, panels opened by the transition
// are closed and the previous active panel is shown again.
func (m *Manager) rollback(s snapshot) {
	m.active = s.active
	m.suspended = s.suspended
	m.mount.DetachAll()
	if s.active != nil {
		m.mount.Attach(s.active)
	}

	touched := m.journal.touched
	m.journal = journal{}
	var reshow bool
	for _, t := range touched {
		switch {
		case t.panel == s.active:
			reshow = !t.shown
		case contains(s.suspended, t.panel):
			if t.shown {
				m.guard("rollback: hide", t.panel, t.panel.Hide)
			}
		case t.opened:
			m.guard("rollback: close", t.panel, t.panel.Close)
		}
	}
	if reshow {
		m.guard("rollback: show", s.active, s.active.Show)
	}
}

func (m *Manager) guard(op string, p Panel, hook func()) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("hud: lifecycle hook fault", "op", op, "panel", Name(p), "panic", r)
		}
	}()
	hook()
}

func (m *Manager) open(p Panel) {
	m.journal.track(p).opened = true
	p.Open()
}

func (m *Manager) show(p Panel) {
	m.journal.track(p).shown = true
	p.Show()
}

func (m *Manager) hide(p Panel) {
	m.journal.track(p).shown = false
	p.Hide()
}

func (m *Manager) close(p Panel) { m.journal.closing = append(m.journal.closing, p) }

func (m *Manager) push(p Panel) {
	if prev := m.active; prev != nil {
		m.hide(prev)
		m.suspended = append(m.suspended, prev)
		m.active = nil
	}
	m.open(p)
	m.attach(p)
	m.active = p
	m.show(p)
}

// pop shows the restored panel before the outgoing one is closed.
func (m *Manager) pop() bool {
	n := len(m.suspended)
	if n == 0 {
		m.log.Debug("hud: nothing to pop", "active", Name(m.active))
		return false
	}
	next := m.suspended[n-1]
	cur := m.active
	if cur != nil {
		m.hide(cur)
	}
	m.suspended = m.suspended[:n-1]
	m.attach(next)
	m.active = next
	m.show(next)
	if cur != nil {
		m.close(cur)
	}
	return true
}

func (m *Manager) clear() {
	for m.pop() {
	}
}

func (m *Manager) attach(p Panel) {
	m.mount.DetachAll()
	m.mount.Attach(p)
}

func contains(ps []Panel, p Panel) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
