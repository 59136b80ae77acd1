package hud

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

type lifecycle int

const (
	created lifecycle = iota
	hidden
	shown
	closed
)

type fakePanel struct {
	name  string
	state lifecycle
	calls []string
	input []Event

	consume bool
	onHide  func()
	onShow  func()
	onInput func(Event)
	t       *testing.T
}

func newFake(t *testing.T, name string) *fakePanel {
	return &fakePanel{name: name, t: t, consume: true}
}

func (p *fakePanel) Name() string { return p.name }

func (p *fakePanel) Open() {
	if p.state != created {
		p.t.Fatalf("%s: open in state %d", p.name, p.state)
	}
	p.calls = append(p.calls, "open")
	p.state = hidden
}

func (p *fakePanel) Close() {
	if p.state == closed || p.state == created {
		p.t.Fatalf("%s: close in state %d", p.name, p.state)
	}
	p.calls = append(p.calls, "close")
	p.state = closed
}

func (p *fakePanel) Show() {
	if p.state == closed || p.state == created {
		p.t.Fatalf("%s: show in state %d", p.name, p.state)
	}
	p.calls = append(p.calls, "show")
	p.state = shown
	if p.onShow != nil {
		p.onShow()
	}
}

func (p *fakePanel) Hide() {
	if p.state == closed || p.state == created {
		p.t.Fatalf("%s: hide in state %d", p.name, p.state)
	}
	p.calls = append(p.calls, "hide")
	p.state = hidden
	if p.onHide != nil {
		p.onHide()
	}
}

func (p *fakePanel) HandleInput(ev Event) bool {
	p.input = append(p.input, ev)
	if p.onInput != nil {
		p.onInput(ev)
	}
	return p.consume
}

func (p *fakePanel) count(call string) int {
	n := 0
	for _, c := range p.calls {
		if c == call {
			n++
		}
	}
	return n
}

type fakeModal struct {
	shown  int
	events []Event
}

func (m *fakeModal) Show()                     { m.shown++ }
func (m *fakeModal) HandleInput(ev Event) bool { m.events = append(m.events, ev); return false }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager() (*Manager, *Slot) {
	slot := NewSlot()
	return NewManager(slot, WithLogger(quietLogger())), slot
}

func checkInvariants(t *testing.T, m *Manager, slot *Slot) {
	t.Helper()
	if m.Active() == nil {
		if slot.Child() != nil {
			t.Fatalf("mount holds %s with no active panel", Name(slot.Child()))
		}
	} else {
		if slot.Child() != m.Active() {
			t.Fatalf("mount holds %s, active is %s", Name(slot.Child()), Name(m.Active()))
		}
		if fp, ok := m.Active().(*fakePanel); ok && fp.state != shown {
			t.Fatalf("active %s in state %d, want shown", fp.name, fp.state)
		}
	}
	for _, p := range m.Suspended() {
		if fp, ok := p.(*fakePanel); ok && fp.state != hidden {
			t.Fatalf("suspended %s in state %d, want hidden", fp.name, fp.state)
		}
	}
}

func names(ps []Panel) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, Name(p))
	}
	return out
}

func TestPushSuspendsWithoutClosing(t *testing.T) {
	m, slot := newTestManager()
	a, b := newFake(t, "a"), newFake(t, "b")

	if err := m.Push(a); err != nil {
		t.Fatalf("push a: %v", err)
	}
	if err := m.Push(b); err != nil {
		t.Fatalf("push b: %v", err)
	}
	checkInvariants(t, m, slot)

	if m.Active() != b {
		t.Fatalf("active = %s, want b", Name(m.Active()))
	}
	if got := strings.Join(a.calls, ","); got != "open,show,hide" {
		t.Fatalf("a calls = %s", got)
	}
	if got := strings.Join(b.calls, ","); got != "open,show" {
		t.Fatalf("b calls = %s", got)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	m, slot := newTestManager()
	a, b := newFake(t, "a"), newFake(t, "b")
	m.Push(a)
	m.Push(b)

	if err := m.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	checkInvariants(t, m, slot)

	if m.Active() != a {
		t.Fatalf("active = %s, want a", Name(m.Active()))
	}
	if m.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", m.Depth())
	}
	if a.count("open") != 1 {
		t.Fatalf("a opened %d times, want 1", a.count("open"))
	}
	if got := strings.Join(b.calls, ","); got != "open,show,hide,close" {
		t.Fatalf("b calls = %s", got)
	}
}

func TestPopEmptyIsNoop(t *testing.T) {
	m, slot := newTestManager()
	if err := m.Pop(); err != nil {
		t.Fatalf("pop on empty manager: %v", err)
	}
	if m.Active() != nil || slot.Child() != nil {
		t.Fatalf("pop on empty manager changed state")
	}

	base := newFake(t, "base")
	m.Push(base)
	before := append([]string(nil), base.calls...)
	if err := m.Pop(); err != nil {
		t.Fatalf("pop at base: %v", err)
	}
	if m.Active() != base || slot.Child() != base || m.Depth() != 0 {
		t.Fatalf("pop at base changed state")
	}
	if !reflect.DeepEqual(before, base.calls) {
		t.Fatalf("pop at base invoked hooks: %v -> %v", before, base.calls)
	}
}

func TestScenarioInventoryMarket(t *testing.T) {
	m, slot := newTestManager()
	p0, inv, market := newFake(t, "default"), newFake(t, "inventory"), newFake(t, "market")

	steps := []struct {
		name      string
		do        func() error
		active    Panel
		suspended []string
	}{
		{"push default", func() error { return m.Push(p0) }, p0, []string{}},
		{"push inventory", func() error { return m.Push(inv) }, inv, []string{"default"}},
		{"push market", func() error { return m.Push(market) }, market, []string{"default", "inventory"}},
		{"pop market", m.Pop, inv, []string{"default"}},
		{"pop inventory", m.Pop, p0, []string{}},
		{"pop at base", m.Pop, p0, []string{}},
	}
	for _, step := range steps {
		if err := step.do(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		checkInvariants(t, m, slot)
		if m.Active() != step.active {
			t.Fatalf("%s: active = %s, want %s", step.name, Name(m.Active()), Name(step.active))
		}
		if got := names(m.Suspended()); !reflect.DeepEqual(got, step.suspended) {
			t.Fatalf("%s: suspended = %v, want %v", step.name, got, step.suspended)
		}
	}
	if market.state != closed || inv.state != closed {
		t.Fatalf("popped panels not closed: market=%d inventory=%d", market.state, inv.state)
	}
}

func TestSetReplacesWholeStack(t *testing.T) {
	m, slot := newTestManager()
	panels := []*fakePanel{newFake(t, "p0"), newFake(t, "p1"), newFake(t, "p2"), newFake(t, "p3")}
	for _, p := range panels {
		m.Push(p)
	}
	x := newFake(t, "x")
	if err := m.Set(x); err != nil {
		t.Fatalf("set: %v", err)
	}
	checkInvariants(t, m, slot)

	if m.Active() != x || m.Depth() != 0 {
		t.Fatalf("after set active=%s depth=%d", Name(m.Active()), m.Depth())
	}
	for _, p := range panels {
		if p.count("close") != 1 {
			t.Fatalf("%s closed %d times, want 1", p.name, p.count("close"))
		}
	}
	if err := m.Pop(); err != nil || m.Active() != x {
		t.Fatalf("pop after set should be a no-op")
	}
}

func TestSetOnEmptyManager(t *testing.T) {
	m, slot := newTestManager()
	x := newFake(t, "x")
	if err := m.Set(x); err != nil {
		t.Fatalf("set: %v", err)
	}
	checkInvariants(t, m, slot)
	if m.Active() != x {
		t.Fatalf("active = %s", Name(m.Active()))
	}
}

func TestClearIsIdempotent(t *testing.T) {
	m, slot := newTestManager()
	base, a, b := newFake(t, "base"), newFake(t, "a"), newFake(t, "b")
	m.Push(base)
	m.Push(a)
	m.Push(b)

	if err := m.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	checkInvariants(t, m, slot)
	first := append([]string(nil), base.calls...)
	if m.Active() != base || m.Depth() != 0 {
		t.Fatalf("after clear active=%s depth=%d", Name(m.Active()), m.Depth())
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if m.Active() != base || m.Depth() != 0 || !reflect.DeepEqual(first, base.calls) {
		t.Fatalf("second clear changed observable state")
	}
	if a.state != closed || b.state != closed {
		t.Fatalf("cleared panels not closed")
	}
}

func TestInsertBelowTop(t *testing.T) {
	m, slot := newTestManager()
	base, levelUp, intro := newFake(t, "base"), newFake(t, "new-level"), newFake(t, "intro")
	m.Push(base)
	m.Push(levelUp)

	if err := m.InsertBelowTop(intro); err != nil {
		t.Fatalf("insert: %v", err)
	}
	checkInvariants(t, m, slot)
	if got := strings.Join(intro.calls, ","); got != "open" {
		t.Fatalf("intro calls = %s, want open only", got)
	}
	if m.Active() != levelUp {
		t.Fatalf("insert changed active to %s", Name(m.Active()))
	}

	m.Pop()
	if m.Active() != intro {
		t.Fatalf("after pop active = %s, want intro", Name(m.Active()))
	}
	if intro.count("open") != 1 || intro.count("show") != 1 {
		t.Fatalf("intro calls = %v", intro.calls)
	}
	m.Pop()
	if m.Active() != base {
		t.Fatalf("after second pop active = %s, want base", Name(m.Active()))
	}
	checkInvariants(t, m, slot)
}

func TestNilPanelRejected(t *testing.T) {
	m, slot := newTestManager()
	base := newFake(t, "base")
	m.Push(base)

	var typed *fakePanel
	for name, op := range map[string]func() error{
		"push":        func() error { return m.Push(nil) },
		"typed push":  func() error { return m.Push(typed) },
		"set":         func() error { return m.Set(nil) },
		"insert":      func() error { return m.InsertBelowTop(nil) },
		"start modal": func() error { return m.StartModal(nil) },
	} {
		err := op()
		if !errors.Is(err, ErrNilPanel) && !errors.Is(err, ErrNilModal) {
			t.Fatalf("%s: err = %v", name, err)
		}
	}
	checkInvariants(t, m, slot)
	if m.Active() != base || m.Depth() != 0 {
		t.Fatalf("rejected transitions changed state")
	}
}

func TestRouteInputReachesActiveOnly(t *testing.T) {
	m, _ := newTestManager()
	b, a := newFake(t, "b"), newFake(t, "a")
	m.Push(b)
	m.Push(a)

	ev := Event{Kind: TouchUp, X: 10, Y: 20}
	if !m.RouteInput(ev) {
		t.Fatalf("event not reported as handled")
	}
	if len(a.input) != 1 || a.input[0] != ev {
		t.Fatalf("active got %v", a.input)
	}
	if len(b.input) != 0 {
		t.Fatalf("suspended panel received input: %v", b.input)
	}

	a.consume = false
	if m.RouteInput(ev) {
		t.Fatalf("unconsumed event reported as handled")
	}
}

func TestRouteInputWithoutActive(t *testing.T) {
	m, _ := newTestManager()
	if m.RouteInput(Event{Kind: TouchDown}) {
		t.Fatalf("event handled with no active panel")
	}
}

func TestGlobalHandlerRunsFirst(t *testing.T) {
	var seen []EventKind
	slot := NewSlot()
	m := NewManager(slot, WithLogger(quietLogger()), WithGlobalHandler(InputFunc(func(ev Event) bool {
		seen = append(seen, ev.Kind)
		return ev.Kind == Back
	})))
	a := newFake(t, "a")
	m.Push(a)

	if !m.RouteInput(Event{Kind: Back}) {
		t.Fatalf("back not handled")
	}
	if len(a.input) != 0 {
		t.Fatalf("global event leaked to panel")
	}
	m.RouteInput(Event{Kind: TouchUp})
	if len(a.input) != 1 || len(seen) != 2 {
		t.Fatalf("panel input=%d global seen=%d", len(a.input), len(seen))
	}
}

func TestModalLeavesStackUntouched(t *testing.T) {
	m, slot := newTestManager()
	base, a := newFake(t, "base"), newFake(t, "a")
	m.Push(base)
	m.Push(a)
	baseCalls := append([]string(nil), base.calls...)
	aCalls := append([]string(nil), a.calls...)

	tour := &fakeModal{}
	if err := m.StartModal(tour); err != nil {
		t.Fatalf("start modal: %v", err)
	}
	if tour.shown != 1 {
		t.Fatalf("modal shown %d times", tour.shown)
	}
	if !m.RouteInput(Event{Kind: TouchUp}) {
		t.Fatalf("modal must capture input")
	}
	if len(tour.events) != 1 || len(a.input) != 0 {
		t.Fatalf("modal events=%d panel events=%d", len(tour.events), len(a.input))
	}
	if err := m.StartModal(&fakeModal{}); !errors.Is(err, ErrModalActive) {
		t.Fatalf("nested modal: err = %v", err)
	}
	if m.Modal() != tour {
		t.Fatalf("rejected modal replaced the first")
	}

	if err := m.EndModal(); err != nil {
		t.Fatalf("end modal: %v", err)
	}
	if err := m.EndModal(); !errors.Is(err, ErrNoModal) {
		t.Fatalf("second end: err = %v", err)
	}
	checkInvariants(t, m, slot)
	if m.Active() != a || !reflect.DeepEqual(names(m.Suspended()), []string{"base"}) {
		t.Fatalf("modal changed the stack")
	}
	if !reflect.DeepEqual(baseCalls, base.calls) || !reflect.DeepEqual(aCalls, a.calls) {
		t.Fatalf("modal invoked panel hooks")
	}
}

func TestReentrantTransitionIsDeferred(t *testing.T) {
	m, slot := newTestManager()
	base, a, b := newFake(t, "base"), newFake(t, "a"), newFake(t, "b")
	m.Push(base)
	m.Push(a)

	// a pops itself as soon as it is hidden; the pop must wait until b is up.
	a.onHide = func() {
		if !m.Busy() {
			t.Fatalf("hook ran outside a transition")
		}
		if err := m.Pop(); err != nil {
			t.Fatalf("deferred pop: %v", err)
		}
		if m.Active() != a || m.Depth() != 1 {
			t.Fatalf("deferred pop ran inline")
		}
	}
	if err := m.Push(b); err != nil {
		t.Fatalf("push b: %v", err)
	}
	checkInvariants(t, m, slot)

	if m.Active() != a {
		t.Fatalf("active = %s, want a after the deferred pop", Name(m.Active()))
	}
	if b.state != closed {
		t.Fatalf("b state = %d, want closed", b.state)
	}
	if m.Busy() {
		t.Fatalf("manager still busy")
	}
}

func TestInputTriggeredPop(t *testing.T) {
	m, slot := newTestManager()
	base, inv := newFake(t, "base"), newFake(t, "inventory")
	m.Push(base)
	m.Push(inv)
	inv.onInput = func(Event) { m.Pop() }

	if !m.RouteInput(Event{Kind: TouchUp}) {
		t.Fatalf("not handled")
	}
	checkInvariants(t, m, slot)
	if m.Active() != base || inv.state != closed {
		t.Fatalf("close button did not pop")
	}
}

func TestHookFaultRollsBack(t *testing.T) {
	var logs bytes.Buffer
	slot := NewSlot()
	m := NewManager(slot, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	base, a := newFake(t, "base"), newFake(t, "a")
	m.Push(base)
	m.Push(a)

	broken := newFake(t, "broken")
	broken.onShow = func() {
		m.Pop() // queued by the failing transition; must be dropped
		panic("texture missing")
	}
	err := m.Push(broken)
	var fault *FaultError
	if !errors.As(err, &fault) || fault.Op != "push" {
		t.Fatalf("err = %v, want push fault", err)
	}
	if m.Active() != a || slot.Child() != a {
		t.Fatalf("rollback left active=%s mount=%s", Name(m.Active()), Name(slot.Child()))
	}
	if !reflect.DeepEqual(names(m.Suspended()), []string{"base"}) {
		t.Fatalf("rollback left suspended=%v", names(m.Suspended()))
	}
	checkInvariants(t, m, slot)
	if broken.state != closed {
		t.Fatalf("discarded panel left in state %d", broken.state)
	}
	if !strings.Contains(logs.String(), "texture missing") {
		t.Fatalf("fault not logged: %s", logs.String())
	}
	if m.Busy() {
		t.Fatalf("manager still busy after fault")
	}
}

func TestPopFaultKeepsOutgoingPanel(t *testing.T) {
	m, slot := newTestManager()
	base, a := newFake(t, "base"), newFake(t, "a")
	m.Push(base)
	m.Push(a)
	base.onShow = func() { panic("restore failed") }

	err := m.Pop()
	var fault *FaultError
	if !errors.As(err, &fault) || fault.Op != "pop" {
		t.Fatalf("err = %v, want pop fault", err)
	}
	checkInvariants(t, m, slot)
	if m.Active() != a || !reflect.DeepEqual(names(m.Suspended()), []string{"base"}) {
		t.Fatalf("rollback left active=%s suspended=%v", Name(m.Active()), names(m.Suspended()))
	}
	if a.count("close") != 0 || base.count("close") != 0 {
		t.Fatalf("rollback closed a panel: a=%v base=%v", a.calls, base.calls)
	}
}

func TestSetFaultKeepsStack(t *testing.T) {
	m, slot := newTestManager()
	base, a := newFake(t, "base"), newFake(t, "a")
	m.Push(base)
	m.Push(a)
	x := newFake(t, "x")
	x.onShow = func() { panic("layout failed") }

	err := m.Set(x)
	var fault *FaultError
	if !errors.As(err, &fault) || fault.Op != "set" {
		t.Fatalf("err = %v, want set fault", err)
	}
	checkInvariants(t, m, slot)
	if m.Active() != a || !reflect.DeepEqual(names(m.Suspended()), []string{"base"}) {
		t.Fatalf("rollback left active=%s suspended=%v", Name(m.Active()), names(m.Suspended()))
	}
	if a.count("close") != 0 || base.count("close") != 0 {
		t.Fatalf("set closed panels before committing: a=%v base=%v", a.calls, base.calls)
	}
	if x.state != closed {
		t.Fatalf("discarded panel left in state %d", x.state)
	}
}

func TestSetClosesAfterNewPanelShows(t *testing.T) {
	m, slot := newTestManager()
	base := newFake(t, "base")
	m.Push(base)
	x := newFake(t, "x")
	x.onShow = func() {
		if base.state == closed {
			t.Fatalf("base closed before x was shown")
		}
	}
	if err := m.Set(x); err != nil {
		t.Fatalf("set: %v", err)
	}
	checkInvariants(t, m, slot)
	if base.state != closed {
		t.Fatalf("base not closed after set")
	}
}

func TestCloseFaultAfterCommitIsLogged(t *testing.T) {
	var logs bytes.Buffer
	slot := NewSlot()
	m := NewManager(slot, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	base, a := newFake(t, "base"), &closeFault{fakePanel: newFake(t, "a")}
	m.Push(base)
	m.Push(a)

	if err := m.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	checkInvariants(t, m, slot)
	if m.Active() != base || m.Depth() != 0 {
		t.Fatalf("active=%s depth=%d", Name(m.Active()), m.Depth())
	}
	if !strings.Contains(logs.String(), "leaked handle") {
		t.Fatalf("close fault not logged: %s", logs.String())
	}
}

type closeFault struct{ *fakePanel }

func (p *closeFault) Close() {
	p.fakePanel.Close()
	panic("leaked handle")
}

func TestInputFaultDoesNotEscape(t *testing.T) {
	m, _ := newTestManager()
	a := newFake(t, "a")
	a.onInput = func(Event) { panic(errors.New("boom")) }
	m.Push(a)
	if !m.RouteInput(Event{Kind: TouchUp}) {
		t.Fatalf("faulting input should be reported as consumed")
	}
}

func TestLayerVisibilityPassthrough(t *testing.T) {
	m, slot := newTestManager()
	if !m.LayerVisible() {
		t.Fatalf("layer starts hidden")
	}
	m.SetLayerVisible(false)
	if m.LayerVisible() || slot.IsVisible() {
		t.Fatalf("layer still visible")
	}
	m.SetLayerVisible(true)
	if !slot.IsVisible() {
		t.Fatalf("layer not restored")
	}
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	m, slot := newTestManager()
	m.Push(newFake(t, "base"))
	var all []*fakePanel
	seq := "ppspPccppPsppPPPcp"
	for i, op := range seq {
		var err error
		switch op {
		case 'p':
			p := newFake(t, string(rune('a'+i)))
			all = append(all, p)
			err = m.Push(p)
		case 'P':
			err = m.Pop()
		case 's':
			p := newFake(t, string(rune('A'+i)))
			all = append(all, p)
			err = m.Set(p)
		case 'c':
			err = m.Clear()
		}
		if err != nil {
			t.Fatalf("step %d (%c): %v", i, op, err)
		}
		checkInvariants(t, m, slot)
	}
	for _, p := range all {
		if p.count("close") > 1 || p.count("open") != 1 {
			t.Fatalf("%s calls = %v", p.name, p.calls)
		}
	}
}
