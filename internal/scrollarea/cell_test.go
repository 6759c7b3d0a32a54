package scrollarea

import (
	"testing"
	"time"

	"github.com/dshills/scrollarea/internal/loop"
)

func TestCellSuppressesEqualWrites(t *testing.T) {
	c := NewCell(Size{})
	var seen []Size
	unsub := c.Subscribe(func(s Size) { seen = append(seen, s) })

	if c.Set(Size{}) {
		t.Error("equal write reported a change")
	}
	if !c.Set(Size{Width: 1}) {
		t.Error("new value not committed")
	}
	c.Update(func(s Size) Size { return s })
	if len(seen) != 1 || c.Writes() != 1 {
		t.Errorf("notifications %v writes %d, want one", seen, c.Writes())
	}

	unsub()
	unsub()
	c.Set(Size{Width: 2})
	if len(seen) != 1 {
		t.Error("notified after unsubscribe")
	}
}

func TestCellNotifiesInRegistrationOrder(t *testing.T) {
	c := NewCell(0)
	var order []string
	c.Subscribe(func(int) { order = append(order, "a") })
	drop := c.Subscribe(func(int) { order = append(order, "b") })
	c.Subscribe(func(int) { order = append(order, "c") })
	drop()
	c.Set(1)
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("order = %v, want [a c]", order)
	}
}

func TestTimeoutRearmAndClear(t *testing.T) {
	m := loop.NewManual()
	to := NewTimeout(m)
	fired := 0

	to.Start(100*time.Millisecond, func() { fired++ })
	m.Advance(60 * time.Millisecond)
	to.Start(100*time.Millisecond, func() { fired++ })
	m.Advance(60 * time.Millisecond)
	if fired != 0 {
		t.Fatal("replaced callback fired")
	}
	if !to.Pending() {
		t.Fatal("timeout not pending")
	}
	m.Advance(40 * time.Millisecond)
	if fired != 1 || to.Pending() {
		t.Errorf("fired %d pending %v, want 1 false", fired, to.Pending())
	}

	to.Start(time.Millisecond, func() { fired++ })
	to.Clear()
	to.Clear()
	m.Advance(time.Second)
	if fired != 1 {
		t.Error("cleared timeout fired")
	}
}
