package reconcile

import (
	"testing"

	"gridforge/pkg/engine/world"
)

func filled(w, h int) *world.Mask {
	m := world.NewMask(w, h)
	m.FillInterior()
	return m
}

func pt(x, y int) *world.Point {
	return &world.Point{X: x, Y: y}
}

func TestReconcileConnectedShrink(t *testing.T) {
	m := filled(12, 12)
	stats := Reconcile(m, Options{Target: 40, Connected: true, Anchor: pt(5, 5)})
	if got := m.Count(); got != 40 {
		t.Fatalf("Count() = %d, want 40", got)
	}
	if comps := world.Components(m); len(comps) != 1 {
		t.Errorf("len(Components) = %d, want 1", len(comps))
	}
	if !m.Walkable(5, 5) {
		t.Error("anchor not walkable")
	}
	if stats.Mode != ModeConnected || stats.Removed != 60 || stats.After != 40 {
		t.Errorf("Stats = %+v, want connected mode removing 60", stats)
	}
}

func TestReconcileConnectedGrow(t *testing.T) {
	m := world.NewMask(12, 12)
	m.Set(2, 2, true)
	m.Set(3, 2, true)
	m.Set(9, 9, true)
	Reconcile(m, Options{Target: 30, Connected: true, Anchor: pt(2, 2)})
	if got := m.Count(); got != 30 {
		t.Fatalf("Count() = %d, want 30", got)
	}
	comps := world.Components(m)
	if len(comps) != 1 {
		t.Fatalf("len(Components) = %d, want 1", len(comps))
	}
	if !m.Walkable(2, 2) || !m.Walkable(3, 2) {
		t.Error("anchor component cells dropped")
	}
}

func TestReconcileConnectedBlockedAnchor(t *testing.T) {
	m := world.NewMask(10, 10)
	m.Set(6, 6, true)
	Reconcile(m, Options{Target: 5, Connected: true, Anchor: pt(2, 2)})
	if !m.Walkable(6, 6) {
		t.Error("first walkable cell not used as anchor")
	}
	if got := m.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}

func TestReconcileUnconstrainedExact(t *testing.T) {
	tests := []struct {
		name   string
		mask   func() *world.Mask
		target int
	}{
		{"grow from empty", func() *world.Mask { return world.NewMask(15, 11) }, 37},
		{"grow from one", func() *world.Mask {
			m := world.NewMask(15, 11)
			m.Set(7, 5, true)
			return m
		}, 80},
		{"shrink filled", func() *world.Mask { return filled(15, 11) }, 20},
		{"shrink to one", func() *world.Mask { return filled(9, 9) }, 1},
		{"fill completely", func() *world.Mask { return world.NewMask(6, 6) }, 16},
		{"already exact", func() *world.Mask { return filled(6, 6) }, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.mask()
			Reconcile(m, Options{Target: tt.target})
			if got := m.Count(); got != tt.target {
				t.Errorf("Count() = %d, want %d", got, tt.target)
			}
			if msg := m.Validate(); msg != "" {
				t.Errorf("Validate() = %q", msg)
			}
		})
	}
}

func TestReconcileAddPrefersNeighbours(t *testing.T) {
	m := world.NewMask(11, 11)
	m.Set(5, 5, true)
	Reconcile(m, Options{Target: 2})
	// all four neighbours tie on tier and distance; scan order picks north
	if !m.Walkable(5, 4) {
		t.Error("Walkable(5, 4) = false, want the north neighbour added")
	}
}

func TestReconcileRemoveKeepsBackbone(t *testing.T) {
	m := world.NewMask(20, 7)
	for x := 1; x <= 18; x++ {
		m.Set(x, 3, true)
	}
	for x := 1; x <= 5; x++ {
		m.Set(x, 1, true)
	}
	stats := Reconcile(m, Options{Target: 18, Anchor: pt(1, 3)})
	if got := m.Count(); got != 18 {
		t.Fatalf("Count() = %d, want 18", got)
	}
	for x := 1; x <= 18; x++ {
		if !m.Walkable(x, 3) {
			t.Errorf("backbone cell (%d,3) removed", x)
		}
	}
	if stats.ProtectedRemoved != 0 {
		t.Errorf("ProtectedRemoved = %d, want 0", stats.ProtectedRemoved)
	}
}

func TestReconcileProtectedAsLastResort(t *testing.T) {
	m := world.NewMask(12, 5)
	for x := 1; x <= 10; x++ {
		m.Set(x, 2, true)
	}
	stats := Reconcile(m, Options{Target: 4, Anchor: pt(1, 2)})
	if got := m.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4", got)
	}
	// farthest backbone cells go first, so the anchor end survives
	for x := 1; x <= 4; x++ {
		if !m.Walkable(x, 2) {
			t.Errorf("cell (%d,2) removed, want the near end kept", x)
		}
	}
	if stats.ProtectedRemoved != 6 {
		t.Errorf("ProtectedRemoved = %d, want 6", stats.ProtectedRemoved)
	}
}

func TestReconcileForbidden(t *testing.T) {
	for _, connected := range []bool{false, true} {
		m := filled(10, 10)
		forbidden := world.NewPointSet(world.Point{X: 3, Y: 3}, world.Point{X: 4, Y: 4}, world.Point{X: 0, Y: 0})
		Reconcile(m, Options{Target: 62, Connected: connected, Forbidden: &forbidden})
		if got := m.Count(); got != 62 {
			t.Errorf("connected=%v: Count() = %d, want 62", connected, got)
		}
		if m.Walkable(3, 3) || m.Walkable(4, 4) {
			t.Errorf("connected=%v: forbidden cell walkable", connected)
		}
	}
}

func TestReconcileTargetClampedToCapacity(t *testing.T) {
	m := world.NewMask(5, 5)
	forbidden := world.NewPointSet(world.Point{X: 2, Y: 2})
	Reconcile(m, Options{Target: 100, Forbidden: &forbidden})
	if got := m.Count(); got != 8 {
		t.Errorf("Count() = %d, want 8", got)
	}
}

func TestReconcileDeterministic(t *testing.T) {
	seedMask := func() *world.Mask {
		m := world.NewMask(20, 14)
		for x := 2; x < 18; x += 3 {
			for y := 2; y < 12; y++ {
				m.Set(x, y, true)
			}
		}
		return m
	}
	for _, target := range []int{10, 60, 150} {
		a, b := seedMask(), seedMask()
		Reconcile(a, Options{Target: target})
		Reconcile(b, Options{Target: target})
		if !a.Equal(b) {
			t.Errorf("target %d: two runs differ", target)
		}
	}
}

func TestIsTurn(t *testing.T) {
	m := world.NewMask(7, 7)
	m.Set(3, 3, true)
	m.Set(3, 2, true)
	m.Set(4, 3, true)
	if !isTurn(m, world.Point{X: 3, Y: 3}) {
		t.Error("isTurn(corner) = false, want true")
	}
	m.Set(4, 3, false)
	m.Set(3, 4, true)
	if isTurn(m, world.Point{X: 3, Y: 3}) {
		t.Error("isTurn(straight) = true, want false")
	}
}
