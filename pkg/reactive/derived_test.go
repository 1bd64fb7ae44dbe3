package reactive

import (
	"errors"
	"testing"
)

func TestDerivedBasic(t *testing.T) {
	computations := 0
	count := NewCell(5)

	doubled := NewDerived(func() int {
		computations++
		return count.Get() * 2
	})

	if computations != 0 {
		t.Errorf("derived should be lazy, got %d computations", computations)
	}

	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}
	if computations != 1 {
		t.Errorf("expected 1 computation, got %d", computations)
	}

	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}
	if computations != 1 {
		t.Errorf("expected still 1 computation (cached), got %d", computations)
	}
}

func TestDerivedRecomputation(t *testing.T) {
	computations := 0
	count := NewCell(5)
	doubled := NewDerived(func() int {
		computations++
		return count.Get() * 2
	})

	_ = doubled.Get()
	count.Set(10)

	if doubled.Get() != 20 {
		t.Errorf("expected 20, got %d", doubled.Get())
	}
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestDerivedCoalescesWrites(t *testing.T) {
	computations := 0
	a := NewCell(1)
	b := NewCell(2)
	sum := NewDerived(func() int {
		computations++
		return a.Get() + b.Get()
	})
	_ = sum.Get()

	a.Set(10)
	b.Set(20)
	a.Set(100)

	if sum.Get() != 120 {
		t.Errorf("expected 120, got %d", sum.Get())
	}
	if computations != 2 {
		t.Errorf("expected writes to coalesce into 1 recomputation, got %d total", computations)
	}
}

func TestDerivedDynamicDependencies(t *testing.T) {
	useA := NewCell(true)
	a := NewCell("a")
	b := NewCell("b")
	computations := 0

	pick := NewDerived(func() string {
		computations++
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	})

	if pick.Get() != "a" {
		t.Fatalf("expected a, got %s", pick.Get())
	}
	if pick.Dependencies() != 2 {
		t.Errorf("expected 2 dependencies, got %d", pick.Dependencies())
	}

	// b is not a dependency yet.
	b.Set("b2")
	_ = pick.Get()
	if computations != 1 {
		t.Errorf("write to unread cell should not recompute, got %d", computations)
	}

	useA.Set(false)
	if pick.Get() != "b2" {
		t.Errorf("expected b2, got %s", pick.Get())
	}

	// a dropped out of the dependency set.
	a.Set("a2")
	_ = pick.Get()
	if computations != 2 {
		t.Errorf("write to dropped dependency should not recompute, got %d", computations)
	}
}

func TestDerivedChain(t *testing.T) {
	base := NewCell(2)
	squared := NewDerived(func() int { return base.Get() * base.Get() })
	plusOne := NewDerived(func() int { return squared.Get() + 1 })

	if plusOne.Get() != 5 {
		t.Errorf("expected 5, got %d", plusOne.Get())
	}
	base.Set(3)
	if plusOne.Get() != 10 {
		t.Errorf("expected 10, got %d", plusOne.Get())
	}
}

func TestDerivedEqualValueStopsPropagation(t *testing.T) {
	n := NewCell(2)
	parity := NewDerived(func() bool { return n.Get()%2 == 0 })
	downstream := 0
	label := NewDerived(func() string {
		downstream++
		if parity.Get() {
			return "even"
		}
		return "odd"
	})

	_ = label.Get()
	n.Set(4)
	if label.Get() != "even" {
		t.Errorf("expected even, got %s", label.Get())
	}
	if downstream != 1 {
		t.Errorf("unchanged intermediate value should not recompute downstream, got %d", downstream)
	}
	if parity.Version() != 1 {
		t.Errorf("parity version should stay 1, got %d", parity.Version())
	}
}

func TestDerivedPanicKeepsCache(t *testing.T) {
	n := NewCell(1)
	fail := errors.New("boom")
	computations := 0
	d := NewDerived(func() int {
		computations++
		v := n.Get()
		if v < 0 {
			panic(fail)
		}
		return v * 10
	})

	if d.Get() != 10 {
		t.Fatalf("expected 10, got %d", d.Get())
	}

	n.Set(-1)
	func() {
		defer func() {
			if r := recover(); r != fail {
				t.Errorf("expected boom panic, got %v", r)
			}
		}()
		d.Get()
	}()

	if IsEvaluating() {
		t.Error("tracking stack should be unwound after panic")
	}

	n.Set(2)
	if d.Get() != 20 {
		t.Errorf("expected recovery to 20, got %d", d.Get())
	}
	if computations != 3 {
		t.Errorf("expected 3 computations, got %d", computations)
	}
}

func TestDerivedCycleDetected(t *testing.T) {
	var self *Derived[int]
	self = NewDerived(func() int { return self.Get() + 1 }, WithName[int]("self"))

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrCycle) {
			t.Fatalf("expected ErrCycle, got %v", r)
		}
	}()
	self.Get()
}

func TestDerivedPeekDoesNotTrack(t *testing.T) {
	n := NewCell(1)
	inner := NewDerived(func() int { return n.Get() })
	outer := NewDerived(func() int { return inner.Peek() })

	_ = outer.Get()
	if outer.Dependencies() != 0 {
		t.Errorf("Peek should not register a dependency, got %d", outer.Dependencies())
	}
}
