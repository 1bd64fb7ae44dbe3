package reactive

import (
	"sync"
	"testing"
)

func TestTrackingContextReleasedWhenIdle(t *testing.T) {
	c := NewCell(1)
	d := NewDerived(func() int { return c.Get() })
	_ = d.Get()

	if lookupTrackingContext() != nil {
		t.Error("tracking context should be released after evaluation")
	}
}

func TestTrackingContextIsolation(t *testing.T) {
	var wg sync.WaitGroup
	contexts := make(chan *TrackingContext, 2)

	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			ctx, _ := acquireTrackingContext()
			contexts <- ctx
		}()
	}
	wg.Wait()
	close(contexts)

	var list []*TrackingContext
	for ctx := range contexts {
		list = append(list, ctx)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 contexts, got %d", len(list))
	}
	if list[0] == list[1] {
		t.Error("different goroutines should have different contexts")
	}
}

func TestDuplicateReadsCollapse(t *testing.T) {
	c := NewCell(1)
	d := NewDerived(func() int { return c.Get() + c.Get() + c.Get() })
	_ = d.Get()
	if d.Dependencies() != 1 {
		t.Errorf("expected 1 dependency, got %d", d.Dependencies())
	}
}

func TestUntracked(t *testing.T) {
	tracked := NewCell(1)
	ignored := NewCell(10)
	computations := 0

	d := NewDerived(func() int {
		computations++
		var extra int
		Untracked(func() {
			extra = ignored.Get()
		})
		return tracked.Get() + extra
	})

	if d.Get() != 11 {
		t.Fatalf("expected 11, got %d", d.Get())
	}
	ignored.Set(20)
	if d.Get() != 11 {
		t.Errorf("untracked write should not invalidate, got %d", d.Get())
	}
	tracked.Set(2)
	if d.Get() != 22 {
		t.Errorf("expected 22, got %d", d.Get())
	}
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestUntrackedStillForbidsWrites(t *testing.T) {
	c := NewCell(0)
	d := NewDerived(func() int {
		Untracked(func() { c.Set(1) })
		return 0
	})
	defer func() {
		if _, ok := recover().(*ReentrantMutationError); !ok {
			t.Error("expected *ReentrantMutationError from untracked write")
		}
	}()
	d.Get()
}

func TestNestedEvaluationRestoresOuterFrame(t *testing.T) {
	a := NewCell(1)
	b := NewCell(2)
	inner := NewDerived(func() int { return a.Get() })
	outer := NewDerived(func() int {
		x := inner.Get()
		return x + b.Get()
	})

	if outer.Get() != 3 {
		t.Fatalf("expected 3, got %d", outer.Get())
	}
	// outer depends on inner and b, not directly on a.
	if outer.Dependencies() != 2 {
		t.Errorf("expected 2 dependencies, got %d", outer.Dependencies())
	}
	a.Set(5)
	if outer.Get() != 7 {
		t.Errorf("expected 7, got %d", outer.Get())
	}
}
