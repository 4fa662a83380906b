package cache

import "testing"

func collectKeys(a *entryArena[string, int]) []string {
	var keys []string
	a.walk(func(e *arenaEntry[string, int]) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

func TestArena_PushFrontOrdering(t *testing.T) {
	a := newEntryArena[string, int](4)
	a.pushFront("a", 1, 0)
	a.pushFront("b", 2, 0)
	a.pushFront("c", 3, 0)

	got := collectKeys(a)
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if a.len() != 3 {
		t.Errorf("expected len 3, got %d", a.len())
	}
}

func TestArena_MoveToFront(t *testing.T) {
	a := newEntryArena[string, int](4)
	a.pushFront("a", 1, 0)
	refB := a.pushFront("b", 2, 0)
	a.pushFront("c", 3, 0)

	if !a.moveToFront(refB) {
		t.Fatal("moveToFront of a live reference must succeed")
	}

	got := collectKeys(a)
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	// Moving the front entry is a no-op.
	if !a.moveToFront(refB) {
		t.Fatal("moveToFront of the front entry must succeed")
	}
	if keys := collectKeys(a); keys[0] != "b" {
		t.Errorf("expected b at front, got %v", keys)
	}
}

func TestArena_ReferencesStableAcrossUnrelatedMutations(t *testing.T) {
	a := newEntryArena[string, int](4)
	refA := a.pushFront("a", 1, 0)
	refB := a.pushFront("b", 2, 0)

	a.pushFront("c", 3, 0)
	a.remove(refB)
	a.pushFront("d", 4, 0) // recycles b's slot

	e := a.resolve(refA)
	if e == nil || e.key != "a" {
		t.Fatalf("reference to a must survive unrelated churn, got %+v", e)
	}
}

func TestArena_StaleReferenceAfterRemove(t *testing.T) {
	a := newEntryArena[string, int](4)
	ref := a.pushFront("a", 1, 0)

	key, value, ok := a.remove(ref)
	if !ok || key != "a" || value != 1 {
		t.Fatalf("remove returned (%q, %d, %t)", key, value, ok)
	}

	if e := a.resolve(ref); e != nil {
		t.Errorf("stale reference must not resolve, got %+v", e)
	}
	if _, _, ok := a.remove(ref); ok {
		t.Error("second remove through a stale reference must fail")
	}
	if a.moveToFront(ref) {
		t.Error("moveToFront through a stale reference must fail")
	}
}

func TestArena_SlotReuseGetsNewGeneration(t *testing.T) {
	a := newEntryArena[string, int](2)
	refA := a.pushFront("a", 1, 0)
	a.remove(refA)

	refB := a.pushFront("b", 2, 0)
	if refB.slot != refA.slot {
		t.Fatalf("expected slot reuse, got slot %d then %d", refA.slot, refB.slot)
	}
	if refB.gen == refA.gen {
		t.Fatal("recycled slot must carry a new generation")
	}

	if e := a.resolve(refA); e != nil {
		t.Errorf("old reference into a recycled slot must not resolve, got %+v", e)
	}
	if e := a.resolve(refB); e == nil || e.key != "b" {
		t.Errorf("new reference must resolve to b, got %+v", e)
	}
}

func TestArena_Back(t *testing.T) {
	a := newEntryArena[string, int](4)
	if _, ok := a.back(); ok {
		t.Fatal("back of an empty arena must report absence")
	}

	a.pushFront("a", 1, 0)
	a.pushFront("b", 2, 0)

	ref, ok := a.back()
	if !ok {
		t.Fatal("back must find the oldest entry")
	}
	if e := a.resolve(ref); e == nil || e.key != "a" {
		t.Errorf("expected oldest entry a, got %+v", e)
	}
}

func TestArena_ClearInvalidatesAllReferences(t *testing.T) {
	a := newEntryArena[string, int](4)
	refA := a.pushFront("a", 1, 0)
	refB := a.pushFront("b", 2, 0)

	a.clear()

	if a.len() != 0 {
		t.Errorf("expected empty arena, got len %d", a.len())
	}
	if e := a.resolve(refA); e != nil {
		t.Errorf("reference a must be invalid after clear, got %+v", e)
	}
	if e := a.resolve(refB); e != nil {
		t.Errorf("reference b must be invalid after clear, got %+v", e)
	}

	// The arena is reusable after clear.
	ref := a.pushFront("c", 3, 0)
	if e := a.resolve(ref); e == nil || e.key != "c" {
		t.Errorf("expected c after clear, got %+v", e)
	}
	if keys := collectKeys(a); len(keys) != 1 || keys[0] != "c" {
		t.Errorf("expected [c], got %v", keys)
	}
}

func TestArena_RemoveMiddleRelinks(t *testing.T) {
	a := newEntryArena[string, int](4)
	a.pushFront("a", 1, 0)
	refB := a.pushFront("b", 2, 0)
	a.pushFront("c", 3, 0)

	a.remove(refB)

	got := collectKeys(a)
	want := []string{"c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	var back []string
	a.walkBack(func(e *arenaEntry[string, int]) bool {
		back = append(back, e.key)
		return true
	})
	if len(back) != 2 || back[0] != "a" || back[1] != "c" {
		t.Errorf("expected backwards [a c], got %v", back)
	}
}
