package memo

import "sync"

// Table caches one computed value per comparable key.
//
// Lookup and placeholder installation are a single LoadOrStore, so for a
// given key exactly one caller computes while the others wait on its Cell.
// Failed computations leave no entry behind.
type Table[K comparable, O any] struct {
	cells sync.Map // K -> *Cell[O]
}

func NewTable[K comparable, O any]() *Table[K, O] {
	return &Table[K, O]{}
}

// Do returns the value cached under key, computing it with fn when absent.
func (t *Table[K, O]) Do(key K, fn func() (O, error)) (O, error) {
	cell, elected := t.Claim(key)
	if !elected {
		return cell.Wait()
	}
	return cell.Run(fn, t.discard(key, cell))
}

// Claim returns the cell for key, installing a new one when absent.
// elected reports whether the caller installed it and must therefore Run it.
func (t *Table[K, O]) Claim(key K) (cell *Cell[O], elected bool) {
	if v, ok := t.cells.Load(key); ok {
		return v.(*Cell[O]), false
	}
	fresh := NewCell[O]()
	actual, loaded := t.cells.LoadOrStore(key, fresh)
	return actual.(*Cell[O]), !loaded
}

// Discard returns the failure hook for a cell obtained from Claim.
func (t *Table[K, O]) Discard(key K, cell *Cell[O]) func() {
	return t.discard(key, cell)
}

func (t *Table[K, O]) discard(key K, cell *Cell[O]) func() {
	return func() {
		t.cells.CompareAndDelete(key, cell)
	}
}

// Len counts the cells currently held, including in-flight ones.
func (t *Table[K, O]) Len() int {
	n := 0
	t.cells.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
