package memo

import "sync"

const defaultShards = 32

// Comparer defines key equality for keys that are not compared with ==.
// Equal(a, b) must imply Hash(a) == Hash(b).
type Comparer[K any] interface {
	Equal(a, b K) bool
	Hash(k K) uint64
}

// HashedTable is Table with equality supplied by a Comparer.
// Keys are spread over mutex-guarded shards by hash; a shard lock is held
// only to find or append a cell, never while computing.
type HashedTable[K any, O any] struct {
	cmp    Comparer[K]
	shards []*hashedShard[K, O]
}

type hashedShard[K any, O any] struct {
	mu      sync.Mutex
	buckets map[uint64][]hashedEntry[K, O]
}

type hashedEntry[K any, O any] struct {
	key  K
	cell *Cell[O]
}

func NewHashedTable[K any, O any](cmp Comparer[K]) *HashedTable[K, O] {
	shards := make([]*hashedShard[K, O], defaultShards)
	for i := range shards {
		shards[i] = &hashedShard[K, O]{buckets: make(map[uint64][]hashedEntry[K, O])}
	}
	return &HashedTable[K, O]{cmp: cmp, shards: shards}
}

// Do returns the value cached under a key equal to key, computing it with fn when absent.
func (t *HashedTable[K, O]) Do(key K, fn func() (O, error)) (O, error) {
	h := t.cmp.Hash(key)
	s := t.shards[h%uint64(len(t.shards))]

	s.mu.Lock()
	for _, e := range s.buckets[h] {
		if t.cmp.Equal(e.key, key) {
			s.mu.Unlock()
			return e.cell.Wait()
		}
	}
	cell := NewCell[O]()
	s.buckets[h] = append(s.buckets[h], hashedEntry[K, O]{key: key, cell: cell})
	s.mu.Unlock()

	return cell.Run(fn, func() { s.remove(h, cell) })
}

func (s *hashedShard[K, O]) remove(h uint64, cell *Cell[O]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[h]
	for i, e := range bucket {
		if e.cell != cell {
			continue
		}
		bucket = append(bucket[:i:i], bucket[i+1:]...)
		break
	}
	if len(bucket) == 0 {
		delete(s.buckets, h)
		return
	}
	s.buckets[h] = bucket
}

// Len counts the cells currently held, including in-flight ones.
func (t *HashedTable[K, O]) Len() int {
	n := 0
	for _, s := range t.shards {
		s.mu.Lock()
		for _, bucket := range s.buckets {
			n += len(bucket)
		}
		s.mu.Unlock()
	}
	return n
}
