package library

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/clipvault/clipvault/pkg/animations"
)

// recordCache is a bounded read-through cache over the record store.
// Capacity is fixed at construction; inserting past capacity evicts the
// least recently used record. Eviction only drops the in-memory copy,
// the record file stays authoritative.
type recordCache struct {
	lru     *lru.Cache[string, *animations.Animation]
	onEvict func(id string)
}

func newRecordCache(capacity int, onEvict func(id string)) (*recordCache, error) {
	rc := &recordCache{onEvict: onEvict}
	c, err := lru.NewWithEvict(capacity, func(id string, _ *animations.Animation) {
		if rc.onEvict != nil {
			rc.onEvict(id)
		}
	})
	if err != nil {
		return nil, err
	}
	rc.lru = c
	return rc, nil
}

// get returns the cached record for id, calling load on a miss and
// caching its result. A load error is returned without populating the
// cache.
func (rc *recordCache) get(id string, load func() (*animations.Animation, error)) (*animations.Animation, error) {
	if anim, ok := rc.lru.Get(id); ok {
		return anim, nil
	}
	anim, err := load()
	if err != nil {
		return nil, err
	}
	rc.lru.Add(id, anim)
	return anim, nil
}

// put inserts or refreshes a record, marking it most recently used.
func (rc *recordCache) put(anim *animations.Animation) {
	rc.lru.Add(anim.ID, anim)
}

// invalidate drops a record from the cache. No-op if absent.
func (rc *recordCache) invalidate(id string) {
	rc.lru.Remove(id)
}

// contains reports residency without touching recency order.
func (rc *recordCache) contains(id string) bool {
	return rc.lru.Contains(id)
}

// len returns the number of resident records.
func (rc *recordCache) len() int {
	return rc.lru.Len()
}

// purge empties the cache.
func (rc *recordCache) purge() {
	rc.lru.Purge()
}
