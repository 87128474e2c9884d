package gossipguard

import (
	"container/list"

	mapset "github.com/deckarep/golang-set/v2"
	sha256simd "github.com/minio/sha256-simd"
)

// Hash is a 32-byte content-addressed dedupe key, SHA-256 of a
// domain-separation tag concatenated with the raw message bytes.
type Hash [32]byte

// dedupeDomainTag provides domain separation between this cache's content
// hash and any other hash used elsewhere in the overlay (e.g. a transport
// envelope hash or a block hash), so an attacker cannot engineer a
// collision across protocol layers.
const dedupeDomainTag = "gossipguard/dedupe/v1:"

// contentHash computes the dedupe key for a raw message payload.
func contentHash(raw []byte) Hash {
	buf := make([]byte, 0, len(dedupeDomainTag)+len(raw))
	buf = append(buf, dedupeDomainTag...)
	buf = append(buf, raw...)
	return Hash(sha256simd.Sum256(buf))
}

// dedupeCache is a bounded, insertion-ordered set of content hashes: a
// FIFO queue paired with an exact membership set, per spec.md §4.3. The
// queue is a container/list (not a slice) so that sustained churn at
// capacity never re-slices a growing backing array; the set is backed by
// golang-set for O(1) exact membership. The two structures are kept in
// lockstep at all times: every hash in the list is in the set and vice
// versa.
type dedupeCache struct {
	capacity int
	order    *list.List // front = oldest
	elems    map[Hash]*list.Element
	set      mapset.Set[Hash]
}

func newDedupeCache(capacity int) *dedupeCache {
	return &dedupeCache{
		capacity: capacity,
		order:    list.New(),
		elems:    make(map[Hash]*list.Element, capacity),
		set:      mapset.NewThreadUnsafeSet[Hash](),
	}
}

// contains reports whether h has already been inserted.
func (d *dedupeCache) contains(h Hash) bool {
	return d.set.Contains(h)
}

// insert records h as seen, evicting the oldest entry if the cache is at
// capacity. Re-inserting an already-present hash is a no-op: it does not
// move the hash to the back of the queue, since the queue's only job is
// bounding memory, not tracking recency.
func (d *dedupeCache) insert(h Hash) {
	if d.set.Contains(h) {
		return
	}
	if d.capacity > 0 && d.order.Len() >= d.capacity {
		oldest := d.order.Front()
		if oldest != nil {
			oldHash := oldest.Value.(Hash)
			d.order.Remove(oldest)
			delete(d.elems, oldHash)
			d.set.Remove(oldHash)
		}
	}
	el := d.order.PushBack(h)
	d.elems[h] = el
	d.set.Add(h)
}

// size returns the current number of tracked hashes.
func (d *dedupeCache) size() int {
	return d.order.Len()
}
