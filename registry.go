package gossipguard

import "container/list"

// PeerID is the opaque stable identity a transport assigns to a peer. The
// core never mints one; it only ever receives PeerIDs from the caller.
type PeerID string

// PeerState is the per-peer mutable state the Validator owns: application
// score, token bucket, last-seen sequence number, and quarantine status.
// A zero-value last_seq is represented by seqKnown=false rather than by a
// sentinel uint64, since 0 is itself a valid sequence number.
type PeerState struct {
	Score       float64
	Bucket      *tokenBucket
	LastSeq     uint64
	SeqKnown    bool
	Quarantined bool
	Offences    int
}

// peerRegistry is a bounded mapping from PeerID to PeerState with
// lazy-create-on-touch semantics and deterministic FIFO eviction once full.
// Like dedupeCache it pairs a map (for O(1) lookup) with a container/list
// (for insertion-ordered eviction); there is no clamp on Score and no
// automatic quarantine decay — those are the Validator's concern, applied
// at escalation time, not the registry's.
type peerRegistry struct {
	capacity        int
	bucketCapacity  float64
	bucketRefillPS  float64
	order           *list.List // front = oldest
	elems           map[PeerID]*list.Element
	states          map[PeerID]*PeerState
}

func newPeerRegistry(capacity int, bucketCapacity, bucketRefillPS float64) *peerRegistry {
	return &peerRegistry{
		capacity:       capacity,
		bucketCapacity: bucketCapacity,
		bucketRefillPS: bucketRefillPS,
		order:          list.New(),
		elems:          make(map[PeerID]*list.Element, capacity),
		states:         make(map[PeerID]*PeerState, capacity),
	}
}

// ensure returns the PeerState for id, creating a default entry (score=0,
// bucket at full capacity, no last_seq, not quarantined, zero offences) on
// first observation. If the registry is already at capacity, the oldest
// entry (by insertion order) is evicted first.
func (r *peerRegistry) ensure(id PeerID) *PeerState {
	if st, ok := r.states[id]; ok {
		return st
	}
	if r.capacity > 0 && len(r.states) >= r.capacity {
		oldest := r.order.Front()
		if oldest != nil {
			oldID := oldest.Value.(PeerID)
			r.order.Remove(oldest)
			delete(r.elems, oldID)
			delete(r.states, oldID)
		}
	}
	st := &PeerState{
		Bucket: newTokenBucket(r.bucketCapacity, r.bucketRefillPS),
	}
	el := r.order.PushBack(id)
	r.elems[id] = el
	r.states[id] = st
	return st
}

// lookup returns the PeerState for id without creating one, for read-only
// accessors that must not mutate registry membership.
func (r *peerRegistry) lookup(id PeerID) (*PeerState, bool) {
	st, ok := r.states[id]
	return st, ok
}

// size returns the current number of tracked peers.
func (r *peerRegistry) size() int {
	return len(r.states)
}
