package gossipguard

import "testing"

func TestPeerRegistryEnsureCreatesDefaultState(t *testing.T) {
	r := newPeerRegistry(10, 100, 50)
	st := r.ensure(PeerID("p1"))
	if st.Score != 0 || st.Quarantined || st.Offences != 0 || st.SeqKnown {
		t.Fatalf("unexpected default state: %+v", st)
	}
}

func TestPeerRegistryEnsureReturnsSameEntry(t *testing.T) {
	r := newPeerRegistry(10, 100, 50)
	a := r.ensure(PeerID("p1"))
	a.Score = -5
	b := r.ensure(PeerID("p1"))
	if b.Score != -5 {
		t.Fatalf("expected ensure to return the same entry, got score %v", b.Score)
	}
}

func TestPeerRegistryEvictsOldestAtCapacity(t *testing.T) {
	r := newPeerRegistry(2, 100, 50)
	r.ensure(PeerID("p1"))
	r.ensure(PeerID("p2"))
	r.ensure(PeerID("p3"))

	if _, ok := r.lookup(PeerID("p1")); ok {
		t.Fatalf("expected p1 evicted")
	}
	if _, ok := r.lookup(PeerID("p2")); !ok {
		t.Fatalf("expected p2 present")
	}
	if r.size() != 2 {
		t.Fatalf("expected size 2, got %d", r.size())
	}
}

func TestPeerRegistryLookupDoesNotCreate(t *testing.T) {
	r := newPeerRegistry(10, 100, 50)
	if _, ok := r.lookup(PeerID("ghost")); ok {
		t.Fatalf("expected lookup of unknown peer to fail without creating it")
	}
	if r.size() != 0 {
		t.Fatalf("expected lookup not to mutate registry size")
	}
}
