package gossipguard

import "time"

// Acceptance is the verdict surfaced to the pub/sub overlay for a single
// validated message.
type Acceptance uint8

const (
	// Accept propagates the message to the mesh.
	Accept Acceptance = iota
	// Reject drops the message and penalises the blamed peer.
	Reject
	// Ignore drops the message silently, with no mesh-level penalty.
	Ignore
)

func (a Acceptance) String() string {
	switch a {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Ignore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ReasonCode is a closed set of outcomes, stable for tests and metrics.
type ReasonCode string

const (
	ReasonForwarderQuarantined ReasonCode = "forwarder_quarantined"
	ReasonOversize             ReasonCode = "oversize"
	ReasonRateLimited          ReasonCode = "rate_limited"
	ReasonDecodeError          ReasonCode = "decode_error"
	ReasonEmptyPayload         ReasonCode = "empty_payload"
	ReasonDuplicate            ReasonCode = "duplicate"
	ReasonReplayOrOldSeq       ReasonCode = "replay_or_old_seq"
	ReasonMaliciousPayload     ReasonCode = "malicious_payload"
	ReasonOK                   ReasonCode = "ok"
)

// Decision is the outcome of one Validate call. Target and Score are
// additive beyond the three fields a bare acceptance report needs: they
// identify which peer (if any) the score update applies to and that
// peer's resulting application score, since blame-target resolution
// cannot be reconstructed from (Acceptance, Reason) alone — rate limiting
// always blames the forwarder while every other penalising rule blames
// the author with forwarder fallback. Target is the zero value ("") when
// no scoring event occurred.
type Decision struct {
	Acceptance Acceptance
	Reason     ReasonCode
	ScoreDelta float64
	Target     PeerID
	Score      float64
}

// Validator runs the fixed-order admission pipeline and owns all mutable
// per-peer state. It is single-threaded by design: one logical task calls
// Validate serially, so there is no internal locking. Running several
// independent overlays in one process means constructing one Validator
// per overlay, never sharing one across tasks.
type Validator struct {
	cfg      ValidatorConfig
	peers    *peerRegistry
	dedupe   *dedupeCache
	nowFunc  func() time.Time
}

// NewValidator constructs a Validator from cfg. The registry and dedupe
// cache are sized from cfg.MaxPeers and cfg.MaxDedupe; per-peer token
// buckets are sized from cfg.TokenBucketCapacity and cfg.TokenRefillRate.
func NewValidator(cfg ValidatorConfig) *Validator {
	return &Validator{
		cfg:     cfg,
		peers:   newPeerRegistry(cfg.MaxPeers, cfg.TokenBucketCapacity, cfg.TokenRefillRate),
		dedupe:  newDedupeCache(cfg.MaxDedupe),
		nowFunc: time.Now,
	}
}

// blameAuthor resolves the author for keying and blame purposes: an
// absent author falls back to the forwarder consistently across every
// rule that needs one, per the pipeline's replay- and penalty-keying
// requirement.
func blameAuthor(author *PeerID, forwarder PeerID) PeerID {
	if author == nil || *author == "" {
		return forwarder
	}
	return *author
}

// Validate runs the fixed-order pipeline against one inbound message and
// returns the Decision. It never returns an error: every input, however
// malformed, produces a Decision value.
func (v *Validator) Validate(author *PeerID, forwarder PeerID, raw []byte) Decision {
	authorID := blameAuthor(author, forwarder)

	// Rule 1: forwarder quarantine gates everything else.
	fwd := v.peers.ensure(forwarder)
	if fwd.Quarantined {
		return Decision{Acceptance: Ignore, Reason: ReasonForwarderQuarantined}
	}

	// Rule 2: size, blaming the author (forwarder fallback already
	// applied in authorID) before a single token is spent.
	if len(raw) > v.cfg.MaxMessageBytes {
		return v.penalizeDecision(authorID, -60, ReasonOversize)
	}

	// Rule 3: rate limit. The token is consumed whether or not the
	// message is ultimately accepted; this bucket shapes forwarder
	// traffic, it is not an acceptance guarantee.
	if !fwd.Bucket.tryConsume(v.nowFunc(), 1) {
		return v.penalizeDecision(forwarder, -5, ReasonRateLimited)
	}

	// Rule 4: decode.
	msg, err := Decode(raw)
	if err != nil {
		return v.penalizeDecision(authorID, -30, ReasonDecodeError)
	}

	// Rule 5: dedupe, checked before insertion; only messages that pass
	// every earlier check ever reach the cache.
	h := contentHash(raw)
	if v.dedupe.contains(h) {
		return Decision{Acceptance: Ignore, Reason: ReasonDuplicate}
	}

	if msg.Kind == KindGood {
		// Rule 6: empty payload.
		if len(msg.Payload) == 0 {
			v.dedupe.insert(h)
			return v.penalizeDecision(authorID, -30, ReasonEmptyPayload)
		}

		// Rule 7: replay / old sequence.
		authorState := v.peers.ensure(authorID)
		if authorState.SeqKnown && msg.Seq <= authorState.LastSeq {
			v.dedupe.insert(h)
			return Decision{Acceptance: Ignore, Reason: ReasonReplayOrOldSeq}
		}
		authorState.LastSeq = msg.Seq
		authorState.SeqKnown = true

		// Rule 9: accept.
		v.dedupe.insert(h)
		return Decision{Acceptance: Accept, Reason: ReasonOK}
	}

	// Rule 8: malicious flag (Bad variant). Every Bad message encodes to
	// the same bytes, so its hash is not recorded in the dedupe cache:
	// each repeat is penalised and escalates, rather than being ignored
	// as a duplicate.
	return v.penalizeDecision(authorID, -80, ReasonMaliciousPayload)
}

// penalizeDecision applies the offence-escalation primitive to target and
// wraps the result as a Reject Decision carrying the target's post-update
// application score.
func (v *Validator) penalizeDecision(target PeerID, baseDelta float64, reason ReasonCode) Decision {
	delta, score := v.penalize(target, baseDelta)
	return Decision{
		Acceptance: Reject,
		Reason:     reason,
		ScoreDelta: delta,
		Target:     target,
		Score:      score,
	}
}

// penalize is the single state-update primitive every penalising rule
// goes through: it increments the target's offence count, scales the
// base delta by the running offence count, applies it to score, and
// re-evaluates the sticky quarantine condition. It returns the effective
// delta applied and the resulting absolute score, for the adapter's
// idempotent score push. Score is never clamped: it has no fixed bound,
// only a comparison against the quarantine threshold.
func (v *Validator) penalize(target PeerID, baseDelta float64) (effectiveDelta, newScore float64) {
	st := v.peers.ensure(target)
	st.Offences++
	effectiveDelta = baseDelta * (1 + v.cfg.OffenceScale*float64(st.Offences-1))
	st.Score += effectiveDelta
	if st.Score <= v.cfg.QuarantineThreshold || st.Offences > v.cfg.OffenceHardCap {
		st.Quarantined = true
	}
	return effectiveDelta, st.Score
}

// ScoreOf returns peer's current application score, or 0 if the peer has
// never been observed. It is a read-only accessor: it does not create a
// registry entry.
func (v *Validator) ScoreOf(peer PeerID) float64 {
	if st, ok := v.peers.lookup(peer); ok {
		return st.Score
	}
	return 0
}

// IsQuarantined reports whether peer is currently quarantined.
func (v *Validator) IsQuarantined(peer PeerID) bool {
	if st, ok := v.peers.lookup(peer); ok {
		return st.Quarantined
	}
	return false
}

// QuarantinedCount returns the number of tracked peers currently
// quarantined. It is a supplemental read-only accessor; it has no effect
// on validation behavior.
func (v *Validator) QuarantinedCount() int {
	count := 0
	for _, st := range v.peers.states {
		if st.Quarantined {
			count++
		}
	}
	return count
}

// PeerCount returns the number of peers currently tracked in the
// registry.
func (v *Validator) PeerCount() int {
	return v.peers.size()
}
