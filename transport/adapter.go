// Package transport glues a gossipguard.Validator to a pub/sub overlay. It
// owns no validation logic of its own: it feeds inbound events into the
// validator, reports decisions back to the overlay exactly once per
// message, and pushes updated application scores keyed by whichever peer
// the validator blamed. It also logs and accounts for metrics, which the
// core deliberately leaves to its caller.
package transport

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eth2030/gossipguard"
	"github.com/eth2030/gossipguard/internal/log"
)

// MessageHandle is the opaque per-message token the overlay issues with
// an inbound event; it is threaded back into Overlay.ReportValidation
// unmodified.
type MessageHandle any

// InboundEvent is one message delivered by the overlay: the believed
// author (nil if the overlay cannot supply one), the immediate forwarder,
// and the raw bytes.
type InboundEvent struct {
	Handle    MessageHandle
	Author    *gossipguard.PeerID
	Forwarder gossipguard.PeerID
	Bytes     []byte
}

// Overlay is the boundary the adapter drives: a validation-report sink
// and an application-score sink. The overlay combines the pushed score
// with its own scoring; this adapter never assumes anything about how.
type Overlay interface {
	ReportValidation(handle MessageHandle, acceptance gossipguard.Acceptance)
	SetApplicationScore(peer gossipguard.PeerID, score float64)
}

// classification is the adapter's own end-of-run accounting label for an
// author, independent of the validator's scoring state. It is pure
// accounting: it never feeds back into validation.
type classification uint8

const (
	classUnclassified classification = iota
	classHonest
	classFlagged
)

// Adapter drives a gossipguard.Validator from overlay events. It is not
// safe for concurrent use from multiple goroutines, matching the
// validator's own single-threaded-per-node model: one adapter per node,
// driven by that node's event loop.
type Adapter struct {
	validator *gossipguard.Validator
	overlay   Overlay
	logger    *log.Logger

	registry *prometheus.Registry
	decisions *prometheus.CounterVec
	quarantinedGauge prometheus.Gauge

	classifications map[gossipguard.PeerID]classification
}

// NewAdapter constructs an Adapter wrapping validator, reporting to
// overlay, and logging under the "transport" module of the supplied
// logger (or the package default if logger is nil).
func NewAdapter(validator *gossipguard.Validator, overlay Overlay, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	registry := prometheus.NewRegistry()
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gossipguard_decisions_total",
		Help: "Number of validation decisions by reason code.",
	}, []string{"reason"})
	quarantined := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gossipguard_quarantined_peers",
		Help: "Number of peers currently quarantined.",
	})
	registry.MustRegister(decisions, quarantined)

	return &Adapter{
		validator:        validator,
		overlay:          overlay,
		logger:           logger.Module("transport"),
		registry:         registry,
		decisions:        decisions,
		quarantinedGauge: quarantined,
		classifications:  make(map[gossipguard.PeerID]classification),
	}
}

// Registry exposes the adapter's private Prometheus registry so the
// caller can serve it (e.g. via promhttp.HandlerFor), without forcing
// every Adapter instance to share the global default registry.
func (a *Adapter) Registry() *prometheus.Registry {
	return a.registry
}

// HandleInbound validates ev and reports the outcome back to the
// overlay, in the order spec.md requires: the acceptance report happens
// before the score push for the same message.
func (a *Adapter) HandleInbound(ev InboundEvent) gossipguard.Decision {
	decision := a.validator.Validate(ev.Author, ev.Forwarder, ev.Bytes)

	a.overlay.ReportValidation(ev.Handle, decision.Acceptance)
	a.decisions.WithLabelValues(string(decision.Reason)).Inc()

	if decision.Target != "" {
		a.overlay.SetApplicationScore(decision.Target, decision.Score)
	}
	a.classify(decision, resolvedAuthor(ev))

	a.quarantinedGauge.Set(float64(a.validator.QuarantinedCount()))
	a.logger.Decision(decision.Acceptance.String(), string(decision.Reason), string(decision.Target), decision.Score)

	return decision
}

// resolvedAuthor mirrors the validator's own author-falls-back-to-forwarder
// keying so the adapter can classify the right peer even on the Accept
// path, where Decision.Target is never populated (no scoring event occurs
// on accept).
func resolvedAuthor(ev InboundEvent) gossipguard.PeerID {
	if ev.Author == nil || *ev.Author == "" {
		return ev.Forwarder
	}
	return *ev.Author
}

// classify records the end-of-run honest/flagged accounting label for the
// message's author. This has no effect on validation; it is purely for
// the summary reported at shutdown. A Reject always flags the blamed
// peer; an Accept marks the resolved author honest unless it has already
// been flagged by an earlier offence, since one prior offence is enough
// to distrust the peer for accounting purposes even if later traffic from
// it is clean. Ignore carries no accounting signal either way.
func (a *Adapter) classify(decision gossipguard.Decision, author gossipguard.PeerID) {
	switch decision.Acceptance {
	case gossipguard.Reject:
		a.classifications[decision.Target] = classFlagged
	case gossipguard.Accept:
		if a.classifications[author] != classFlagged {
			a.classifications[author] = classHonest
		}
	}
}

// Summary is the end-of-run accounting the adapter reports when the
// enclosing event loop drains on shutdown.
type Summary struct {
	HonestPeers  int
	FlaggedPeers int
	Quarantined  int
}

// Summarize produces the end-of-run Summary. A peer only ever appears in
// one bucket: once flagged, it stays flagged even if later messages from
// it are accepted, since a single offence is enough to distrust the
// reporting author for accounting purposes.
func (a *Adapter) Summarize() Summary {
	s := Summary{Quarantined: a.validator.QuarantinedCount()}
	for _, c := range a.classifications {
		switch c {
		case classHonest:
			s.HonestPeers++
		case classFlagged:
			s.FlaggedPeers++
		}
	}
	return s
}
