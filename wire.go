// Package gossipguard implements a message-validation and peer-scoring core
// for a single-topic pub/sub gossip overlay. It decides, for each received
// message, whether to accept, reject, or ignore it, and maintains per-peer
// reputation scores that the surrounding transport feeds back into the
// overlay's mesh-membership decisions.
//
// The package owns no network I/O, no cryptographic identity, and no
// persistent state; see transport.Adapter for the glue that wires a
// Validator to an overlay.
package gossipguard

import (
	"errors"

	"github.com/ethereum/go-ethereum/rlp"
)

// Wire codec errors. Decoding never distinguishes truncated from corrupt
// input; any byte sequence that is not a valid encoding of Good or Bad
// produces one of these.
var (
	ErrDecodeEmpty    = errors.New("gossipguard: empty message")
	ErrDecodeTag      = errors.New("gossipguard: unknown wire message tag")
	ErrDecodeBody     = errors.New("gossipguard: malformed message body")
	ErrDecodeTrailing = errors.New("gossipguard: trailing bytes after bad-message tag")
)

// wire tags. A single leading byte discriminates the tagged union; the
// remainder (if any) is RLP-encoded.
const (
	wireTagGood byte = 0x01
	wireTagBad  byte = 0x02
)

// MessageKind identifies which variant a decoded WireMessage holds.
type MessageKind uint8

const (
	// KindGood is well-formed application traffic: a sequence number and
	// a payload.
	KindGood MessageKind = iota
	// KindBad is traffic explicitly flagged as malicious by the wire
	// encoding itself (used by the simulation/adversarial peers in
	// testing and by real attackers probing the decode path).
	KindBad
)

// WireMessage is the decoded form of a message payload: a tagged union of
// Good{seq, payload} and Bad.
type WireMessage struct {
	Kind    MessageKind
	Seq     uint64
	Payload []byte
}

// goodBody is the RLP-encoded body of a Good message. Encoding a struct
// keeps the seq/payload ordering explicit and gives us deterministic
// output for identical inputs, which the dedupe cache's content hash
// depends on.
type goodBody struct {
	Seq     uint64
	Payload []byte
}

// EncodeGood serialises a Good{seq, payload} wire message. Encoding is
// deterministic: the same (seq, payload) always produces the same bytes.
func EncodeGood(seq uint64, payload []byte) ([]byte, error) {
	body, err := rlp.EncodeToBytes(goodBody{Seq: seq, Payload: payload})
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, wireTagGood)
	out = append(out, body...)
	return out, nil
}

// EncodeBad serialises a Bad (flagged-malicious) wire message. Bad carries
// no payload; it exists purely to let an adversarial or test peer emit a
// well-formed-but-malicious-flagged message.
func EncodeBad() []byte {
	return []byte{wireTagBad}
}

// Decode parses raw bytes into a WireMessage. It is intentionally
// length-unbounded: the size gate is the Validator's responsibility (rule
// 2 of the pipeline), not the codec's, so Decode itself never rejects
// based on input size.
func Decode(raw []byte) (WireMessage, error) {
	if len(raw) == 0 {
		return WireMessage{}, ErrDecodeEmpty
	}
	tag, body := raw[0], raw[1:]
	switch tag {
	case wireTagGood:
		var gb goodBody
		if err := rlp.DecodeBytes(body, &gb); err != nil {
			return WireMessage{}, ErrDecodeBody
		}
		return WireMessage{Kind: KindGood, Seq: gb.Seq, Payload: gb.Payload}, nil
	case wireTagBad:
		if len(body) != 0 {
			return WireMessage{}, ErrDecodeTrailing
		}
		return WireMessage{Kind: KindBad}, nil
	default:
		return WireMessage{}, ErrDecodeTag
	}
}
