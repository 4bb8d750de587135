package channel

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lnpbp/lnpcore/codec"
)

// State is a stage in the life of a channel. Transitions between states are
// driven by the channel state machine, which lives outside this package.
//
//	Initial -> Proposed -> Accepted -> Funding -> Signed -> Funded ->
//	Locked -> Active <-> Reestablishing
//	Active -> Shutdown -> Closing -> Closed
//	any -> Aborted
type State uint8

const (
	// Initial is the state before any message has been exchanged.
	Initial State = iota

	// Proposed means open_channel has been sent or received.
	Proposed

	// Accepted means accept_channel has been sent or received.
	Accepted

	// Funding means one party has signed the funding transaction.
	Funding

	// Signed means the other party has signed the funding transaction.
	Signed

	// Funded means the funding transaction was published but not mined.
	Funded

	// Locked means one peer has seen the funding transaction confirm.
	Locked

	// Active means both peers confirmed the lock and the channel is
	// operational.
	Active

	// Reestablishing means the peers are recovering after a reconnect.
	Reestablishing

	// Shutdown means a shutdown was proposed but not yet accepted.
	Shutdown

	// Closing means shutdown was agreed and closing_signed messages are
	// being exchanged.
	Closing

	// Closed means the channel was closed cooperatively.
	Closed

	// Aborted means the channel was closed unilaterally.
	Aborted
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Initial:
		return "Initial"
	case Proposed:
		return "Proposed"
	case Accepted:
		return "Accepted"
	case Funding:
		return "Funding"
	case Signed:
		return "Signed"
	case Funded:
		return "Funded"
	case Locked:
		return "Locked"
	case Active:
		return "Active"
	case Reestablishing:
		return "Reestablishing"
	case Shutdown:
		return "Shutdown"
	case Closing:
		return "Closing"
	case Closed:
		return "Closed"
	case Aborted:
		return "Aborted"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(s))
	}
}

// IsKnown returns true if the state is one of the defined states.
func (s State) IsKnown() bool {
	return s <= Aborted
}

// Lifecycle is the lifecycle state of a channel. ClosingRound counts the
// closing fee proposals exchanged so far and is only meaningful while State
// is Closing. The zero value is Initial.
type Lifecycle struct {
	State        State
	ClosingRound uint64
}

// A compile time check to ensure Lifecycle implements the structural dialect.
var _ codec.StructuralCodec = (*Lifecycle)(nil)

// NewClosing returns a Closing lifecycle at the given round.
func NewClosing(round uint64) Lifecycle {
	return Lifecycle{State: Closing, ClosingRound: round}
}

// NextClosingRound returns the lifecycle advanced by one closing round. A
// lifecycle in Shutdown enters the first round; any state other than
// Closing is returned unchanged.
func (l Lifecycle) NextClosingRound() Lifecycle {
	switch l.State {
	case Shutdown:
		return NewClosing(0)

	case Closing:
		return NewClosing(l.ClosingRound + 1)

	default:
		return l
	}
}

// IsFinal returns true once the channel can make no further progress.
func (l Lifecycle) IsFinal() bool {
	return l.State == Closed || l.State == Aborted
}

// String returns the name of the state, with the round for Closing.
func (l Lifecycle) String() string {
	if l.State == Closing {
		return fmt.Sprintf("Closing{round: %d}", l.ClosingRound)
	}

	return l.State.String()
}

// EncodeStructural writes the state byte, followed by the 8-byte little
// endian round when the state is Closing. A round on any other state is
// rejected.
func (l *Lifecycle) EncodeStructural(w *bytes.Buffer) error {
	if !l.State.IsKnown() {
		return codec.DataIntegrity("lifecycle state %v", l.State)
	}
	if l.State != Closing && l.ClosingRound != 0 {
		return codec.DataIntegrity("closing round %d in state %v",
			l.ClosingRound, l.State)
	}

	if err := codec.WriteUint8(w, uint8(l.State)); err != nil {
		return err
	}

	if l.State != Closing {
		return nil
	}

	return codec.WriteUint64LE(w, l.ClosingRound)
}

// DecodeStructural reads a lifecycle written by EncodeStructural.
func (l *Lifecycle) DecodeStructural(r io.Reader) error {
	b, err := codec.ReadUint8(r, "lifecycle state")
	if err != nil {
		return err
	}

	state := State(b)
	if !state.IsKnown() {
		return codec.InvalidFormat("lifecycle state %d", b)
	}

	decoded := Lifecycle{State: state}
	if state == Closing {
		decoded.ClosingRound, err = codec.ReadUint64LE(r, "closing round")
		if err != nil {
			return err
		}
	}

	*l = decoded

	return nil
}
