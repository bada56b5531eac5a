package reply

import (
	"context"

	"github.com/randalmurphal/toolbox/pkg/toolbox/codec"
	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
)

// Reason is the poll reason a message was sent or delivered with.
type Reason uint32

// Message delivery reasons.
const (
	ReasonMessage     Reason = 17
	ReasonRecorded    Reason = 18
	ReasonAcknowledge Reason = 19
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonMessage:
		return "message"
	case ReasonRecorded:
		return "recorded"
	case ReasonAcknowledge:
		return "acknowledge"
	default:
		return "unknown"
	}
}

// IsMessage reports whether r is one of the three message reasons.
func (r Reason) IsMessage() bool {
	return r == ReasonMessage || r == ReasonRecorded || r == ReasonAcknowledge
}

// Reference is the number a transmitter assigns to an outgoing message.
type Reference uint32

// Target addresses a send. The zero Target broadcasts.
type Target struct {
	Handle int32
	Icon   int32
}

// iconBarHandle is the window handle that addresses the icon bar.
const iconBarHandle = -2

// Task addresses a task by handle.
func Task(handle int32) Target { return Target{Handle: handle} }

// Window addresses the task owning a window.
func Window(handle int32) Target { return Target{Handle: handle} }

// IconBar addresses the task owning an icon bar icon.
func IconBar(icon int32) Target { return Target{Handle: iconBarHandle, Icon: icon} }

// Broadcast reports whether t addresses every task.
func (t Target) Broadcast() bool { return t.Handle == 0 }

// Message is an outgoing user message: a code and the body that follows
// the common header.
type Message struct {
	Code event.ID
	Body []byte
}

// MessageInfo is a received message header plus the reason it arrived with.
type MessageInfo struct {
	codec.MessageHeader
	Reason Reason
}

// NewMessageInfo decodes the header at the start of payload.
func NewMessageInfo(reason Reason, payload []byte) (MessageInfo, error) {
	h, err := codec.DecodeMessageHeader(payload)
	if err != nil {
		return MessageInfo{}, err
	}
	return MessageInfo{MessageHeader: h, Reason: reason}, nil
}

// ID is the message code as a dispatch id.
func (m MessageInfo) ID() event.ID { return event.ID(m.Code) }

// Recorded reports whether the sender expects a reply or acknowledgement.
func (m MessageInfo) Recorded() bool { return m.Reason == ReasonRecorded }

// Bounce reports whether this is a recorded message returned undelivered.
func (m MessageInfo) Bounce() bool { return m.Reason == ReasonAcknowledge }

// Source says how a pending callback came to fire.
type Source int

const (
	// SourceReply is a message whose your-reference matched.
	SourceReply Source = iota
	// SourceBounce is an undelivered message whose my-reference matched.
	SourceBounce
	// SourceNoReply is an idle drain.
	SourceNoReply
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceReply:
		return "reply"
	case SourceBounce:
		return "bounce"
	default:
		return "no_reply"
	}
}

// Reply is what a callback receives. When nothing came back, Missing is
// true and Info and Payload are empty.
type Reply struct {
	// Ref is the reference of the original send.
	Ref     Reference
	Source  Source
	Info    MessageInfo
	Payload []byte
}

// Missing reports whether the reply is the no-reply sentinel.
func (r Reply) Missing() bool { return r.Source == SourceNoReply }

// Callback receives the reply to one send. Returning Continue lets the
// reply go on to normal message dispatch.
type Callback func(ctx context.Context, r Reply) (event.Result, error)
