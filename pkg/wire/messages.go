package wire

import (
	"github.com/vmihailenco/msgpack/v5"
)

// ProtocolVersion is bumped on incompatible payload changes.
const ProtocolVersion = 1

// Hello is the first frame in either direction.
type Hello struct {
	Version   int    `msgpack:"v"`
	SessionID string `msgpack:"sid,omitempty"`
}

// Patch represents a single host-tree operation. Node IDs are assigned
// by the server-side Recorder; ID 0 means "none" (root container or nil
// anchor).
type Patch struct {
	Op     PatchOp `msgpack:"op"`
	Node   uint64  `msgpack:"n"`
	Parent uint64  `msgpack:"p,omitempty"`
	Anchor uint64  `msgpack:"a,omitempty"`
	Tag    string  `msgpack:"t,omitempty"`
	Key    string  `msgpack:"k,omitempty"`
	Value  string  `msgpack:"val,omitempty"`
}

// PatchBatch is one flush's worth of patches with a sequence number.
type PatchBatch struct {
	Seq     uint64  `msgpack:"seq"`
	Patches []Patch `msgpack:"ps"`
}

// Event is a client-originated event aimed at a node's handler.
type Event struct {
	Seq     uint64         `msgpack:"seq"`
	Node    uint64         `msgpack:"n"`
	Name    string         `msgpack:"name"`
	Payload map[string]any `msgpack:"pl,omitempty"`
}

// ErrorMessage carries a structured error to the client.
type ErrorMessage struct {
	Code    string `msgpack:"code"`
	Message string `msgpack:"msg"`
}

// Control is a ping or resync request.
type Control struct {
	Kind string `msgpack:"kind"` // "ping", "pong", "resync"
}

// EncodeHello encodes a Hello frame.
func EncodeHello(h *Hello) (*Frame, error) {
	return encodeAs(FrameHello, h)
}

// DecodeHello decodes a Hello payload.
func DecodeHello(f *Frame) (*Hello, error) {
	var h Hello
	return &h, decodePayload(f, &h)
}

// EncodePatchBatch encodes a batch of patches.
func EncodePatchBatch(pb *PatchBatch) (*Frame, error) {
	return encodeAs(FramePatches, pb)
}

// DecodePatchBatch decodes a patch batch payload.
func DecodePatchBatch(f *Frame) (*PatchBatch, error) {
	var pb PatchBatch
	return &pb, decodePayload(f, &pb)
}

// EncodeEvent encodes a client event.
func EncodeEvent(ev *Event) (*Frame, error) {
	return encodeAs(FrameEvent, ev)
}

// DecodeEvent decodes an event payload.
func DecodeEvent(f *Frame) (*Event, error) {
	var ev Event
	return &ev, decodePayload(f, &ev)
}

// EncodeError encodes an error message.
func EncodeError(em *ErrorMessage) (*Frame, error) {
	return encodeAs(FrameError, em)
}

// DecodeError decodes an error payload.
func DecodeError(f *Frame) (*ErrorMessage, error) {
	var em ErrorMessage
	return &em, decodePayload(f, &em)
}

// EncodeControl encodes a control message.
func EncodeControl(c *Control) (*Frame, error) {
	return encodeAs(FrameControl, c)
}

// DecodeControl decodes a control payload.
func DecodeControl(f *Frame) (*Control, error) {
	var c Control
	return &c, decodePayload(f, &c)
}

func encodeAs(ft FrameType, v any) (*Frame, error) {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	return NewFrame(ft, payload), nil
}

func decodePayload(f *Frame, v any) error {
	return msgpack.Unmarshal(f.Payload, v)
}
