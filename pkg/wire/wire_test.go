package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	f := NewFrame(FramePatches, []byte("payload"))
	f.Flags = FlagFinal

	decoded, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if decoded.Type != FramePatches {
		t.Errorf("Type = %v", decoded.Type)
	}
	if !decoded.Flags.Has(FlagFinal) {
		t.Error("FlagFinal lost")
	}
	if string(decoded.Payload) != "payload" {
		t.Errorf("Payload = %q", decoded.Payload)
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x02, 0x00}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short header: err = %v", err)
	}
	// Header claims 10 payload bytes, none present.
	if _, err := DecodeFrame([]byte{0x02, 0x00, 0x00, 0x0A}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short payload: err = %v", err)
	}
}

func TestDecodeFrameInvalidType(t *testing.T) {
	if _, err := DecodeFrame([]byte{0xFF, 0x00, 0x00, 0x00}); !errors.Is(err, ErrInvalidFrameType) {
		t.Errorf("err = %v, want ErrInvalidFrameType", err)
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	want := NewFrame(FrameEvent, []byte{1, 2, 3})
	if err := WriteFrame(&buf, want); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if got.Type != FrameEvent || !bytes.Equal(got.Payload, want.Payload) {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FramePatches, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("err = %v, want ErrFrameTooLarge", err)
	}
}

func TestPatchBatchRoundtrip(t *testing.T) {
	batch := &PatchBatch{
		Seq: 7,
		Patches: []Patch{
			{Op: OpCreateElement, Node: 1, Tag: "div"},
			{Op: OpSetProp, Node: 1, Key: "class", Value: "box"},
			{Op: OpInsert, Node: 1, Parent: 0},
		},
	}
	f, err := EncodePatchBatch(batch)
	if err != nil {
		t.Fatalf("EncodePatchBatch: %v", err)
	}
	if f.Type != FramePatches {
		t.Errorf("frame type = %v", f.Type)
	}

	got, err := DecodePatchBatch(f)
	if err != nil {
		t.Fatalf("DecodePatchBatch: %v", err)
	}
	if got.Seq != 7 || len(got.Patches) != 3 {
		t.Fatalf("got %+v", got)
	}
	if got.Patches[1].Op != OpSetProp || got.Patches[1].Value != "box" {
		t.Errorf("patch[1] = %+v", got.Patches[1])
	}
}

func TestEventRoundtrip(t *testing.T) {
	f, err := EncodeEvent(&Event{Seq: 3, Node: 12, Name: "onclick",
		Payload: map[string]any{"x": int64(4)}})
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}
	ev, err := DecodeEvent(f)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if ev.Node != 12 || ev.Name != "onclick" {
		t.Errorf("event = %+v", ev)
	}
}

func TestRecorderRecordsMutations(t *testing.T) {
	rec := NewRecorder()

	div := rec.CreateNode("div", "")
	rec.PatchProp(div, "id", nil, "app", "")
	rec.PatchProp(div, "onclick", nil, func() {}, "")
	text := rec.CreateText("hi")
	rec.Insert(text, div, nil)
	rec.Insert(div, rec.Container(), nil)

	ps := rec.Take()
	wantOps := []PatchOp{
		OpCreateElement, OpSetProp, OpSetHandler,
		OpCreateText, OpInsert, OpInsert,
	}
	if len(ps) != len(wantOps) {
		t.Fatalf("got %d patches, want %d: %+v", len(ps), len(wantOps), ps)
	}
	for i, want := range wantOps {
		if ps[i].Op != want {
			t.Errorf("patch[%d].Op = %v, want %v", i, ps[i].Op, want)
		}
	}

	// Insert into the container targets parent ID 0.
	if ps[5].Parent != 0 {
		t.Errorf("root insert parent = %d, want 0", ps[5].Parent)
	}
	if rec.Pending() != 0 {
		t.Error("Take should drain the buffer")
	}
}

func TestRecorderMirrorTracksTree(t *testing.T) {
	rec := NewRecorder()

	div := rec.CreateNode("div", "")
	rec.Insert(div, rec.Container(), nil)
	rec.SetElementText(div, "hello")

	if got := rec.Mirror().Body().HTML(); got != "<div>hello</div>" {
		t.Errorf("mirror HTML = %q", got)
	}
	if rec.ParentNode(div) != rec.Container() {
		t.Error("ParentNode should answer from the mirror")
	}
}

func TestRecorderNodeIDLifecycle(t *testing.T) {
	rec := NewRecorder()

	div := rec.CreateNode("div", "")
	rec.Insert(div, rec.Container(), nil)
	ps := rec.Take()
	id := ps[0].Node
	if rec.NodeByID(id) != div {
		t.Fatal("NodeByID should resolve a live node")
	}

	rec.Remove(div)
	if rec.NodeByID(id) != nil {
		t.Error("removed node should drop its ID mapping")
	}
}
