package wire

import (
	"fmt"
	"strings"

	"github.com/tideui/tide/pkg/memhost"
)

// Recorder implements runtime.HostOps for a remote thin client. Every
// mutation is applied to an in-memory mirror (so structural queries like
// ParentNode and NextSibling keep working) and recorded as a Patch.
//
// Take drains the recorded patches; the session batches them into a
// PatchBatch frame after each flush.
//
// Not safe for concurrent use: a Recorder belongs to one session loop.
type Recorder struct {
	doc    *memhost.Document
	mirror *memhost.Ops

	nextID  uint64
	ids     map[*memhost.Node]uint64
	byID    map[uint64]*memhost.Node
	patches []Patch
}

// NewRecorder creates a recorder over a fresh mirror document. The body
// of the mirror is the mount container, addressed as node ID 0 on the
// client.
func NewRecorder() *Recorder {
	doc := memhost.NewDocument()
	return &Recorder{
		doc:    doc,
		mirror: doc.Ops(),
		ids:    make(map[*memhost.Node]uint64),
		byID:   make(map[uint64]*memhost.Node),
	}
}

// Container returns the mount container (the mirror's body).
func (rec *Recorder) Container() any {
	return rec.doc.Body()
}

// Mirror exposes the mirror document for tests and HTML snapshots.
func (rec *Recorder) Mirror() *memhost.Document {
	return rec.doc
}

// NodeByID resolves a client-supplied node ID, or nil.
func (rec *Recorder) NodeByID(id uint64) any {
	n, ok := rec.byID[id]
	if !ok {
		return nil
	}
	return n
}

// Take returns the recorded patches and resets the buffer.
func (rec *Recorder) Take() []Patch {
	ps := rec.patches
	rec.patches = nil
	return ps
}

// Pending returns the number of unsent patches.
func (rec *Recorder) Pending() int {
	return len(rec.patches)
}

func (rec *Recorder) register(node any) uint64 {
	n := node.(*memhost.Node)
	rec.nextID++
	rec.ids[n] = rec.nextID
	rec.byID[rec.nextID] = n
	return rec.nextID
}

// id resolves a node to its wire ID. The mount container maps to 0.
func (rec *Recorder) id(node any) uint64 {
	if node == nil || node == rec.doc.Body() {
		return 0
	}
	return rec.ids[node.(*memhost.Node)]
}

func (rec *Recorder) record(p Patch) {
	rec.patches = append(rec.patches, p)
}

func (rec *Recorder) CreateNode(tag, namespace string) any {
	n := rec.mirror.CreateNode(tag, namespace)
	id := rec.register(n)
	rec.record(Patch{Op: OpCreateElement, Node: id, Tag: tag, Key: namespace})
	return n
}

func (rec *Recorder) CreateText(text string) any {
	n := rec.mirror.CreateText(text)
	id := rec.register(n)
	rec.record(Patch{Op: OpCreateText, Node: id, Value: text})
	return n
}

func (rec *Recorder) CreateComment(text string) any {
	n := rec.mirror.CreateComment(text)
	id := rec.register(n)
	rec.record(Patch{Op: OpCreateComment, Node: id, Value: text})
	return n
}

func (rec *Recorder) SetText(node any, text string) {
	rec.mirror.SetText(node, text)
	rec.record(Patch{Op: OpSetText, Node: rec.id(node), Value: text})
}

func (rec *Recorder) SetElementText(node any, text string) {
	rec.mirror.SetElementText(node, text)
	rec.record(Patch{Op: OpSetElemText, Node: rec.id(node), Value: text})
}

func (rec *Recorder) Insert(node, parent, anchor any) {
	rec.mirror.Insert(node, parent, anchor)
	rec.record(Patch{
		Op:     OpInsert,
		Node:   rec.id(node),
		Parent: rec.id(parent),
		Anchor: rec.id(anchor),
	})
}

func (rec *Recorder) Remove(node any) {
	rec.mirror.Remove(node)
	rec.record(Patch{Op: OpRemove, Node: rec.id(node)})
	rec.release(node.(*memhost.Node))
}

// release drops the ID mappings of a removed subtree. Removed nodes are
// never reinserted; moves go through Insert directly.
func (rec *Recorder) release(n *memhost.Node) {
	if id, ok := rec.ids[n]; ok {
		delete(rec.ids, n)
		delete(rec.byID, id)
	}
	for _, c := range n.Children() {
		rec.release(c)
	}
}

func (rec *Recorder) ParentNode(node any) any {
	return rec.mirror.ParentNode(node)
}

func (rec *Recorder) NextSibling(node any) any {
	return rec.mirror.NextSibling(node)
}

func (rec *Recorder) QuerySelector(selector string) any {
	return rec.mirror.QuerySelector(selector)
}

func (rec *Recorder) PatchProp(node any, key string, prev, next any, namespace string) {
	rec.mirror.PatchProp(node, key, prev, next, namespace)
	id := rec.id(node)

	if strings.HasPrefix(key, "on") {
		// Handlers stay server-side; the client only needs a delegation
		// marker so it knows which events to forward.
		if next == nil {
			rec.record(Patch{Op: OpRemoveHandler, Node: id, Key: key})
		} else {
			rec.record(Patch{Op: OpSetHandler, Node: id, Key: key})
		}
		return
	}

	switch v := next.(type) {
	case nil:
		rec.record(Patch{Op: OpRemoveProp, Node: id, Key: key})
	case bool:
		if v {
			rec.record(Patch{Op: OpSetProp, Node: id, Key: key, Value: ""})
		} else {
			rec.record(Patch{Op: OpRemoveProp, Node: id, Key: key})
		}
	case string:
		rec.record(Patch{Op: OpSetProp, Node: id, Key: key, Value: v})
	default:
		rec.record(Patch{Op: OpSetProp, Node: id, Key: key, Value: fmt.Sprint(v)})
	}
}

func (rec *Recorder) InsertStaticContent(content string, parent, anchor any) (first, last any) {
	first, last = rec.mirror.InsertStaticContent(content, parent, anchor)
	id := rec.register(first)
	rec.record(Patch{
		Op:     OpInsertStatic,
		Node:   id,
		Parent: rec.id(parent),
		Anchor: rec.id(anchor),
		Value:  content,
	})
	return first, last
}
