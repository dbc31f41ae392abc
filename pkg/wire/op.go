package wire

// PatchOp is the type of patch operation, mirroring the runtime's host
// mutation set.
type PatchOp uint8

const (
	OpCreateElement PatchOp = 0x01 // Create an element node
	OpCreateText    PatchOp = 0x02 // Create a text node
	OpCreateComment PatchOp = 0x03 // Create a comment node
	OpSetText       PatchOp = 0x04 // Update a text node's content
	OpSetElemText   PatchOp = 0x05 // Replace an element's content with text
	OpInsert        PatchOp = 0x06 // Insert (or move) a node
	OpRemove        PatchOp = 0x07 // Remove a node
	OpSetProp       PatchOp = 0x08 // Set an attribute/property
	OpRemoveProp    PatchOp = 0x09 // Remove an attribute/property
	OpSetHandler    PatchOp = 0x0A // Attach an event delegation marker
	OpRemoveHandler PatchOp = 0x0B // Detach an event delegation marker
	OpInsertStatic  PatchOp = 0x0C // Insert a pre-rendered chunk
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpCreateComment:
		return "CreateComment"
	case OpSetText:
		return "SetText"
	case OpSetElemText:
		return "SetElemText"
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	case OpSetProp:
		return "SetProp"
	case OpRemoveProp:
		return "RemoveProp"
	case OpSetHandler:
		return "SetHandler"
	case OpRemoveHandler:
		return "RemoveHandler"
	case OpInsertStatic:
		return "InsertStatic"
	default:
		return "Unknown"
	}
}
