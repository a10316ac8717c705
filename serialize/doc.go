// Package serialize converts a doc.EditorState to and from a tagged
// JSON tree. Node identity (NodeKey) is not part of the wire format —
// it is an in-process handle, not a durable document property — so
// FromJSON always allocates fresh keys via its own doc.KeyAllocator.
// An Unknown node's RawType and RawAttrs round-trip value-for-value
// through encoding/json (numbers come back as float64), letting a document written by a newer or foreign client pass through
// unrecognized node types without data loss.
package serialize
