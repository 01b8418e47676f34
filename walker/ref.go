package walker

// RefInfo contains information about a $ref encountered during traversal.
type RefInfo struct {
	// Ref is the $ref value (e.g., "#/definitions/annotation_id").
	Ref string

	// Document is the identity of the document containing the ref.
	Document string

	// SourcePath is the JSON pointer where the ref was encountered.
	SourcePath string
}

// RefHandler is called when a $ref is encountered during traversal.
// Return Stop to halt traversal, Continue to proceed.
type RefHandler func(wc *WalkContext, ref *RefInfo) Action
