// Package resolver resolves $ref pointers across a set of loaded schema
// documents.
//
// A reference string has the grammar
//
//	[<relative-file-path>]['#'<'/'-separated-segments>]
//
// An absent file path means the same document as the referencing context;
// an absent fragment means the referenced document's root. Relative file
// paths resolve against the referencing document's location, so a ref
// "../common.yaml#/definitions/auth" inside "subdir/more.yaml" targets
// "common.yaml".
//
// Resolve performs a single dereference step and may return a node that is
// itself a reference object. ResolveFully follows reference objects until a
// terminal node is reached, maintaining a visitation stack of
// (document, pointer) keys: a key appearing twice in one active chain fails
// with a circular-reference error naming the full cycle, which bounds
// recursion without timeouts. Each top-level ResolveFully call owns its own
// stack, so independent resolution requests can run in parallel.
//
// Failure kinds are distinguishable with errors.Is: a chain that ends at a
// missing file, key, or index matches schemaerrors.ErrReference, while a
// chain that revisits a key additionally matches
// schemaerrors.ErrCircularReference.
package resolver
