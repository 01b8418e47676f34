package resolver

import (
	"fmt"
	"path"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/upsight/schematools/loader"
	"github.com/upsight/schematools/schemaerrors"
)

// MaxRefDepth is the maximum number of dereference steps followed in one
// resolution chain. Cycle detection already bounds chains over a finite
// document set; this guard protects against pathological inputs.
const MaxRefDepth = 100

// Target is the result of a resolution step: the resolved node together
// with its owning document and canonical pointer. Resolution never copies
// nodes; Node is identity-equal to direct navigation of Doc's tree.
type Target struct {
	// Node is the resolved node. It may itself be a reference object after
	// a single Resolve step; ResolveFully always returns a terminal node.
	Node *yaml.Node
	// Doc is the document that owns Node.
	Doc *loader.Document
	// Pointer is the canonical pointer of Node within Doc ("" for the root).
	Pointer string
}

// Frame returns the (document, pointer) frame identifying this target.
func (t Target) Frame() Frame {
	return Frame{Document: t.Doc.Identity, Pointer: t.Pointer}
}

// Key returns the visitation key of this target.
func (t Target) Key() string {
	return t.Frame().Key()
}

// Resolver resolves references against documents held in a loader.Store.
// A Resolver is stateless per call and safe for concurrent use; per-request
// state lives in the Context.
type Resolver struct {
	store  *loader.Store
	logger loader.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the structured logger for resolution diagnostics.
// The default is loader.NopLogger.
func WithLogger(logger loader.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver backed by the given store.
func New(store *loader.Store, opts ...Option) *Resolver {
	r := &Resolver{store: store, logger: loader.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the document store this resolver reads from.
func (r *Resolver) Store() *loader.Store {
	return r.store
}

// Resolve performs a single dereference step: it parses ref, locates the
// target document (loading it through the store when the reference crosses
// files), and walks the fragment path. The returned node may itself be a
// reference object; callers that need the terminal node should use
// ResolveFully.
//
// Failures are reported as *schemaerrors.ReferenceError carrying the
// reference string and the context chain traversed so far.
func (r *Resolver) Resolve(ref string, ctx *Context) (Target, error) {
	parsed := ParseRef(ref)

	doc := ctx.Current()
	refType := "local"
	if !parsed.IsLocal() {
		refType = "file"
		identity := loader.Normalize(path.Join(path.Dir(doc.Identity), parsed.File))
		target, err := r.store.Load(identity)
		if err != nil {
			return Target{}, &schemaerrors.ReferenceError{
				Ref:     ref,
				RefType: refType,
				Chain:   ctx.Chain(),
				Message: "target document cannot be loaded",
				Cause:   err,
			}
		}
		doc = target
	}

	node := doc.Root
	for i, segment := range parsed.Segments {
		next, err := step(node, segment)
		if err != nil {
			return Target{}, &schemaerrors.ReferenceError{
				Ref:     ref,
				RefType: refType,
				Chain:   ctx.Chain(),
				Message: fmt.Sprintf("at %s#%s: %s", doc.Identity, pointerString(parsed.Segments[:i+1]), err),
			}
		}
		node = next
	}

	target := Target{Node: node, Doc: doc, Pointer: pointerString(parsed.Segments)}
	r.logger.Debug("resolved reference", "ref", ref, "target", target.Key())
	return target, nil
}

// step walks one fragment segment into node: a mapping step looks up the
// key, a sequence step parses the segment as a non-negative index.
func step(node *yaml.Node, segment string) (*yaml.Node, error) {
	switch {
	case loader.IsMapping(node):
		next, ok := loader.MappingGet(node, segment)
		if !ok {
			return nil, fmt.Errorf("missing key %q", segment)
		}
		return next, nil

	case loader.IsSequence(node):
		items := loader.SequenceItems(node)
		index, err := strconv.Atoi(segment)
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid sequence index %q (must be a non-negative integer)", segment)
		}
		if index >= len(items) {
			return nil, fmt.Errorf("sequence index %d out of range (length %d)", index, len(items))
		}
		return items[index], nil

	default:
		return nil, fmt.Errorf("cannot traverse into scalar with segment %q", segment)
	}
}

// ResolveFully resolves ref and transparently follows any reference objects
// it yields until a terminal (non-reference) node is reached. Before each
// hop the target's (document, pointer) key is checked against the
// visitation stack: a repeated key fails with a circular-reference error
// naming the full cycle. The stack belongs to the Context, so independent
// top-level requests never share state.
func (r *Resolver) ResolveFully(ref string, ctx *Context) (Target, error) {
	first := ref
	for depth := 0; ; depth++ {
		if ctx.depth() > MaxRefDepth || depth > MaxRefDepth {
			return Target{}, &schemaerrors.ReferenceError{
				Ref:     first,
				Chain:   ctx.Chain(),
				Message: fmt.Sprintf("reference chain exceeds maximum depth (%d)", MaxRefDepth),
			}
		}

		target, err := r.Resolve(ref, ctx)
		if err != nil {
			return Target{}, err
		}

		if ctx.onStack(target.Key()) {
			chain := append(ctx.Chain(), target.Key())
			r.logger.Debug("circular reference detected", "ref", first, "chain", chain)
			return Target{}, &schemaerrors.ReferenceError{
				Ref:        first,
				IsCircular: true,
				Chain:      chain,
				Message:    "reference chain revisits a document location",
			}
		}

		next, isRef := loader.RefTarget(target.Node)
		if !isRef {
			return target, nil
		}
		ctx = ctx.push(target.Doc, target.Frame())
		ref = next
	}
}

// ResolveFullyTarget resolves a Target that is known to be a reference
// object, following the chain as ResolveFully does but starting from an
// already-located node. Callers use this when walking a document tree and
// encountering an embedded reference object.
func (r *Resolver) ResolveFullyTarget(target Target, ctx *Context) (Target, error) {
	ref, isRef := loader.RefTarget(target.Node)
	if !isRef {
		return target, nil
	}
	if ctx.onStack(target.Key()) {
		return Target{}, &schemaerrors.ReferenceError{
			Ref:        ref,
			IsCircular: true,
			Chain:      append(ctx.Chain(), target.Key()),
			Message:    "reference chain revisits a document location",
		}
	}
	return r.ResolveFully(ref, ctx.push(target.Doc, target.Frame()))
}
