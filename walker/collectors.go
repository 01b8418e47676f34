package walker

import (
	"errors"
	"fmt"

	"github.com/upsight/schematools/resolver"
	"github.com/upsight/schematools/schemaerrors"
)

// RefStatus classifies the outcome of resolving an inventoried reference.
type RefStatus int

const (
	// StatusResolved means the reference chain terminated at a concrete node.
	StatusResolved RefStatus = iota

	// StatusUnresolvable means a link in the chain pointed at a missing
	// document or a nonexistent location.
	StatusUnresolvable

	// StatusCircular means the chain revisited one of its own links.
	StatusCircular
)

// String returns a string representation of the status.
func (s RefStatus) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusUnresolvable:
		return "unresolvable"
	case StatusCircular:
		return "circular"
	default:
		return fmt.Sprintf("RefStatus(%d)", int(s))
	}
}

// RefReport describes a single inventoried reference.
type RefReport struct {
	// Ref is the reference value as written.
	Ref string

	// Document is the identity of the document containing the reference.
	Document string

	// SourcePath is the JSON pointer where the reference appears.
	SourcePath string

	// Status classifies the resolution outcome.
	Status RefStatus

	// Target is the terminal location ("document#/pointer") for resolved
	// references. Empty otherwise.
	Target string

	// Err holds the resolution error for broken references.
	Err error
}

// RefInventory holds every reference found across a walked document set.
type RefInventory struct {
	// All contains every reference in traversal order.
	All []*RefReport

	// Resolved contains only references whose chains terminated.
	Resolved []*RefReport

	// Broken contains unresolvable and circular references.
	Broken []*RefReport

	// ByDocument groups reports by the identity of the containing document.
	ByDocument map[string][]*RefReport
}

// OK reports whether every inventoried reference resolved.
func (inv *RefInventory) OK() bool {
	return len(inv.Broken) == 0
}

// CollectRefs walks each named document and resolves every reference it
// finds, following chains to their terminal nodes. A document that fails
// to load is an error; a reference that fails to resolve is recorded in
// the inventory, not returned as an error.
func CollectRefs(r *resolver.Resolver, identities ...string) (*RefInventory, error) {
	inventory := &RefInventory{
		All:        make([]*RefReport, 0),
		Resolved:   make([]*RefReport, 0),
		Broken:     make([]*RefReport, 0),
		ByDocument: make(map[string][]*RefReport),
	}

	for _, identity := range identities {
		doc, err := r.Store().Load(identity)
		if err != nil {
			return nil, fmt.Errorf("collecting refs from %s: %w", identity, err)
		}

		err = Walk(doc,
			WithRefHandler(func(wc *WalkContext, ref *RefInfo) Action {
				report := &RefReport{
					Ref:        ref.Ref,
					Document:   ref.Document,
					SourcePath: ref.SourcePath,
				}

				target, resolveErr := r.ResolveFully(ref.Ref, resolver.NewContext(doc))
				switch {
				case resolveErr == nil:
					report.Status = StatusResolved
					report.Target = target.Key()
				case errors.Is(resolveErr, schemaerrors.ErrCircularReference):
					report.Status = StatusCircular
					report.Err = resolveErr
				default:
					report.Status = StatusUnresolvable
					report.Err = resolveErr
				}

				inventory.All = append(inventory.All, report)
				if report.Status == StatusResolved {
					inventory.Resolved = append(inventory.Resolved, report)
				} else {
					inventory.Broken = append(inventory.Broken, report)
				}
				inventory.ByDocument[report.Document] = append(inventory.ByDocument[report.Document], report)
				return Continue
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	return inventory, nil
}
