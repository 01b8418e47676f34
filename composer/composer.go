package composer

import (
	"errors"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/upsight/schematools/internal/issues"
	"github.com/upsight/schematools/internal/severity"
	"github.com/upsight/schematools/loader"
	"github.com/upsight/schematools/resolver"
	"github.com/upsight/schematools/schemaerrors"
)

// Composer computes effective schemas from documents held in a
// loader.Store. A Composer is safe for concurrent use; per-run state
// (the composition cache) is created per top-level call.
type Composer struct {
	resolver *resolver.Resolver
	logger   loader.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the structured logger for composition diagnostics.
// The default is loader.NopLogger.
func WithLogger(logger loader.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Composer backed by the given store.
func New(store *loader.Store, opts ...Option) *Composer {
	c := &Composer{
		resolver: resolver.New(store),
		logger:   loader.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolver returns the resolver this composer dereferences through.
func (c *Composer) Resolver() *resolver.Resolver {
	return c.resolver
}

// composeRun holds per-request state: effective schemas cached by
// (document, pointer) key for the lifetime of one top-level composition.
// Pre-inserting the schema before filling it makes composition of
// self-referential schema graphs terminate.
type composeRun struct {
	cache map[string]*Schema
}

func newComposeRun() *composeRun {
	return &composeRun{cache: make(map[string]*Schema)}
}

// ComposeDocument computes the effective schema of a document's root node.
func (c *Composer) ComposeDocument(doc *loader.Document) (*Schema, error) {
	target := resolver.Target{Node: doc.Root, Doc: doc}
	return c.compose(newComposeRun(), target)
}

// ComposeRef resolves ref against doc and computes the effective schema of
// the terminal node.
func (c *Composer) ComposeRef(ref string, doc *loader.Document) (*Schema, error) {
	target, err := c.resolver.ResolveFully(ref, resolver.NewContext(doc))
	if err != nil {
		return nil, err
	}
	return c.compose(newComposeRun(), target)
}

// compose computes the effective schema for target. The target is
// dereferenced first, so composition always operates on a terminal node;
// resolution failures propagate to the caller, which decides whether they
// are fatal (the composed node itself, allOf members) or a per-branch
// diagnostic (properties, items).
func (c *Composer) compose(run *composeRun, target resolver.Target) (*Schema, error) {
	resolved, err := c.resolver.ResolveFullyTarget(target, resolver.NewContext(target.Doc))
	if err != nil {
		return nil, err
	}

	key := resolved.Key()
	if s, ok := run.cache[key]; ok {
		return s, nil
	}
	s := newSchema(key)
	run.cache[key] = s

	node := resolved.Node
	if !loader.IsMapping(node) {
		// A scalar or sequence where a schema object was expected
		// constrains nothing.
		return s, nil
	}

	if d, ok := loader.MappingGet(node, "description"); ok {
		s.Description = loader.ScalarString(d)
	}
	if tn, ok := loader.MappingGet(node, "type"); ok {
		s.Types = loader.StringList(tn)
	}
	if f, ok := loader.MappingGet(node, "format"); ok {
		s.Format = loader.ScalarString(f)
	}
	if rn, ok := loader.MappingGet(node, "required"); ok {
		s.addRequired(loader.StringList(rn))
	}
	if ap, ok := loader.MappingGet(node, "additionalProperties"); ok {
		if b, isBool := loader.ScalarBool(ap); isBool && !b {
			s.AdditionalProperties = false
		}
	}
	if ex, ok := loader.MappingGet(node, "example"); ok {
		if v, decErr := loader.DecodeValue(ex); decErr == nil {
			s.Example = v
		}
	}

	if items, ok := loader.MappingGet(node, "items"); ok {
		itemTarget := resolver.Target{Node: items, Doc: resolved.Doc, Pointer: resolved.Pointer + "/items"}
		itemSchema, itemErr := c.compose(run, itemTarget)
		if itemErr != nil {
			s.Diagnostics = append(s.Diagnostics, branchIssue("items", items, itemErr))
		} else {
			s.Items = itemSchema
		}
	}

	if props, ok := loader.MappingGet(node, "properties"); ok {
		for _, name := range loader.MappingKeys(props) {
			propNode, _ := loader.MappingGet(props, name)
			propTarget := resolver.Target{
				Node:    propNode,
				Doc:     resolved.Doc,
				Pointer: resolved.Pointer + "/properties/" + name,
			}
			propSchema, propErr := c.compose(run, propTarget)
			if propErr != nil {
				// One broken property branch does not abort the schema;
				// the property stays declared but unvalidatable.
				c.logger.Warn("property schema unresolvable", "schema", key, "property", name, "error", propErr)
				s.setProperty(name, nil)
				s.Diagnostics = append(s.Diagnostics, branchIssue(name, propNode, propErr))
				continue
			}
			s.setProperty(name, propSchema)
		}
	}

	if allOf, ok := loader.MappingGet(node, "allOf"); ok {
		for i, member := range loader.SequenceItems(allOf) {
			memberTarget := resolver.Target{
				Node:    member,
				Doc:     resolved.Doc,
				Pointer: fmt.Sprintf("%s/allOf/%d", resolved.Pointer, i),
			}
			memberSchema, memberErr := c.compose(run, memberTarget)
			if memberErr != nil {
				// Losing a whole allOf member would silently drop
				// constraints, so this is fatal for the composed node.
				return nil, fmt.Errorf("composing allOf member %d of %s: %w", i, key, memberErr)
			}
			s.merge(memberSchema)
		}
	}

	return s, nil
}

// merge folds one allOf contributor into the schema under the defined
// rules. Contributors are merged in list order after the base schema.
func (s *Schema) merge(member *Schema) {
	for _, name := range member.PropertyOrder {
		s.setProperty(name, member.Properties[name])
	}
	s.addRequired(member.Required)
	if !member.AdditionalProperties {
		s.AdditionalProperties = false
	}
	if member.Description != "" {
		s.Description = member.Description
	}
	if member.Example != nil {
		s.Example = member.Example
	}
	if len(s.Types) == 0 {
		s.Types = member.Types
	}
	if s.Format == "" {
		s.Format = member.Format
	}
	if s.Items == nil {
		s.Items = member.Items
	}
	s.Diagnostics = append(s.Diagnostics, member.Diagnostics...)
}

// branchIssue builds the diagnostic for a property or items branch whose
// reference chain failed, distinguishing circular from unresolvable chains.
func branchIssue(path string, node *yaml.Node, err error) issues.Issue {
	issue := issues.Issue{
		Path:     path,
		Kind:     issues.KindUnresolvableReference,
		Message:  "property schema could not be resolved",
		Severity: severity.SeverityCritical,
	}
	if errors.Is(err, schemaerrors.ErrCircularReference) {
		issue.Kind = issues.KindCircularReference
		issue.Message = "property schema forms a reference cycle"
	}
	if ref, ok := loader.RefTarget(node); ok {
		issue.Ref = ref
	} else {
		var refErr *schemaerrors.ReferenceError
		if errors.As(err, &refErr) {
			issue.Ref = refErr.Ref
		}
	}
	return issue
}
