package composer

import (
	"github.com/upsight/schematools/loader"
	"github.com/upsight/schematools/resolver"
)

// RequestSchema synthesizes an effective object schema for a request from a
// list of parameter names, each backed by a definition in doc's
// #/definitions mapping, with the given required subset.
//
// The resulting schema allows additional properties because the data it
// validates may include values injected by handler middleware alongside the
// declared parameters.
//
// A parameter whose definition is missing or unresolvable becomes an
// unvalidatable property with a diagnostic, matching how broken property
// branches behave during document composition.
func (c *Composer) RequestSchema(doc *loader.Document, params, required []string) (*Schema, error) {
	run := newComposeRun()

	s := newSchema("")
	s.Types = []string{"object"}
	s.addRequired(required)

	for _, param := range params {
		ref := "#/definitions/" + param
		target, err := c.resolver.ResolveFully(ref, resolver.NewContext(doc))
		if err != nil {
			s.setProperty(param, nil)
			s.Diagnostics = append(s.Diagnostics, branchIssue(param, nil, err))
			continue
		}
		prop, err := c.compose(run, target)
		if err != nil {
			s.setProperty(param, nil)
			s.Diagnostics = append(s.Diagnostics, branchIssue(param, nil, err))
			continue
		}
		s.setProperty(param, prop)
	}

	return s, nil
}
