// Package schematools provides tools for resolving and validating
// JSON-Schema-style documents (Draft-04 subset) authored in YAML or JSON.
//
// The library is organized around five packages that mirror the stages of
// working with a set of interlinked schema documents:
//
//   - loader: load schema documents into an immutable, identity-keyed store
//   - resolver: resolve $ref pointers across documents with cycle detection
//   - composer: merge allOf fragments into a single effective schema
//   - validator: validate instance data against an effective schema
//   - walker: inventory every $ref in a document set with resolution status
//
// # Quick Start
//
// Load a document set and resolve a reference:
//
//	import (
//	    "github.com/upsight/schematools/loader"
//	    "github.com/upsight/schematools/resolver"
//	)
//
//	store := loader.NewStore(loader.FileLoader("./schemas"))
//	doc, err := store.Load("annotation.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	target, err := resolver.New(store).ResolveFully("#/definitions/annotation_id", resolver.NewContext(doc))
//
// Compose the document's effective schema and validate an instance:
//
//	import (
//	    "github.com/upsight/schematools/composer"
//	    "github.com/upsight/schematools/validator"
//	)
//
//	effective, err := composer.New(store).ComposeDocument(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	violations := validator.New().Validate(effective, instance)
//
// # Error Handling
//
// Reference failures are reported through structured error types in the
// schemaerrors package. Use errors.Is and errors.As to distinguish a
// reference chain that ends in a missing target (ErrReference) from one
// that forms a cycle (ErrCircularReference):
//
//	_, err := r.ResolveFully("#/circular_ref_chain_1", ctx)
//	var refErr *schemaerrors.ReferenceError
//	if errors.As(err, &refErr) && refErr.IsCircular {
//	    fmt.Println("cycle:", strings.Join(refErr.Chain, " -> "))
//	}
//
// # CLI
//
// The schematools command exposes the library on the command line:
//
//	schematools resolve -root ./schemas 'annotation.yaml#/definitions/annotation_id'
//	schematools compose -root ./schemas -format yaml annotation.yaml
//	schematools validate -root ./schemas -instance data.json annotation.yaml
//	schematools refs -root ./schemas annotation.yaml
//
// See the per-package documentation for details.
package schematools
