// Package composer computes effective schemas: fully dereferenced, fully
// composed views of schema nodes ready for instance validation.
//
// Composition always operates on a dereferenced node. When the node carries
// an allOf keyword, the node's own sibling keys act as an implicit base
// schema and each allOf member is composed in list order, then folded:
//
//   - properties merge key-by-key; when the same key appears in two
//     contributors, the later contributor's effective schema replaces the
//     earlier one wholesale (no deep merge of the property's sub-schema)
//   - required is the union of all required lists, duplicates removed,
//     first-seen order preserved
//   - additionalProperties is AND-combined: false if any contributor says
//     false
//   - description and example take the last non-empty contributor
//   - type and format come from the base schema when present, else from the
//     first allOf contributor that defines them
//
// Property sub-schemas are themselves composed recursively; a property
// whose reference chain fails resolves to an unvalidatable branch recorded
// in Schema.Diagnostics rather than aborting the whole composition. Only a
// failure to obtain an allOf member (or the composed node itself) is fatal.
//
// Effective schemas are computed lazily and cached per (document, pointer)
// key for the lifetime of a single Compose call, which also makes
// composition of self-referential schema graphs terminate.
package composer
