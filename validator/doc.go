// Package validator checks instance data against effective schemas.
//
// Validation walks an effective (fully dereferenced, fully composed) schema
// against an instance value and collects every violation rather than
// stopping at the first, so a single run yields a complete conformance
// report:
//
//   - required: each listed name must be present in the instance object
//   - additionalProperties false: instance keys outside the declared
//     property set are rejected
//   - type: the instance value's runtime kind must be a member of the
//     declared type set (e.g. ["null", "string"] accepts null or string)
//   - format uri: string values must parse as syntactically valid URIs
//   - items and nested properties are validated recursively
//
// Violations never abort a run. Property branches whose schemas could not
// be composed (unresolvable or circular reference chains) are reported as
// unvalidatable and skipped; the rest of the instance is still validated.
package validator
