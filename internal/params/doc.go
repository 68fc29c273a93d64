// Package params declares, coerces and validates request parameters
// independently of any HTTP router.
//
// A route declares its inputs as a list of Param values, each carrying an
// explicit Constraints object:
//
//   - param.go: Location, Type, Constraints and the Path/Query/Body builders.
//   - spec.go: Compile turns declarations into a Spec; Spec.Extract reads a Source.
//   - coerce.go: text to typed value conversion and constraint checks.
//   - body.go: field-by-field JSON body decoding with struct validation.
//   - values.go: typed accessors over extracted values.
//   - errors.go: the aggregated ValidationError.
//
// Extraction never stops at the first problem: every failing parameter and
// body field of a request ends up in a single ValidationError.
package params
