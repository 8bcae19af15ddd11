// Package schema loads rule tables from YAML or JSON documents.
//
// A document lists one entry per rule, written either in long form or as a
// compact "1RH" action string:
//
//	name: busy-beaver-2
//	rules:
//	  - {read: 0, state: a, write: 1, move: R, next: b}
//	  - {read: 1, state: a, do: 1Lb}
//	  - {read: 0, state: b, do: 1La}
//	  - {read: 1, state: b, do: 1RH}
//
// Decoding is two-phase: the document is parsed into a generic map with
// yaml.v3 (JSON is valid YAML) and then mapped onto typed structs with
// mapstructure, so scalar values may be written as numbers or strings.
//
// Every malformed field is reported, not just the first one, through an
// *AggregateError of *ValidationError values.
package schema
