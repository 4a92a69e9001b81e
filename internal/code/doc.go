// Package code parses and matches the 4-segment classification codes that key
// the ismism dataset.
//
// # Codes
//
// A code is four segments joined by "-", each segment a digit 1-4 or "$":
//
//	1-1-1-1   科学独断论
//	$-1-2-3   a subjectless ism
//
// Segments are a tagged value (Segment): a digit, or Unknown ("$"). The type
// keeps the two meanings of "$" apart from the positional convention that
// interprets them.
//
// # Matching
//
// Queries use the same shape. The first position is compared exactly, so
// "$" selects the subjectless category and nothing else, while a digit never
// selects a subjectless record. Positions 2-4 of a query accept "$" as a
// wildcard:
//
//	code.Filter("2-$-$-$", isms, func(i *Ism) string { return i.Code })
//
// A query that does not parse matches nothing, and records whose codes do not
// parse are skipped. Neither case is an error.
package code
