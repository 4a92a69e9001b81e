package code

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates segments in the textual form of a code.
const Delimiter = "-"

// Width is the number of segments in a well-formed code.
const Width = 4

// ErrSegmentCount is returned when a code does not split into exactly Width segments.
var ErrSegmentCount = errors.New("code must have exactly 4 segments")

// ErrInvalidSegment is returned when a segment is not a digit 1-4 or "$".
var ErrInvalidSegment = errors.New("segment must be 1, 2, 3, 4 or $")

// Code is a parsed 4-segment classification code.
// Both dataset codes and search queries use this type; what "$" means depends
// on which side of a match it sits (see Match).
type Code [Width]Segment

// Parse splits s on Delimiter and parses each segment.
func Parse(s string) (Code, error) {
	parts := strings.Split(s, Delimiter)
	if len(parts) != Width {
		return Code{}, fmt.Errorf("parsing code %q: %w (got %d)", s, ErrSegmentCount, len(parts))
	}

	var c Code
	for i, part := range parts {
		seg, ok := ParseSegment(part)
		if !ok {
			return Code{}, fmt.Errorf("parsing code %q: segment %d %q: %w", s, i+1, part, ErrInvalidSegment)
		}
		c[i] = seg
	}
	return c, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromSegments joins separately supplied segments, e.g. four CLI arguments
// or four slider positions, into the textual form Parse expects.
func FromSegments(segments ...string) string {
	return strings.Join(segments, Delimiter)
}

// String returns the delimited form, e.g. "$-1-2-3".
func (c Code) String() string {
	return c.Prefix(Width)
}

// Prefix returns the first n segments joined by Delimiter.
// n is clamped to 0..Width.
func (c Code) Prefix(n int) string {
	n = min(max(n, 0), Width)
	parts := make([]string, n)
	for i := range n {
		parts[i] = c[i].String()
	}
	return strings.Join(parts, Delimiter)
}

// Subjectless reports whether the first segment is "$", the category of isms
// that lack a subject.
func (c Code) Subjectless() bool {
	return c[0].IsUnknown()
}
