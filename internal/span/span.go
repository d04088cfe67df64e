// Package span implements Nova's source-location model: a half-open byte
// range into the original source string.
package span

import "unsafe"

// Span is a half-open interval [Start, End) over byte offsets of a source
// string. The invariant Start <= End is enforced at every construction
// site. Fields are private so the invariant cannot be bypassed by a zero
// value built outside this package's constructors -- except for the
// deliberate Zero sentinel below, which is itself a valid (empty) span.
//
// Span is guaranteed to be exactly 8 bytes: two uint32 fields, no padding.
// Large source files (>4GiB) are out of scope; see spec.md Resource limits.
type Span struct {
	start uint32
	end   uint32
}

// New creates a span from start (inclusive) to end (exclusive).
//
// Panics if start > end -- every call site controls both ends and a
// violation here means a bug in the caller, not malformed input.
func New(start, end uint32) Span {
	if start > end {
		panic("span: start must be <= end")
	}
	return Span{start: start, end: end}
}

// Zero returns the sentinel span (0, 0), used for synthetic nodes that
// have no corresponding source text.
func Zero() Span {
	return Span{}
}

// Start returns the inclusive start offset.
func (s Span) Start() uint32 { return s.start }

// End returns the exclusive end offset.
func (s Span) End() uint32 { return s.end }

// Len returns the length of the span in bytes. Uses saturating
// subtraction as defense in depth; the constructor invariant already
// guarantees End >= Start.
func (s Span) Len() uint32 {
	if s.end < s.start {
		return 0
	}
	return s.end - s.start
}

// IsEmpty reports whether the span has zero length.
func (s Span) IsEmpty() bool {
	return s.start == s.end
}

// Contains reports whether offset falls within [Start, End).
func (s Span) Contains(offset uint32) bool {
	return s.start <= offset && offset < s.end
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	start := s.start
	if other.start < start {
		start = other.start
	}
	end := s.end
	if other.end > end {
		end = other.end
	}
	return Span{start: start, end: end}
}

// Slice returns the substring of source covered by the span.
func (s Span) Slice(source string) string {
	return source[s.start:s.end]
}

func (s Span) String() string {
	return itoa(s.start) + ".." + itoa(s.end)
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// sizeCheck fails to compile if Span's layout ever grows beyond 8 bytes.
var _ [8]byte = [unsafe.Sizeof(Span{})]byte{}
