package anonymous

import (
	"strings"

	"github.com/ocaml-wasm/ppx-css/rewrite"
)

// Segment is one piece of an interpolated CSS string. Exactly one of Literal
// or Interp is non-nil.
type Segment struct {
	Literal *string
	Interp  *Interp
}

// Interp is a foreign interpolated value: an opaque reference plus an
// optional formatter module path.
type Interp struct {
	Ref       rewrite.Reference
	Formatter string
}

// ParseSegments splits input on "%{...}" interpolation markers into an
// ordered literal/interpreted sequence. The text inside the braces becomes
// the opaque reference; a "#path" suffix names the formatter
// ("%{width#Length}"). An unterminated marker is kept as literal text.
func ParseSegments(input string) []Segment {
	var segs []Segment
	for {
		i := strings.Index(input, "%{")
		if i < 0 {
			break
		}
		j := strings.Index(input[i:], "}")
		if j < 0 {
			break
		}
		if i > 0 {
			lit := input[:i]
			segs = append(segs, Segment{Literal: &lit})
		}
		expr, formatter, _ := strings.Cut(input[i+2:i+j], "#")
		segs = append(segs, Segment{Interp: &Interp{Ref: expr, Formatter: formatter}})
		input = input[i+j+1:]
	}
	if input != "" {
		segs = append(segs, Segment{Literal: &input})
	}
	return segs
}
