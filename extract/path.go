// Package extract locates the array of elements to stream inside a JSON
// document.  An extraction path such as "response[*]" names the property
// chain leading to that array; the Transformer re-emits each of its
// elements as a standalone value while discarding everything else in the
// document.
package extract

import (
	"fmt"
	"strings"
)

// ArrayMarker terminates every extraction path.  Requiring it up front
// means the decision to stream is made at configuration time, not
// discovered mid-parse.
const ArrayMarker = "[*]"

// ErrMissingArrayMarker is returned for an extraction path that does not
// end in "[*]".
var ErrMissingArrayMarker = fmt.Errorf("extraction path must end in %q", ArrayMarker)

// ErrEmptySegment is returned for an extraction path with an empty property
// name, e.g. "a..b[*]".
var ErrEmptySegment = fmt.Errorf("extraction path has an empty property name")

// A Path is the parsed form of an extraction path: the chain of property
// names leading to the target array.  An empty Path means the document
// itself is the array.
type Path []string

// ParsePath parses an extraction path.  The path is a dot-separated chain
// of property names terminated by the "[*]" array marker:
//
//	"response[*]"  -> Path{"response"}
//	"d.results[*]" -> Path{"d", "results"}
//	"[*]"          -> Path{}
func ParsePath(s string) (Path, error) {
	if !strings.HasSuffix(s, ArrayMarker) {
		return nil, fmt.Errorf("%w: got %q", ErrMissingArrayMarker, s)
	}
	s = strings.TrimSuffix(s, ArrayMarker)
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptySegment, s+ArrayMarker)
		}
	}
	return Path(parts), nil
}

func (p Path) String() string {
	return strings.Join(p, ".") + ArrayMarker
}
