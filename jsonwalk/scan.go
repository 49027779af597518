package jsonwalk

import (
	"strings"

	"github.com/mgrzeszczak/unwall"
)

// ExtractObject locates marker in a raw document and returns the JSON
// object literal that follows it. The blob is embedded inside non-JSON
// markup, so the object is recovered with a brace-balanced scan that is
// aware of string literals and escape sequences, not by parsing the whole
// document as JSON.
//
// Returns ENOTFOUND when the marker is absent and EINVALID when no
// balanced object follows it.
func ExtractObject(src, marker string) ([]byte, error) {
	at := strings.Index(src, marker)
	if at < 0 {
		return nil, unwall.Errorf(unwall.ENOTFOUND, "marker %q not found in document", marker)
	}

	rest := src[at+len(marker):]
	start := strings.IndexByte(rest, '{')
	if start < 0 {
		return nil, unwall.Errorf(unwall.EINVALID, "no object literal after marker %q", marker)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(rest); i++ {
		c := rest[i]

		if escaped {
			escaped = false
			continue
		}

		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return []byte(rest[start : i+1]), nil
			}
		}
	}

	return nil, unwall.Errorf(unwall.EINVALID, "unbalanced object literal after marker %q", marker)
}
