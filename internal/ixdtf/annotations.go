package ixdtf

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/terr"
)

// parseAnnotationsInto consumes zero or more trailing `[...]` brackets
// per spec.md §4.6: the first bracket with no `key=value` form (and no
// critical flag restriction) names a time zone; every later bracket
// must be `[!]key=value`. Duplicate non-critical annotations of the
// same key are accepted (first wins); a key is rejected if either its
// first or any later occurrence was marked critical and it recurs.
// Unknown critical keys fail; unknown non-critical keys are ignored.
func parseAnnotationsInto(c *cursor, result *DateTime) error {
	seenCritical := map[string]bool{}
	seen := map[string]bool{}
	first := true

	for !c.eof() && c.peek() == '[' {
		c.advance()
		critical := false
		if !c.eof() && c.peek() == '!' {
			critical = true
			c.advance()
		}
		start := c.pos
		for !c.eof() && c.peek() != ']' {
			c.advance()
		}
		if c.eof() {
			return terr.Syntaxf("unterminated annotation in %q", c.s)
		}
		body := c.s[start:c.pos]
		c.advance() // consume ']'

		eq := strings.IndexByte(body, '=')
		if eq < 0 {
			if first {
				result.TimeZone = body
				first = false
				continue
			}
			if critical {
				return terr.Syntaxf("unknown critical annotation %q", body)
			}
			continue
		}
		first = false
		key := norm.NFC.String(body[:eq])
		value := body[eq+1:]

		if seen[key] {
			if critical || seenCritical[key] {
				return terr.Syntaxf("duplicate critical annotation %q", key)
			}
			continue // first wins
		}
		seen[key] = true
		if critical {
			seenCritical[key] = true
		}

		switch key {
		case "u-ca":
			id, ok := calendar.Parse(value)
			if !ok {
				return terr.Syntaxf("unknown calendar %q in u-ca annotation", value)
			}
			result.Calendar = id
			result.HasCalendar = true
		default:
			if critical {
				return terr.Syntaxf("unknown critical annotation %q", key)
			}
			// unknown non-critical annotation: ignored per spec.md §4.6.
		}
	}
	return nil
}
