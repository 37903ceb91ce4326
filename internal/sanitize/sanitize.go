// =============================================================================
// SolarWinds CSV to SNMP Config Generator - Sanitizer Module
// =============================================================================
//
// This module cleans the text that comes out of SolarWinds exports. Two
// sanitizers live here:
//
//   Value - applied to every header name and every cell value. SolarWinds
//           exports are frequently mojibake: UTF-8 bytes that were misread
//           as a single-byte encoding somewhere upstream. Re-encoding the
//           text as Latin-1 and decoding the resulting bytes as UTF-8
//           round-trips such values back to correct UTF-8.
//
//   Tag   - applied to tag names and tag values. Tags are restricted to a
//           small character set, so everything outside it is replaced with
//           underscores, runs are collapsed and the ends are trimmed.
//
// =============================================================================

package sanitize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	// invalidTagChars matches every character a tag may not contain.
	invalidTagChars = regexp.MustCompile(`[^a-zA-Z0-9_\-:./]`)

	// underscoreRuns matches runs of consecutive underscores.
	underscoreRuns = regexp.MustCompile(`_+`)
)

// Value sanitizes a single header or cell value.
//
// STRATEGY:
//  1. Re-encode the text as Latin-1 and decode the bytes as UTF-8,
//     substituting U+FFFD for every byte that is not valid UTF-8. This
//     repairs the common mojibake case without touching clean ASCII.
//  2. If the text contains runes above U+00FF the Latin-1 round-trip is
//     impossible; fall back to stripping all non-printable characters.
//
// The function is total: it always returns a string, empty in the worst case.
func Value(s string) string {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return stripNonPrintable(s)
	}
	return decodeUTF8Replacing(raw)
}

// decodeUTF8Replacing decodes raw bytes as UTF-8, substituting the standard
// replacement character for each undecodable byte.
func decodeUTF8Replacing(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			i++
			continue
		}
		b.WriteRune(r)
		i += size
	}

	return b.String()
}

// stripNonPrintable drops every rune the unicode tables consider
// non-printable. Used only when the Latin-1 round-trip is impossible.
func stripNonPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Tag sanitizes a tag name or tag value down to the allowed character set.
//
// OPERATIONS:
//  1. Replace every character outside [A-Za-z0-9_\-:./] with an underscore.
//  2. Collapse runs of underscores into a single underscore.
//  3. Trim leading and trailing underscores.
//
// Applying Tag twice yields the same result as applying it once.
func Tag(s string) string {
	if s == "" {
		return s
	}

	s = invalidTagChars.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
