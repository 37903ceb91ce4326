// =============================================================================
// SolarWinds CSV to SNMP Config Generator - Encoding Detection Module
// =============================================================================
//
// SolarWinds exports arrive in whatever encoding the exporting workstation
// happened to use: UTF-8 with or without a BOM, Windows code pages, Latin-1.
// This module guesses the encoding from a byte sample using a statistical
// charset detector, and builds decoding readers for the guessed charset.
//
// DETECTION POLICY:
//   - A pure-ASCII guess is promoted to UTF-8, since ASCII is a strict
//     subset and UTF-8 also covers files where the sample happened to be
//     ASCII-only.
//   - If the detector cannot produce a guess, fall back to BOM-tolerant
//     UTF-8 ("utf-8-sig"), the most common case in practice.
//
// =============================================================================

package encoding

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SampleSize is the number of bytes read from the start of the file for
// detection. Detection accuracy plateaus well below this size.
const SampleSize = 32 * 1024

// CharsetUTF8SIG is the fallback charset: UTF-8 that tolerates (and strips)
// a leading byte-order mark.
const CharsetUTF8SIG = "utf-8-sig"

// =============================================================================
// DECODE ERROR
// =============================================================================

// DecodeError reports that the input could not be decoded with the charset
// that was detected for it. It is fatal: a wrong decode would corrupt every
// downstream field.
type DecodeError struct {
	// Charset is the charset the decode was attempted with.
	Charset string

	// Err is the underlying transform error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf(
		"failed to decode input using detected encoding %q: %v (try checking the file's actual encoding)",
		e.Charset, e.Err,
	)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// =============================================================================
// DETECTION
// =============================================================================

// Detect guesses the charset of the file at path.
//
// RETURNS:
//   - The charset name to decode the file with.
//   - The detector's confidence (0-100; 0 when the fallback was used).
//   - An error only if the file cannot be opened or read.
func Detect(path string) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file for encoding detection: %w", err)
	}
	defer f.Close()

	sample := make([]byte, SampleSize)
	n, err := io.ReadFull(f, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", 0, fmt.Errorf("failed to read sample from %s: %w", path, err)
	}
	sample = sample[:n]

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result.Charset == "" {
		// The detector had nothing to say (empty file, or no recognizer
		// reached a usable confidence). Fall back to BOM-tolerant UTF-8.
		return CharsetUTF8SIG, 0, nil
	}

	return normalizeCharset(result.Charset), result.Confidence, nil
}

// normalizeCharset applies the detection policy to a raw detector guess.
func normalizeCharset(charset string) string {
	// ASCII is a strict subset of UTF-8; reading as UTF-8 is always safe
	// and also covers non-ASCII bytes past the detection sample.
	if strings.EqualFold(charset, "ascii") || strings.EqualFold(charset, "us-ascii") {
		return "UTF-8"
	}
	return charset
}

// =============================================================================
// DECODING READERS
// =============================================================================

// NewReader wraps r so that reads return UTF-8 text decoded from charset.
//
// UTF-8 variants are validated strictly: an invalid byte sequence surfaces
// as a DecodeError instead of being silently replaced, because it almost
// always means the detection was wrong. Single-byte charsets decode every
// byte and cannot fail.
func NewReader(r io.Reader, charset string) (io.Reader, error) {
	var t transform.Transformer

	switch {
	case strings.EqualFold(charset, CharsetUTF8SIG):
		t = transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
	case strings.EqualFold(charset, "utf-8"):
		// Treat a plain UTF-8 guess as BOM-tolerant too; a BOM would
		// otherwise survive into the first header name.
		t = transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
	default:
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, &DecodeError{Charset: charset, Err: err}
		}
		t = enc.NewDecoder()
	}

	return &errorTaggingReader{r: transform.NewReader(r, t), charset: charset}, nil
}

// errorTaggingReader converts transform errors into DecodeErrors so callers
// see one error kind for every decode problem.
type errorTaggingReader struct {
	r       io.Reader
	charset string
}

func (r *errorTaggingReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &DecodeError{Charset: r.charset, Err: err}
	}
	return n, err
}
