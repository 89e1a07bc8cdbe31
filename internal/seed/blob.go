package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrMalformed is returned when a credential blob cannot be parsed or does
// not hold a seed for the requested identity.
var ErrMalformed = errors.New("malformed credential data")

// Blob is the raw payload kept in the credential store:
//
//	{"identities":[{"name":"main","seed":"..."}]}
type Blob []byte

// Identity is one wallet identity inside a Blob.
type Identity struct {
	Name string `json:"name"`
	Seed string `json:"seed"`
}

type rawIdentity struct {
	Name string          `json:"name"`
	Seed json.RawMessage `json:"seed"`
}

type rawDocument struct {
	Identities []rawIdentity `json:"identities"`
}

// Empty reports whether the blob carries no data at all.
func (b Blob) Empty() bool {
	return len(bytes.TrimSpace(b)) == 0
}

// Zero overwrites the blob in place.
func (b Blob) Zero() {
	clear(b)
}

// Encode builds a Blob from identities. Used when importing credentials.
func Encode(ids []Identity) (Blob, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no identities", ErrMalformed)
	}
	for i, id := range ids {
		if id.Seed == "" {
			return nil, fmt.Errorf("%w: identity %d has an empty seed", ErrMalformed, i)
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(struct {
		Identities []Identity `json:"identities"`
	}{ids}); err != nil {
		return nil, fmt.Errorf("encoding identities: %w", err)
	}
	return Blob(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Validate checks that every identity in b holds a seed Extract accepts.
func Validate(b Blob) error {
	if b.Empty() {
		return fmt.Errorf("%w: empty blob", ErrMalformed)
	}
	doc, err := decode(b)
	if err != nil {
		return err
	}
	defer wipe(doc)

	for i, id := range doc.Identities {
		content, err := unquote(id.Seed)
		if err != nil {
			return fmt.Errorf("%w: identity %d: %v", ErrMalformed, i, err)
		}
		clear(content)
	}
	return nil
}

// Names lists identity names without decoding any seed.
func Names(b Blob) ([]string, error) {
	doc, err := decode(b)
	if err != nil {
		return nil, err
	}
	defer wipe(doc)

	names := make([]string, len(doc.Identities))
	for i, id := range doc.Identities {
		names[i] = id.Name
	}
	return names, nil
}

// Extract returns the seed of the identity at index. It is deterministic and
// leaves b untouched; the returned Secret owns a fresh copy of the seed.
func Extract(b Blob, index int) (*Secret, error) {
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty blob", ErrMalformed)
	}
	doc, err := decode(b)
	if err != nil {
		return nil, err
	}
	defer wipe(doc)

	if index < 0 || index >= len(doc.Identities) {
		return nil, fmt.Errorf("%w: no identity at index %d (have %d)", ErrMalformed, index, len(doc.Identities))
	}

	content, err := unquote(doc.Identities[index].Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: identity %d: %v", ErrMalformed, index, err)
	}
	return newSecret(content, index), nil
}

func decode(b Blob) (*rawDocument, error) {
	var doc rawDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(doc.Identities) == 0 {
		return nil, fmt.Errorf("%w: no identities", ErrMalformed)
	}
	return &doc, nil
}

// unquote decodes a JSON string literal out of raw without going through a
// Go string, so the result can be wiped later. The output never outgrows its
// initial capacity, so no unwiped intermediate copies are left behind.
func unquote(raw json.RawMessage) ([]byte, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return nil, errors.New("seed is not a string")
	}
	body := raw[1 : len(raw)-1]
	if len(body) == 0 {
		return nil, errors.New("seed is empty")
	}

	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(body) {
			clear(out)
			return nil, errors.New("truncated escape sequence")
		}
		switch e := body[i+1]; e {
		case '"', '\\', '/':
			out = append(out, e)
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			r, n, ok := decodeUnicode(body[i:])
			if !ok {
				clear(out)
				return nil, errors.New("invalid unicode escape")
			}
			out = utf8.AppendRune(out, r)
			i += n
			continue
		default:
			clear(out)
			return nil, fmt.Errorf("invalid escape character %q", e)
		}
		i += 2
	}
	return out, nil
}

// decodeUnicode reads a \uXXXX escape, joining a following low surrogate
// when present. Unpaired surrogates become U+FFFD as in encoding/json.
func decodeUnicode(b []byte) (rune, int, bool) {
	r, ok := hex4(b)
	if !ok {
		return 0, 0, false
	}
	if !utf16.IsSurrogate(r) {
		return r, 6, true
	}
	if r2, ok := hex4(b[6:]); ok {
		if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
			return dec, 12, true
		}
	}
	return utf8.RuneError, 6, true
}

// hex4 parses the four hex digits of a \uXXXX escape at the start of b.
func hex4(b []byte) (rune, bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, false
	}
	var r rune
	for _, c := range b[2:6] {
		switch {
		case '0' <= c && c <= '9':
			c -= '0'
		case 'a' <= c && c <= 'f':
			c = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			c = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(c)
	}
	return r, true
}

func wipe(doc *rawDocument) {
	for i := range doc.Identities {
		clear(doc.Identities[i].Seed)
	}
}
