package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

const testBlob = `{"identities":[{"name":"main","seed":"AAAA9BBBB"},{"name":"savings","seed":"CCCC9DDDD"}]}`

func TestExtractByIndex(t *testing.T) {
	b := Blob(testBlob)

	s, err := Extract(b, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := s.Reveal(); got != "CCCC9DDDD" {
		t.Errorf("expected CCCC9DDDD, got %q", got)
	}
	if s.Index() != 1 {
		t.Errorf("expected index 1, got %d", s.Index())
	}
}

func TestExtractDeterministic(t *testing.T) {
	b := Blob(testBlob)

	a, err := Extract(b, 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	c, err := Extract(b, 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if a.Reveal() != c.Reveal() {
		t.Error("expected identical seeds from the same blob")
	}
	if string(b) != testBlob {
		t.Error("Extract must not modify the blob")
	}
}

func TestExtractMalformed(t *testing.T) {
	tests := []struct {
		name  string
		blob  string
		index int
	}{
		{"empty", "", 0},
		{"whitespace", "  \n", 0},
		{"not json", "seed", 0},
		{"no identities", `{"identities":[]}`, 0},
		{"index out of range", testBlob, 2},
		{"negative index", testBlob, -1},
		{"seed not a string", `{"identities":[{"name":"a","seed":42}]}`, 0},
		{"empty seed", `{"identities":[{"name":"a","seed":""}]}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Extract(Blob(tt.blob), tt.index)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if s != nil {
				t.Error("expected no secret on failure")
			}
		})
	}
}

func TestSecretZero(t *testing.T) {
	s, err := Extract(Blob(testBlob), 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	held := s.data

	s.Zero()
	if s.Len() != 0 {
		t.Errorf("expected empty secret after Zero, got len %d", s.Len())
	}
	if s.Reveal() != "" {
		t.Error("expected no content after Zero")
	}
	for i, c := range held {
		if c != 0 {
			t.Fatalf("byte %d not wiped: %q", i, c)
		}
	}

	// Second call and nil receiver are no-ops.
	s.Zero()
	var nilSecret *Secret
	nilSecret.Zero()
}

func TestSecretRedaction(t *testing.T) {
	s, err := Extract(Blob(testBlob), 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	defer s.Zero()

	for _, format := range []string{"%v", "%+v", "%#v", "%s", "%q"} {
		if got := fmt.Sprintf(format, s); got != "[SECRET]" {
			t.Errorf("%s: expected redaction, got %q", format, got)
		}
	}

	data, err := json.Marshal(map[string]any{"seed": s})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"seed":"[SECRET]"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestEncodeAndNames(t *testing.T) {
	b, err := Encode([]Identity{{Name: "main", Seed: "AAA"}, {Name: "cold", Seed: "BBB"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	names, err := Names(b)
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 2 || names[0] != "main" || names[1] != "cold" {
		t.Errorf("unexpected names %v", names)
	}

	s, err := Extract(b, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if s.Reveal() != "BBB" {
		t.Errorf("expected BBB, got %q", s.Reveal())
	}
}

func TestExtractUnescapes(t *testing.T) {
	tests := []struct {
		name string
		seed string
		want string
	}{
		{"quote", `pass\"word`, `pass"word`},
		{"backslash and slash", `a\\b\/c`, `a\b/c`},
		{"control characters", `a\tb\nc\r\b\f`, "a\tb\nc\r\b\f"},
		{"html escapes", `correct horse \u0026 battery \u003cstaple\u003e`, "correct horse & battery <staple>"},
		{"two byte rune", `gr\u00fcn`, "grün"},
		{"surrogate pair", `key \ud83d\udd11`, "key 🔑"},
		{"lone surrogate", `x\ud800y`, "x\uFFFDy"},
		{"raw utf8", "grün", "grün"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := Blob(`{"identities":[{"name":"a","seed":"` + tt.seed + `"}]}`)
			s, err := Extract(blob, 0)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			defer s.Zero()
			if got := s.Reveal(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if err := Validate(blob); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestEncodeKeepsPassphraseDisclosable(t *testing.T) {
	phrases := []string{"correct horse & battery", "<staple>", `quote " and \ backslash`, "tab\tseparated"}
	ids := make([]Identity, len(phrases))
	for i, p := range phrases {
		ids[i] = Identity{Name: fmt.Sprintf("id%d", i), Seed: p}
	}

	b, err := Encode(ids)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(string(b), `\u0026`) {
		t.Errorf("Encode escaped HTML characters: %s", b)
	}
	if err := Validate(b); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for i, want := range phrases {
		s, err := Extract(b, i)
		if err != nil {
			t.Fatalf("Extract(%d): %v", i, err)
		}
		if got := s.Reveal(); got != want {
			t.Errorf("identity %d: got %q, want %q", i, got, want)
		}
		s.Zero()
	}
}

func TestValidateMatchesExtract(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"empty", ""},
		{"no identities", `{"identities":[]}`},
		{"numeric seed", `{"identities":[{"name":"a","seed":"OK"},{"name":"b","seed":42}]}`},
		{"empty seed", `{"identities":[{"name":"a","seed":""}]}`},
		{"null seed", `{"identities":[{"name":"a","seed":null}]}`},
		{"missing seed", `{"identities":[{"name":"a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(Blob(tt.blob)); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}

	if err := Validate(Blob(testBlob)); err != nil {
		t.Errorf("Validate(testBlob): %v", err)
	}
}

func TestEncodeRejectsEmptySeed(t *testing.T) {
	if _, err := Encode(nil); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for no identities, got %v", err)
	}
	if _, err := Encode([]Identity{{Name: "x"}}); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for empty seed, got %v", err)
	}
}

func TestBlobZero(t *testing.T) {
	b := Blob(testBlob)
	b.Zero()
	for _, c := range b {
		if c != 0 {
			t.Fatal("blob not wiped")
		}
	}
	if !b.Empty() {
		// A zeroed blob is all NUL bytes, which is not whitespace.
		_, err := Extract(b, 0)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("expected ErrMalformed extracting a wiped blob, got %v", err)
		}
	}
}
