package fixture

import (
	"fmt"
	"strconv"
	"strings"
)

// MinVocabSize is the size of the base byte alphabet.
// Training below this size is invalid.
const MinVocabSize = 256

// Pair is an adjacent two-token combination.
type Pair [2]int

// String renders the pair as a tuple, e.g. "(112, 108)".
func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p[0], p[1])
}

// MarshalText encodes the pair as "a,b" so it can be used as a map key
// in fixture files.
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(p[0]) + "," + strconv.Itoa(p[1])), nil
}

// UnmarshalText decodes "a,b" (spaces and surrounding parentheses allowed).
func (p *Pair) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("invalid pair %q: want \"a,b\"", string(text))
	}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid pair %q: %w", string(text), err)
		}
		p[i] = n
	}
	return nil
}

// PairCount is the most frequent pair of a sequence and its occurrence count.
type PairCount struct {
	Pair  Pair
	Count int
}

// String renders the result as a nested tuple, e.g. "((1, 2), 2)".
func (pc PairCount) String() string {
	return fmt.Sprintf("(%s, %d)", pc.Pair, pc.Count)
}

// Merges maps a token pair to the id of the token that replaces it.
type Merges map[Pair]int

// Vocab maps a token id to its byte representation.
type Vocab map[int][]byte

// BaseVocab returns a fresh base vocabulary: ids 0..255 mapped to their
// single-byte representation.
func BaseVocab() Vocab {
	v := make(Vocab, MinVocabSize)
	for i := 0; i < MinVocabSize; i++ {
		v[i] = []byte{byte(i)}
	}
	return v
}

// ExtendVocab returns a copy of the base vocabulary with the given overrides
// applied. Override values are copied.
func ExtendVocab(overrides map[int]string) Vocab {
	v := BaseVocab()
	for id, s := range overrides {
		v[id] = []byte(s)
	}
	return v
}
