// Package reference is a byte-level BPE tokenizer written against the
// fixture contract. Every built-in fixture set passes against it, which makes
// it the oracle for checking fixture files.
package reference

import (
	"fmt"
	"sort"

	"github.com/roach88/bpecheck/internal/fixture"
)

// TopPair returns the most frequent adjacent pair of ids, or nil when ids has
// fewer than two elements. Ties go to the pair seen first.
func TopPair(ids []int) *fixture.PairCount {
	counts, order := countPairs(ids)
	if len(order) == 0 {
		return nil
	}

	best := order[0]
	for _, p := range order[1:] {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return &fixture.PairCount{Pair: best, Count: counts[best]}
}

// countPairs counts adjacent pairs and records their first-seen order.
func countPairs(ids []int) (map[fixture.Pair]int, []fixture.Pair) {
	counts := make(map[fixture.Pair]int)
	var order []fixture.Pair
	for i := 0; i+1 < len(ids); i++ {
		p := fixture.Pair{ids[i], ids[i+1]}
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}
	return counts, order
}

// MergePair replaces every non-overlapping occurrence of pair, left to right,
// with id.
func MergePair(ids []int, pair fixture.Pair, id int) []int {
	out := make([]int, 0, len(ids))
	for i := 0; i < len(ids); {
		if i+1 < len(ids) && ids[i] == pair[0] && ids[i+1] == pair[1] {
			out = append(out, id)
			i += 2
			continue
		}
		out = append(out, ids[i])
		i++
	}
	return out
}

// Train learns up to vocabSize-256 merges from text. Training stops early
// when no pair is left.
func Train(text string, vocabSize int) (fixture.Merges, error) {
	if vocabSize < fixture.MinVocabSize {
		return nil, fmt.Errorf("vocab size %d is below %d: %w", vocabSize, fixture.MinVocabSize, fixture.ErrInvalidValue)
	}

	ids := bytesToIDs(text)
	merges := make(fixture.Merges)
	for next := fixture.MinVocabSize; next < vocabSize; next++ {
		top := TopPair(ids)
		if top == nil {
			break
		}
		merges[top.Pair] = next
		ids = MergePair(ids, top.Pair, next)
	}
	return merges, nil
}

// Encode converts text to token ids, applying the lowest-id merge present
// in the sequence until none applies.
func Encode(text string, merges fixture.Merges) []int {
	ids := bytesToIDs(text)
	for len(ids) >= 2 {
		found := false
		var best fixture.Pair
		bestID := 0
		for i := 0; i+1 < len(ids); i++ {
			p := fixture.Pair{ids[i], ids[i+1]}
			if id, ok := merges[p]; ok && (!found || id < bestID) {
				best, bestID, found = p, id, true
			}
		}
		if !found {
			break
		}
		ids = MergePair(ids, best, bestID)
	}
	return ids
}

// BuildVocab returns the base vocabulary extended with one entry per merge.
// Merges are applied in id order so later tokens can build on earlier ones.
func BuildVocab(merges fixture.Merges) fixture.Vocab {
	vocab := fixture.BaseVocab()

	pairs := make([]fixture.Pair, 0, len(merges))
	for p := range merges {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool { return merges[pairs[i]] < merges[pairs[j]] })

	for _, p := range pairs {
		token := make([]byte, 0, len(vocab[p[0]])+len(vocab[p[1]]))
		token = append(token, vocab[p[0]]...)
		token = append(token, vocab[p[1]]...)
		vocab[merges[p]] = token
	}
	return vocab
}

// Decode converts ids back to text. An id missing from vocab is an error
// wrapping fixture.ErrUnknownToken.
func Decode(ids []int, vocab fixture.Vocab) (string, error) {
	var buf []byte
	for _, id := range ids {
		token, ok := vocab[id]
		if !ok {
			return "", fmt.Errorf("token %d: %w", id, fixture.ErrUnknownToken)
		}
		buf = append(buf, token...)
	}
	return string(buf), nil
}

func bytesToIDs(text string) []int {
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}
	return ids
}

// Funcs maps every built-in fixture keyword to the function implementing it.
func Funcs() map[string]any {
	return map[string]any{
		fixture.KeywordMerge:  MergePair,
		fixture.KeywordPair:   TopPair,
		fixture.KeywordTrain:  Train,
		fixture.KeywordEncode: Encode,
		fixture.KeywordVocab:  BuildVocab,
		fixture.KeywordDecode: Decode,
	}
}
