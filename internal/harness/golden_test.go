package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bpecheck/internal/fixture"
	"github.com/roach88/bpecheck/internal/reference"
)

func TestRunWithGolden_ReferenceTrain(t *testing.T) {
	err := RunWithGolden(t, "train_reference", Func(reference.Train), mustSet(t, fixture.KeywordTrain))
	require.NoError(t, err)
}

func TestRunWithGolden_MergeIdentity(t *testing.T) {
	identity := func(ids []int, pair fixture.Pair, id int) []int { return ids }

	err := RunWithGolden(t, "merge_identity", Named("merge", identity), mustSet(t, fixture.KeywordMerge))
	assert.ErrorIs(t, err, ErrBatchFailed)
}

func TestRunWithGolden_EncodeIgnoresMerges(t *testing.T) {
	rawBytes := func(text string, merges fixture.Merges) []int {
		return reference.Encode(text, nil)
	}

	err := RunWithGolden(t, "encode_raw_bytes", Named("encode", rawBytes), mustSet(t, fixture.KeywordEncode))
	assert.ErrorIs(t, err, ErrBatchFailed)
}

func TestRunWithGolden_TrainWithoutValidation(t *testing.T) {
	train := func(text string, vocabSize int) (fixture.Merges, error) {
		if vocabSize < fixture.MinVocabSize {
			return fixture.Merges{}, nil
		}
		return reference.Train(text, vocabSize)
	}

	err := RunWithGolden(t, "train_no_validation", Named("train", train), mustSet(t, fixture.KeywordTrain))
	assert.ErrorIs(t, err, ErrBatchFailed)
}

func TestRunWithGolden_PairAbort(t *testing.T) {
	pair := func(ids []int) *fixture.PairCount {
		_ = ids[0]
		return reference.TopPair(ids)
	}

	err := RunWithGolden(t, "pair_abort", Named("pair", pair), mustSet(t, fixture.KeywordPair))
	var pe *PanicError
	assert.ErrorAs(t, err, &pe)
}
