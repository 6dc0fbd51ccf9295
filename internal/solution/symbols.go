package solution

import (
	"go/constant"
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/roach88/bpecheck/internal/fixture"
)

// ImportPath is the package interpreted solutions import to reach the
// contract types and sentinel errors.
const ImportPath = "bpecheck/bpe"

// Symbols exports the fixture contract to the interpreter. Values are shared
// with the harness, so errors.Is works across the interpreter boundary.
var Symbols = interp.Exports{
	ImportPath + "/bpe": {
		// types
		"Pair":      reflect.ValueOf((*fixture.Pair)(nil)),
		"PairCount": reflect.ValueOf((*fixture.PairCount)(nil)),
		"Merges":    reflect.ValueOf((*fixture.Merges)(nil)),
		"Vocab":     reflect.ValueOf((*fixture.Vocab)(nil)),

		// errors
		"ErrInvalidValue": reflect.ValueOf(&fixture.ErrInvalidValue).Elem(),
		"ErrUnknownToken": reflect.ValueOf(&fixture.ErrUnknownToken).Elem(),

		"MinVocabSize": reflect.ValueOf(constant.MakeInt64(fixture.MinVocabSize)),
		"BaseVocab":    reflect.ValueOf(fixture.BaseVocab),
		"ExtendVocab":  reflect.ValueOf(fixture.ExtendVocab),
	},
}
