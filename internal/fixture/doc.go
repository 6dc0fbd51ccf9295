// Package fixture holds the fixture catalog for the BPE conformance harness.
//
// A catalog maps a topic keyword ("merge", "pair", "train", "encode", "vocab",
// "decode") to an ordered set of test cases. Each case carries the positional
// arguments passed to the function under test, an Expectation (a concrete
// return value or an error kind) and an optional remediation hint.
//
// # Contract
//
// Functions under test are written against these signatures:
//
//	pair:   func(ids []int) *PairCount                       // nil means no pair
//	merge:  func(ids []int, pair Pair, id int) []int
//	train:  func(text string, vocabSize int) (Merges, error)
//	encode: func(text string, merges Merges) []int
//	vocab:  func(merges Merges) Vocab
//	decode: func(ids []int, vocab Vocab) (string, error)
//
// Training with a vocabulary size below MinVocabSize must return an error
// wrapping ErrInvalidValue. Decoding an id missing from the vocabulary must
// return an error.
//
// # Fixture Files
//
// Extra sets can be loaded from YAML or CUE files:
//
//	fixtures:
//	  merge:
//	    - args: [[1, 2, 3], [2, 3], 9]
//	      expect: [1, 9]
//	      hint: "replace every occurrence"
//	  train:
//	    - args: ["", 10]
//	      error: value
//
// Values in files are untyped; Coerce converts them to the parameter and result
// types of the function at run time.
package fixture
