package fixture

// Keywords of the built-in catalog, in catalog order.
const (
	KeywordMerge  = "merge"
	KeywordPair   = "pair"
	KeywordTrain  = "train"
	KeywordEncode = "encode"
	KeywordVocab  = "vocab"
	KeywordDecode = "decode"
)

// Catalog is an ordered mapping from keyword to fixture set.
// Keywords are unique; order drives keyword inference and display.
type Catalog struct {
	sets []Set
}

// NewCatalog builds the built-in catalog. A fresh catalog is returned on every
// call so expectations are never shared between runs.
func NewCatalog() *Catalog {
	return &Catalog{sets: []Set{
		{Keyword: KeywordMerge, Cases: mergeCases()},
		{Keyword: KeywordPair, Cases: pairCases()},
		{Keyword: KeywordTrain, Cases: trainCases()},
		{Keyword: KeywordEncode, Cases: encodeCases()},
		{Keyword: KeywordVocab, Cases: vocabCases()},
		{Keyword: KeywordDecode, Cases: decodeCases()},
	}}
}

// Lookup returns the set registered under keyword.
func (c *Catalog) Lookup(keyword string) (Set, bool) {
	for _, s := range c.sets {
		if s.Keyword == keyword {
			return s, true
		}
	}
	return Set{}, false
}

// Keywords returns the keywords in catalog order.
func (c *Catalog) Keywords() []string {
	keywords := make([]string, len(c.sets))
	for i, s := range c.sets {
		keywords[i] = s.Keyword
	}
	return keywords
}

// Sets returns the sets in catalog order.
func (c *Catalog) Sets() []Set {
	return append([]Set(nil), c.sets...)
}

// Merge adds the sets of other to c. A set whose keyword already exists
// replaces the existing one in place; new keywords are appended in the order
// of other.
func (c *Catalog) Merge(other *Catalog) {
	for _, s := range other.sets {
		replaced := false
		for i := range c.sets {
			if c.sets[i].Keyword == s.Keyword {
				c.sets[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			c.sets = append(c.sets, s)
		}
	}
}

func pairCases() []Case {
	return []Case{
		{
			Args:   []any{[]int{1, 2, 1, 2, 3}},
			Expect: Returns(&PairCount{Pair: Pair{1, 2}, Count: 2}),
			Hint:   "Walk adjacent elements two at a time and count each pair.",
		},
		{
			Args:   []any{[]int{}},
			Expect: Returns((*PairCount)(nil)),
			Hint:   "Handle the case where the list is empty.",
		},
		{
			Args:   []any{[]int{1}},
			Expect: Returns((*PairCount)(nil)),
			Hint:   "Handle the case where the list has a single element.",
		},
	}
}

func mergeCases() []Case {
	return []Case{
		{
			Args:   []any{[]int{1, 2, 3, 1, 2, 3, 4}, Pair{2, 3}, 5},
			Expect: Returns([]int{1, 5, 1, 5, 4}),
		},
		{
			Args:   []any{[]int{1, 2, 3, 1, 2, 3, 4}, Pair{1, 3}, 5},
			Expect: Returns([]int{1, 2, 3, 1, 2, 3, 4}),
			Hint:   "The pair may not be present in the list.",
		},
		{
			Args:   []any{[]int{}, Pair{1, 2}, 3},
			Expect: Returns([]int{}),
			Hint:   "Handle the case where the list is empty.",
		},
		{
			Args:   []any{[]int{1}, Pair{1, 2}, 3},
			Expect: Returns([]int{1}),
			Hint:   "Handle the case where the list has a single element.",
		},
	}
}

func trainCases() []Case {
	return []Case{
		{
			Args: []any{"ploc, ploc, la pluie pleut", 266},
			Expect: Returns(Merges{
				{112, 108}: 256,
				{32, 256}:  257,
				{111, 99}:  258,
				{258, 44}:  259,
				{256, 259}: 260,
				{260, 257}: 261,
				{261, 259}: 262,
				{262, 32}:  263,
				{263, 108}: 264,
				{264, 97}:  265,
			}),
		},
		{
			Args:   []any{"", 266},
			Expect: Returns(Merges{}),
			Hint:   "Handle the case where the text is empty.",
		},
		{
			Args:   []any{"", 100},
			Expect: Fails(KindValue),
			Hint:   "When the requested vocabulary size is below 256, return an error wrapping ErrInvalidValue.",
		},
	}
}

func encodeCases() []Case {
	return []Case{
		{
			Args: []any{"ploc, ploc", Merges{
				{112, 108}: 256,
				{32, 256}:  257,
				{111, 99}:  258,
				{258, 44}:  259,
			}},
			Expect: Returns([]int{256, 259, 257, 258}),
			Hint: "Hints:\n" +
				"- Start with the pair whose id is the lowest in merges and merge it.\n" +
				"- Repeat until no pair of the sequence is present in merges.",
		},
		{
			Args:   []any{"ploc, ploc", Merges{}},
			Expect: Returns([]int{112, 108, 111, 99, 44, 32, 112, 108, 111, 99}),
		},
		{
			Args:   []any{"", Merges{}},
			Expect: Returns([]int{}),
			Hint:   "Handle the case where the text is empty.",
		},
	}
}

func vocabCases() []Case {
	return []Case{
		{
			Args:   []any{Merges{{112, 108}: 256, {32, 256}: 257, {111, 99}: 258}},
			Expect: Returns(ExtendVocab(map[int]string{256: "pl", 257: " pl", 258: "oc"})),
			Hint:   "Start from the base vocabulary: every id 0..255 maps to the single byte with that value.",
		},
		{
			Args:   []any{Merges{}},
			Expect: Returns(BaseVocab()),
			Hint:   "Handle the case where merges is empty.",
		},
	}
}

func decodeCases() []Case {
	return []Case{
		{
			Args:   []any{[]int{112, 108, 111, 99, 44, 32, 112, 108, 111, 99}, BaseVocab()},
			Expect: Returns("ploc, ploc"),
			Hint:   "Concatenate the bytes of every token, then convert once to a string.",
		},
		{
			Args: []any{
				[]int{256, 259, 257, 258},
				ExtendVocab(map[int]string{256: "pl", 257: " pl", 258: "oc", 259: "oc,"}),
			},
			Expect: Returns("ploc, ploc"),
		},
		{
			Args:   []any{[]int{}, BaseVocab()},
			Expect: Returns(""),
		},
		// 256 is not part of the base vocabulary.
		{
			Args:   []any{[]int{256}, BaseVocab()},
			Expect: Fails(KindAny),
		},
	}
}
