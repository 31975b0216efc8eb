package tokenizer

// estimatorTokenizer backs the "none" encoding: a zero-allocation stand-in
// for the BPE tokenizers, used when a precise count isn't worth loading a
// tiktoken dictionary for.
//
// The ~4-characters-per-token ratio is the commonly cited rule of thumb for
// English source and prose; it is a budget approximation, not a count an
// LLM provider would bill against, so chunk boundaries produced under
// "none" will drift from the byte-identical boundaries cl100k_base/
// o200k_base would produce for the same document.
type estimatorTokenizer struct{}

func newEstimatorTokenizer() *estimatorTokenizer {
	return &estimatorTokenizer{}
}

// Count estimates text's token count as len(text)/4, integer division, 0
// for empty text.
func (e *estimatorTokenizer) Count(text string) int {
	return len(text) / 4
}

func (e *estimatorTokenizer) Name() string {
	return NameNone
}
