package tokenizer

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// tiktokenTokenizer counts BPE tokens via pkoukk/tiktoken-go. It is the
// default Tokenizer a pipeline.Run builds, so chunk.Split's token budget
// reflects what an LLM would actually be billed for rather than an
// approximation.
type tiktokenTokenizer struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// newTiktokenTokenizer loads the named BPE encoding once and wraps it. The
// load is the only I/O a Tokenizer performs; every subsequent Count call is
// pure computation over the already-loaded dictionary.
func newTiktokenTokenizer(encodingName string) (*tiktokenTokenizer, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("loading tiktoken encoding %q: %w", encodingName, err)
	}

	return &tiktokenTokenizer{
		encoding: encodingName,
		enc:      enc,
	}, nil
}

// Count returns the exact BPE token count for text. tiktoken-go's Encode
// does not mutate the shared *tiktoken.Tiktoken, so this is safe to call
// from every pipeline worker concurrently against one instance.
func (t *tiktokenTokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}

func (t *tiktokenTokenizer) Name() string {
	return t.encoding
}
