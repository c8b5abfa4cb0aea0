package rag

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// factTokenLimit caps individual facts so a single runaway line cannot blow
// the embedding input window.
const factTokenLimit = 512

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// CountTokens reports the cl100k_base token count of text, or 0 when the
// tokenizer is unavailable. Used for debug logging of assembled prompts.
func CountTokens(text string) int {
	enc, err := getTokenizer()
	if err != nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}

// truncateFact cuts text down to factTokenLimit tokens. Every token encodes
// at least one byte, so anything at or under the limit in bytes passes
// without loading the tokenizer at all.
func truncateFact(text string) (string, bool) {
	if len(text) <= factTokenLimit {
		return text, false
	}
	enc, err := getTokenizer()
	if err != nil {
		return text, false
	}
	ids := enc.Encode(text, nil, nil)
	if len(ids) <= factTokenLimit {
		return text, false
	}
	return enc.Decode(ids[:factTokenLimit]), true
}
