package payload

import (
	"encoding/json"
	"fmt"
)

// Ranked is one producer-ranked entry of a per-person metric
type Ranked struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// EmojiCount is an emoji with its usage count, encoded as ["😂", 30]
type EmojiCount struct {
	Symbol string
	Count  int64
}

// WordCount is a word with its frequency, encoded as ["word", 12]
type WordCount struct {
	Word  string
	Count int64
}

// Longest describes the longest message seen by the producer
type Longest struct {
	Name    string `json:"name"`
	Count   int64  `json:"count"`
	Preview string `json:"preview,omitempty"`
}

// Bigram is a two-word phrase with its frequency
type Bigram struct {
	Phrase string `json:"phrase"`
	Count  int64  `json:"count"`
}

// Payload is the precomputed analytics document the story is built from.
// Ordering inside every sequence is decided by the producer and is never re-sorted.
type Payload struct {
	TopChatted []Ranked     `json:"top_chatted"`
	Midnight   []Ranked     `json:"midnight"`
	Reels      []Ranked     `json:"reels"`
	Emojis     []EmojiCount `json:"emojis"`
	Words      []WordCount  `json:"words"`
	Longest    []Longest    `json:"longest,omitempty"`
	Bigrams    []Bigram     `json:"bigrams,omitempty"`

	// Error is set by the producer instead of the figures when it failed
	Error string `json:"error,omitempty"`
}

// MarshalJSON encodes the entry as a two-element array
func (e EmojiCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Symbol, e.Count})
}

// UnmarshalJSON decodes a two-element [symbol, count] array
func (e *EmojiCount) UnmarshalJSON(data []byte) error {
	symbol, count, err := decodePair(data)
	if err != nil {
		return fmt.Errorf("emoji entry: %w", err)
	}
	e.Symbol, e.Count = symbol, count
	return nil
}

// MarshalJSON encodes the entry as a two-element array
func (w WordCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{w.Word, w.Count})
}

// UnmarshalJSON decodes a two-element [word, count] array
func (w *WordCount) UnmarshalJSON(data []byte) error {
	word, count, err := decodePair(data)
	if err != nil {
		return fmt.Errorf("word entry: %w", err)
	}
	w.Word, w.Count = word, count
	return nil
}

func decodePair(data []byte) (string, int64, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", 0, fmt.Errorf("expected [value, count] pair: %w", err)
	}
	if len(raw) != 2 {
		return "", 0, fmt.Errorf("expected 2 elements, got %d", len(raw))
	}

	var value string
	if err := json.Unmarshal(raw[0], &value); err != nil {
		return "", 0, fmt.Errorf("value must be a string: %w", err)
	}
	var count int64
	if err := json.Unmarshal(raw[1], &count); err != nil {
		return "", 0, fmt.Errorf("count must be an integer: %w", err)
	}
	return value, count, nil
}
