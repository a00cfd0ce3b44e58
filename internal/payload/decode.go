package payload

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a payload document. Missing sequences decode as empty slices
// so that callers never have to distinguish nil from empty.
func Decode(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	p.normalize()
	return &p, nil
}

func (p *Payload) normalize() {
	if p.TopChatted == nil {
		p.TopChatted = []Ranked{}
	}
	if p.Midnight == nil {
		p.Midnight = []Ranked{}
	}
	if p.Reels == nil {
		p.Reels = []Ranked{}
	}
	if p.Emojis == nil {
		p.Emojis = []EmojiCount{}
	}
	if p.Words == nil {
		p.Words = []WordCount{}
	}
}

// Validate checks the invariants the story builder relies on
func (p *Payload) Validate() error {
	if err := validateRanked("top_chatted", p.TopChatted); err != nil {
		return err
	}
	if err := validateRanked("midnight", p.Midnight); err != nil {
		return err
	}
	if err := validateRanked("reels", p.Reels); err != nil {
		return err
	}
	for i, e := range p.Emojis {
		if e.Count < 0 {
			return fmt.Errorf("emojis[%d]: count must be non-negative, got %d", i, e.Count)
		}
	}
	for i, w := range p.Words {
		if w.Count < 0 {
			return fmt.Errorf("words[%d]: count must be non-negative, got %d", i, w.Count)
		}
	}
	return nil
}

func validateRanked(field string, entries []Ranked) error {
	for i, e := range entries {
		if e.Count < 0 {
			return fmt.Errorf("%s[%d]: count must be non-negative, got %d", field, i, e.Count)
		}
	}
	return nil
}
