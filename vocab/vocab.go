// Package vocab trains a closed word-level vocabulary over the token corpus:
// special tokens take the lowest ids, then corpus tokens by descending
// frequency, truncated to the size budget. Unknown tokens map to [UNK].
package vocab

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bareebaree/transmuseTATE/constants"
)

type Config struct {
	Size          int      `json:"vocab_size"`
	SpecialTokens []string `json:"special_tokens"`
}

func DefaultConfig() Config {
	return Config{
		Size:          constants.VocabSize,
		SpecialTokens: constants.SpecialTokens,
	}
}

type Vocabulary struct {
	cfg Config
	ids map[string]int
}

// Train builds the vocabulary from whitespace-joined token lines. The whole
// corpus must be present; an empty corpus is fatal to this step.
func Train(lines []string, cfg Config) (*Vocabulary, error) {
	counts := make(map[string]int)
	var firstSeen []string
	for _, line := range lines {
		for _, tok := range strings.Fields(line) {
			if counts[tok] == 0 {
				firstSeen = append(firstSeen, tok)
			}
			counts[tok]++
		}
	}
	if len(firstSeen) == 0 {
		return nil, errors.New("cannot train vocabulary on an empty corpus")
	}

	// descending frequency; the stable sort keeps first-seen order on ties
	sort.SliceStable(firstSeen, func(i, j int) bool {
		return counts[firstSeen[i]] > counts[firstSeen[j]]
	})

	ids := make(map[string]int)
	for i, tok := range cfg.SpecialTokens {
		ids[tok] = i
	}
	next := len(cfg.SpecialTokens)
	for _, tok := range firstSeen {
		if next >= cfg.Size {
			break
		}
		if _, ok := ids[tok]; ok {
			continue
		}
		ids[tok] = next
		next++
	}
	return &Vocabulary{cfg: cfg, ids: ids}, nil
}

// TrainFiles reads each corpus file line by line and trains over all of them.
func TrainFiles(paths []string, cfg Config) (*Vocabulary, error) {
	var lines []string
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open corpus file %v: %w", path, err)
		}
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read corpus file %v: %w", path, err)
		}
	}
	return Train(lines, cfg)
}

func (v *Vocabulary) Size() int {
	return len(v.ids)
}

func (v *Vocabulary) Config() Config {
	return v.cfg
}

func (v *Vocabulary) Lookup(token string) (int, bool) {
	id, ok := v.ids[token]
	return id, ok
}

func (v *Vocabulary) UnknownID() int {
	return v.ids["[UNK]"]
}

// Encode maps tokens to ids, falling back to the [UNK] id.
func (v *Vocabulary) Encode(tokens []string) []int {
	res := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		id, ok := v.ids[tok]
		if !ok {
			id = v.UnknownID()
		}
		res = append(res, id)
	}
	return res
}

// artifact mirrors the tokenizers-library WordLevel JSON layout.
type artifact struct {
	Version       string        `json:"version"`
	Model         artifactModel `json:"model"`
	PreTokenizer  artifactPre   `json:"pre_tokenizer"`
	SpecialTokens []string      `json:"special_tokens"`
	VocabSize     int           `json:"vocab_size"`
}

type artifactModel struct {
	Type     string         `json:"type"`
	UnkToken string         `json:"unk_token"`
	Vocab    map[string]int `json:"vocab"`
}

type artifactPre struct {
	Type string `json:"type"`
}

func (v *Vocabulary) Save(path string) error {
	doc := artifact{
		Version: "1.0",
		Model: artifactModel{
			Type:     "WordLevel",
			UnkToken: "[UNK]",
			Vocab:    v.ids,
		},
		PreTokenizer:  artifactPre{Type: "Whitespace"},
		SpecialTokens: v.cfg.SpecialTokens,
		VocabSize:     v.cfg.Size,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}

func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc artifact
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Model.Vocab == nil {
		return nil, fmt.Errorf("vocabulary artifact %v has no vocab map", path)
	}
	cfg := Config{Size: doc.VocabSize, SpecialTokens: doc.SpecialTokens}
	return &Vocabulary{cfg: cfg, ids: doc.Model.Vocab}, nil
}
