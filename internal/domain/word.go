package domain

import (
	"fmt"
	"strings"
)

// Bin is a top-level content group with its own manifest
type Bin string

const (
	BinAlphabet Bin = "Alphabet"
	BinWords    Bin = "Words"
	BinPhrases  Bin = "Phrases"
)

// Bins lists the bins in menu order
var Bins = []Bin{BinAlphabet, BinWords, BinPhrases}

// ParseBin accepts a bin name in any letter case
func ParseBin(s string) (Bin, error) {
	for _, b := range Bins {
		if strings.EqualFold(string(b), strings.TrimSpace(s)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bin %q", s)
}

// ManifestFile returns the catalog file name for the bin
func (b Bin) ManifestFile() string {
	return strings.ToLower(string(b)) + "_config.json"
}

// WordRecord is a single English/Korean pair with its audio
type WordRecord struct {
	Index                string `json:"index"`
	English              string `json:"english"`
	Korean               string `json:"korean"`
	AudioEn              string `json:"audioEn"`
	AudioKo              string `json:"audioKo"`
	AudioEnName          string `json:"audioEnName,omitempty"`
	AudioKoName          string `json:"audioKoName,omitempty"`
	EnglishPronunciation string `json:"englishPronunciation,omitempty"`
	KoreanPronunciation  string `json:"koreanPronunciation,omitempty"`

	// Category is filled in by the loader from the manifest grouping
	Category string `json:"-"`
}

// SameWord reports whether both records describe the same entry
func (w WordRecord) SameWord(o WordRecord) bool {
	return w.Index == o.Index && w.English == o.English && w.Korean == o.Korean
}

// Catalog holds every record of one bin grouped by category
type Catalog struct {
	Bin        Bin                     `json:"bin,omitempty"`
	Categories []string                `json:"categories"`
	Words      map[string][]WordRecord `json:"words"`
}

// HasCategory reports whether the catalog lists the category
func (c *Catalog) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}

// Records collects the records of the given categories in catalog order.
// Unknown categories contribute nothing.
func (c *Catalog) Records(categories []string) []WordRecord {
	var out []WordRecord
	for _, cat := range categories {
		for _, w := range c.Words[cat] {
			w.Category = cat
			out = append(out, w)
		}
	}
	return out
}

// Size returns the total number of records
func (c *Catalog) Size() int {
	n := 0
	for _, words := range c.Words {
		n += len(words)
	}
	return n
}
