package manifest

import (
	"bytes"
	"encoding/json"
	"testing"
	"testing/fstest"

	"koreanvocab/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func file() *fstest.MapFile { return &fstest.MapFile{Data: []byte("ID3")} }

func TestExtractWord(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple", input: "000_Hello.mp3", expected: "Hello"},
		{name: "underscores become spaces", input: "012_Good_morning.mp3", expected: "Good morning"},
		{name: "korean", input: "003_안녕하세요.mp3", expected: "안녕하세요"},
		{name: "no prefix", input: "Hello.mp3", expected: "Hello"},
		{name: "prefix only", input: "000_.mp3", expected: "000 "},
		{name: "uppercase extension", input: "001_Cat.MP3", expected: "Cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractWord(tt.input))
		})
	}
}

func TestBuilder_Flat(t *testing.T) {
	fsys := fstest.MapFS{
		"English/Words/animals/000_cat.mp3":     file(),
		"English/Words/animals/001_dog.mp3":     file(),
		"English/Words/animals/002_horse.mp3":   file(),
		"English/Words/animals/notes.txt":       file(),
		"Korean/Words/animals/000_고양이.mp3":      file(),
		"Korean/Words/animals/001_개.mp3":        file(),
		"Korean/Words/animals/005_extra.mp3":    file(),
		"English/Words/food/000_ice_cream.mp3":  file(),
		"Korean/Words/food/000_아이스크림.mp3":      file(),
		"English/Words/orphan/000_lonely.mp3":   file(),
	}

	cat, err := NewBuilder(fsys, zap.NewNop()).Build(Options{Bin: domain.BinWords})
	require.NoError(t, err)

	assert.Equal(t, domain.BinWords, cat.Bin)
	assert.Equal(t, []string{"animals", "food", "orphan"}, cat.Categories)
	assert.Empty(t, cat.Words["orphan"])

	animals := cat.Words["animals"]
	require.Len(t, animals, 2)
	assert.Equal(t, domain.WordRecord{
		Index:   "000",
		English: "cat",
		Korean:  "고양이",
		AudioEn: "English/Words/animals/000_cat.mp3",
		AudioKo: "Korean/Words/animals/000_고양이.mp3",
	}, animals[0])
	assert.Equal(t, "001", animals[1].Index)

	require.Len(t, cat.Words["food"], 1)
	assert.Equal(t, "ice cream", cat.Words["food"][0].English)
}

func TestBuilder_Alphabet(t *testing.T) {
	fsys := fstest.MapFS{
		"English/Alphabet/english_consonants/000_g.mp3":          file(),
		"English/Alphabet/english_consonants/000_giyeok_name.mp3": file(),
		"English/Alphabet/english_consonants/001_n.mp3":          file(),
		"Korean/Alphabet/korean_consonants/000_ㄱ.mp3":            file(),
		"Korean/Alphabet/korean_consonants/000_기역_name.mp3":       file(),
		"Korean/Alphabet/korean_consonants/001_ㄴ.mp3":            file(),
		"English/Alphabet/english_vowels/000_a.mp3":              file(),
		"Korean/Alphabet/korean_vowels/000_ㅏ.mp3":                file(),
		"Korean/Alphabet/korean_double/000_ㄲ.mp3":                file(),
	}

	cat, err := NewBuilder(fsys, zap.NewNop()).Build(Options{Bin: domain.BinAlphabet})
	require.NoError(t, err)

	assert.Equal(t, []string{"consonants", "vowels", "double"}, cat.Categories)

	consonants := cat.Words["consonants"]
	require.Len(t, consonants, 2)
	assert.Equal(t, "g", consonants[0].English)
	assert.Equal(t, "ㄱ", consonants[0].Korean)
	assert.Equal(t, "English/Alphabet/english_consonants/000_giyeok_name.mp3", consonants[0].AudioEnName)
	assert.Equal(t, "Korean/Alphabet/korean_consonants/000_기역_name.mp3", consonants[0].AudioKoName)
	assert.Empty(t, consonants[1].AudioEnName)

	assert.Len(t, cat.Words["vowels"], 1)
	assert.Empty(t, cat.Words["double"], "no English side")
}

func TestBuilder_SkipsNonNumericPrefixes(t *testing.T) {
	fsys := fstest.MapFS{
		"English/Phrases/greetings/000_hello.mp3":  file(),
		"English/Phrases/greetings/abc_x.mp3":      file(),
		"English/Phrases/greetings/0a1_y.mp3":      file(),
		"Korean/Phrases/greetings/000_안녕.mp3":      file(),
		"Korean/Phrases/greetings/abc_엑스.mp3":      file(),
		"Korean/Phrases/greetings/0a1_와이.mp3":      file(),
	}

	cat, err := NewBuilder(fsys, zap.NewNop()).Build(Options{Bin: domain.BinPhrases})
	require.NoError(t, err)

	greetings := cat.Words["greetings"]
	require.Len(t, greetings, 1)
	assert.Equal(t, "000", greetings[0].Index)
	assert.Equal(t, "hello", greetings[0].English)
}

func TestHasIndexPrefix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "digits", input: "012_cat.mp3", expected: true},
		{name: "letters", input: "abc_x.mp3", expected: false},
		{name: "mixed", input: "0a1_y.mp3", expected: false},
		{name: "too short", input: "012", expected: false},
		{name: "hangul", input: "고양이.mp3", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, hasIndexPrefix(tt.input))
		})
	}
}

func TestBuilder_MissingRoot(t *testing.T) {
	_, err := NewBuilder(fstest.MapFS{}, zap.NewNop()).Build(Options{Bin: domain.BinPhrases})
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	cat := &domain.Catalog{
		Bin:        domain.BinPhrases,
		Categories: []string{"greetings"},
		Words: map[string][]domain.WordRecord{
			"greetings": {{Index: "000", English: "Hi & bye", Korean: "안녕", AudioEn: "a.mp3", AudioKo: "b.mp3"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cat))

	out := buf.String()
	assert.Contains(t, out, "Hi & bye")
	assert.Contains(t, out, "안녕")
	assert.Contains(t, out, "\n  \"categories\"")
	assert.NotContains(t, out, "audioEnName")

	var decoded domain.Catalog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, cat.Categories, decoded.Categories)
}
