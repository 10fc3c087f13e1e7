package game

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"koreanvocab/internal/domain"

	"github.com/stretchr/testify/assert"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*31+7))
}

func word(index, english, korean string) domain.WordRecord {
	return domain.WordRecord{Index: index, English: english, Korean: korean}
}

func english(w domain.WordRecord) string { return w.English }

func TestSampler_FourDistinct(t *testing.T) {
	a, b, c, d := word("000", "A", "가"), word("001", "B", "나"), word("002", "C", "다"), word("003", "D", "라")
	pool := []domain.WordRecord{a, b, c, d}

	for seed := uint64(0); seed < 50; seed++ {
		opts := NewSampler(testRand(seed)).Options(a, pool, english, false)
		assert.ElementsMatch(t, []string{"B", "C", "D"}, opts)
	}
}

func TestSampler_LargePool(t *testing.T) {
	var pool []domain.WordRecord
	for i := 0; i < 40; i++ {
		pool = append(pool, word(fmt.Sprintf("%03d", i), fmt.Sprintf("w%d", i), fmt.Sprintf("k%d", i)))
	}
	// duplicated display values must not show up twice
	pool = append(pool, word("100", "w1", "x"), word("101", "w2", "y"))

	for seed := uint64(0); seed < 100; seed++ {
		correct := pool[seed%uint64(len(pool))]
		opts := NewSampler(testRand(seed)).Options(correct, pool, english, false)

		assert.Len(t, opts, OptionCount)
		assert.NotContains(t, opts, correct.English)
		seen := map[string]bool{}
		for _, o := range opts {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
		}
	}
}

func TestSampler_SmallPools(t *testing.T) {
	tests := []struct {
		name     string
		pool     []domain.WordRecord
		expected int
	}{
		{
			name:     "only the correct record",
			pool:     []domain.WordRecord{word("000", "A", "가")},
			expected: 0,
		},
		{
			name:     "two records",
			pool:     []domain.WordRecord{word("000", "A", "가"), word("001", "B", "나")},
			expected: 1,
		},
		{
			name:     "three records",
			pool:     []domain.WordRecord{word("000", "A", "가"), word("001", "B", "나"), word("002", "C", "다")},
			expected: 2,
		},
		{
			name: "same value everywhere",
			pool: []domain.WordRecord{
				word("000", "A", "가"), word("001", "A", "나"), word("002", "A", "다"), word("003", "A", "라"),
			},
			expected: 0,
		},
		{
			name: "many duplicates of one other value",
			pool: []domain.WordRecord{
				word("000", "A", "가"), word("001", "B", "나"), word("002", "B", "다"), word("003", "B", "라"),
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewSampler(testRand(3)).Options(tt.pool[0], tt.pool, english, false)
			assert.Len(t, opts, tt.expected)
			assert.NotContains(t, opts, "A")
		})
	}
}

func TestSampler_SameCategoryFallsBackToPool(t *testing.T) {
	vowel := func(i int, s string) domain.WordRecord {
		w := word(fmt.Sprintf("%03d", i), s, s)
		w.Category = "vowels"
		return w
	}
	consonant := func(i int, s string) domain.WordRecord {
		w := word(fmt.Sprintf("%03d", i), s, s)
		w.Category = "consonants"
		return w
	}
	pool := []domain.WordRecord{
		vowel(0, "a"), vowel(1, "eo"), vowel(2, "o"), vowel(3, "u"),
		consonant(4, "g"), consonant(5, "n"),
	}

	for seed := uint64(0); seed < 30; seed++ {
		opts := NewSampler(testRand(seed)).Options(pool[0], pool, english, true)
		assert.ElementsMatch(t, []string{"eo", "o", "u"}, opts, "a full category never mixes sets")
	}

	short := []domain.WordRecord{vowel(0, "a"), vowel(1, "eo"), consonant(4, "g"), consonant(5, "n")}
	opts := NewSampler(testRand(1)).Options(short[0], short, english, true)
	assert.Len(t, opts, 3)
	assert.Contains(t, opts, "eo")
	assert.ElementsMatch(t, []string{"eo", "g", "n"}, opts)
}

func TestAnswerField(t *testing.T) {
	w := domain.WordRecord{
		English: "giyeok", Korean: "ㄱ",
		EnglishPronunciation: "g/k", KoreanPronunciation: "기역",
	}

	assert.Equal(t, "giyeok", AnswerField(domain.BinWords, domain.DirectionKorean)(w))
	assert.Equal(t, "ㄱ", AnswerField(domain.BinWords, domain.DirectionEnglish)(w))
	assert.Equal(t, "g/k", AnswerField(domain.BinAlphabet, domain.DirectionKorean)(w))
	assert.Equal(t, "기역", AnswerField(domain.BinAlphabet, domain.DirectionEnglish)(w))

	w.EnglishPronunciation = ""
	assert.Equal(t, "giyeok", AnswerField(domain.BinAlphabet, domain.DirectionKorean)(w))

	assert.Equal(t, "ㄱ", PromptField(domain.DirectionKorean)(w))
	assert.Equal(t, "giyeok", PromptField(domain.DirectionEnglish)(w))
}
