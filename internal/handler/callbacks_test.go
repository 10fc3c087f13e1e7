package handler

import (
	"strconv"
	"testing"

	"koreanvocab/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bin name", input: "Alphabet", expected: "Alphabet"},
		{name: "padded index", input: "  12  ", expected: "12"},
		{name: "mode with newline", input: "flash\ncard", expected: "flashcard"},
		{name: "direction with tab", input: "eng\tlish", expected: "english"},
		{name: "control characters", input: "\x003\x01", expected: "3"},
		{name: "hangul survives", input: " 고양이 ", expected: "고양이"},
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCallbackData(tt.input))
		})
	}
}

func TestCallbackPayloads_Index(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
		wantErr bool
	}{
		{name: "first category", payload: "0", want: 0},
		{name: "control characters around index", payload: "\x00\t7\x01", want: 7},
		{name: "negative", payload: "-3", wantErr: true},
		{name: "non-numeric", payload: "animals", wantErr: true},
		{name: "only control characters", payload: "\x00\x01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIndex(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every payload the setup keyboard emits must parse back after cleaning
func TestCallbackPayloads_SetupRoundTrip(t *testing.T) {
	for _, b := range binMarkup().InlineKeyboard[0] {
		bin, err := domain.ParseBin(cleanCallbackData(b.Data))
		require.NoError(t, err, b.Data)
		assert.Equal(t, b.Data, string(bin))
	}

	sel := domain.Selection{Bin: domain.BinWords, Direction: domain.DirectionKorean, Mode: domain.ModeEndless}
	kb := setupMarkup(sel, []string{"animals", "food", "colors"}).InlineKeyboard

	for i, btn := range append(kb[0], kb[1]...) {
		got, err := parseIndex(btn.Data)
		require.NoError(t, err)
		assert.Equal(t, i, got, strconv.Itoa(i))
	}

	dir, err := domain.ParseDirection(cleanCallbackData(kb[3][0].Data))
	require.NoError(t, err)
	assert.Equal(t, domain.DirectionEnglish, dir)

	for i, btn := range kb[4] {
		mode, err := domain.ParseMode(cleanCallbackData("\x00" + btn.Data + "\n"))
		require.NoError(t, err)
		assert.Equal(t, domain.Modes[i], mode)
	}
}

func TestCallbackPayloads_Rejected(t *testing.T) {
	_, err := domain.ParseBin(cleanCallbackData("Numbers"))
	assert.Error(t, err)
	_, err = domain.ParseDirection(cleanCallbackData("french"))
	assert.Error(t, err)
	_, err = domain.ParseMode(cleanCallbackData("survival"))
	assert.Error(t, err)
}
