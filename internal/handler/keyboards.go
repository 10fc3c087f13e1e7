package handler

import (
	"fmt"
	"strconv"

	"koreanvocab/internal/domain"
	"koreanvocab/internal/game"

	tele "gopkg.in/telebot.v3"
)

// Callback uniques. Payloads carry indexes rather than text to stay within
// Telegram's 64 byte callback data limit.
var (
	btnBin       = tele.Btn{Unique: "bin"}
	btnBins      = tele.Btn{Unique: "bins", Text: "⬅️ Content types"}
	btnCategory  = tele.Btn{Unique: "cat"}
	btnAll       = tele.Btn{Unique: "all", Text: "Select all"}
	btnNone      = tele.Btn{Unique: "none", Text: "Deselect all"}
	btnDirection = tele.Btn{Unique: "dir"}
	btnMode      = tele.Btn{Unique: "mode"}
	btnStart     = tele.Btn{Unique: "start", Text: "▶️ Start"}
	btnAgain     = tele.Btn{Unique: "again", Text: "🔁 Play again"}
	btnAnswer    = tele.Btn{Unique: "ans"}
	btnReplay    = tele.Btn{Unique: "replay", Text: "🔊 Replay"}
	btnFlip      = tele.Btn{Unique: "flip", Text: "🔄 Flip"}
	btnKnow      = tele.Btn{Unique: "know", Text: "✅ Know"}
	btnDontKnow  = tele.Btn{Unique: "dunno", Text: "❌ Don't know"}
	btnMenu      = tele.Btn{Unique: "menu", Text: "🏠 Menu"}
	btnStats     = tele.Btn{Unique: "stats", Text: "📊 Stats"}
)

var modeLabels = map[domain.Mode]string{
	domain.ModeQuiz:      "Quiz",
	domain.ModeEndless:   "Endless",
	domain.ModeTimed:     "Timed",
	domain.ModeFlashcard: "Flashcards",
}

// binMarkup lists the content types
func binMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	row := tele.Row{}
	for _, b := range domain.Bins {
		row = append(row, m.Data(string(b), btnBin.Unique, string(b)))
	}
	m.Inline(row, m.Row(btnStats))
	return m
}

// setupMarkup shows category toggles and game options for the loaded bin
func setupMarkup(sel domain.Selection, categories []string) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	// two categories per row
	row := tele.Row{}
	for i, name := range categories {
		mark := "⬜"
		if sel.HasCategory(name) {
			mark = "✅"
		}
		row = append(row, m.Data(mark+" "+categoryTitle(name), btnCategory.Unique, strconv.Itoa(i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = tele.Row{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, m.Row(btnAll, btnNone))

	other := domain.DirectionEnglish
	if sel.Direction == domain.DirectionEnglish {
		other = domain.DirectionKorean
	}
	rows = append(rows, m.Row(m.Data("🔀 "+directionLabel(sel.Direction), btnDirection.Unique, string(other))))

	modes := tele.Row{}
	for _, mode := range domain.Modes {
		label := modeLabels[mode]
		if mode == sel.Mode {
			label = "• " + label + " •"
		}
		modes = append(modes, m.Data(label, btnMode.Unique, string(mode)))
	}
	rows = append(rows, modes)

	rows = append(rows, m.Row(btnStart), m.Row(btnBins))
	m.Inline(rows...)
	return m
}

// promptMarkup shows the answer options, or the flashcard controls
func promptMarkup(p *game.Prompt, mode domain.Mode) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	if mode == domain.ModeFlashcard {
		rows = append(rows, m.Row(btnFlip), m.Row(btnKnow, btnDontKnow))
	} else {
		for i, opt := range p.Options {
			rows = append(rows, m.Row(m.Data(opt, btnAnswer.Unique, strconv.Itoa(i))))
		}
	}

	rows = append(rows, m.Row(btnReplay, btnMenu))
	m.Inline(rows...)
	return m
}

// resultsMarkup offers another round or the menu
func resultsMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(btnAgain, btnMenu))
	return m
}

func directionLabel(d domain.Direction) string {
	if d == domain.DirectionEnglish {
		return "English → Korean"
	}
	return "Korean → English"
}

func parseIndex(data string) (int, error) {
	i, err := strconv.Atoi(cleanCallbackData(data))
	if err != nil || i < 0 {
		return 0, fmt.Errorf("bad index %q", data)
	}
	return i, nil
}

func backMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(btnMenu))
	return m
}
