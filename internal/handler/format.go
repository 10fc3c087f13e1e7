package handler

import (
	"fmt"
	"strings"
	"time"

	"koreanvocab/internal/domain"
	"koreanvocab/internal/game"
	"koreanvocab/internal/service"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// categoryTitle turns "body_parts" into "Body Parts". A Caser keeps state
// between calls, so each call gets its own.
func categoryTitle(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func formatSetup(sel domain.Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s\n\n", sel.Bin)
	if len(sel.Categories) == 0 {
		b.WriteString("Categories: none selected\n")
	} else {
		titles := make([]string, len(sel.Categories))
		for i, c := range sel.Categories {
			titles[i] = categoryTitle(c)
		}
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(titles, ", "))
	}
	fmt.Fprintf(&b, "Direction: %s\n", directionLabel(sel.Direction))
	fmt.Fprintf(&b, "Mode: %s", modeLabels[sel.Mode])
	return b.String()
}

// formatTurn renders the status line, the last answer's feedback and the prompt
func formatTurn(t *service.Turn) string {
	var b strings.Builder

	b.WriteString(formatFeedback(t.Outcome, t.Mode))

	switch t.Mode {
	case domain.ModeQuiz:
		fmt.Fprintf(&b, "Score: %d · Left: %d\n", t.Score, t.Remaining)
	case domain.ModeTimed:
		fmt.Fprintf(&b, "Score: %d · ⏱ %ds\n", t.Score, t.TimeLeft)
	case domain.ModeFlashcard:
		fmt.Fprintf(&b, "Cards left this pass: %d\n", t.Remaining)
	default:
		fmt.Fprintf(&b, "Score: %d\n", t.Score)
	}

	if t.Prompt != nil {
		b.WriteString("\n")
		b.WriteString(formatPrompt(t.Prompt, t.Mode))
	}
	return b.String()
}

// formatFeedback says whether the last answer was right, empty for flashcards
func formatFeedback(out *game.Outcome, mode domain.Mode) string {
	if out == nil || mode == domain.ModeFlashcard {
		return ""
	}
	if out.Correct {
		return fmt.Sprintf("✅ Correct! +%d\n\n", out.Points)
	}
	return fmt.Sprintf("❌ Wrong, it was: %s (−%d)\n\n", out.Expected, out.Points)
}

func formatPrompt(p *game.Prompt, mode domain.Mode) string {
	if mode != domain.ModeFlashcard {
		return fmt.Sprintf("#%d  %s", p.Turn, p.Text)
	}
	if p.Flipped {
		return fmt.Sprintf("🃏 %s\n\n➡️ %s", p.Text, p.Answer)
	}
	return fmt.Sprintf("🃏 %s", p.Text)
}

func formatResults(res domain.Results) string {
	var b strings.Builder
	b.WriteString("🏁 Game over!\n\n")
	fmt.Fprintf(&b, "Mode: %s\n", modeLabels[res.Mode])
	if res.Mode == domain.ModeFlashcard {
		fmt.Fprintf(&b, "Known: %d of %d marks\n", res.Correct, res.Total)
		fmt.Fprintf(&b, "Passes: %d\n", res.Passes)
	} else {
		fmt.Fprintf(&b, "Score: %d\n", res.Score)
		fmt.Fprintf(&b, "Correct: %d/%d\n", res.Correct, res.Total)
	}
	fmt.Fprintf(&b, "Accuracy: %d%%\n", res.Accuracy())
	fmt.Fprintf(&b, "Time: %s", res.Duration.Round(time.Second))
	return b.String()
}

func formatSummary(s *service.Summary) string {
	if len(s.Best) == 0 && len(s.Recent) == 0 {
		return "📊 No finished games yet. Play one with /start!"
	}

	var b strings.Builder
	b.WriteString("📊 Best scores\n")
	for _, best := range s.Best {
		fmt.Fprintf(&b, "%s: %d (%d games)\n", modeLabels[best.Mode], best.Score, best.Games)
	}
	if len(s.Recent) > 0 {
		b.WriteString("\n🕘 Recent games\n")
		for _, r := range s.Recent {
			fmt.Fprintf(&b, "%s · %s %s · %d pts · %d%%\n",
				r.FinishedAt.Format("02.01 15:04"), r.Bin, modeLabels[r.Mode], r.Score, r.Accuracy)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
