package main

import (
	"fmt"
	"strings"
	"time"

	"calcquest/internal/app"
	"calcquest/internal/state"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true) // Green
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // Red
	styleRune      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true) // Yellow
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader    = lipgloss.NewStyle().Bold(true)
)

func renderVerdict(ok bool, input, correct string) string {
	if ok {
		return styleCorrect.Render("correct") + styleSubtle.Render(fmt.Sprintf("  %s = %s", input, correct))
	}
	return styleIncorrect.Render("incorrect") + styleSubtle.Render(fmt.Sprintf("  %s ≠ %s", input, correct))
}

func renderOutcome(out app.Outcome, input, correct string) string {
	var b strings.Builder
	b.WriteString(renderVerdict(out.Correct, input, correct))
	fmt.Fprintf(&b, "\n%s streak %d/%d", out.TopicID, out.Streak, state.MasteryThreshold)
	if out.Mastered && !out.JustMastered {
		b.WriteString(styleSubtle.Render(" (mastered)"))
	}
	if out.JustMastered {
		b.WriteString("\n" + styleCorrect.Render("topic "+out.TopicID+" mastered!"))
	}
	if out.RuneCollected != "" {
		b.WriteString("\n" + styleRune.Render("rune collected: "+out.RuneCollected))
	}
	if out.GameCompleted {
		b.WriteString("\n" + styleRune.Render("every rune is yours. quest complete!"))
	}
	return b.String()
}

func renderStatus(a *app.App, now time.Time) string {
	rec := a.Store.Snapshot()
	var b strings.Builder

	b.WriteString(styleHeader.Render("Calculus Quest") + "\n")
	fmt.Fprintf(&b, "started %s, last played %s\n",
		humanize.RelTime(time.UnixMilli(rec.Created), now, "ago", "from now"),
		humanize.RelTime(time.UnixMilli(rec.LastPlayed), now, "ago", "from now"))
	if region := a.Store.CurrentRegion(); region != "" {
		loc := region
		if topic := a.Store.CurrentTopic(); topic != "" {
			loc += " / " + topic
		}
		fmt.Fprintf(&b, "at %s\n", loc)
	}

	fmt.Fprintf(&b, "\n%s %d/%d\n", styleHeader.Render("Runes"), a.Store.CountRunes(), state.TotalRunes)
	for _, region := range a.Catalog.Regions {
		mastered, total := a.Session.RegionProgress(region.RegionID)
		mark := styleSubtle.Render("○")
		if rec.Runes[region.RegionID] {
			mark = styleRune.Render("◆")
		}
		fmt.Fprintf(&b, "  %s %-13s %-22s %d/%d topics\n", mark, region.RegionID, region.Name, mastered, total)
	}

	st := rec.Stats
	fmt.Fprintf(&b, "\n%s\n", styleHeader.Render("Totals"))
	fmt.Fprintf(&b, "  problems  %s attempted, %s correct\n", humanize.Comma(int64(st.TotalProblemsAttempted)), humanize.Comma(int64(st.TotalProblemsCorrect)))
	fmt.Fprintf(&b, "  mastered  %d topics\n", st.TotalTopicsMastered)
	fmt.Fprintf(&b, "  played    %s\n", (time.Duration(st.PlayTime) * time.Millisecond).Round(time.Second))
	if rec.GameCompleted {
		b.WriteString("\n" + styleRune.Render("quest complete") + "\n")
	}
	cfg := a.Config()
	b.WriteString("\n" + styleSubtle.Render(fmt.Sprintf("progress kept in %s (%s)", cfg.Storage, cfg.DataDir)) + "\n")
	return b.String()
}
