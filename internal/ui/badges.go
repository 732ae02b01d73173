package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// Badge is a display rendering of an enum value: a human label, a color
// tag for tview markup and a widget color.
type Badge struct {
	Label string
	Tag   string
	Color tcell.Color
}

// StatusBadge maps a case state to its display badge. Unknown states
// render as-is in the muted color instead of disappearing.
func StatusBadge(state model.CaseStatus) Badge {
	switch state {
	case model.StatusInProgress:
		return Badge{Label: "In Progress", Tag: "#4aa8ff", Color: hex("#4aa8ff")}
	case model.StatusUnderReview:
		return Badge{Label: "Under Review", Tag: "#f59e0b", Color: hex("#f59e0b")}
	case model.StatusHaveInitialJudgment:
		return Badge{Label: "Initial Judgment", Tag: "#2dd4bf", Color: hex("#2dd4bf")}
	case model.StatusHaveFinalJudgment:
		return Badge{Label: "Final Judgment", Tag: "#22c55e", Color: hex("#22c55e")}
	case model.StatusSendBack:
		return Badge{Label: "Sent Back", Tag: "#ef4444", Color: hex("#ef4444")}
	case model.StatusClosed:
		return Badge{Label: "Closed", Tag: "#8a939f", Color: hex("#8a939f")}
	default:
		return Badge{Label: titleCase(string(state)), Tag: "#8a939f", Color: hex("#8a939f")}
	}
}

// PriorityBadge maps a case priority to its display badge.
func PriorityBadge(priority model.CasePriority) Badge {
	switch priority {
	case model.PriorityUrgent:
		return Badge{Label: "Urgent", Tag: "#ff5f5f", Color: hex("#ff5f5f")}
	case model.PriorityHigh:
		return Badge{Label: "High", Tag: "#ffaf5f", Color: hex("#ffaf5f")}
	case model.PriorityMedium:
		return Badge{Label: "Medium", Tag: "#ffd75f", Color: hex("#ffd75f")}
	case model.PriorityLow:
		return Badge{Label: "Low", Tag: "#87ffaf", Color: hex("#87ffaf")}
	default:
		return Badge{Label: titleCase(string(priority)), Tag: "#8a939f", Color: hex("#8a939f")}
	}
}

// RowClass buckets a case state for row styling: "active" rows render
// normally, "attention" rows stand out, "settled" rows are muted.
func RowClass(state model.CaseStatus) string {
	switch state {
	case model.StatusSendBack:
		return "attention"
	case model.StatusClosed, model.StatusHaveFinalJudgment:
		return "settled"
	default:
		return "active"
	}
}

// titleCase turns SNAKE_CASE enum text into readable words.
func titleCase(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// pageLabel renders the pagination footer text.
func pageLabel(page, totalPages, totalElements int) string {
	if totalPages <= 0 {
		return "No cases"
	}
	plural := "s"
	if totalElements == 1 {
		plural = ""
	}
	return fmt.Sprintf("Page %d of %d (%d case%s)", page, totalPages, totalElements, plural)
}

// statLine summarizes one page of cases for the header: total matches
// plus a per-state breakdown of the visible rows.
func statLine(page model.CasePage) string {
	if page.TotalElements == 0 {
		return "No matching cases"
	}
	counts := make(map[model.CaseStatus]int)
	for _, c := range page.Content {
		counts[c.State]++
	}
	parts := make([]string, 0, len(counts))
	for _, state := range model.AllStatuses {
		if n := counts[state]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", StatusBadge(state).Label, n))
		}
	}
	summary := fmt.Sprintf("%d cases", page.TotalElements)
	if page.TotalElements == 1 {
		summary = "1 case"
	}
	if len(parts) == 0 {
		return summary
	}
	return summary + "  |  " + strings.Join(parts, "  ")
}
