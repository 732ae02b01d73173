package ui

import (
	"testing"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

func TestStatusBadgeCoversAllStates(t *testing.T) {
	labels := map[model.CaseStatus]string{
		model.StatusInProgress:          "In Progress",
		model.StatusUnderReview:         "Under Review",
		model.StatusHaveInitialJudgment: "Initial Judgment",
		model.StatusHaveFinalJudgment:   "Final Judgment",
		model.StatusSendBack:            "Sent Back",
		model.StatusClosed:              "Closed",
	}
	if len(labels) != len(model.AllStatuses) {
		t.Fatalf("test covers %d states, model has %d", len(labels), len(model.AllStatuses))
	}
	seen := make(map[string]bool)
	for state, want := range labels {
		badge := StatusBadge(state)
		if badge.Label != want {
			t.Errorf("StatusBadge(%s).Label = %q, want %q", state, badge.Label, want)
		}
		if badge.Tag == "" {
			t.Errorf("StatusBadge(%s) has no color tag", state)
		}
		seen[badge.Tag] = true
	}
	// States must be visually distinguishable at a glance, with the one
	// deliberate exception of the settled pair sharing muted tones.
	if len(seen) < 5 {
		t.Errorf("only %d distinct status colors", len(seen))
	}
}

func TestStatusBadgeUnknownStateStillRenders(t *testing.T) {
	badge := StatusBadge(model.CaseStatus("APPEAL_PENDING"))
	if badge.Label != "Appeal Pending" {
		t.Fatalf("unknown state label = %q", badge.Label)
	}
}

func TestRowClassBuckets(t *testing.T) {
	cases := map[model.CaseStatus]string{
		model.StatusInProgress:          "active",
		model.StatusUnderReview:         "active",
		model.StatusHaveInitialJudgment: "active",
		model.StatusSendBack:            "attention",
		model.StatusHaveFinalJudgment:   "settled",
		model.StatusClosed:              "settled",
	}
	for state, want := range cases {
		if got := RowClass(state); got != want {
			t.Errorf("RowClass(%s) = %q, want %q", state, got, want)
		}
	}
}

func TestPriorityBadge(t *testing.T) {
	for _, p := range model.AllPriorities {
		if badge := PriorityBadge(p); badge.Label == "" || badge.Tag == "" {
			t.Errorf("PriorityBadge(%s) = %+v", p, badge)
		}
	}
	if PriorityBadge(model.PriorityUrgent).Tag == PriorityBadge(model.PriorityLow).Tag {
		t.Error("urgent and low must not share a color")
	}
}

func TestPageLabel(t *testing.T) {
	if got := pageLabel(2, 5, 33); got != "Page 2 of 5 (33 cases)" {
		t.Errorf("pageLabel = %q", got)
	}
	if got := pageLabel(1, 1, 1); got != "Page 1 of 1 (1 case)" {
		t.Errorf("singular pageLabel = %q", got)
	}
	if got := pageLabel(1, 0, 0); got != "No cases" {
		t.Errorf("empty pageLabel = %q", got)
	}
}

func TestStatLine(t *testing.T) {
	page := model.CasePage{
		TotalElements: 12,
		Content: []model.CaseDetails{
			{State: model.StatusInProgress},
			{State: model.StatusInProgress},
			{State: model.StatusClosed},
		},
	}
	got := statLine(page)
	want := "12 cases  |  In Progress: 2  Closed: 1"
	if got != want {
		t.Errorf("statLine = %q, want %q", got, want)
	}

	if got := statLine(model.CasePage{}); got != "No matching cases" {
		t.Errorf("empty statLine = %q", got)
	}
}
