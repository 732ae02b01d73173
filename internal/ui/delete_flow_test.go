package ui

import (
	"context"
	"errors"
	"testing"
)

type recordingDialog struct {
	events []string
}

func (d *recordingDialog) ShowDeleting()   { d.events = append(d.events, "deleting") }
func (d *recordingDialog) ShowError(error) { d.events = append(d.events, "error") }
func (d *recordingDialog) Close()          { d.events = append(d.events, "close") }

func (d *recordingDialog) last() string {
	if len(d.events) == 0 {
		return ""
	}
	return d.events[len(d.events)-1]
}

func TestDeleteDialogClosesOnlyAfterBackendConfirms(t *testing.T) {
	dlg := &recordingDialog{}
	err := runCaseDelete(context.Background(), dlg, func(ctx context.Context) error {
		// The call is still in flight here; the dialog must be up and in
		// its deleting state, not closed.
		if dlg.last() != "deleting" {
			t.Fatalf("dialog state during delete = %q, want deleting", dlg.last())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("runCaseDelete: %v", err)
	}
	if dlg.last() != "close" {
		t.Fatalf("events = %v, want close last", dlg.events)
	}
}

func TestFailedDeleteKeepsDialogUp(t *testing.T) {
	dlg := &recordingDialog{}
	backendErr := errors.New("case is locked")
	err := runCaseDelete(context.Background(), dlg, func(ctx context.Context) error {
		return backendErr
	})
	if !errors.Is(err, backendErr) {
		t.Fatalf("runCaseDelete error = %v, want %v", err, backendErr)
	}
	for _, event := range dlg.events {
		if event == "close" {
			t.Fatalf("dialog closed on failure: %v", dlg.events)
		}
	}
	if dlg.last() != "error" {
		t.Fatalf("events = %v, want error last", dlg.events)
	}
}
