package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from PickupStatus
		to   PickupStatus
		want bool
	}{
		{"pending to accepted", StatusPending, StatusAccepted, true},
		{"accepted to in-progress", StatusAccepted, StatusInProgress, true},
		{"in-progress to completed", StatusInProgress, StatusCompleted, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"accepted to cancelled", StatusAccepted, StatusCancelled, true},
		{"in-progress to cancelled", StatusInProgress, StatusCancelled, true},

		{"pending cannot skip to in-progress", StatusPending, StatusInProgress, false},
		{"pending cannot skip to completed", StatusPending, StatusCompleted, false},
		{"accepted cannot skip to completed", StatusAccepted, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"no backwards move", StatusAccepted, StatusPending, false},
		{"no self transition", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []PickupStatus{StatusPending, StatusAccepted, StatusInProgress} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []PickupStatus{StatusCompleted, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestNextStatuses(t *testing.T) {
	next := NextStatuses(StatusPending)
	if len(next) != 2 {
		t.Fatalf("expected 2 next statuses from pending, got %v", next)
	}

	if got := NextStatuses(StatusCompleted); len(got) != 0 {
		t.Errorf("expected no next statuses from completed, got %v", got)
	}
	if got := NextStatuses(StatusCancelled); len(got) != 0 {
		t.Errorf("expected no next statuses from cancelled, got %v", got)
	}
}

func TestParsePickupStatus(t *testing.T) {
	if _, ok := ParsePickupStatus("in-progress"); !ok {
		t.Error("in-progress should parse")
	}
	if _, ok := ParsePickupStatus("shipped"); ok {
		t.Error("shipped should not parse")
	}
}

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"citizen", "collector", "ngo"} {
		if _, ok := ParseRole(raw); !ok {
			t.Errorf("%s should parse", raw)
		}
	}
	if _, ok := ParseRole("admin"); ok {
		t.Error("admin should not parse")
	}
}
