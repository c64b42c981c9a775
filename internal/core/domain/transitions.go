package domain

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From PickupStatus
	To   PickupStatus
}

// validTransitions is the authoritative pickup state machine definition.
// pending → accepted → in-progress → completed, with cancelled reachable
// from every non-terminal state.
var validTransitions = map[transitionKey]bool{
	{StatusPending, StatusAccepted}:     true,
	{StatusAccepted, StatusInProgress}:  true,
	{StatusInProgress, StatusCompleted}: true,
	{StatusPending, StatusCancelled}:    true,
	{StatusAccepted, StatusCancelled}:   true,
	{StatusInProgress, StatusCancelled}: true,
}

// CanTransition reports whether a pickup may move from one status to another
func CanTransition(from, to PickupStatus) bool {
	return validTransitions[transitionKey{From: from, To: to}]
}

// NextStatuses returns all valid next statuses from a given status
func NextStatuses(from PickupStatus) []PickupStatus {
	var next []PickupStatus
	for _, to := range []PickupStatus{StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled} {
		if CanTransition(from, to) {
			next = append(next, to)
		}
	}
	return next
}
