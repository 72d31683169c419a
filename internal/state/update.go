package state

// Update is a partial update to a project document. Nil fields are left
// unchanged; set fields replace the current value wholesale — slices are
// never merged element-wise. ClearPendingAction distinguishes "set the
// handshake slot to null" from "leave it alone", since a nil pointer means
// the latter.
type Update struct {
	Phase              *Phase
	Tracks             []Track
	Decisions          []DecisionRef
	Specs              []SpecRef
	Artifacts          []ArtifactRef
	CurrentTrack       *string
	LastSkill          *string
	PendingAction      *PendingAction
	ClearPendingAction bool
	ActivityLog        []ActivityEntry
}

// apply writes the set fields over a snapshot of the current document and
// returns the result. The receiver is not modified.
func (u Update) apply(cur ProjectState, now string) ProjectState {
	next := cur
	if u.Phase != nil {
		next.Phase = *u.Phase
	}
	if u.Tracks != nil {
		next.Tracks = u.Tracks
	}
	if u.Decisions != nil {
		next.Decisions = u.Decisions
	}
	if u.Specs != nil {
		next.Specs = u.Specs
	}
	if u.Artifacts != nil {
		next.Artifacts = u.Artifacts
	}
	if u.CurrentTrack != nil {
		next.CurrentTrack = *u.CurrentTrack
	}
	if u.LastSkill != nil {
		next.LastSkill = *u.LastSkill
	}
	if u.PendingAction != nil {
		next.PendingAction = u.PendingAction
	}
	if u.ClearPendingAction {
		next.PendingAction = nil
	}
	if u.ActivityLog != nil {
		next.ActivityLog = u.ActivityLog
	}
	next.LastUpdated = now
	return next
}
