package guest

// ProfileOutput wraps the session profile snapshot.
type ProfileOutput struct {
	Body Profile
}

// RoutineOutput returns the stored routine, including a generated id.
type RoutineOutput struct {
	Body Routine
}

// BehaviorData summarizes the session's interaction log.
type BehaviorData struct {
	EngagementLevel      string   `json:"engagementLevel"      doc:"Engagement level" enum:"high,medium,low"`
	PrimaryInterests     []string `json:"primaryInterests"     doc:"Most frequent interaction targets"`
	PreferredFeatures    []string `json:"preferredFeatures"    doc:"Most visited site areas"`
	SessionDurationSec   float64  `json:"sessionDurationSec"   doc:"Session age in seconds"`
	InteractionFrequency float64  `json:"interactionFrequency" doc:"Interactions per minute"`
}

// BehaviorOutput wraps the derived behavior patterns.
type BehaviorOutput struct {
	Body BehaviorData
}
