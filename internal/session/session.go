// Package session holds per-actor dialogue state for the lifetime of the
// process. Sessions are created lazily on first contact and never evicted;
// the population is bounded only by the number of distinct actors seen.
// Eviction is a deliberate extension point, not a current requirement.
package session

// Stage identifies a dialogue step for an actor. Any value other than
// StageIdle means exactly one dialogue is in flight.
type Stage string

const (
	// StageIdle indicates there is no active dialogue with the actor.
	StageIdle Stage = "idle"

	// Profile-generation dialogue.
	StageAwaitingCountry Stage = "awaiting_country"
	StageAwaitingGender  Stage = "awaiting_gender"

	// Settings dialogue.
	StageAwaitingSettingsAction  Stage = "awaiting_settings_action"
	StageAwaitingSettingsCountry Stage = "awaiting_settings_country"
	StageAwaitingSettingsGender  Stage = "awaiting_settings_gender"
)

// Session stores dialogue state and sticky preferences for one actor.
type Session struct {
	Stage Stage

	// Transient fields of the in-flight dialogue, cleared on exit.
	PendingAmount int
	PendingLocale string
	PendingGender string

	// Sticky preferences, set only via the settings dialogue.
	DefaultLocale string
	DefaultGender string

	// GenerationCount increases only on successful profile generation.
	GenerationCount int

	// Batch is the last generated batch browsed by the pagination
	// sub-flow. Cursor stays within [0, len(Batch)) while the batch is
	// non-empty. BatchMessageID tracks the message rendering the batch;
	// pagination arriving from any other message is treated as expired.
	Batch          []string
	Cursor         int
	BatchMessageID int
}

// New returns a fresh idle session with zeroed counters.
func New() *Session {
	return &Session{Stage: StageIdle}
}

// InDialogue reports whether a dialogue is currently in flight.
func (s *Session) InDialogue() bool {
	return s.Stage != StageIdle
}

// ResetDialogue returns the session to idle and clears all transient
// dialogue fields. Sticky preferences, the generation counter and the
// last batch survive; this is the /start escape hatch.
func (s *Session) ResetDialogue() {
	s.Stage = StageIdle
	s.PendingAmount = 0
	s.PendingLocale = ""
	s.PendingGender = ""
}
