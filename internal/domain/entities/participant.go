package entities

// Participant is one member of a recommendation request. Participants are
// assembled fresh per request from registered-user lookups, manually entered
// place names, or ad-hoc coordinates; they are never persisted.
type Participant struct {
	ID          string            `json:"id,omitempty"`
	DisplayName string            `json:"display_name"`
	Location    Location          `json:"location"`
	Preferences *PreferenceVector `json:"-"`
}

// User is a registered account as seen by this engine: enough to build a
// Participant from an ID. Account management itself lives elsewhere.
type User struct {
	ID          string   `json:"id" db:"id"`
	DisplayName string   `json:"display_name" db:"display_name"`
	Home        Location `json:"home" db:"-"`
}
