package rawdata

import "time"

// Entity types mirrored per tournament.
const (
	EntityTeams       = "teams"
	EntityMatches     = "matches"
	EntityPlayerStats = "player_stats"
)

// Payload is one mirrored backend document, stored verbatim as JSON.
type Payload struct {
	Source          string
	EntityType      string
	EntityKey       string
	TournamentID    string
	PayloadJSON     string
	PayloadHash     string
	SourceUpdatedAt *time.Time
}
