package rawdata

import "context"

// Repository stores mirrored backend documents.
type Repository interface {
	// ReplaceTournament makes items the only live documents of entityType for the tournament.
	ReplaceTournament(ctx context.Context, tournamentID, entityType string, items []Payload) error
	ListByTournament(ctx context.Context, tournamentID, entityType string) ([]Payload, error)
	ListByEntityKeyPrefix(ctx context.Context, entityType, keyPrefix string) ([]Payload, error)
}
