package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/domain/rawdata"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

const snapshotTable = "tournament_snapshots"

// Postgres caps bind parameters at 65535.
const snapshotInsertChunk = 500

const snapshotUpsertSuffix = `ON CONFLICT (entity_type, tournament_public_id, entity_key)
DO UPDATE SET
    source = EXCLUDED.source,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    source_updated_at = EXCLUDED.source_updated_at,
    ordinal = EXCLUDED.ordinal,
    ingested_at = NOW(),
    deleted_at = NULL`

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) ReplaceTournament(ctx context.Context, tournamentID, entityType string, items []rawdata.Payload) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace snapshots: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update(snapshotTable).
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.Eq("entity_type", entityType),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build retire snapshots query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("retire snapshots tournament=%s entity=%s: %w", tournamentID, entityType, err)
	}

	models := snapshotInsertModels(tournamentID, entityType, items)
	for start := 0; start < len(models); start += snapshotInsertChunk {
		end := min(start+snapshotInsertChunk, len(models))
		query, args, err := qb.InsertModels(snapshotTable, models[start:end], snapshotUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert snapshots query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert snapshots tournament=%s entity=%s: %w", tournamentID, entityType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace snapshots tx: %w", err)
	}

	return nil
}

func (r *SnapshotRepository) ListByTournament(ctx context.Context, tournamentID, entityType string) ([]rawdata.Payload, error) {
	query, args, err := listByTournamentQuery(tournamentID, entityType)
	if err != nil {
		return nil, fmt.Errorf("build select snapshots by tournament query: %w", err)
	}

	var rows []snapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select snapshots by tournament: %w", err)
	}

	return snapshotRowsToPayloads(rows), nil
}

// Revived rows keep their original id, so upstream order is read back from ordinal.
func listByTournamentQuery(tournamentID, entityType string) (string, []any, error) {
	return qb.Select("*").From(snapshotTable).
		Where(
			qb.Eq("tournament_public_id", tournamentID),
			qb.Eq("entity_type", entityType),
			qb.IsNull("deleted_at"),
		).
		OrderBy("ordinal", "id").
		ToSQL()
}

func (r *SnapshotRepository) ListByEntityKeyPrefix(ctx context.Context, entityType, keyPrefix string) ([]rawdata.Payload, error) {
	query, args, err := qb.Select("*").From(snapshotTable).
		Where(
			qb.Eq("entity_type", entityType),
			qb.HasPrefix("entity_key", keyPrefix),
			qb.IsNull("deleted_at"),
		).
		OrderBy("tournament_public_id", "ordinal", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select snapshots by key prefix query: %w", err)
	}

	var rows []snapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select snapshots by key prefix: %w", err)
	}

	return snapshotRowsToPayloads(rows), nil
}

// dedupeByEntityKey keeps the last item per key; one upsert statement cannot touch a row twice.
func dedupeByEntityKey(items []rawdata.Payload) []rawdata.Payload {
	indexByKey := make(map[string]int, len(items))
	out := make([]rawdata.Payload, 0, len(items))
	for _, item := range items {
		if pos, ok := indexByKey[item.EntityKey]; ok {
			out[pos] = item
			continue
		}
		indexByKey[item.EntityKey] = len(out)
		out = append(out, item)
	}
	return out
}

// snapshotInsertModels numbers rows in upstream order after dedupe.
func snapshotInsertModels(tournamentID, entityType string, items []rawdata.Payload) []any {
	items = dedupeByEntityKey(items)
	models := make([]any, 0, len(items))
	for i, item := range items {
		models = append(models, snapshotInsertModel{
			Source:          item.Source,
			EntityType:      entityType,
			EntityKey:       item.EntityKey,
			TournamentID:    tournamentID,
			Payload:         item.PayloadJSON,
			PayloadHash:     item.PayloadHash,
			SourceUpdatedAt: item.SourceUpdatedAt,
			Ordinal:         i,
		})
	}
	return models
}

func snapshotRowsToPayloads(rows []snapshotTableModel) []rawdata.Payload {
	out := make([]rawdata.Payload, 0, len(rows))
	for _, row := range rows {
		out = append(out, rawdata.Payload{
			Source:          row.Source,
			EntityType:      row.EntityType,
			EntityKey:       row.EntityKey,
			TournamentID:    row.TournamentID,
			PayloadJSON:     row.Payload,
			PayloadHash:     row.PayloadHash,
			SourceUpdatedAt: row.SourceUpdatedAt,
		})
	}
	return out
}

type snapshotInsertModel struct {
	Source          string     `db:"source"`
	EntityType      string     `db:"entity_type"`
	EntityKey       string     `db:"entity_key"`
	TournamentID    string     `db:"tournament_public_id"`
	Payload         string     `db:"payload"`
	PayloadHash     string     `db:"payload_hash"`
	SourceUpdatedAt *time.Time `db:"source_updated_at"`
	Ordinal         int        `db:"ordinal"`
}
