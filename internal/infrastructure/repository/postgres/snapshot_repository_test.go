package postgres

import (
	"strings"
	"testing"

	"github.com/riskibarqy/league-standings/internal/domain/rawdata"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

func TestSnapshotInsertModelsCarryUpstreamOrder(t *testing.T) {
	t.Parallel()

	models := snapshotInsertModels("cup", rawdata.EntityTeams, []rawdata.Payload{
		{EntityKey: "team:C", PayloadHash: "c"},
		{EntityKey: "team:A", PayloadHash: "a1"},
		{EntityKey: "team:B", PayloadHash: "b"},
		{EntityKey: "team:A", PayloadHash: "a2"},
	})
	if len(models) != 3 {
		t.Fatalf("expected 3 deduped models, got %d", len(models))
	}

	wantKeys := []string{"team:C", "team:A", "team:B"}
	for i, raw := range models {
		model, ok := raw.(snapshotInsertModel)
		if !ok {
			t.Fatalf("unexpected model type %T", raw)
		}
		if model.Ordinal != i || model.EntityKey != wantKeys[i] {
			t.Fatalf("model %d: expected key=%s ordinal=%d, got %+v", i, wantKeys[i], i, model)
		}
		if model.TournamentID != "cup" || model.EntityType != rawdata.EntityTeams {
			t.Fatalf("model %d: expected scope fields set, got %+v", i, model)
		}
	}
	if second := models[1].(snapshotInsertModel); second.PayloadHash != "a2" {
		t.Fatalf("expected last payload to win in first slot, got %+v", second)
	}
}

func TestSnapshotUpsertRewritesOrdinal(t *testing.T) {
	t.Parallel()

	models := snapshotInsertModels("cup", rawdata.EntityMatches, []rawdata.Payload{{EntityKey: "match:m1"}})
	query, _, err := qb.InsertModels(snapshotTable, models, snapshotUpsertSuffix)
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}
	if !strings.Contains(query, "ordinal") || !strings.Contains(query, "ordinal = EXCLUDED.ordinal") {
		t.Fatalf("expected ordinal inserted and refreshed on conflict, got %s", query)
	}
}

func TestListByTournamentQueryOrdersByOrdinal(t *testing.T) {
	t.Parallel()

	query, args, err := listByTournamentQuery("cup", rawdata.EntityTeams)
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	if !strings.Contains(query, "ORDER BY ordinal, id") {
		t.Fatalf("expected ordinal ordering, got %s", query)
	}
	if len(args) != 2 || args[0] != "cup" || args[1] != rawdata.EntityTeams {
		t.Fatalf("unexpected args: %v", args)
	}
}
