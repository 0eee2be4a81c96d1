package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("entity_key", "payload").
		From("tournament_snapshots").
		Where(Eq("tournament_id", "t1"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT entity_key, payload FROM tournament_snapshots WHERE tournament_id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_HasPrefixEscapesWildcards(t *testing.T) {
	query, args, err := Select("*").
		From("tournament_snapshots").
		Where(Eq("entity_type", "player_stats"), HasPrefix("entity_key", "m_1%:")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM tournament_snapshots WHERE entity_type = $1 AND entity_key LIKE $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != `m\_1\%:%` {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("tournament_snapshots").
		Columns("entity_type", "entity_key").
		Values("teams", "team:a").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO tournament_snapshots (entity_type, entity_key) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "teams" || args[1] != "team:a" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		Kind    string `db:"entity_type"`
		Key     string `db:"entity_key"`
		Ignored string `db:"-"`
		local   string
	}

	query, args, err := InsertModels("tournament_snapshots", []any{
		row{Kind: "teams", Key: "team:a"},
		&row{Kind: "teams", Key: "team:b"},
	}, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO tournament_snapshots (entity_type, entity_key) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "team:b" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels("t", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
	if _, _, err := InsertModels("t", []any{row{}, struct {
		Other string `db:"other"`
	}{}}, ""); err == nil {
		t.Fatalf("expected error for mismatched columns")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("tournament_snapshots").
		SetExpr("deleted_at", "NOW()").
		Where(Eq("tournament_id", "t1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE tournament_snapshots SET deleted_at = NOW() WHERE tournament_id = $1 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_SetAndExprPlaceholders(t *testing.T) {
	query, args, err := Update("tournament_snapshots").
		Set("source", "league_api").
		SetExpr("ingested_at", "NOW() - (? * INTERVAL '1 second')", 30).
		Where(Expr("payload_hash <> ?", "abc"), Eq("entity_key", "team:a")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE tournament_snapshots SET source = $1, ingested_at = NOW() - ($2 * INTERVAL '1 second') WHERE payload_hash <> $3 AND entity_key = $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "league_api" || args[1] != 30 || args[3] != "team:a" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestBuilders_RejectIncompleteQueries(t *testing.T) {
	if _, _, err := Select().From("t").ToSQL(); err == nil {
		t.Fatalf("expected error for select without columns")
	}
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error for select without table")
	}
	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected error for short insert row")
	}
	if _, _, err := Update("t").ToSQL(); err == nil {
		t.Fatalf("expected error for update without sets")
	}
}
