package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	var optional Condition
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("position", "GK"), optional, IsNull("deleted_at"), In("id", []string{"p1", "p2"})).
		OrderBy("total_points DESC", "name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE position = $1 AND deleted_at IS NULL AND id IN ($2, $3) ORDER BY total_points DESC, name LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "GK" || args[2] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInAndExpr(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").
		From("gameweeks").
		Where(In[int]("number", nil), Expr("deadline > ? AND number < ?", "t", 5)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM gameweeks WHERE 1=0 AND deadline > $1 AND number < $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Skipped  string `db:"-"`
		internal string
	}

	query, args, err := InsertModel("players", row{ID: "p1", Name: "Salah", internal: "x"}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "p1" || args[1] != "Salah" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertModel("players", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}
