package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/snippet-manager/internal/model"
)

func TestCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := addTestUser(t, db, "alice", "pw", model.AccessLevelUser)
	bob := addTestUser(t, db, "bob", "pw", model.AccessLevelUser)
	addTestSnippet(t, db, "one", false, alice)
	addTestSnippet(t, db, "two", true, alice)
	addTestSnippet(t, db, "three", false, bob)

	if err := db.Languages().ReplaceAll(ctx, []model.Language{{ID: 71, Name: "Python (3.8.1)"}}); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	users, err := db.Stats().CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers() error = %v", err)
	}
	if users != 3 { // bootstrap admin + alice + bob
		t.Errorf("CountUsers() = %d, want 3", users)
	}

	snippets, err := db.Stats().CountSnippets(ctx)
	if err != nil {
		t.Fatalf("CountSnippets() error = %v", err)
	}
	if snippets != 3 {
		t.Errorf("CountSnippets() = %d, want 3", snippets)
	}

	langs, err := db.Stats().CountLanguages(ctx)
	if err != nil {
		t.Fatalf("CountLanguages() error = %v", err)
	}
	if langs != 1 {
		t.Errorf("CountLanguages() = %d, want 1", langs)
	}
}

func TestSnippetCountByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := addTestUser(t, db, "alice", "pw", model.AccessLevelUser)
	bob := addTestUser(t, db, "bob", "pw", model.AccessLevelUser)
	addTestSnippet(t, db, "one", false, alice)
	addTestSnippet(t, db, "two", true, alice)
	addTestSnippet(t, db, "three", false, bob)

	counts, err := db.Stats().SnippetCountByUser(ctx)
	if err != nil {
		t.Fatalf("SnippetCountByUser() error = %v", err)
	}

	byUser := make(map[int64]int64, len(counts))
	for _, c := range counts {
		byUser[c.UserID] = c.Count
	}
	if byUser[alice] != 2 {
		t.Errorf("alice count = %d, want 2", byUser[alice])
	}
	if byUser[bob] != 1 {
		t.Errorf("bob count = %d, want 1", byUser[bob])
	}
}

func TestSnippetCountByLanguage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := addTestUser(t, db, "alice", "pw", model.AccessLevelUser)
	// addTestSnippet always uses the same language label.
	addTestSnippet(t, db, "one", false, alice)
	addTestSnippet(t, db, "two", false, alice)

	counts, err := db.Stats().SnippetCountByLanguage(ctx)
	if err != nil {
		t.Fatalf("SnippetCountByLanguage() error = %v", err)
	}
	if len(counts) != 1 {
		t.Fatalf("got %d language buckets, want 1", len(counts))
	}
	if counts[0].Language != "Python (3.8.1)" || counts[0].Count != 2 {
		t.Errorf("bucket = %+v, want Python (3.8.1) with count 2", counts[0])
	}
}

func TestRunQuery(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	addTestUser(t, db, "alice", "pw", model.AccessLevelUser)

	res, err := db.RunQuery(ctx, `SELECT username FROM users WHERE access_level = ?`, model.AccessLevelAdmin)
	if err != nil {
		t.Fatalf("RunQuery() error = %v", err)
	}
	if len(res.Columns) != 1 || res.Columns[0] != "username" {
		t.Errorf("Columns = %v, want [username]", res.Columns)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(res.Rows))
	}
	if res.Rows[0][0] != "admin" {
		t.Errorf("row value = %v, want %q as string", res.Rows[0][0], "admin")
	}
}
