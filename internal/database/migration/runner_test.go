package migration

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_SortsAndChecksums(t *testing.T) {
	fsys := fstest.MapFS{
		"m/V2__second.sql": {Data: []byte("SELECT 2;")},
		"m/V1__first.sql":  {Data: []byte("SELECT 1;\n")},
		"m/README.md":      {Data: []byte("ignored")},
	}

	migs, err := Load(fsys, "m")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("expected sorted versions, got %d,%d", migs[0].Version, migs[1].Version)
	}
	if migs[0].Name != "first" {
		t.Fatalf("unexpected name %q", migs[0].Name)
	}
	if migs[0].SQL != "SELECT 1;" {
		t.Fatalf("expected trimmed sql, got %q", migs[0].SQL)
	}
	if len(migs[0].Checksum) != 64 {
		t.Fatalf("expected sha256 hex checksum")
	}
}

func TestLoad_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/V1__a.sql": {Data: []byte("SELECT 1;")},
		"m/V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	_, err := Load(fsys, "m")
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	fsys := fstest.MapFS{"m/V1__a.sql": {Data: []byte("  \n")}}
	if _, err := Load(fsys, "m"); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestPending(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Checksum: "aa"},
		{Version: 2, Name: "b", Checksum: "bb"},
	}

	pending, err := Pending(migs, map[int64]string{1: "aa"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pending) != 1 || pending[0].Version != 2 {
		t.Fatalf("expected only version 2 pending, got %+v", pending)
	}

	if _, err := Pending(migs, map[int64]string{1: "changed"}); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestEmbeddedMigrationsLoad(t *testing.T) {
	r := Embedded()
	migs, err := Load(r.FS, r.Dir)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) < 4 {
		t.Fatalf("expected embedded migrations, got %d", len(migs))
	}
	joined := ""
	for _, m := range migs {
		joined += m.SQL
	}
	for _, fn := range []string{"get_filtered_vacancies_for_seeker", "get_filtered_seekers_for_employer", "clean_expired_matches", "pg_notify('match_created'"} {
		if !strings.Contains(joined, fn) {
			t.Fatalf("expected %s in embedded migrations", fn)
		}
	}
}
