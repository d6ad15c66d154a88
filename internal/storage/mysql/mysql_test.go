package mysql

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"oncoclean/internal/storage"
	"oncoclean/internal/table"
)

type recordingRepo struct {
	execs []string
}

func (r *recordingRepo) CopyFrom(context.Context, []string, [][]any) (int64, error) { return 0, nil }
func (r *recordingRepo) Exec(_ context.Context, sql string) error {
	r.execs = append(r.execs, sql)
	return nil
}
func (r *recordingRepo) Close() {}

func TestInsertSQL(t *testing.T) {
	t.Parallel()

	stmt, args := insertSQL("onco.cleaned", []string{"age", "stage"}, [][]any{
		{int64(40), "Stage I"},
		{int64(41), nil},
	})
	want := "INSERT INTO `onco`.`cleaned` (`age`,`stage`) VALUES (?,?),(?,?)"
	if stmt != want {
		t.Fatalf("stmt=%q want %q", stmt, want)
	}
	if !reflect.DeepEqual(args, []any{int64(40), "Stage I", int64(41), nil}) {
		t.Fatalf("args=%v", args)
	}
}

func TestChunkRows(t *testing.T) {
	t.Parallel()

	width := 20000
	rows := make([][]any, 7)
	chunks := chunkRows(rows, width)
	if len(chunks) != 3 {
		t.Fatalf("chunks=%d want 3", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		if len(c)*width > maxPlaceholders {
			t.Fatalf("chunk of %d rows exceeds placeholder limit", len(c))
		}
		total += len(c)
	}
	if total != len(rows) {
		t.Fatalf("total=%d want %d", total, len(rows))
	}
	if got := chunkRows(rows, maxPlaceholders*2); len(got) != 7 {
		t.Fatalf("wide rows chunks=%d want 7", len(got))
	}
}

func TestDDLBootstrap(t *testing.T) {
	t.Parallel()

	tb := table.New([]string{"age", "bmi", "cancer_stage"}, []table.Kind{table.Int, table.Float, table.String})
	rec := &recordingRepo{}
	if err := storage.EnsureTable(context.Background(), "mysql", rec, "cleaned", tb); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	want := "CREATE TABLE IF NOT EXISTS `cleaned` (\n" +
		"  `age` BIGINT NOT NULL,\n" +
		"  `bmi` DOUBLE NOT NULL,\n" +
		"  `cancer_stage` TEXT\n);"
	if len(rec.execs) != 1 || rec.execs[0] != want {
		t.Fatalf("execs=%q\nwant %q", rec.execs, want)
	}
}

func TestRegistrationUsesNewRepositoryHook(t *testing.T) {
	orig := newRepository
	t.Cleanup(func() { newRepository = orig })

	var got Config
	closed := false
	newRepository = func(_ context.Context, cfg Config) (*Repository, func(), error) {
		got = cfg
		return &Repository{cfg: cfg}, func() { closed = true }, nil
	}

	repo, err := storage.New(context.Background(), storage.Config{
		Kind:    "mysql",
		DSN:     "u:p@tcp(db:3306)/onco",
		Table:   "cleaned",
		Columns: []string{"age"},
	})
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	repo.Close()
	if !closed {
		t.Error("Close did not reach the repository close func")
	}
	if got.Table != "cleaned" || got.DSN != "u:p@tcp(db:3306)/onco" || !reflect.DeepEqual(got.Columns, []string{"age"}) {
		t.Errorf("config not forwarded: %+v", got)
	}

	boom := errors.New("boom")
	newRepository = func(context.Context, Config) (*Repository, func(), error) { return nil, nil, boom }
	if _, err := storage.New(context.Background(), storage.Config{Kind: "mysql"}); !errors.Is(err, boom) {
		t.Fatalf("err=%v want boom", err)
	}
}

func TestNewRepositoryRejectsBadDSN(t *testing.T) {
	t.Parallel()

	_, _, err := NewRepository(context.Background(), Config{DSN: "not a dsn"})
	if err == nil || !strings.Contains(err.Error(), "parse DSN") {
		t.Fatalf("err=%v want parse DSN error", err)
	}
}
