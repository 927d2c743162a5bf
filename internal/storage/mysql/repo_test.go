package mysql

import (
	"context"
	"testing"

	"gemmap/internal/storage"
)

func TestMySQLStorageRegistrationUsesNewRepositoryHook(t *testing.T) {
	orig := newRepository
	defer func() { newRepository = orig }()

	var (
		gotCfg Config
		closed bool
	)
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		gotCfg = cfg
		return &Repository{cfg: cfg}, func() { closed = true }, nil
	}

	repo, err := storage.New(context.Background(), storage.Config{
		Kind:    "mysql",
		DSN:     "user:pass@tcp(localhost:3306)/gemmap",
		Table:   "gemmap_upload",
		Columns: []string{"uid"},
	})
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if gotCfg.Table != "gemmap_upload" || gotCfg.DSN != "user:pass@tcp(localhost:3306)/gemmap" {
		t.Errorf("hook cfg = %+v", gotCfg)
	}
	repo.Close()
	if !closed {
		t.Fatal("Close() did not invoke closeFn")
	}
}

func TestInsertSQL(t *testing.T) {
	got := insertSQL("gemmap.up", []string{"uid", "TAG NO"}, 2)
	want := "INSERT INTO `gemmap`.`up` (`uid`, `TAG NO`) VALUES (?,?),(?,?)"
	if got != want {
		t.Fatalf("insertSQL = %q, want %q", got, want)
	}
}

func TestCreateTableDDL(t *testing.T) {
	got, err := Dialect.CreateTable("gemmap_upload", []string{"a`b"})
	if err != nil {
		t.Fatal(err)
	}
	want := "CREATE TABLE IF NOT EXISTS `gemmap_upload` (\n  `a``b` LONGTEXT\n)"
	if got != want {
		t.Fatalf("CreateTable = %q, want %q", got, want)
	}
}

func TestNewRepository_BadDSN(t *testing.T) {
	if _, _, err := NewRepository(context.Background(), Config{DSN: "not a dsn"}); err == nil {
		t.Fatal("expected DSN parse error")
	}
}

func TestCopyFrom_Validates(t *testing.T) {
	r := &Repository{cfg: Config{Table: "t"}}
	if _, err := r.CopyFrom(context.Background(), nil, [][]any{{"x"}}); err == nil {
		t.Fatal("expected error for empty columns")
	}
	if n, err := r.CopyFrom(context.Background(), []string{"a"}, nil); err != nil || n != 0 {
		t.Fatalf("empty batch = (%d, %v), want (0, nil)", n, err)
	}
	if _, err := r.CopyFrom(context.Background(), []string{"a", "b"}, [][]any{{"x"}}); err == nil {
		t.Fatal("expected row length error")
	}
}
