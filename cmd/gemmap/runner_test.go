package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemmap/internal/config"
	"gemmap/internal/datasource"
	"gemmap/internal/mapping"
	"gemmap/internal/schema"
	"gemmap/internal/storage"
)

const vendorCSV = "TAG NO,DETAILS,STONE TYPE,CT,SD WT.,METAL,METAL CARAT\n" +
	"R1001,Diamond Ring,Diamond,1.5,,18K White Gold,18\n" +
	"R1002,Diamond Stud Earrings,Diamond,0,,14K Yellow Gold,14k\n" +
	"R1003,Ruby Pendant,Ruby,,0.2,Silver,\n"

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func testJob(dir string) config.Job {
	j := config.Job{
		Job: "test",
		Output: config.Output{
			Path:        filepath.Join(dir, "upload.csv"),
			MissingPath: filepath.Join(dir, "missing.csv"),
		},
	}
	config.ApplyDefaults(&j)
	return j
}

func TestPlanOutputs(t *testing.T) {
	single := planOutputs([]string{"in/acme.csv"}, "out.csv", "miss.csv")
	assert.Equal(t, []plan{{Input: "in/acme.csv", OutPath: "out.csv", MissingPath: "miss.csv"}}, single)

	multi := planOutputs([]string{"a/acme.csv", "b/acme.xlsx", "https://x.test/feeds/bravo.csv?k=1"}, "out.xlsx", "")
	require.Len(t, multi, 3)
	assert.Equal(t, "out_acme.xlsx", multi[0].OutPath)
	assert.Equal(t, "out_acme_2.xlsx", multi[1].OutPath)
	assert.Equal(t, "out_bravo.xlsx", multi[2].OutPath)
	assert.Empty(t, multi[0].MissingPath)

	// a suffixed stem already used by another input is skipped
	clash := planOutputs([]string{"in/a.csv", "in/a_2.csv", "other/a.csv", "more/a.csv"}, "upload.csv", "missing.csv")
	var outs, misses []string
	for _, p := range clash {
		outs = append(outs, p.OutPath)
		misses = append(misses, p.MissingPath)
	}
	assert.Equal(t, []string{"upload_a.csv", "upload_a_2.csv", "upload_a_3.csv", "upload_a_4.csv"}, outs)
	assert.Equal(t, []string{"missing_a.csv", "missing_a_2.csv", "missing_a_3.csv", "missing_a_4.csv"}, misses)
}

func TestSniffKind(t *testing.T) {
	assert.Equal(t, "xlsx", sniffKind([]byte("PK\x03\x04rest")))
	assert.Equal(t, "csv", sniffKind([]byte("TAG NO,CT\n")))
	assert.Equal(t, "csv", sniffKind(nil))
}

func TestRunner_ConvertsAndWritesSideTable(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "vendor.csv", vendorCSV)

	var status bytes.Buffer
	r := newRunner(testJob(dir), mapping.Identity(), &status)
	results, err := r.run(context.Background(), []string{in})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 2, res.Diamonds)
	assert.Equal(t, 1, res.Gemstones)
	assert.Equal(t, 1, res.Missing)
	assert.Len(t, res.Digest, 16)
	assert.NotEmpty(t, r.runID)

	up := readCSV(t, res.OutPath)
	require.Len(t, up, 4)
	assert.Equal(t, schema.UploadColumns, up[0])

	miss := readCSV(t, res.MissingPath)
	require.Len(t, miss, 2)
	assert.Equal(t, schema.VendorFields, miss[0])
	assert.Contains(t, miss[1], "R1002")

	assert.Contains(t, status.String(), "ok   "+in)
	assert.Contains(t, status.String(), "1 diamond rows without weight")
}

func TestRunner_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "vendor.csv", vendorCSV)
	r := newRunner(testJob(dir), nil, io.Discard)

	first, err := r.run(context.Background(), []string{in})
	require.NoError(t, err)
	b1, err := os.ReadFile(first[0].OutPath)
	require.NoError(t, err)

	second, err := r.run(context.Background(), []string{in})
	require.NoError(t, err)
	b2, err := os.ReadFile(second[0].OutPath)
	require.NoError(t, err)

	assert.Equal(t, b1, b2)
	assert.Equal(t, first[0].Digest, second[0].Digest)
}

func TestRunner_MultipleInputsAndFailures(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "acme.csv", vendorCSV)
	b := writeFile(t, dir, "bravo.csv", "TAG NO,STONE TYPE\nB1,Ruby\n")
	missing := filepath.Join(dir, "nope.csv")

	var status bytes.Buffer
	r := newRunner(testJob(dir), mapping.Identity(), &status)
	results, err := r.run(context.Background(), []string{a, b, missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
	assert.Contains(t, status.String(), "FAIL "+missing)

	assert.Equal(t, 3, results[0].Rows)
	assert.Equal(t, filepath.Join(dir, "upload_acme.csv"), results[0].OutPath)
	assert.Equal(t, 1, results[1].Rows)
	assert.FileExists(t, filepath.Join(dir, "upload_bravo.csv"))
	// no diamond rows without weight, so no side table
	assert.NoFileExists(t, filepath.Join(dir, "missing_bravo.csv"))
}

func TestRunner_AppliesMapping(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "vendor.csv", "Item,Stone\nX9,Diamond\n")
	m := mapping.Table{"TAG NO": "Item", "STONE TYPE": "Stone"}

	r := newRunner(testJob(dir), m, io.Discard)
	results, err := r.run(context.Background(), []string{in})
	require.NoError(t, err)

	// the diamond has no weight; the side row is keyed by canonical fields
	miss := readCSV(t, results[0].MissingPath)
	require.Len(t, miss, 2)
	idx := indexOf(miss[0], "TAG NO")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "X9", miss[1][idx])
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

type fakeSource struct {
	name string
	body string
	err  error
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Open(context.Context) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestRunner_ReadsThroughSourceSeam(t *testing.T) {
	orig := openSourceFn
	defer func() { openSourceFn = orig }()

	var gotArg string
	openSourceFn = func(arg string, _ config.Source) (datasource.Source, error) {
		gotArg = arg
		if strings.Contains(arg, "broken") {
			return fakeSource{name: arg, err: errors.New("503 from vendor")}, nil
		}
		return fakeSource{name: arg, body: vendorCSV}, nil
	}

	dir := t.TempDir()
	r := newRunner(testJob(dir), nil, io.Discard)
	results, err := r.run(context.Background(), []string{"https://vendor.test/export/acme.csv"})
	require.NoError(t, err)
	assert.Equal(t, "https://vendor.test/export/acme.csv", gotArg)
	assert.Equal(t, 3, results[0].Rows)

	_, err = r.run(context.Background(), []string{"https://vendor.test/broken.csv"})
	assert.ErrorContains(t, err, "503 from vendor")
}

type memRepo struct {
	mu    *sync.Mutex
	rows  map[string][][]any
	execs *[]string
	table string
}

func (m memRepo) CopyFrom(_ context.Context, _ []string, rows [][]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[m.table] = append(m.rows[m.table], rows...)
	return int64(len(rows)), nil
}

func (m memRepo) Exec(_ context.Context, sql string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.execs = append(*m.execs, sql)
	return nil
}

func (memRepo) Close() {}

func TestRunner_StoresThroughRepositorySeam(t *testing.T) {
	orig := newRepositoryFn
	defer func() { newRepositoryFn = orig }()

	var (
		mu    sync.Mutex
		rows  = map[string][][]any{}
		execs []string
	)
	newRepositoryFn = func(_ context.Context, cfg storage.Config) (storage.Repository, error) {
		return memRepo{mu: &mu, rows: rows, execs: &execs, table: cfg.Table}, nil
	}

	dir := t.TempDir()
	in := writeFile(t, dir, "vendor.csv", vendorCSV)
	j := testJob(dir)
	j.Storage = config.Storage{Kind: "sqlite", DB: config.DBConfig{
		DSN: "unused", Table: "up", MissingTable: "miss", AutoCreateTable: true,
	}}

	r := newRunner(j, nil, io.Discard)
	results, err := r.run(context.Background(), []string{in})
	require.NoError(t, err)

	assert.Equal(t, int64(3), results[0].Stored)
	assert.Len(t, rows["up"], 3)
	assert.Len(t, rows["miss"], 1)
	assert.Len(t, rows["up"][0], len(schema.UploadColumns))
	require.Len(t, execs, 2)
	assert.Contains(t, execs[0], `CREATE TABLE IF NOT EXISTS "up"`)
	assert.Contains(t, execs[1], `CREATE TABLE IF NOT EXISTS "miss"`)
}

func TestRunner_StoresIntoSQLite(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "vendor.csv", vendorCSV)
	dbPath := filepath.Join(dir, "gemmap.db")

	j := testJob(dir)
	j.Storage = config.Storage{Kind: "sqlite", DB: config.DBConfig{
		DSN: dbPath, Table: "gemmap_upload", MissingTable: "gemmap_missing_diamond", AutoCreateTable: true,
	}}
	r := newRunner(j, nil, io.Discard)
	_, err := r.run(context.Background(), []string{in})
	require.NoError(t, err)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "gemmap_upload"`).Scan(&n))
	assert.Equal(t, 3, n)

	var uid, currency string
	require.NoError(t, db.QueryRow(`SELECT "uid", "currency" FROM "gemmap_upload" WHERE "uid" = '1'`).Scan(&uid, &currency))
	assert.Equal(t, "USD", currency)

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "gemmap_missing_diamond"`).Scan(&n))
	assert.Equal(t, 1, n)
}
