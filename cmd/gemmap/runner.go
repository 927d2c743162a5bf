package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"gemmap/internal/config"
	"gemmap/internal/datasource"
	"gemmap/internal/datasource/httpds"
	"gemmap/internal/mapping"
	"gemmap/internal/metrics"
	"gemmap/internal/output"
	"gemmap/internal/parser"
	"gemmap/internal/schema"
	"gemmap/internal/storage"
	"gemmap/internal/transformer"
	"gemmap/pkg/records"
)

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	openSourceFn = datasource.ForInput

	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return storage.New(ctx, cfg)
	}
)

// zipMagic starts every xlsx workbook.
var zipMagic = []byte("PK\x03\x04")

// plan is where one input's tables go.
type plan struct {
	Input       string
	OutPath     string
	MissingPath string
}

// fileResult summarises one converted input.
type fileResult struct {
	plan
	Rows      int
	Diamonds  int
	Gemstones int
	Missing   int
	Digest    string
	Stored    int64
}

// runner converts a set of inputs with one job, mapping and run id.
type runner struct {
	job     config.Job
	mapping mapping.Table
	runID   string
	status  io.Writer
	log     *log.Entry

	statusMu sync.Mutex
}

func newRunner(j config.Job, m mapping.Table, status io.Writer) *runner {
	id := uuid.NewString()
	return &runner{
		job:     j,
		mapping: m,
		runID:   id,
		status:  status,
		log:     log.WithFields(log.Fields{"job": j.Job, "run_id": id}),
	}
}

// planOutputs assigns output paths. A single input writes the configured
// paths; several inputs each get a distinct suffix derived from their name.
func planOutputs(inputs []string, out, missing string) []plan {
	plans := make([]plan, len(inputs))
	if len(inputs) == 1 {
		plans[0] = plan{Input: inputs[0], OutPath: out, MissingPath: missing}
		return plans
	}
	taken := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		stem := inputStem(in)
		for n := 2; taken[stem]; n++ {
			stem = inputStem(in) + "_" + strconv.Itoa(n)
		}
		taken[stem] = true
		p := plan{Input: in, OutPath: derivedPath(out, stem)}
		if missing != "" {
			p.MissingPath = derivedPath(missing, stem)
		}
		plans[i] = p
	}
	return plans
}

func inputStem(in string) string {
	if datasource.IsURL(in) {
		return httpds.BaseName(in)
	}
	base := filepath.Base(in)
	return base[:len(base)-len(filepath.Ext(base))]
}

// run converts every input, at most job.Runtime.Workers at a time. A failed
// input does not stop the others; failures are returned together.
func (r *runner) run(ctx context.Context, inputs []string) ([]fileResult, error) {
	plans := planOutputs(inputs, r.job.Output.Path, r.job.Output.MissingPath)

	if err := r.prepareStorage(ctx); err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		merr    *multierror.Error
		results = make([]fileResult, len(plans))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.job.Runtime.Workers, 1))
	for i, p := range plans {
		g.Go(func() error {
			res, err := r.convertOne(gctx, p)
			if err != nil {
				mu.Lock()
				merr = multierror.Append(merr, fmt.Errorf("%s: %w", p.Input, err))
				mu.Unlock()
				r.printf(errColor, "FAIL %s: %v\n", p.Input, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if err := merr.ErrorOrNil(); err != nil {
		return results, err
	}
	return results, nil
}

// prepareStorage creates the sink tables once, before any worker writes.
func (r *runner) prepareStorage(ctx context.Context) error {
	s := r.job.Storage
	if s.Kind == "" || !s.DB.AutoCreateTable {
		return nil
	}
	for _, t := range []struct {
		table   string
		columns []string
	}{
		{s.DB.Table, schema.UploadColumns},
		{s.DB.MissingTable, schema.VendorFields},
	} {
		repo, err := newRepositoryFn(ctx, storage.Config{Kind: s.Kind, DSN: s.DB.DSN, Table: t.table, Columns: t.columns})
		if err != nil {
			return fmt.Errorf("open storage %s: %w", t.table, err)
		}
		err = storage.EnsureTable(ctx, s.Kind, repo, t.table, t.columns)
		repo.Close()
		if err != nil {
			return fmt.Errorf("apply DDL: %w", err)
		}
	}
	return nil
}

// convertOne reads, parses, converts, writes and optionally stores one input.
func (r *runner) convertOne(ctx context.Context, p plan) (fileResult, error) {
	res := fileResult{plan: p}
	l := r.log.WithField("input", p.Input)

	var data []byte
	err := r.step("read", func() error {
		var err error
		data, err = r.read(ctx, p.Input)
		return err
	})
	if err != nil {
		return res, err
	}

	var sheet records.Sheet
	err = r.step("parse", func() error {
		kind := sniffKind(data)
		pr, err := parser.New(kind, r.job.Parser.Options)
		if err != nil {
			return err
		}
		sheet, err = pr.Parse(ctx, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parse %s: %w", kind, err)
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	if missing := r.mapping.Unmapped(sheet.Header); len(missing) > 0 {
		l.WithField("columns", missing).Debug("vendor columns absent from input; treated as empty")
	}

	var conv transformer.Result
	_ = r.step("convert", func() error {
		conv = transformer.Pipeline{Mapping: r.mapping}.Run(sheet.Table())
		return nil
	})
	res.Rows = conv.Rows()
	res.Diamonds = conv.Diamonds
	res.Gemstones = conv.Gemstones
	res.Missing = conv.MissingDiamond.Len()
	res.Digest = output.Digest(conv.Listings)

	err = r.step("write", func() error {
		if err := output.WriteFile(p.OutPath, r.job.Output.Format, conv.Listings); err != nil {
			return err
		}
		if p.MissingPath != "" && res.Missing > 0 {
			return output.WriteFile(p.MissingPath, config.KindForPath(p.MissingPath), conv.MissingDiamond)
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	if r.job.Storage.Kind != "" {
		err = r.step("store", func() error {
			n, err := r.store(ctx, r.job.Storage.DB.Table, conv.Listings)
			res.Stored = n
			if err != nil {
				return err
			}
			if res.Missing > 0 {
				_, err = r.store(ctx, r.job.Storage.DB.MissingTable, conv.MissingDiamond)
			}
			return err
		})
		if err != nil {
			return res, err
		}
	}

	metrics.RecordRows(r.job.Job, metrics.KindConverted, res.Rows)
	metrics.RecordRows(r.job.Job, metrics.KindDiamond, res.Diamonds)
	metrics.RecordRows(r.job.Job, metrics.KindGemstone, res.Gemstones)
	metrics.RecordRows(r.job.Job, metrics.KindMissingDiamond, res.Missing)
	metrics.RecordRows(r.job.Job, metrics.KindStored, int(res.Stored))

	l.WithFields(log.Fields{
		"output":    p.OutPath,
		"rows":      res.Rows,
		"diamonds":  res.Diamonds,
		"gemstones": res.Gemstones,
		"missing":   res.Missing,
		"stored":    res.Stored,
		"digest":    res.Digest,
	}).Info("converted")

	r.printf(okColor, "ok   %s -> %s (rows=%d diamonds=%d gemstones=%d digest=%s)\n",
		p.Input, p.OutPath, res.Rows, res.Diamonds, res.Gemstones, res.Digest)
	if res.Missing > 0 {
		where := p.MissingPath
		if where == "" {
			where = "not written"
		}
		r.printf(warnColor, "warn %s: %d diamond rows without weight (%s)\n", p.Input, res.Missing, where)
	}
	return res, nil
}

// read buffers the whole input; tables are small and xlsx needs random access.
func (r *runner) read(ctx context.Context, input string) ([]byte, error) {
	src, err := openSourceFn(input, r.job.Source)
	if err != nil {
		return nil, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	return data, nil
}

func (r *runner) store(ctx context.Context, table string, t records.Table) (int64, error) {
	s := r.job.Storage
	repo, err := newRepositoryFn(ctx, storage.Config{Kind: s.Kind, DSN: s.DB.DSN, Table: table, Columns: t.Columns})
	if err != nil {
		return 0, fmt.Errorf("open storage %s: %w", table, err)
	}
	defer repo.Close()

	batch := r.job.Runtime.BatchSize
	n, err := storage.Store(ctx, repo, t, batch)
	if batch > 0 {
		metrics.RecordBatches(r.job.Job, int((n+int64(batch)-1)/int64(batch)))
	}
	if err != nil {
		return n, fmt.Errorf("store %s: %w", table, err)
	}
	return n, nil
}

// step runs fn and records it as a metrics step.
func (r *runner) step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(r.job.Job, name, err, time.Since(start))
	return err
}

func (r *runner) printf(c *color.Color, format string, a ...any) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	_, _ = c.Fprintf(r.status, format, a...)
}

// sniffKind picks xlsx for zip containers and csv for everything else.
func sniffKind(data []byte) string {
	if bytes.HasPrefix(data, zipMagic) {
		return "xlsx"
	}
	return "csv"
}
