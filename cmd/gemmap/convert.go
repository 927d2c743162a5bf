package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gemmap/internal/config"
	"gemmap/internal/datasource"
	"gemmap/internal/datasource/file"
	"gemmap/internal/logging"
	"gemmap/internal/mapping"
	"gemmap/internal/metrics"
	"gemmap/internal/metrics/datadog"
	"gemmap/internal/metrics/prompush"
)

// defaultDatadogAddr is the local DogStatsD agent.
const defaultDatadogAddr = "127.0.0.1:8125"

// convertFlags override the job file for one invocation.
type convertFlags struct {
	jobFlags
	mapping     string
	out         string
	missing     string
	skipMissing bool
	format      string
	storageKind string
	dsn         string
	createTable bool
	list        string
	workers     int
}

func newConvertCmd() *cobra.Command {
	var cf convertFlags
	cmd := &cobra.Command{
		Use:   "convert [inputs...]",
		Short: "Convert vendor tables (files or http(s) URLs) into upload tables",
		Long: "Convert reads each vendor table (CSV or XLSX), remaps its columns with the optional\n" +
			"mapping table and writes the upload table plus the list of diamond rows without a weight.\n" +
			"With several inputs every output name gets the input's name as a suffix.",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := cf.loadJob()
			if err != nil {
				return err
			}
			inputs, err := cf.resolve(cmd, &j, args)
			if err != nil {
				return err
			}
			config.ApplyDefaults(&j)

			issues := config.ValidateJob(j)
			if printIssues(cmd.ErrOrStderr(), issues) {
				return fmt.Errorf("configuration is invalid: %w", issues.Err())
			}

			if err := logging.Setup(j.Log); err != nil {
				return err
			}
			defer logging.Close()

			flush := setupMetrics(j)
			defer flush()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runConvert(ctx, cmd, j, inputs)
		},
	}
	cf.bind(cmd)
	f := cmd.Flags()
	f.StringVarP(&cf.mapping, "mapping", "m", "", "mapping table (csv or xlsx): expected_field, vendor_column")
	f.StringVarP(&cf.out, "out", "o", "", "upload table path (default "+defaultOutPath+")")
	f.StringVar(&cf.missing, "missing", "", "missing diamond weight table path (default "+defaultMissingPath+")")
	f.BoolVar(&cf.skipMissing, "skip-missing", false, "do not write the missing diamond weight table")
	f.StringVarP(&cf.format, "format", "f", "", "upload table format: csv or xlsx (default from --out)")
	f.StringVar(&cf.storageKind, "storage-kind", "", "also store rows in a database: postgres, mssql, mysql or sqlite")
	f.StringVar(&cf.dsn, "dsn", "", "database connection string for --storage-kind")
	f.BoolVar(&cf.createTable, "create-table", false, "create the storage tables when absent")
	f.StringVar(&cf.list, "list", "", "file with one input path or URL per line")
	f.IntVarP(&cf.workers, "workers", "w", 0, "inputs converted concurrently")
	return cmd
}

// resolve applies flag overrides to j and returns the inputs to convert.
// Inputs come from args and --list; without any, the job's source is used.
func (cf *convertFlags) resolve(cmd *cobra.Command, j *config.Job, args []string) ([]string, error) {
	inputs := append([]string(nil), args...)
	if cf.list != "" {
		listed, err := file.ReadList(cf.list)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, listed...)
	}

	changed := cmd.Flags().Changed
	if changed("mapping") {
		j.Mapping.Path = cf.mapping
	}
	if changed("out") {
		j.Output.Path = cf.out
	}
	if changed("missing") {
		j.Output.MissingPath = cf.missing
	}
	if changed("format") {
		j.Output.Format = strings.ToLower(cf.format)
	}
	if changed("storage-kind") {
		j.Storage.Kind = strings.ToLower(cf.storageKind)
	}
	if changed("dsn") {
		j.Storage.DB.DSN = cf.dsn
	}
	if changed("create-table") {
		j.Storage.DB.AutoCreateTable = cf.createTable
	}
	if changed("workers") {
		j.Runtime.Workers = cf.workers
	}

	if j.Output.Path == "" {
		j.Output.Path = defaultOutPath
	}
	switch {
	case cf.skipMissing:
		j.Output.MissingPath = ""
	case j.Output.MissingPath == "":
		j.Output.MissingPath = defaultMissingPath
	}

	if len(inputs) == 0 {
		switch {
		case j.Source.File.Path != "":
			inputs = []string{j.Source.File.Path}
		case j.Source.HTTP.URL != "":
			inputs = []string{j.Source.HTTP.URL}
		default:
			return nil, fmt.Errorf("no input: pass files or URLs, --list, or set source in the job")
		}
	}

	// the job's source validates against the first input
	first := inputs[0]
	if datasource.IsURL(first) {
		j.Source.Kind = "http"
		j.Source.HTTP.URL = first
	} else {
		j.Source.Kind = "file"
		j.Source.File.Path = first
	}
	return inputs, nil
}

// setupMetrics installs the job's metrics backend and returns its flush.
// A backend that cannot be created leaves metrics disabled.
func setupMetrics(j config.Job) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch strings.ToLower(j.Metrics.Backend) {
	case "pushgateway", "prom":
		b, err = prompush.NewBackend(j.Job, j.Metrics.PushgatewayURL)
	case "datadog", "dd":
		addr := j.Metrics.DatadogAddr
		if addr == "" {
			addr = defaultDatadogAddr
		}
		b, err = datadog.NewBackend(datadog.Config{
			Addr:      addr,
			Namespace: "gemmap.",
			Tags:      []string{"job:" + j.Job},
		})
	default:
		log.WithField("backend", j.Metrics.Backend).Debug("metrics: disabled")
		return func() {}
	}
	if err != nil {
		log.WithError(err).Warn("metrics: backend init failed; using nop")
		return func() {}
	}
	log.WithFields(log.Fields{"backend": j.Metrics.Backend, "job": j.Job}).Info("metrics: enabled")
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.WithError(err).Warn("metrics: flush error")
		}
	}
}

func runConvert(ctx context.Context, cmd *cobra.Command, j config.Job, inputs []string) error {
	start := time.Now()

	m, err := mapping.Load(ctx, j.Mapping.Path)
	if err != nil {
		return err
	}

	r := newRunner(j, m, cmd.OutOrStdout())
	r.log.WithFields(log.Fields{
		"inputs":  len(inputs),
		"mapping": j.Mapping.Path,
		"storage": j.Storage.Kind,
		"workers": j.Runtime.Workers,
	}).Info("run started")

	results, err := r.run(ctx, inputs)

	var rows, missing int
	for _, res := range results {
		rows += res.Rows
		missing += res.Missing
	}
	r.log.WithFields(log.Fields{
		"rows":    rows,
		"missing": missing,
		"elapsed": time.Since(start).Truncate(time.Millisecond),
	}).Info("run finished")
	return err
}
