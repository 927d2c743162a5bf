package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gemmap/internal/config"
	"gemmap/internal/mapping"
	"gemmap/internal/output"
	"gemmap/internal/schema"
	"gemmap/pkg/records"
)

// Output names used when neither the job nor the flags set one.
const (
	defaultOutPath     = "gemgem_upload.csv"
	defaultMissingPath = "missing_diamond_weight.csv"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gemmap",
		Short:        "Convert vendor jewelry inventory into the marketplace bulk-upload table",
		SilenceUsage: true,
	}
	root.AddCommand(
		newConvertCmd(),
		newValidateCmd(),
		newColumnsCmd(),
		newMappingTemplateCmd(),
	)
	return root
}

// jobFlags are shared by convert and validate.
type jobFlags struct {
	configPath string
	envFile    string
}

func (f *jobFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "job file (JSON or YAML)")
	cmd.Flags().StringVar(&f.envFile, "env", ".env", "optional env file applied over the process environment")
}

// loadJob reads the job file, when given, and overlays the environment.
func (f *jobFlags) loadJob() (config.Job, error) {
	var j config.Job
	if f.configPath != "" {
		var err error
		if j, err = config.Load(f.configPath); err != nil {
			return j, err
		}
	}
	if err := config.ApplyEnv(&j, f.envFile); err != nil {
		return j, err
	}
	return j, nil
}

// printIssues writes one coloured line per issue and reports whether any is
// an error.
func printIssues(w io.Writer, issues config.Issues) bool {
	hasError := false
	for _, iss := range issues {
		c := warnColor
		if iss.Severity == config.SeverityError {
			c = errColor
			hasError = true
		}
		c.Fprintf(w, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	return hasError
}

func newValidateCmd() *cobra.Command {
	var jf jobFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Lint a job file and exit non-zero on errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := jf.loadJob()
			if err != nil {
				return err
			}
			config.ApplyDefaults(&j)
			issues := config.ValidateJob(j)
			if printIssues(cmd.ErrOrStderr(), issues) {
				return fmt.Errorf("configuration is invalid: %w", issues.Err())
			}
			okColor.Fprintf(cmd.OutOrStdout(), "configuration is valid: %s\n", jf.configPath)
			return nil
		},
	}
	jf.bind(cmd)
	return cmd
}

func newColumnsCmd() *cobra.Command {
	var vendor bool
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Print the upload columns, or the vendor fields with --vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cols := schema.UploadColumns
			if vendor {
				cols = schema.VendorFields
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cols, "\n"))
			return err
		},
	}
	cmd.Flags().BoolVar(&vendor, "vendor", false, "print the vendor fields a mapping table can remap")
	return cmd
}

func newMappingTemplateCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "mapping-template",
		Short: "Write an identity mapping table to fill in per vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := output.WriteFile(out, config.KindForPath(out), templateTable(mapping.Identity())); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "wrote mapping template %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "mapping.xlsx", "template path (.csv or .xlsx)")
	return cmd
}

// templateTable turns mapping rows (header first) into a writable table.
func templateTable(m mapping.Table) records.Table {
	rows := m.Rows()
	t := records.Table{Columns: rows[0]}
	for _, r := range rows[1:] {
		t.Rows = append(t.Rows, records.Record{rows[0][0]: r[0], rows[0][1]: r[1]})
	}
	return t
}

// derivedPath names the output for one of several inputs:
// ("upload.csv", "acme") -> "upload_acme.csv".
func derivedPath(base, stem string) string {
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + stem + ext
}
