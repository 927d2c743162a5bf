// Package logging configures the process-wide logrus logger from the job's
// log settings.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"gemmap/internal/config"
)

// Output is the rotating log file, when one is configured.
var Output io.WriteCloser

// Setup applies level, formatter and output. With a File set, logs go to a
// lumberjack rotating file; otherwise to stderr. A File whose directory does
// not exist is an error rather than a silent discard.
func Setup(c config.Log) error {
	lvl := c.Level
	if lvl == "" {
		lvl = config.DefaultLogLevel
	}
	level, err := log.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)

	switch strings.ToUpper(c.Format) {
	case "JSON":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if err := Close(); err != nil {
		return err
	}
	if c.File == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	logfile, err := filepath.Abs(c.File)
	if err != nil {
		return fmt.Errorf("log file %s: %w", c.File, err)
	}
	if _, err := os.Stat(filepath.Dir(logfile)); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("log directory %s does not exist", filepath.Dir(logfile))
	}

	Output = &lumberjack.Logger{
		Filename:   logfile,
		MaxSize:    c.MaxSize, // megabytes
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge, // days
		LocalTime:  true,
	}
	log.SetOutput(Output)
	return nil
}

// Close closes the rotating file, if any, and points logrus back at stderr.
func Close() error {
	if Output == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := Output.Close()
	Output = nil
	return err
}
