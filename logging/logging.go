// Package logging builds the structured logger shared by the server and CLI.
package logging

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// Options mirrors the logging part of the configuration.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxAgeDays int
}

// New creates a JSON logger at the given level. With a file set, output goes
// to a rotating log file instead of stdout.
func New(opts Options) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)

	log.SetOutput(output(opts))
	return log, nil
}

func output(opts Options) io.Writer {
	if opts.File == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename: opts.File,
		MaxSize:  opts.MaxSizeMB,  // megabytes
		MaxAge:   opts.MaxAgeDays, // days
	}
}
