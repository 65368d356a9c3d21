package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Equal(t, os.Stdout, log.Out)
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nina.log")
	log, err := New(Options{Level: "debug", File: path, MaxSizeMB: 1, MaxAgeDays: 2})
	require.NoError(t, err)

	lj, ok := log.Out.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 1, lj.MaxSize)
	assert.Equal(t, 2, lj.MaxAge)

	log.WithField("preference", "safest").Debug("route planned")
	require.NoError(t, lj.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "route planned", line["msg"])
	assert.Equal(t, "safest", line["preference"])
	assert.Equal(t, "debug", line["level"])
}
