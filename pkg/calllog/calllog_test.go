package calllog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	require.NoError(t, l.Prompt("req-1", "hello"))
	require.NoError(t, l.Response("req-1", "world"))

	data, err := os.ReadFile(filepath.Join(dir, "llm_calls_20260314.log"))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "2026-03-14 09:26:53 - INFO - PROMPT[req-1]: hello\n")
	assert.Contains(t, content, "2026-03-14 09:26:53 - INFO - RESPONSE[req-1]: world\n")
}

func TestRollsOverAtMidnight(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	require.NoError(t, err)

	day1 := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	day2 := day1.Add(2 * time.Minute)

	l.now = func() time.Time { return day1 }
	require.NoError(t, l.Prompt("a", "before midnight"))

	l.now = func() time.Time { return day2 }
	require.NoError(t, l.Prompt("b", "after midnight"))

	assert.FileExists(t, filepath.Join(dir, "llm_calls_20260314.log"))
	assert.FileExists(t, filepath.Join(dir, "llm_calls_20260315.log"))
}

func TestAppendsAcrossLoggers(t *testing.T) {
	dir := t.TempDir()

	l1, err := New(dir)
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	l1.now = func() time.Time { return fixed }
	require.NoError(t, l1.Warn("first"))

	l2, err := New(dir)
	require.NoError(t, err)
	l2.now = func() time.Time { return fixed }
	require.NoError(t, l2.Error("second"))

	data, err := os.ReadFile(filepath.Join(dir, "llm_calls_20260314.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARNING - first")
	assert.Contains(t, string(data), "ERROR - second")
}

func TestCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	_, err := New(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
