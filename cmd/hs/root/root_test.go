package root

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the commands at a fresh database and a config file that
// does not exist.
func useTempDB(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	oldCfg, oldDB := configPath, dbPathFlag
	configPath = filepath.Join(dir, "missing.yaml")
	dbPathFlag = filepath.Join(dir, "hs.db")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Cleanup(func() { configPath, dbPathFlag = oldCfg, oldDB })
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddDoListFlow(t *testing.T) {
	useTempDB(t)

	out, err := runCmd(t, newAddCmd(), "Drink", "water", "--target", "2", "--icon", "coffee")
	require.NoError(t, err)
	assert.Contains(t, out, "Drink water")

	_, err = runCmd(t, newDoCmd(), "drink water", "--date", "2024-07-22")
	require.NoError(t, err)
	out, err = runCmd(t, newDoCmd(), "Drink water", "--date", "2024-07-22")
	require.NoError(t, err)
	assert.Contains(t, out, "2/2")

	out, err = runCmd(t, newDoCmd(), "Drink water", "--date", "2024-07-22")
	require.NoError(t, err)
	assert.Contains(t, out, "already at")

	out, err = runCmd(t, newListCmd(), "--date", "2024-07-22")
	require.NoError(t, err)
	assert.Contains(t, out, "Drink water")
	assert.Contains(t, out, "2/2")

	out, err = runCmd(t, newStatsCmd(), "--date", "2024-07-22")
	require.NoError(t, err)
	assert.Contains(t, out, "Total completions: 2")
}

func TestUnknownHabitAndBadDate(t *testing.T) {
	useTempDB(t)

	_, err := runCmd(t, newDoCmd(), "nothing")
	assert.ErrorContains(t, err, "not found")

	_, err = runCmd(t, newAddCmd(), "Read")
	require.NoError(t, err)
	_, err = runCmd(t, newDoCmd(), "Read", "--date", "yesterday")
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestAddRejectsZeroTarget(t *testing.T) {
	useTempDB(t)

	_, err := runCmd(t, newAddCmd(), "Read", "--target", "0")
	assert.ErrorContains(t, err, "invalid targetCompletions")

	out, err := runCmd(t, newAddCmd(), "Read")
	require.NoError(t, err)
	assert.Contains(t, out, "target 1")
}

func TestEditRequiresAFlag(t *testing.T) {
	useTempDB(t)

	_, err := runCmd(t, newAddCmd(), "Read")
	require.NoError(t, err)
	_, err = runCmd(t, newEditCmd(), "Read")
	assert.ErrorContains(t, err, "nothing to change")

	out, err := runCmd(t, newEditCmd(), "Read", "--name", "Read more")
	require.NoError(t, err)
	assert.Contains(t, out, "Read more")
}

func TestExportImportRoundTrip(t *testing.T) {
	useTempDB(t)

	_, err := runCmd(t, newAddCmd(), "Stretch")
	require.NoError(t, err)
	_, err = runCmd(t, newDoCmd(), "Stretch", "--date", "2024-07-20")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "export.yaml")
	_, err = runCmd(t, newExportCmd(), "-o", file)
	require.NoError(t, err)

	useTempDB(t)
	out, err := runCmd(t, newImportCmd(), file)
	require.NoError(t, err)
	assert.Contains(t, out, "1 habits, 1 days")
}

func TestCalendarHighlightsMonth(t *testing.T) {
	useTempDB(t)
	out, err := runCmd(t, newCalendarCmd(), "--date", "2024-07-15")
	require.NoError(t, err)
	assert.Contains(t, out, "July 2024")
	// July 2024 starts on a Monday, so the first grid row begins at column 0.
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[2], " 1"), "first row=%q", lines[2])
}

func TestInsightsWithoutKey(t *testing.T) {
	useTempDB(t)
	cmd := newInsightsCmd()
	_, err := runCmd(t, cmd, "motivate")
	assert.ErrorIs(t, err, errNoAIKey)
}
