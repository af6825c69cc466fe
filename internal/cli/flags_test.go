package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/project"
)

func newSettingsTestCmd(o *settingsOpts) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addSettingsFlags(cmd, o)
	return cmd
}

func TestResolveSettings_Defaults(t *testing.T) {
	isolateHome(t)
	var o settingsOpts
	cmd := newSettingsTestCmd(&o)
	require.NoError(t, cmd.ParseFlags(nil))

	s, err := resolveSettings(cmd, &o)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), s)
}

func TestResolveSettings_FlagsOverrideConfigFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "collage.toml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm = \"treemap\"\npaper_size = \"a4\"\ngap = 0.5\n"), 0644))

	var o settingsOpts
	cmd := newSettingsTestCmd(&o)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--gap", "0.2", "--seed", "11", "--landscape"}))

	s, err := resolveSettings(cmd, &o)
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmTreemap, s.Algorithm, "from file")
	assert.Equal(t, "a4", s.PaperSize, "from file")
	assert.InDelta(t, 0.2, s.Gap, 1e-9, "flag wins")
	assert.True(t, s.Landscape)
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint32(11), *s.Seed)
}

func TestResolveSettings_UnsetFlagsKeepFileValues(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "collage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"algorithm":"guillotine","min_image_size":2}`), 0644))

	var o settingsOpts
	cmd := newSettingsTestCmd(&o)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	s, err := resolveSettings(cmd, &o)
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmGuillotine, s.Algorithm)
	assert.InDelta(t, 2.0, s.MinImageSize, 1e-9)
	assert.Nil(t, s.Seed)
}

func TestResolveSettings_CaseInsensitiveAlgorithm(t *testing.T) {
	isolateHome(t)
	var o settingsOpts
	cmd := newSettingsTestCmd(&o)
	require.NoError(t, cmd.ParseFlags([]string{"--algorithm", "Spiral"}))

	s, err := resolveSettings(cmd, &o)
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmSpiral, s.Algorithm)
}

func TestResolveSettings_ConfigFileLayersOverPreset(t *testing.T) {
	isolateHome(t)
	wall := model.DefaultSettings()
	wall.Algorithm = model.AlgorithmTreemap
	wall.PaperSize = "a4"
	require.NoError(t, project.SavePresets(project.DefaultPresetsPath(), []model.SettingsPreset{{Name: "wall", Settings: wall}}))

	path := filepath.Join(t.TempDir(), "gap.toml")
	require.NoError(t, os.WriteFile(path, []byte("gap = 0.5\n"), 0644))

	var o settingsOpts
	cmd := newSettingsTestCmd(&o)
	require.NoError(t, cmd.ParseFlags([]string{"--preset", "wall", "--config", path}))

	s, err := resolveSettings(cmd, &o)
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmTreemap, s.Algorithm, "from preset")
	assert.Equal(t, "a4", s.PaperSize, "from preset")
	assert.InDelta(t, 0.5, s.Gap, 1e-9, "from file")
}

func TestResolveSettings_UnknownPreset(t *testing.T) {
	isolateHome(t)
	var o settingsOpts
	cmd := newSettingsTestCmd(&o)
	require.NoError(t, cmd.ParseFlags([]string{"--preset", "nope"}))

	_, err := resolveSettings(cmd, &o)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestResolveSettings_InvalidPaperCoded(t *testing.T) {
	isolateHome(t)
	var o settingsOpts
	cmd := newSettingsTestCmd(&o)
	require.NoError(t, cmd.ParseFlags([]string{"--paper", "napkin"}))

	_, err := resolveSettings(cmd, &o)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidPaperSize, errors.GetCode(err))
}
