package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magiconair/properties"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	err := os.WriteFile(path, []byte(`current-profile: scripts
profiles:
  - name: scripts
    output: raw
    gzip-level: 9
    max-decompressed-size: 1048576
    log-level: debug
  - name: default
`), 0644)
	require.NoError(t, err)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "scripts", cfg.CurrentProfile)
	require.Len(t, cfg.Profiles, 2)
	require.Equal(t, path, cfg.Path())

	p := cfg.Profiles[0]
	require.Equal(t, "scripts", p.Name)
	require.Equal(t, "raw", p.Output)
	require.NotNil(t, p.GzipLevel)
	require.Equal(t, 9, *p.GzipLevel)
	require.Equal(t, int64(1048576), p.MaxDecompressedSize)
	require.Equal(t, "debug", p.LogLevel)

	require.Nil(t, cfg.Profiles[1].GzipLevel)
}

func TestReadConfig_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	require.Empty(t, cfg.Profiles)
}

func TestReadConfig_ExplicitPathMustExist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent")
	_, err := ReadConfig(path)
	require.Error(t, err)
}

func TestReadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("profiles: [oops"), 0644))

	_, err := ReadConfig(path)
	require.ErrorContains(t, err, "decode config")
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	level := 1
	cfg.UpsertProfile(&Profile{Name: "fast", GzipLevel: &level, Output: "json"})
	require.NoError(t, cfg.SetCurrentProfile("fast"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reread, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "fast", reread.CurrentProfile)
	require.Len(t, reread.Profiles, 1)
	require.Equal(t, 1, *reread.Profiles[0].GzipLevel)
	require.Equal(t, "json", reread.Profiles[0].Output)
}

func TestHasProfile(t *testing.T) {
	cfg := Config{
		Profiles: []*Profile{
			{Name: "a"},
			{Name: "b"},
		},
	}
	require.True(t, cfg.HasProfile("a"))
	require.True(t, cfg.HasProfile("b"))
	require.False(t, cfg.HasProfile("c"))
}

func TestUpsertAndRemoveProfile(t *testing.T) {
	cfg := Config{CurrentProfile: "a", Profiles: []*Profile{{Name: "a"}}}

	require.False(t, cfg.UpsertProfile(&Profile{Name: "b"}))
	require.True(t, cfg.UpsertProfile(&Profile{Name: "a", Output: "raw"}))
	require.Len(t, cfg.Profiles, 2)
	require.Equal(t, "raw", cfg.Profiles[0].Output)

	require.NoError(t, cfg.RemoveProfile("a"))
	require.Empty(t, cfg.CurrentProfile)
	require.Len(t, cfg.Profiles, 1)
	require.Error(t, cfg.RemoveProfile("a"))
}

func TestActiveProfile(t *testing.T) {
	cfg := Config{
		CurrentProfile: "prod",
		Profiles: []*Profile{
			{Name: "dev", Output: "json"},
			{Name: "prod", Output: "raw"},
		},
	}

	p := cfg.ActiveProfile()
	require.NotNil(t, p)
	require.Equal(t, "prod", p.Name)

	// Changes to the returned copy are not written back.
	p.Output = "default"
	require.Equal(t, "raw", cfg.Profiles[1].Output)

	// ProfileOverride takes precedence.
	cfg.ProfileOverride = "dev"
	p = cfg.ActiveProfile()
	require.NotNil(t, p)
	require.Equal(t, "dev", p.Name)
}

func TestActiveProfile_NotFound(t *testing.T) {
	cfg := Config{
		CurrentProfile: "missing",
		Profiles:       []*Profile{{Name: "other"}},
	}
	require.Nil(t, cfg.ActiveProfile())

	var nilCfg *Config
	require.Nil(t, nilCfg.ActiveProfile())
}

func TestImportProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcode.properties")
	require.NoError(t, os.WriteFile(path, []byte(`# exported settings
transcode.profile = ci
transcode.output = json
transcode.gzip.level = 6
transcode.gzip.max-decompressed-size = 4096
transcode.log.level = info
unrelated.key = ignored
`), 0644))

	p, err := ImportProperties(path)
	require.NoError(t, err)
	require.Equal(t, "ci", p.Name)
	require.Equal(t, "json", p.Output)
	require.Equal(t, 6, *p.GzipLevel)
	require.Equal(t, int64(4096), p.MaxDecompressedSize)
	require.Equal(t, "info", p.LogLevel)
}

func TestImportProperties_Errors(t *testing.T) {
	_, err := ImportProperties(filepath.Join(t.TempDir(), "missing.properties"))
	require.Error(t, err)

	_, err = profileFromProperties(properties.MustLoadString("other.key = 1"))
	require.ErrorIs(t, err, errNoTranscodeKeys)

	_, err = profileFromProperties(properties.MustLoadString("transcode.gzip.level = fast"))
	require.ErrorContains(t, err, PropGzipLevel)

	_, err = profileFromProperties(properties.MustLoadString("transcode.gzip.max-decompressed-size = 1MiB"))
	require.ErrorContains(t, err, PropMaxDecompressedSize)

	_, err = profileFromProperties(properties.MustLoadString("transcode.gzip.max-decompressed-size = -1"))
	require.ErrorContains(t, err, "must not be negative")

	p, err := profileFromProperties(properties.MustLoadString("transcode.output = raw"))
	require.NoError(t, err)
	require.Equal(t, "imported", p.Name)
	require.Nil(t, p.GzipLevel)
}
