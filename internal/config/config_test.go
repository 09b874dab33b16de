package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, found, err := Load(New(""))
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Generator.DefaultNumQuestions)
	assert.Equal(t, "[Distractor]", cfg.Generator.Placeholder)
	assert.Equal(t, "_____________", cfg.Generator.Blank)
	assert.Equal(t, "MCQ Questions", cfg.PDF.Title)
	assert.Equal(t, 12.0, cfg.PDF.FontSize)
	assert.True(t, cfg.CORS.AllowAllOrigins())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MCQ_APP_SERVER_PORT", ":8081")
	t.Setenv("MCQ_APP_GENERATOR_SEED", "42")
	t.Setenv("MCQ_APP_CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, _, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Server.Port)
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowAllOrigins())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: ":9090"
generator:
  placeholder: "none of these"
  default_num_questions: 3
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, found, err := Load(New(path))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "none of these", cfg.Generator.Placeholder)
	assert.Equal(t, 3, cfg.Generator.DefaultNumQuestions)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "MCQ Questions", cfg.PDF.Title)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, _, err := Load(New(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, _, err := Load(New(""))
	require.NoError(t, err)

	bad := *cfg
	bad.Generator.DefaultNumQuestions = -1
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.PDF.FontSize = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Generator.Blank = ""
	assert.Error(t, bad.Validate())
}
