package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/slingshot/engine"
	"github.com/lixenwraith/slingshot/parameter"
)

func writeEnv(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultEnvFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutEnvFile(t *testing.T) {
	testChdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Debug || c.LogLevel != zerolog.InfoLevel {
		t.Errorf("ambient = %+v", c)
	}
	if c.Game != engine.DefaultSettings() {
		t.Errorf("game settings = %+v", c.Game)
	}
}

func TestLoad_EnvFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	writeEnv(t, dir, strings.Join([]string{
		"SLINGSHOT_ROWS=6",
		"SLINGSHOT_BOX_SIZE=40",
		"SLINGSHOT_RESPAWN_DELAY=1500ms",
		"SLINGSHOT_LOG_LEVEL=debug",
		"UNRELATED=1",
	}, "\n"))
	t.Setenv("SLINGSHOT_ROWS", "4")
	t.Setenv("SLINGSHOT_DEBUG", "true")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Game.Rows != 4 {
		t.Errorf("environment must override file: rows = %d", c.Game.Rows)
	}
	if c.Game.BoxSize != 40 || c.Game.RespawnDelay != 1500*time.Millisecond {
		t.Errorf("file values not applied: %+v", c.Game)
	}
	if !c.Debug || c.LogLevel != zerolog.DebugLevel {
		t.Errorf("debug=%v level=%s", c.Debug, c.LogLevel)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing explicit env file")
	}
}

func TestLoad_InvalidValuesReported(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("SLINGSHOT_ROWS", "ten")
	t.Setenv("SLINGSHOT_RESPAWN_DELAY", "soon")

	_, err := Load("")
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "SLINGSHOT_ROWS") || !strings.Contains(msg, "SLINGSHOT_RESPAWN_DELAY") {
		t.Errorf("not every bad variable reported: %s", msg)
	}
}

func TestLoad_RejectsNonFiniteNumbers(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("SLINGSHOT_BOX_SIZE", "NaN")
	t.Setenv("SLINGSHOT_PROJECTILE_RADIUS", "+Inf")

	_, err := Load("")
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "SLINGSHOT_BOX_SIZE") || !strings.Contains(msg, "SLINGSHOT_PROJECTILE_RADIUS") {
		t.Errorf("not every bad variable reported: %s", msg)
	}
}

func TestLoad_ClampsOutOfRange(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("SLINGSHOT_ROWS", "999")
	t.Setenv("SLINGSHOT_PROJECTILE_RADIUS", "-5")
	t.Setenv("SLINGSHOT_SCORE_PER_HIT", "-10")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Game.Rows != parameter.MaxPyramidRows {
		t.Errorf("rows = %d, want %d", c.Game.Rows, parameter.MaxPyramidRows)
	}
	if c.Game.ProjectileRadius != parameter.MinProjectileRadius {
		t.Errorf("radius = %v", c.Game.ProjectileRadius)
	}
	if c.Game.ScorePerHit != 0 {
		t.Errorf("score per hit = %d", c.Game.ScorePerHit)
	}
}
