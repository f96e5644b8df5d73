package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slingshot/engine"
)

// DefaultEnvFile is read when no env file is named explicitly, its absence is not an error
const DefaultEnvFile = ".env"

// EnvPrefix namespaces every recognized variable
const EnvPrefix = "SLINGSHOT_"

// ErrInvalidValue is returned when a variable does not parse
var ErrInvalidValue = errors.New("config: invalid value")

var errNotFinite = errors.New("not a finite number")

// Config is the resolved startup configuration
type Config struct {
	Debug    bool
	LogLevel zerolog.Level
	Game     engine.Settings
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel: zerolog.InfoLevel,
		Game:     engine.DefaultSettings(),
	}
}

// Load resolves defaults, then envFile, then the process environment
// An empty envFile reads DefaultEnvFile if it exists
func Load(envFile string) (Config, error) {
	file := map[string]string{}
	name := envFile
	if name == "" {
		name = DefaultEnvFile
	}
	vals, err := godotenv.Read(name)
	switch {
	case err == nil:
		file = vals
	case envFile == "" && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", name, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := file[EnvPrefix+key]
		return v, ok
	}
	return resolve(lookup)
}

func resolve(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	p := parser{lookup: lookup}

	p.boolVar("DEBUG", &c.Debug)
	p.levelVar("LOG_LEVEL", &c.LogLevel)

	g := &c.Game
	p.intVar("ROWS", &g.Rows)
	p.floatVar("BOX_SIZE", &g.BoxSize)
	p.floatVar("PROJECTILE_RADIUS", &g.ProjectileRadius)
	p.floatVar("RESTITUTION", &g.ProjectileRestitution)
	p.floatVar("SLING_STIFFNESS", &g.SlingStiffness)
	p.floatVar("SLING_DAMPING", &g.SlingDamping)
	p.floatVar("POWER", &g.PowerFactor)
	p.durationVar("RESPAWN_DELAY", &g.RespawnDelay)
	p.intVar("SCORE_PER_HIT", &g.ScorePerHit)

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return c.Normalize(), nil
}

// Normalize clamps gameplay values into their playable range
func (c Config) Normalize() Config {
	c.Game = c.Game.Normalize()
	return c
}

// parser collects every malformed variable instead of stopping at the first
type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) fail(key, v string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidValue, EnvPrefix, key, v, err))
}

func (p *parser) boolVar(key string, dst *bool) {
	if v, ok := p.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (p *parser) intVar(key string, dst *int) {
	if v, ok := p.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) floatVar(key string, dst *float64) {
	if v, ok := p.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			err = errNotFinite
		}
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (p *parser) durationVar(key string, dst *time.Duration) {
	if v, ok := p.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = d
	}
}

func (p *parser) levelVar(key string, dst *zerolog.Level) {
	if v, ok := p.get(key); ok {
		l, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = l
	}
}
