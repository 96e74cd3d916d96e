// Package config resolves runtime settings from defaults, an optional .env
// file, SNAKE_* environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"classic-snake/game/types"
	"classic-snake/store"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	UIAuto     = "auto"
	UIWindow   = "window"
	UITerminal = "terminal"

	DefaultEnvFile = ".env"
)

type Config struct {
	GridSize int           // cells per side
	Speed    int           // base speed in cells per second
	MinTick  time.Duration // fastest tick interval
	UI       string        // auto, window or terminal
	Store    string        // json or sqlite
	DataDir  string
	HTTPAddr string // empty disables the scoreboard API
	Sound    bool
	Volume   float64
	Debug    bool
	Seed     uint64 // 0 picks a time-based seed
}

func Default() Config {
	return Config{
		GridSize: types.DefaultGridSize,
		Speed:    types.BaseSpeed,
		MinTick:  types.MinTickInterval,
		UI:       UIAuto,
		Store:    store.KindJSON,
		DataDir:  "data",
		Sound:    true,
		Volume:   0.4,
	}
}

// Load reads envFile (missing is fine), the process environment and args.
func Load(args []string, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.parseFlags(args, io.Discard); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	var err error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && err == nil {
			n, perr := strconv.Atoi(strings.TrimSpace(v))
			if perr != nil {
				err = fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, perr)
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && err == nil {
			b, perr := strconv.ParseBool(strings.TrimSpace(v))
			if perr != nil {
				err = fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalidConfig, key, perr)
				return
			}
			*dst = b
		}
	}

	num("SNAKE_GRID", &c.GridSize)
	num("SNAKE_SPEED", &c.Speed)
	minTick := int(c.MinTick / time.Millisecond)
	num("SNAKE_MIN_TICK_MS", &minTick)
	c.MinTick = time.Duration(minTick) * time.Millisecond
	str("SNAKE_UI", &c.UI)
	str("SNAKE_STORE", &c.Store)
	str("SNAKE_DATA_DIR", &c.DataDir)
	str("SNAKE_HTTP_ADDR", &c.HTTPAddr)
	boolean("SNAKE_SOUND", &c.Sound)
	boolean("SNAKE_DEBUG", &c.Debug)
	if v, ok := lookup("SNAKE_SEED"); ok && err == nil {
		seed, perr := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if perr != nil {
			return fmt.Errorf("%w: SNAKE_SEED must be an unsigned integer: %v", ErrInvalidConfig, perr)
		}
		c.Seed = seed
	}
	return err
}

func (c *Config) parseFlags(args []string, output io.Writer) error {
	flags := flag.NewFlagSet("snake", flag.ContinueOnError)
	flags.SetOutput(output)

	flags.IntVar(&c.GridSize, "grid", c.GridSize, "Grid size in cells per side")
	flags.IntVar(&c.Speed, "speed", c.Speed, "Base speed in cells per second")
	flags.DurationVar(&c.MinTick, "min-tick", c.MinTick, "Fastest tick interval")
	flags.StringVar(&c.UI, "ui", c.UI, "Frontend: auto, window or terminal")
	flags.StringVar(&c.Store, "store", c.Store, "Persistence backend: json or sqlite")
	flags.StringVar(&c.DataDir, "data", c.DataDir, "Directory for saved scores")
	flags.StringVar(&c.HTTPAddr, "http", c.HTTPAddr, "Scoreboard API address, e.g. :8080 (empty disables)")
	flags.BoolVar(&c.Sound, "sound", c.Sound, "Play sound cues")
	flags.Float64Var(&c.Volume, "volume", c.Volume, "Sound volume between 0 and 1")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "Write debug logs to logs/")
	flags.Uint64Var(&c.Seed, "seed", c.Seed, "Food RNG seed (0 = random)")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks every field range.
func (c Config) Validate() error {
	var errs []error
	if c.GridSize < 5 || c.GridSize > 100 {
		errs = append(errs, fmt.Errorf("grid size %d out of range [5,100]", c.GridSize))
	}
	if c.Speed < 1 || c.Speed > 60 {
		errs = append(errs, fmt.Errorf("speed %d out of range [1,60]", c.Speed))
	}
	if c.MinTick < 10*time.Millisecond || c.MinTick > time.Second {
		errs = append(errs, fmt.Errorf("min tick %v out of range [10ms,1s]", c.MinTick))
	}
	switch c.UI {
	case UIAuto, UIWindow, UITerminal:
	default:
		errs = append(errs, fmt.Errorf("unknown ui %q", c.UI))
	}
	switch c.Store {
	case store.KindJSON, store.KindSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir must not be empty"))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume %v out of range [0,1]", c.Volume))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// BaseInterval is the starting tick interval derived from Speed.
func (c Config) BaseInterval() time.Duration {
	return time.Second / time.Duration(c.Speed)
}

// ResolveUI turns "auto" into a concrete frontend.
func (c Config) ResolveUI() string {
	if c.UI != UIAuto {
		return c.UI
	}
	return chooseUI(term.IsTerminal(int(os.Stdout.Fd())), hasDisplay(runtime.GOOS, os.Getenv))
}

// chooseUI prefers the window unless we sit in a terminal with no display
// server to open one on.
func chooseUI(isTerminal, display bool) string {
	if isTerminal && !display {
		return UITerminal
	}
	return UIWindow
}

func hasDisplay(goos string, getenv func(string) string) bool {
	switch goos {
	case "windows", "darwin":
		return true
	}
	return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
}
