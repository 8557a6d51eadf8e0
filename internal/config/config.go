package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"exhibition/internal/input"
	"exhibition/internal/interact"
	"exhibition/internal/nav"
)

// Dir is the directory searched for the config file, relative to the process working directory.
const Dir = "config"

// FileName is the config file name without extension.
const FileName = "exhibition"

// EnvPrefix prefixes environment overrides, e.g. EXHIBITION_NAV_SPEED=12.
const EnvPrefix = "EXHIBITION"

// Window holds window and camera settings.
type Window struct {
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	Title      string  `mapstructure:"title"`
	TargetFPS  int     `mapstructure:"targetFPS"`
	Fovy       float32 `mapstructure:"fovy"`
	Fullscreen bool    `mapstructure:"fullscreen"`
}

// Overlay holds the debug overlay toggles.
type Overlay struct {
	ShowFPS      bool `mapstructure:"showFPS"`
	ShowMemAlloc bool `mapstructure:"showMemAlloc"`
	ShowNav      bool `mapstructure:"showNav"`
	ShowGrid     bool `mapstructure:"showGrid"`
	// Font names a family under assets/fonts; empty uses raylib's built-in font.
	Font string `mapstructure:"font"`
}

// Body holds the viewer's physics body and world settings.
type Body struct {
	Gravity       float32 `mapstructure:"gravity"`
	Radius        float32 `mapstructure:"radius"`
	HalfHeight    float32 `mapstructure:"halfHeight"`
	Mass          float32 `mapstructure:"mass"`
	LinearDamping float32 `mapstructure:"linearDamping"`
}

// Audio holds audio cue settings.
type Audio struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// Joystick holds the on-screen joystick settings.
type Joystick struct {
	Visible   bool    `mapstructure:"visible"`
	Radius    float32 `mapstructure:"radius"`
	Threshold float32 `mapstructure:"threshold"`
}

// Config is the full runtime configuration.
type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	LogsDir  string `mapstructure:"logsDir"`
	// Layout is the exhibition layout file.
	Layout string `mapstructure:"layout"`

	Window   Window          `mapstructure:"window"`
	Overlay  Overlay         `mapstructure:"overlay"`
	Nav      nav.Config      `mapstructure:"nav"`
	Interact interact.Config `mapstructure:"interact"`
	Body     Body            `mapstructure:"body"`
	Audio    Audio           `mapstructure:"audio"`
	Joystick Joystick        `mapstructure:"joystick"`
}

// Default returns the configuration used when no file or override is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		LogsDir:  "logs",
		Layout:   "assets/exhibition.yaml",
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Exhibition",
			TargetFPS: 60,
			Fovy:      60,
		},
		Overlay:  Overlay{ShowFPS: true},
		Nav:      nav.DefaultConfig(),
		Interact: interact.DefaultConfig(),
		Body: Body{
			Gravity:       -9.81,
			Radius:        0.5,
			HalfHeight:    0.5,
			Mass:          1,
			LinearDamping: 0.1,
		},
		Audio: Audio{Enabled: true, Volume: 0.7},
		Joystick: Joystick{
			Radius:    input.DefaultJoystickRadius,
			Threshold: input.DefaultJoystickThreshold,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("logsDir", d.LogsDir)
	v.SetDefault("layout", d.Layout)

	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.targetFPS", d.Window.TargetFPS)
	v.SetDefault("window.fovy", d.Window.Fovy)
	v.SetDefault("window.fullscreen", d.Window.Fullscreen)

	v.SetDefault("overlay.showFPS", d.Overlay.ShowFPS)
	v.SetDefault("overlay.showMemAlloc", d.Overlay.ShowMemAlloc)
	v.SetDefault("overlay.showNav", d.Overlay.ShowNav)
	v.SetDefault("overlay.showGrid", d.Overlay.ShowGrid)
	v.SetDefault("overlay.font", d.Overlay.Font)

	v.SetDefault("nav.speed", d.Nav.Speed)
	v.SetDefault("nav.damping", d.Nav.Damping)
	v.SetDefault("nav.deadzone", d.Nav.Deadzone)
	v.SetDefault("nav.eyeHeight", d.Nav.EyeHeight)
	v.SetDefault("nav.followFactor", d.Nav.FollowFactor)
	v.SetDefault("nav.seatedFollowFactor", d.Nav.SeatedFollowFactor)
	v.SetDefault("nav.pointerSensitivity", d.Nav.PointerSensitivity)
	v.SetDefault("nav.touchSensitivity", d.Nav.TouchSensitivity)
	v.SetDefault("nav.pitchLimitDeg", d.Nav.PitchLimitDeg)

	v.SetDefault("interact.interval", d.Interact.Interval)
	v.SetDefault("interact.maxDistance", d.Interact.MaxDistance)

	v.SetDefault("body.gravity", d.Body.Gravity)
	v.SetDefault("body.radius", d.Body.Radius)
	v.SetDefault("body.halfHeight", d.Body.HalfHeight)
	v.SetDefault("body.mass", d.Body.Mass)
	v.SetDefault("body.linearDamping", d.Body.LinearDamping)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.volume", d.Audio.Volume)

	v.SetDefault("joystick.visible", d.Joystick.Visible)
	v.SetDefault("joystick.radius", d.Joystick.Radius)
	v.SetDefault("joystick.threshold", d.Joystick.Threshold)
}

// Load reads exhibition.yaml from dir, applies EXHIBITION_* environment overrides and returns
// the result. A missing file is not an error: defaults and environment still apply.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Default(), fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}
