package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/gowbeam/internal/aisc"
)

// Config holds the settings shared by all commands
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Design  DesignConfig  `toml:"design"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
}

type CatalogConfig struct {
	// Source is a CSV path or http(s) URL. Empty uses the embedded catalog.
	Source      string   `toml:"source"`
	LoadTimeout Duration `toml:"load_timeout"`
}

type DesignConfig struct {
	Grade   string  `toml:"grade"`
	Modulus float64 `toml:"modulus"` // ksi
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration decodes TOML strings such as "30s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Catalog: CatalogConfig{LoadTimeout: Duration{30 * time.Second}},
		Design:  DesignConfig{Grade: aisc.DefaultGrade, Modulus: aisc.E},
		Log:     LogConfig{Level: "info"},
		Server:  ServerConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("reading config %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings are usable
func (c Config) Validate() error {
	if c.Design.Modulus <= 0 {
		return fmt.Errorf("design.modulus must be positive, got %g", c.Design.Modulus)
	}
	if _, err := aisc.LookupGrade(c.Design.Grade); err != nil {
		return fmt.Errorf("design.grade: %w", err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Catalog.LoadTimeout.Duration <= 0 {
		return fmt.Errorf("catalog.load_timeout must be positive, got %s", c.Catalog.LoadTimeout)
	}
	return nil
}

// Grade returns the configured default grade
func (c Config) Grade() aisc.Grade {
	g, err := aisc.LookupGrade(c.Design.Grade)
	if err != nil {
		g, _ = aisc.LookupGrade(aisc.DefaultGrade)
	}
	return g
}
