// Package config loads and saves shiftcast's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultDateLayout matches export dates such as "Wednesday, March 6, 2024".
const DefaultDateLayout = "Monday, January 2, 2006"

// Config holds all shiftcast configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Columns    ColumnsConfig    `toml:"columns"`
	Print      PrintConfig      `toml:"print"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds forecast preferences.
type GeneralConfig struct {
	AnchorWeekday string `toml:"anchor_weekday"`
	WindowDays    int    `toml:"window_days"`
	OutputPath    string `toml:"output_path"`
}

// ColumnsConfig selects the date and amount columns of a sales export.
// Header names win; the indexes are used when a header is not present.
type ColumnsConfig struct {
	Date        string `toml:"date"`
	Amount      string `toml:"amount"`
	DateIndex   int    `toml:"date_index"`
	AmountIndex int    `toml:"amount_index"`
	DateLayout  string `toml:"date_layout"`
}

// PrintConfig holds the print command. Empty means the OS default.
type PrintConfig struct {
	Command string `toml:"command,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			AnchorWeekday: "Wednesday",
			WindowDays:    28,
			OutputPath:    "sales_predictions.txt",
		},
		Columns: ColumnsConfig{
			Date:        "TextBox4",
			Amount:      "TextBox3",
			DateIndex:   0,
			AmountIndex: 1,
			DateLayout:  DefaultDateLayout,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shiftcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "shiftcast")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// SHIFTCAST_OUTPUT overrides the output path.
func Load() (Config, error) {
	cfg, err := LoadFile(Path())
	if out := os.Getenv("SHIFTCAST_OUTPUT"); out != "" {
		cfg.General.OutputPath = out
	}
	return cfg, err
}

// LoadFile reads a config from an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to an explicit path.
func SaveFile(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Validate checks values that would make the forecast meaningless.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseWeekday(c.General.AnchorWeekday); err != nil {
		errs = append(errs, err)
	}
	if c.General.WindowDays < 1 {
		errs = append(errs, fmt.Errorf("window_days must be at least 1, got %d", c.General.WindowDays))
	}
	if strings.TrimSpace(c.General.OutputPath) == "" {
		errs = append(errs, errors.New("output_path must not be empty"))
	}
	if c.Columns.DateIndex < 0 || c.Columns.AmountIndex < 0 {
		errs = append(errs, errors.New("column indexes must not be negative"))
	}
	if c.Columns.DateLayout == "" {
		errs = append(errs, errors.New("date_layout must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Anchor returns the configured anchor weekday, Wednesday if unset.
func (c Config) Anchor() time.Weekday {
	w, err := ParseWeekday(c.General.AnchorWeekday)
	if err != nil {
		return time.Wednesday
	}
	return w
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || (len(name) == 3 && name == full[:3]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
