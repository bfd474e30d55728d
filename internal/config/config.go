// Package config provides configuration types and defaults for jasreg.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/tracing"
)

// StartsAtLayout is the layout of conference.starts_at, read in local time.
const StartsAtLayout = "2006-01-02T15:04:05"

// Config holds all configuration options for jasreg.
type Config struct {
	Conference ConferenceConfig `mapstructure:"conference"`
	Identity   IdentityConfig   `mapstructure:"identity"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Export     ExportConfig     `mapstructure:"export"`
	Validation ValidationConfig `mapstructure:"validation"`
	Tracing    tracing.Config   `mapstructure:"tracing"`
	UI         UIConfig         `mapstructure:"ui"`
}

// ConferenceConfig describes the event shown on the landing view and passes.
type ConferenceConfig struct {
	Name     string `mapstructure:"name"`
	Subtitle string `mapstructure:"subtitle"`
	Dates    string `mapstructure:"dates"`
	Venue    string `mapstructure:"venue"`
	// StartsAt is the countdown target, e.g. "2026-11-12T00:00:00".
	StartsAt string `mapstructure:"starts_at"`
	// Notice is markdown rendered below the pricing table.
	Notice string `mapstructure:"notice"`
}

// StartTime parses StartsAt in the local time zone.
func (c ConferenceConfig) StartTime() (time.Time, error) {
	t, err := time.ParseInLocation(StartsAtLayout, c.StartsAt, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("conference.starts_at: %w", err)
	}
	return t, nil
}

// IdentityConfig is the signed-in delegate. JASREG_* environment variables
// override it.
type IdentityConfig struct {
	DisplayName string `mapstructure:"display_name" yaml:"display_name"`
	Email       string `mapstructure:"email" yaml:"email"`
	UniqueID    string `mapstructure:"unique_id" yaml:"unique_id"`
}

// StorageConfig holds the registration database location.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// CatalogConfig configures the add-on catalog source.
type CatalogConfig struct {
	// Path to a YAML catalog. Empty uses the built-in workshops.
	Path string `mapstructure:"path"`
	// Watch reloads the catalog when the file changes.
	Watch bool `mapstructure:"watch"`
	// CacheTTL bounds how long a loaded catalog is served. Zero keeps it
	// until the file changes.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ExportConfig configures pass export.
type ExportConfig struct {
	Dir        string  `mapstructure:"dir"`
	PixelRatio float64 `mapstructure:"pixel_ratio"`
}

// ValidationConfig toggles the credential field rules.
type ValidationConfig struct {
	// Strict makes every credential field of the selected category required.
	Strict bool `mapstructure:"strict"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string        `mapstructure:"markdown_style"` // "dark" (default) or "light"
	Slides        []SlideConfig `mapstructure:"slides"`
	Theme         ThemeConfig   `mapstructure:"theme"`
}

// SlideConfig is one slide of the landing slideshow.
type SlideConfig struct {
	Title   string `mapstructure:"title"`
	Caption string `mapstructure:"caption"`
}

// ThemeConfig overrides palette colors. Empty values keep the defaults.
type ThemeConfig struct {
	Gold  string `mapstructure:"gold"`
	Teal  string `mapstructure:"teal"`
	Muted string `mapstructure:"muted"`
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// DefaultDBPath returns ~/.jasreg/jasreg.db, or a relative path when the home
// directory is unavailable.
func DefaultDBPath() string {
	return filepath.Join(homeDir(), ".jasreg", "jasreg.db")
}

// DefaultExportDir returns ~/Downloads.
func DefaultExportDir() string {
	return filepath.Join(homeDir(), "Downloads")
}

// DefaultTracesFilePath returns ~/.config/jasreg/traces/traces.json.
func DefaultTracesFilePath() string {
	return filepath.Join(homeDir(), ".config", "jasreg", "traces", "traces.json")
}

// DefaultSlides returns the landing slideshow.
func DefaultSlides() []SlideConfig {
	return []SlideConfig{
		{Title: "The Gateway", Caption: "Deoghar International Airport"},
		{Title: "Our Heritage", Caption: "Baidyanath Jyotirlinga Mandir"},
		{Title: "The Destination", Caption: "Scenic Beauty of Deoghar"},
	}
}

// DefaultNotice is the markdown shown under the pricing table.
const DefaultNotice = "**Note:** On-spot registration: No guarantee of kit bag."

// Defaults returns a Config with default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Conference: ConferenceConfig{
			Name:     "JASICON 2026",
			Subtitle: "National Conference of OBGYN",
			Dates:    "Nov 20-22, 2026",
			Venue:    "Baidyanath Dham, Deoghar",
			StartsAt: "2026-11-12T00:00:00",
			Notice:   DefaultNotice,
		},
		Storage: StorageConfig{DBPath: DefaultDBPath()},
		Catalog: CatalogConfig{Watch: true},
		Export: ExportConfig{
			Dir:        DefaultExportDir(),
			PixelRatio: 2,
		},
		Tracing: tr,
		UI: UIConfig{
			MarkdownStyle: "dark",
			Slides:        DefaultSlides(),
		},
	}
}

// Validate checks the configuration for errors.
func Validate(c Config) error {
	var errs []error
	if _, err := c.Conference.StartTime(); err != nil {
		errs = append(errs, err)
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path is required"))
	}
	if c.Export.PixelRatio <= 0 || c.Export.PixelRatio > 4 {
		errs = append(errs, fmt.Errorf("export.pixel_ratio must be in (0, 4], got %v", c.Export.PixelRatio))
	}
	if c.Catalog.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("catalog.cache_ttl must not be negative, got %v", c.Catalog.CacheTTL))
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle))
	}
	for i, s := range c.UI.Slides {
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("ui.slides[%d].title is required", i))
		}
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return errors.New("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return errors.New("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# jasreg configuration

# Event details shown on the landing view and printed on passes
conference:
  name: JASICON 2026
  subtitle: National Conference of OBGYN
  dates: Nov 20-22, 2026
  venue: Baidyanath Dham, Deoghar
  starts_at: "2026-11-12T00:00:00"   # countdown target (local time)
  notice: "**Note:** On-spot registration: No guarantee of kit bag."

# Signed-in delegate. JASREG_DISPLAY_NAME, JASREG_EMAIL and JASREG_UID override these.
identity:
  display_name: ""
  email: ""
  unique_id: ""

# Where confirmed registrations are stored (default: ~/.jasreg/jasreg.db)
# storage:
#   db_path: ~/.jasreg/jasreg.db

# Add-on catalog
catalog:
  # path: ./addons.yaml   # YAML catalog; the two built-in workshops are used when unset
  watch: true             # reload the catalog when the file changes
  # cache_ttl: 10m        # re-read the file at most this often (default: until it changes)

# Pass export
export:
  # dir: ~/Downloads
  pixel_ratio: 2          # raster scale of the 420-wide pass

# Credential fields
validation:
  strict: false           # require every credential field of the selected category

# Distributed tracing for submits and exports
# tracing:
#   enabled: false        # Enable/disable tracing (default: false)
#   exporter: file        # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/jasreg/traces/traces.json
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0      # Trace sampling rate 0.0-1.0 (default: 1.0)

ui:
  markdown_style: dark    # "dark" (default) or "light"
  slides:
    - title: The Gateway
      caption: Deoghar International Airport
    - title: Our Heritage
      caption: Baidyanath Jyotirlinga Mandir
    - title: The Destination
      caption: Scenic Beauty of Deoghar
  # theme:
  #   gold: "#C9A24D"
  #   teal: "#2EC4B6"
  #   muted: "#9AA4B2"
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if len(p) > 1 && p[0] == '~' && (p[1] == '/' || p[1] == filepath.Separator) {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}

// ExpandPaths applies ExpandHome to every path setting.
func (c *Config) ExpandPaths() {
	c.Storage.DBPath = ExpandHome(c.Storage.DBPath)
	c.Catalog.Path = ExpandHome(c.Catalog.Path)
	c.Export.Dir = ExpandHome(c.Export.Dir)
	c.Tracing.FilePath = ExpandHome(c.Tracing.FilePath)
}
