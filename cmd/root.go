package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jasicon/jasreg/internal/config"
	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const debugLogFile = "jasreg-debug.log"

var (
	version    = "dev"
	cfgFile    string
	debug      bool
	cfg        config.Config
	configPath string
	closeLog   func()
)

var rootCmd = &cobra.Command{
	Use:   "jasreg",
	Short: "Delegate registration for JASICON 2026",
	Long: `A terminal registration desk for JASICON 2026.

Running jasreg without a subcommand opens the registration wizard. Delegates
who already registered go straight to their pass, which can be saved as a PDF.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRunE = teardown
	rootCmd.RunE = runApp

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/jasreg/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to "+debugLogFile+" (also enabled by JASREG_DEBUG)")
	rootCmd.PersistentFlags().String("db", "",
		"path to the registration database")
}

func setup(cmd *cobra.Command, _ []string) error {
	if debug || os.Getenv("JASREG_DEBUG") != "" {
		cleanup, err := log.InitWithTeaLog(debugLogFile, "jasreg")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		closeLog = cleanup
	}
	return loadConfig(cmd.Root().PersistentFlags())
}

func teardown(*cobra.Command, []string) error {
	if closeLog != nil {
		closeLog()
		closeLog = nil
	}
	return nil
}

// loadConfig reads the config file into cfg. A missing file is created
// from the default template first.
func loadConfig(flags *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v, config.Defaults())
	_ = v.BindPFlag("storage.db_path", flags.Lookup("db"))

	path := locateConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if writeErr := config.WriteDefaultConfig(path); writeErr != nil {
			// Continue with defaults when the file cannot be created.
			log.Warn(log.CatConfig, "Running without a config file", "path", path, "error", writeErr.Error())
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	configPath = path

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	c.ExpandPaths()
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	styles.ApplyTheme(c.UI.Theme.Gold, c.UI.Theme.Teal, c.UI.Theme.Muted)

	cfg = c
	log.Debug(log.CatConfig, "Loaded config", "path", configPath)
	return nil
}

// locateConfig resolves the config file path. Lookup order:
//  1. --config
//  2. .jasreg/config.yaml (current directory)
//  3. ~/.config/jasreg/config.yaml (user config)
func locateConfig() string {
	if cfgFile != "" {
		return config.ExpandHome(cfgFile)
	}
	local := filepath.Join(".jasreg", "config.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "jasreg", "config.yaml")
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("conference.name", d.Conference.Name)
	v.SetDefault("conference.subtitle", d.Conference.Subtitle)
	v.SetDefault("conference.dates", d.Conference.Dates)
	v.SetDefault("conference.venue", d.Conference.Venue)
	v.SetDefault("conference.starts_at", d.Conference.StartsAt)
	v.SetDefault("conference.notice", d.Conference.Notice)
	v.SetDefault("storage.db_path", d.Storage.DBPath)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("catalog.watch", d.Catalog.Watch)
	v.SetDefault("catalog.cache_ttl", d.Catalog.CacheTTL)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.pixel_ratio", d.Export.PixelRatio)
	v.SetDefault("validation.strict", d.Validation.Strict)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.slides", d.UI.Slides)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
