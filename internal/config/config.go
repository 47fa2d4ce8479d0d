package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/amanzav/scribe/internal/common"
	"github.com/amanzav/scribe/internal/model"
)

// DefaultCoursePrefix is the department code searched for in filenames when
// URL-based resolution fails.
const DefaultCoursePrefix = "MTE"

// AI holds the external classifier settings. The classifier is only
// consulted when the block is fully configured.
type AI struct {
	UseCategory  bool          `mapstructure:"use_category"`
	Endpoint     string        `mapstructure:"endpoint"`
	Model        string        `mapstructure:"model"`
	Provider     string        `mapstructure:"provider"`
	APIKeyEnvVar string        `mapstructure:"api_key_env"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether the external classifier should be consulted at all.
// Partial configuration disables it rather than erroring.
func (a AI) Enabled() bool {
	return a.UseCategory &&
		a.Endpoint != "" &&
		a.Model != "" &&
		a.APIKeyEnvVar != "" &&
		os.Getenv(a.APIKeyEnvVar) != ""
}

// APIKey reads the key from the configured environment variable.
func (a AI) APIKey() string {
	return os.Getenv(a.APIKeyEnvVar)
}

// Config is the single immutable configuration value constructed once at
// startup and passed explicitly into each component.
type Config struct {
	MonitorFolder   string
	StateDir        string
	CoursePrefix    string
	DuplicatePolicy model.DuplicatePolicy
	Rules           []model.Rule
	AI              AI
}

// Load builds a Config from the global viper instance. Unrecognized
// duplicate policies are corrected to rename with a warning, never an error.
func Load() (Config, error) {
	cfg := Config{
		MonitorFolder: ExpandPath(viper.GetString("monitor_folder")),
		StateDir:      ExpandPath(viper.GetString("state_dir")),
		CoursePrefix:  viper.GetString("course_prefix"),
	}

	if cfg.MonitorFolder == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.MonitorFolder = filepath.Join(home, "Downloads")
	}

	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".local", "share", "scribe")
	}

	if cfg.CoursePrefix == "" {
		cfg.CoursePrefix = DefaultCoursePrefix
	}

	rawPolicy := viper.GetString("duplicate_policy")
	policy, ok := model.ParseDuplicatePolicy(rawPolicy)
	if !ok {
		slog.Warn("Unrecognized duplicate policy, using rename",
			"configured", rawPolicy)
	}
	cfg.DuplicatePolicy = policy

	// Rules must stay an ordered slice: first configured rule wins, and map
	// iteration order would make resolution non-deterministic.
	if err := viper.UnmarshalKey("rules", &cfg.Rules); err != nil {
		return Config{}, fmt.Errorf("%w: rules: %v", common.ErrInvalidConfig, err)
	}

	if err := viper.UnmarshalKey("ai", &cfg.AI); err != nil {
		return Config{}, fmt.Errorf("%w: ai: %v", common.ErrInvalidConfig, err)
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 15 * time.Second
	}

	return cfg, nil
}

// Validate checks the parts of the configuration whose absence is fatal.
func (c Config) Validate() error {
	info, err := os.Stat(c.MonitorFolder)
	if err != nil {
		return common.NewUserError(
			fmt.Sprintf("monitor folder %q does not exist", c.MonitorFolder),
			common.ErrMonitorNotFound)
	}
	if !info.IsDir() {
		return common.NewUserError(
			fmt.Sprintf("monitor folder %q is not a directory", c.MonitorFolder),
			common.ErrMonitorNotFolder)
	}
	return nil
}
