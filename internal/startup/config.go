package startup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"showrunner/internal/engine"
	"showrunner/internal/gate"
	"showrunner/internal/logging"
	"showrunner/internal/notifier"
	"showrunner/internal/playlist"
	"showrunner/internal/sequencer"

	"gopkg.in/yaml.v3"
)

// DefaultFolderName is the presentation folder used when none is given. It
// is resolved against the base directory.
const DefaultFolderName = "test"

const defaultMetricsPort = "9090"

// Config holds all application configuration
type Config struct {
	ConfigFile string
	BaseDir    string
	Folder     string

	Extensions      []string
	TransientPrefix string

	PollInterval time.Duration
	SettleDelay  time.Duration
	EmptyPolicy  sequencer.EmptyPolicy

	EngineCommand []string
	SlideDwell    time.Duration

	GateKind         gate.Kind
	NotifierKind     notifier.Kind
	NotifierInterval time.Duration

	MetricsEnabled  bool
	MetricsPort     string
	LogHealthChecks bool
	LogLevel        logging.LogLevel
}

// FileConfig models the optional YAML configuration file. Environment
// variables take precedence over every key.
type FileConfig struct {
	Folder          string   `yaml:"folder"`
	BaseDir         string   `yaml:"base_dir"`
	Extensions      []string `yaml:"extensions"`
	TransientPrefix *string  `yaml:"transient_prefix"`
	PollInterval    string   `yaml:"poll_interval"`
	SettleDelay     string   `yaml:"settle_delay"`
	EmptyPolicy     string   `yaml:"empty_policy"`
	Gate            string   `yaml:"gate"`
	LogLevel        string   `yaml:"log_level"`

	Engine struct {
		Command    []string `yaml:"command"`
		SlideDwell string   `yaml:"slide_dwell"`
	} `yaml:"engine"`

	Notifier struct {
		Kind     string `yaml:"kind"`
		Interval string `yaml:"interval"`
	} `yaml:"notifier"`

	Metrics struct {
		Enabled         *bool  `yaml:"enabled"`
		Port            string `yaml:"port"`
		LogHealthChecks *bool  `yaml:"log_health_checks"`
	} `yaml:"metrics"`
}

// ReadConfigFile parses a YAML configuration file. Unknown keys are an
// error so that typos do not pass silently. An empty file is valid.
func ReadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig

	f, err := os.Open(path)
	if err != nil {
		return fc, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fc, nil
}

// LoadConfig loads configuration from defaults, the YAML file at path (or
// SHOWRUNNER_CONFIG when path is empty) and the environment, in increasing
// order of precedence. A non-empty folder overrides every other source.
func LoadConfig(path, folder string) (*Config, error) {
	if path == "" {
		path = os.Getenv("SHOWRUNNER_CONFIG")
	}

	var fc FileConfig
	if path != "" {
		var err error
		if fc, err = ReadConfigFile(path); err != nil {
			return nil, err
		}
	}

	cfg, err := resolveConfig(fc, folder)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = path

	logging.SetLevel(cfg.LogLevel)
	printBanner()
	logSystemInfo()
	logConfig(cfg)

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("FOLDER SETUP")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Presentation folder (absolute): %s", cfg.Folder)

	if err := ensureFolder(cfg.Folder, cfg.Filter()); err != nil {
		return nil, fmt.Errorf("presentation folder error: %w", err)
	}

	return cfg, nil
}

// resolveConfig layers the environment over fc and validates the result.
func resolveConfig(fc FileConfig, folder string) (*Config, error) {
	cfg := &Config{
		Extensions:      fc.Extensions,
		TransientPrefix: playlist.DefaultTransientPrefix,
		EngineCommand:   fc.Engine.Command,
		MetricsEnabled:  true,
		MetricsPort:     setting("METRICS_PORT", fc.Metrics.Port, defaultMetricsPort),
		LogLevel:        logging.GetLevel(),
	}

	if fc.TransientPrefix != nil {
		cfg.TransientPrefix = *fc.TransientPrefix
	}
	if v, ok := os.LookupEnv("SHOWRUNNER_TRANSIENT_PREFIX"); ok {
		cfg.TransientPrefix = v
	}
	if v := os.Getenv("SHOWRUNNER_EXTENSIONS"); v != "" {
		cfg.Extensions = splitList(v)
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = playlist.DefaultExtensions
	}
	if v := os.Getenv("SHOWRUNNER_ENGINE_COMMAND"); v != "" {
		cfg.EngineCommand = strings.Fields(v)
	}

	if fc.Metrics.Enabled != nil {
		cfg.MetricsEnabled = *fc.Metrics.Enabled
	}
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)
	if fc.Metrics.LogHealthChecks != nil {
		cfg.LogHealthChecks = *fc.Metrics.LogHealthChecks
	}
	cfg.LogHealthChecks = getEnvBool("LOG_HEALTH_CHECKS", cfg.LogHealthChecks)

	if v := setting("LOG_LEVEL", fc.LogLevel, ""); v != "" {
		level, ok := logging.ParseLevel(v)
		if !ok {
			logging.Warn("Invalid LOG_LEVEL %q, using default: %s", v, cfg.LogLevel)
		} else {
			cfg.LogLevel = level
		}
	}

	cfg.PollInterval = parseDuration("SHOWRUNNER_POLL_INTERVAL",
		setting("SHOWRUNNER_POLL_INTERVAL", fc.PollInterval, ""), sequencer.DefaultPollInterval)
	cfg.SettleDelay = parseDuration("SHOWRUNNER_SETTLE_DELAY",
		setting("SHOWRUNNER_SETTLE_DELAY", fc.SettleDelay, ""), notifier.DefaultSettleDelay)
	cfg.SlideDwell = parseDuration("SHOWRUNNER_SLIDE_DWELL",
		setting("SHOWRUNNER_SLIDE_DWELL", fc.Engine.SlideDwell, ""), engine.DefaultSlideDwell)
	cfg.NotifierInterval = parseDuration("SHOWRUNNER_NOTIFIER_INTERVAL",
		setting("SHOWRUNNER_NOTIFIER_INTERVAL", fc.Notifier.Interval, ""), notifier.DefaultPollInterval)

	var err error
	if cfg.EmptyPolicy, err = sequencer.ParseEmptyPolicy(setting("SHOWRUNNER_EMPTY_POLICY", fc.EmptyPolicy, "")); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.GateKind, err = gate.ParseKind(setting("SHOWRUNNER_GATE", fc.Gate, "")); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.NotifierKind, err = notifier.ParseKind(setting("SHOWRUNNER_NOTIFIER", fc.Notifier.Kind, "")); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.BaseDir = setting("SHOWRUNNER_BASE_DIR", fc.BaseDir, "")
	if cfg.BaseDir == "" {
		cfg.BaseDir = defaultBaseDir()
	}
	if cfg.BaseDir, err = filepath.Abs(cfg.BaseDir); err != nil {
		return nil, fmt.Errorf("failed to resolve base directory path: %w", err)
	}

	if folder == "" {
		folder = setting("SHOWRUNNER_FOLDER", fc.Folder, DefaultFolderName)
	}
	if !filepath.IsAbs(folder) {
		folder = filepath.Join(cfg.BaseDir, folder)
	}
	cfg.Folder = filepath.Clean(folder)

	return cfg, nil
}

// Filter returns the playlist filter for the configured extensions.
func (c *Config) Filter() playlist.Filter {
	return playlist.NewFilter(c.Extensions, c.TransientPrefix)
}

// SequencerConfig returns the sequencer timing and policy settings.
func (c *Config) SequencerConfig() sequencer.Config {
	return sequencer.Config{
		PollInterval: c.PollInterval,
		EmptyPolicy:  c.EmptyPolicy,
	}
}

// ViewerConfig returns the presentation engine settings.
func (c *Config) ViewerConfig() engine.ViewerConfig {
	return engine.ViewerConfig{
		Command:    c.EngineCommand,
		SlideDwell: c.SlideDwell,
	}
}

func logConfig(cfg *Config) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if cfg.ConfigFile != "" {
		logging.Info("  Config file:                  %s", cfg.ConfigFile)
	}
	logging.Info("  SHOWRUNNER_BASE_DIR:          %s", cfg.BaseDir)
	logging.Info("  SHOWRUNNER_FOLDER:            %s", cfg.Folder)
	logging.Info("  SHOWRUNNER_EXTENSIONS:        %s", strings.Join(cfg.Filter().Extensions(), ","))
	logging.Info("  SHOWRUNNER_TRANSIENT_PREFIX:  %q", cfg.TransientPrefix)
	logging.Info("  SHOWRUNNER_POLL_INTERVAL:     %v", cfg.PollInterval)
	logging.Info("  SHOWRUNNER_SETTLE_DELAY:      %v", cfg.SettleDelay)
	logging.Info("  SHOWRUNNER_EMPTY_POLICY:      %s", cfg.EmptyPolicy)
	logging.Info("  SHOWRUNNER_ENGINE_COMMAND:    %s", commandString(cfg.EngineCommand))
	logging.Info("  SHOWRUNNER_SLIDE_DWELL:       %v", cfg.SlideDwell)
	logging.Info("  SHOWRUNNER_GATE:              %s", cfg.GateKind)
	logging.Info("  SHOWRUNNER_NOTIFIER:          %s", cfg.NotifierKind)
	if cfg.NotifierKind == notifier.KindPoll {
		logging.Info("  SHOWRUNNER_NOTIFIER_INTERVAL: %v", cfg.NotifierInterval)
	}
	logging.Info("  METRICS_ENABLED:              %v", cfg.MetricsEnabled)
	logging.Info("  METRICS_PORT:                 %s", cfg.MetricsPort)
	logging.Info("  LOG_HEALTH_CHECKS:            %v", cfg.LogHealthChecks)
	logging.Info("  LOG_LEVEL:                    %s", cfg.LogLevel)
}

func commandString(cmd []string) string {
	if len(cmd) == 0 {
		return "(headless)"
	}
	return strings.Join(cmd, " ")
}

// defaultBaseDir is the directory of the running executable, or the working
// directory when that cannot be determined.
func defaultBaseDir() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// setting returns the environment value for key, else fileValue, else def.
func setting(key, fileValue, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue = strings.TrimSpace(fileValue); fileValue != "" {
		return fileValue
	}
	return def
}

func parseDuration(name, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logging.Warn("  Invalid %s %q, using default: %v", name, value, def)
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
