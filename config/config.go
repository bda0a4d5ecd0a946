package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/level"
)

// FileName is the config file looked up in the config directory
const FileName = "cutin-killer.toml"

// EnvPrefix prefixes environment overrides, e.g. CUTIN_STORAGE_DRIVER
const EnvPrefix = "CUTIN"

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrInvalidRate   = errors.New("rate must be positive")
)

// AudioConfig holds cue tone settings
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// SQLiteConfig holds the embedded database location, empty path keeps it in memory
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig holds connection settings for the optional Postgres backend
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// DSN returns the libpq connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.Username, p.Password, p.Database)
}

// StorageConfig selects the high-score backend
type StorageConfig struct {
	Driver   string         `mapstructure:"driver"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// StreamConfig controls the websocket snapshot stream
type StreamConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Rate    int    `mapstructure:"rate"`
}

// Interval returns the snapshot push period
func (s StreamConfig) Interval() time.Duration {
	if s.Rate <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.Rate)
}

// OTelConfig toggles the OpenTelemetry metric bridge
type OTelConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Settings is the typed view over the loaded configuration
type Settings struct {
	LogLevel string             `mapstructure:"logLevel"`
	LogsDir  string             `mapstructure:"logsDir"`
	Debug    bool               `mapstructure:"debug"`
	Level    string             `mapstructure:"level"`
	Attack   string             `mapstructure:"attack"`
	TickRate int                `mapstructure:"tickRate"`
	Seed     uint64             `mapstructure:"seed"`
	Audio    AudioConfig        `mapstructure:"audio"`
	Storage  StorageConfig      `mapstructure:"storage"`
	Stream   StreamConfig       `mapstructure:"stream"`
	OTel     OTelConfig         `mapstructure:"otel"`
	Levels   []level.Definition `mapstructure:"levels"`
}

// Step returns the nominal simulation step for TickRate
func (s Settings) Step() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

// Validate checks names and rates that the loaders cannot
func (s Settings) Validate() error {
	if _, err := attack.ByName(s.Attack); err != nil {
		return err
	}
	switch s.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, s.Storage.Driver)
	}
	if s.TickRate <= 0 {
		return fmt.Errorf("tickRate: %w", ErrInvalidRate)
	}
	if s.Stream.Enabled && s.Stream.Rate <= 0 {
		return fmt.Errorf("stream.rate: %w", ErrInvalidRate)
	}
	return nil
}

// Registry returns the built-in levels with configured levels added or replacing by id
func (s Settings) Registry() (*level.Registry, error) {
	r := level.NewRegistry()
	for _, d := range s.Levels {
		l, err := d.Build()
		if err != nil {
			return nil, err
		}
		if err := r.Register(l); err != nil {
			return nil, fmt.Errorf("level %s: %w", d.ID, err)
		}
	}
	return r, nil
}

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"level":     "level",
	"attack":    "attack",
	"seed":      "seed",
	"debug":     "debug",
	"log-level": "logLevel",
	"tick-rate": "tickRate",
	"storage":   "storage.driver",
	"stream":    "stream.enabled",
	"mute":      "audio.enabled",
}

// NewFlagSet defines the overridable settings; unset flags leave file and environment values alone
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", ".", "directory holding "+FileName)
	fs.StringP("level", "l", "", "level id")
	fs.StringP("attack", "a", "", "attack: "+strings.Join(attack.Names(), ", "))
	fs.Uint64("seed", 0, "simulation seed, 0 picks one")
	fs.Bool("debug", false, "log at debug level")
	fs.String("log-level", "", "trace, debug, info, warn, error")
	fs.Int("tick-rate", 0, "simulation steps per second")
	fs.String("storage", "", "high score driver: sqlite, postgres, memory")
	fs.Bool("stream", false, "serve the websocket spectator stream")
	fs.Bool("mute", false, "disable audio")
	return fs
}

// BindFlags makes changed flags take precedence over file and environment
func BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if name == "mute" {
			// Inverted: --mute turns audio off
			viper.Set(key, f.Value.String() != "true")
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load sets defaults, binds the environment and reads FileName from configDir
// A missing file is not an error; defaults and environment apply
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("debug", false)
	viper.SetDefault("level", level.DefaultID)
	viper.SetDefault("attack", "bodyslam")
	viper.SetDefault("tickRate", 60)
	viper.SetDefault("seed", 0)

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", 0.3)

	viper.SetDefault("storage.driver", DriverSQLite)
	viper.SetDefault("storage.sqlite.path", "cutin-killer.db")
	viper.SetDefault("storage.postgres.host", "localhost")
	viper.SetDefault("storage.postgres.port", "5432")
	viper.SetDefault("storage.postgres.username", "postgres")
	viper.SetDefault("storage.postgres.password", "postgres")
	viper.SetDefault("storage.postgres.database", "cutin")

	viper.SetDefault("stream.enabled", false)
	viper.SetDefault("stream.address", "localhost:8090")
	viper.SetDefault("stream.rate", 20)

	viper.SetDefault("otel.enabled", false)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
	viper.SetConfigType("toml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Current unmarshals the loaded configuration into Settings
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	return s, nil
}

// ConfigFile returns the path of the file that was read, empty when running on defaults
func ConfigFile() string {
	return viper.ConfigFileUsed()
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}
