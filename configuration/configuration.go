package configuration

import "errors"
import "fmt"
import "io/fs"
import "os"
import "path/filepath"
import "strings"

import "github.com/spf13/viper"

// Configuration holds the defaults of the command line tool.
type Configuration struct {
	Viewport ViewportConfig `mapstructure:"viewport"`
	Flight   FlightConfig   `mapstructure:"flight"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

type ViewportConfig struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	Padding float64 `mapstructure:"padding"`
}

type FlightConfig struct {
	Frames int `mapstructure:"frames"`
}

type CacheConfig struct {
	Size int `mapstructure:"size"`
}

func ConfigDir() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "viewport_patterns"), nil
}
func ConfigPath() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)
	v.SetDefault("viewport.padding", 20)
	v.SetDefault("flight.frames", 60)
	v.SetDefault("cache.size", 128)

	// VIEWPORT_PATTERNS_VIEWPORT_WIDTH → viewport.width
	v.SetEnvPrefix("VIEWPORT_PATTERNS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration from the user config directory, if it
// exists, and from the environment.
func Load() (*Configuration, error) {
	configPath, err := ConfigPath()
	if err != nil {
		configPath = ""
	}
	return LoadFrom(configPath)
}

// LoadFrom is Load with an explicit config file path. A missing file
// is not an error.
func LoadFrom(configPath string) (*Configuration, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	var conf Configuration
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks that the values are usable.
func (c *Configuration) Validate() error {
	var errs []string

	if c.Viewport.Width <= 0 {
		errs = append(errs, fmt.Sprintf("viewport.width must be positive, got %f", c.Viewport.Width))
	}
	if c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Sprintf("viewport.height must be positive, got %f", c.Viewport.Height))
	}
	if c.Viewport.Padding < 0 {
		errs = append(errs, fmt.Sprintf("viewport.padding must not be negative, got %f", c.Viewport.Padding))
	}
	if c.Flight.Frames < 2 {
		errs = append(errs, fmt.Sprintf("flight.frames must be at least 2, got %d", c.Flight.Frames))
	}
	if c.Cache.Size < 0 {
		errs = append(errs, fmt.Sprintf("cache.size must not be negative, got %d", c.Cache.Size))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Save writes the configuration to the user config directory.
func Save(config *Configuration) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(config, configPath)
}

func SaveTo(config *Configuration, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}
	v := viper.New()
	v.Set("viewport.width", config.Viewport.Width)
	v.Set("viewport.height", config.Viewport.Height)
	v.Set("viewport.padding", config.Viewport.Padding)
	v.Set("flight.frames", config.Flight.Frames)
	v.Set("cache.size", config.Cache.Size)
	return v.WriteConfigAs(configPath)
}
