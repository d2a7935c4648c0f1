package config

import (
	"os"

	"github.com/alttpo/adn"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	MaxDepth      int    `yaml:"maxDepth"`
	StripComments bool   `yaml:"stripComments"`
	Color         bool   `yaml:"color"`
	LogLevel      string `yaml:"logLevel"`
}

var (
	ErrConfigFileUnreadable     = errors.New("config file is unreadable")
	ErrConfigFileUnmarshallable = errors.New("config file is unmarshallable")
	ErrMaxDepthInvalid          = errors.New("maxDepth must not be negative")
	ErrLogLevelInvalid          = errors.New("logLevel must be one of debug, info, warn, error")
)

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func Default() Config {
	return Config{
		MaxDepth: adn.DefaultMaxDepth,
		Color:    true,
		LogLevel: "info",
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(ErrConfigFileUnreadable, err.Error())
	}

	cfg := Default()
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.Wrap(ErrConfigFileUnmarshallable, err.Error())
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return ErrMaxDepthInvalid
	}
	if !logLevels[c.LogLevel] {
		return errors.Wrapf(ErrLogLevelInvalid, "got %q", c.LogLevel)
	}
	return nil
}

// Parser returns the parser configured by c. A MaxDepth of 0 selects the
// default depth.
func (c Config) Parser() adn.Parser {
	return adn.NewParser(c.MaxDepth)
}
