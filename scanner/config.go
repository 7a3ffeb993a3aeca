package scanner

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"

	"github.com/garlicgarrison/opening-scanner/explorer"
)

type Config struct {
	EnginePath    string `yaml:"engine_path"`
	EngineDepth   int    `yaml:"engine_depth"`
	EngineThreads int    `yaml:"engine_threads"`
	PoolLimit     int    `yaml:"pool_limit"`
	PoolTimeoutMS int    `yaml:"pool_timeout_ms"`

	Explorer explorer.Config `yaml:"explorer"`
}

func DefaultConfig() Config {
	return Config{
		EnginePath:    "stockfish",
		EngineDepth:   15,
		EngineThreads: 4,
		PoolLimit:     1,
		PoolTimeoutMS: 10,
		Explorer:      explorer.DefaultConfig(),
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	yamlConfig, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	err = yaml.Unmarshal(yamlConfig, &cfg)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}
