package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mediavault/mediavault/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		Port:         3000,
		AccessCode:   "", // generated on first load
		MediaRoot:    "media",
		DatabaseDSN:  "",
		RateLimitRPS: 10,
		RateBurst:    100,
	}
}

func LoadConfig(path string) (types.AppConfig, error) {
	var configChanged bool
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, create with default values and a fresh access code
			cfg.AccessCode = GenerateAccessCode()
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file with generated access code")
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	if cfg.AccessCode == "" {
		cfg.AccessCode = GenerateAccessCode()
		DefaultLogger.Infof("No access code configured, generated a new one")
		configChanged = true
	}
	if cfg.MediaRoot == "" {
		cfg.MediaRoot = "media"
		configChanged = true
	}
	if cfg.Port <= 0 {
		cfg.Port = 3000
		configChanged = true
	}

	if configChanged {
		if writeErr := writeConfig(path, cfg); writeErr != nil {
			DefaultLogger.Warnf("Failed to update config file: %v", writeErr)
		}
	}

	CurrentConfig = cfg
	return cfg, nil
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}
