package config

import (
	"moneymarket/core"

	configUtil "github.com/fox-one/pkg/config"
)

const (
	defaultPort     = 7778
	defaultLocation = "UTC"
)

// Load load config file, MONEYMARKET_* env overrides the yaml values
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("MONEYMARKET")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultApp(config)
	return nil
}

func defaultApp(config *core.Config) {
	if config.App.Name == "" {
		config.App.Name = "moneymarket"
	}

	if config.App.Port == 0 {
		config.App.Port = defaultPort
	}

	if config.App.Location == "" {
		config.App.Location = defaultLocation
	}
}
