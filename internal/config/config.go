package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Company  CompanyConfig  `mapstructure:"company"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// AppConfig holds the default source and output directories.
type AppConfig struct {
	SourceDir string `mapstructure:"source_dir"`
	OutputDir string `mapstructure:"output_dir"`
}

// CompanyConfig is the statement header block.
type CompanyConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	Phone   string `mapstructure:"phone"`
	Fax     string `mapstructure:"fax"`
}

// ServerConfig holds the local web shell configuration.
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	OpenBrowser bool   `mapstructure:"open_browser"`
}

// DatabaseConfig holds the run-history store configuration. An empty
// path disables history.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configuration from configPath and the environment. A
// missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values. The company block
// defaults match the printed letterhead.
func setDefaults() {
	viper.SetDefault("app.source_dir", "raw-data")
	viper.SetDefault("app.output_dir", "output")

	viper.SetDefault("company.name", "百惠行对账单")
	viper.SetDefault("company.address", "东莞市黄江镇华南塑胶城区132号")
	viper.SetDefault("company.phone", "(0769) 83631717")
	viper.SetDefault("company.fax", "83637787")

	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8391)
	viper.SetDefault("server.open_browser", true)

	viper.SetDefault("database.path", "")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "console")
}

// bindEnvVars binds environment variables to configuration.
func bindEnvVars() {
	viper.BindEnv("app.source_dir", "STATEMENTS_SOURCE_DIR")
	viper.BindEnv("app.output_dir", "STATEMENTS_OUTPUT_DIR")
	viper.BindEnv("company.name", "COMPANY_NAME")
	viper.BindEnv("company.address", "COMPANY_ADDRESS")
	viper.BindEnv("database.path", "STATEMENTS_DB_PATH")
}
