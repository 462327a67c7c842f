package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig ConfigYAML
	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	config := yamlConfig.toData()
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	y.config = config
	return config, nil
}

func (y *YAMLProvider) loaded() (*ConfigData, error) {
	if y.config == nil {
		return y.LoadConfig()
	}
	return y.config, nil
}

// GetObservers returns the configured observers
func (y *YAMLProvider) GetObservers() ([]ObserverData, error) {
	config, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return config.Observers, nil
}

// GetServer returns the REST server settings
func (y *YAMLProvider) GetServer() (*ServerData, error) {
	config, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &config.Server, nil
}

// GetStorage returns the cache settings
func (y *YAMLProvider) GetStorage() (*StorageData, error) {
	config, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &config.Storage, nil
}

// IsReadOnly returns true since YAML files are treated as read-only
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags
type ConfigYAML struct {
	Observers []ObserverYAML `yaml:"observers"`
	Server    ServerYAML     `yaml:"server,omitempty"`
	Storage   StorageYAML    `yaml:"storage,omitempty"`
}

type ObserverYAML struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	TimeZone  string  `yaml:"time-zone,omitempty"`
}

type ServerYAML struct {
	ListenAddr string `yaml:"listen-addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
}

type StorageYAML struct {
	CachePath    string `yaml:"cache-path,omitempty"`
	PrefetchDays int    `yaml:"prefetch-days,omitempty"`
}

func (c ConfigYAML) toData() *ConfigData {
	config := &ConfigData{
		Observers: make([]ObserverData, len(c.Observers)),
		Server: ServerData{
			ListenAddr: c.Server.ListenAddr,
			Port:       c.Server.Port,
			Cert:       c.Server.Cert,
			Key:        c.Server.Key,
		},
		Storage: StorageData{
			CachePath:    c.Storage.CachePath,
			PrefetchDays: c.Storage.PrefetchDays,
		},
	}
	for i, o := range c.Observers {
		config.Observers[i] = ObserverData{
			Name:      o.Name,
			Latitude:  o.Latitude,
			Longitude: o.Longitude,
			TimeZone:  o.TimeZone,
		}
	}
	return config
}
