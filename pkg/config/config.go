package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/atol/config"
	ConfigFileName    = "broker.yml"
)

// BrokerConfig holds all broker configuration settings
type BrokerConfig struct {
	// CenterName is the submitting center name stamped on exported documents
	CenterName string `yaml:"center_name" json:"center_name"`

	// BrokerName is the broker name stamped on exported documents
	BrokerName string `yaml:"broker_name" json:"broker_name"`

	// ChecklistID is the sample checklist identifier injected as a default
	ChecklistID string `yaml:"checklist_id" json:"checklist_id"`

	// ProjectName is the project name injected as a default sample attribute
	ProjectName string `yaml:"project_name" json:"project_name"`

	// StudyRefname is the fallback study reference name for experiment exports
	StudyRefname string `yaml:"study_refname" json:"study_refname"`

	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// APIRecordListLimitMax is the maximum number of results for listing requests
	APIRecordListLimitMax int `yaml:"api_record_list_limit_max" json:"api_record_list_limit_max"`

	// TokenTTL is the TTL for issued tokens in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *BrokerConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *BrokerConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *BrokerConfig {
	return &BrokerConfig{
		CenterName:            "AToL",
		BrokerName:            "AToL",
		ChecklistID:           "ERC000053",
		ProjectName:           "AToL",
		StudyRefname:          "AToL_study",
		TrustedProxies:        []string{},
		APIRecordListLimitMax: 1000,
		TokenTTL:              480,
		sources:               make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*BrokerConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("BROKER_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig BrokerConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"center_name", "broker_name", "checklist_id", "project_name",
		"study_refname", "trusted_proxies", "api_record_list_limit_max",
		"token_ttl",
	}
}

func (c *BrokerConfig) applyFileConfig(file *BrokerConfig) {
	if file.CenterName != "" {
		c.CenterName = file.CenterName
		c.sources["center_name"] = "file"
	}
	if file.BrokerName != "" {
		c.BrokerName = file.BrokerName
		c.sources["broker_name"] = "file"
	}
	if file.ChecklistID != "" {
		c.ChecklistID = file.ChecklistID
		c.sources["checklist_id"] = "file"
	}
	if file.ProjectName != "" {
		c.ProjectName = file.ProjectName
		c.sources["project_name"] = "file"
	}
	if file.StudyRefname != "" {
		c.StudyRefname = file.StudyRefname
		c.sources["study_refname"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.APIRecordListLimitMax != 0 {
		c.APIRecordListLimitMax = file.APIRecordListLimitMax
		c.sources["api_record_list_limit_max"] = "file"
	}
	if file.TokenTTL != 0 {
		c.TokenTTL = file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
}

func (c *BrokerConfig) applyEnvConfig() {
	if val := os.Getenv("BROKER_CENTER_NAME"); val != "" {
		c.CenterName = val
		c.sources["center_name"] = "environment"
	}
	if val := os.Getenv("BROKER_BROKER_NAME"); val != "" {
		c.BrokerName = val
		c.sources["broker_name"] = "environment"
	}
	if val := os.Getenv("BROKER_CHECKLIST_ID"); val != "" {
		c.ChecklistID = val
		c.sources["checklist_id"] = "environment"
	}
	if val := os.Getenv("BROKER_PROJECT_NAME"); val != "" {
		c.ProjectName = val
		c.sources["project_name"] = "environment"
	}
	if val := os.Getenv("BROKER_STUDY_REFNAME"); val != "" {
		c.StudyRefname = val
		c.sources["study_refname"] = "environment"
	}
	if val := os.Getenv("BROKER_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("BROKER_API_RECORD_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIRecordListLimitMax = i
			c.sources["api_record_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("BROKER_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *BrokerConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *BrokerConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTLDuration returns the token TTL as a duration
func (c *BrokerConfig) TokenTTLDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *BrokerConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *BrokerConfig) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.TokenTTL < 0 {
		return fmt.Errorf("invalid token_ttl value: %d", c.TokenTTL)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *BrokerConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "center_name", Value: c.CenterName, Source: c.Source("center_name")},
		{Name: "broker_name", Value: c.BrokerName, Source: c.Source("broker_name")},
		{Name: "checklist_id", Value: c.ChecklistID, Source: c.Source("checklist_id")},
		{Name: "project_name", Value: c.ProjectName, Source: c.Source("project_name")},
		{Name: "study_refname", Value: c.StudyRefname, Source: c.Source("study_refname")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "api_record_list_limit_max", Value: strconv.Itoa(c.APIRecordListLimitMax), Source: c.Source("api_record_list_limit_max")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
	}
}

// FormatText returns a text representation of the configuration
func (c *BrokerConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *BrokerConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
