package config

import (
	"bytes"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults holds the built-in value of every known key.
//
// Each key can be overridden by a config file or by an environment variable
// named after the key with dots replaced by underscores, upper-cased
// (authn8.api_key -> AUTHN8_API_KEY).
var Defaults = map[string]any{
	"app.name":                                    "authn8-mcp",
	"app.version":                                 "1.0.0",
	"app.transport":                               "stdio",
	"app.server.http.address":                     ":8080",
	"app.server.http.read_timeout_seconds":        15,
	"app.server.http.read_header_timeout_seconds": 5,
	"app.server.http.write_timeout_seconds":       30,
	"app.server.http.idle_timeout_seconds":        60,
	"app.server.cors":                             "*",
	"app.server.http.auth_token":                  "",

	"authn8.api_url":           "https://api.authn8.com",
	"authn8.api_key":           "",
	"authn8.user_agent":        "authn8-mcp/1.0.0",
	"authn8.timeout_seconds":   30,
	"authn8.cache_ttl_seconds": 60,

	"log.level": "info",

	"instrument.enabled":                 false,
	"instrument.service_name":            "authn8-mcp",
	"instrument.service_version":         "1.0.0",
	"instrument.env":                     "local",
	"instrument.otlp_endpoint":           "localhost:4317",
	"instrument.otlp_secure":             false,
	"instrument.trace_sample_ratio":      1.0,
	"instrument.metric_interval_seconds": 30,
	"instrument.log_mask_fields":         "authorization,api_key,code",
}

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper builds a Viper-backed Config from Defaults, the optional config
// file at pathFile and the process environment, in increasing precedence.
//
// An empty pathFile skips the file. The config file type is inferred by
// Viper from the filename extension.
func NewViper(pathFile string) (*Viper, error) {
	v := newViper()

	if pathFile != "" {
		filename := path.Base(pathFile)
		configName := filename[:len(filename)-len(path.Ext(filename))]

		v.AddConfigPath(path.Dir(pathFile))
		v.SetConfigName(configName)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory and returns a Viper-backed Config.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetArray returns the value for key split by commas.
func (vc *Viper) GetArray(key string) []string {
	parts := strings.Split(vc.v.GetString(key), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
