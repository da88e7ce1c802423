package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default target: the Balancer V2 Vault on Ethereum mainnet and its
// FlashLoan event signature, served by the public HyperSync endpoint.
const (
	DefaultServiceURL = "https://eth.hypersync.xyz"
	DefaultContract   = "0xBA12222222228d8Ba445958a75a0704d566BF2C8"
	DefaultTopic0     = "0x0d7d75e01ab95780d3cd1c8ec0dd6c2ce19e3a20427eec8bf53283b6fb8e95f0"
)

// HarvestConfig holds configuration for the harvest command, merged from
// flags, environment, and an optional config file.
type HarvestConfig struct {
	ServiceURL        string
	BearerToken       string
	Contract          string
	Topic0            string
	FromBlock         uint64
	ToBlock           uint64
	Tokens            []string
	TokensExtra       map[string]string
	Out               string
	EventsOut         string
	PGDSN             string
	Checkpoint        string
	CheckpointEnabled bool
	Timeout           time.Duration
	LogLevel          string
}

// Load merges config file, environment variables, and flags into HarvestConfig.
func Load(cfgFile string, flags *pflag.FlagSet) (HarvestConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return HarvestConfig{}, err
	}

	v.SetDefault("service-url", DefaultServiceURL)
	v.SetDefault("contract", DefaultContract)
	v.SetDefault("topic0", DefaultTopic0)
	v.SetDefault("out", "./data/flashloans.csv")
	v.SetDefault("checkpoint", "./data/checkpoint.json")
	v.SetDefault("checkpoint-enabled", false)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log-level", "info")

	cfg := HarvestConfig{
		ServiceURL:        v.GetString("service-url"),
		BearerToken:       resolveBearerToken(v.GetString("api-key")),
		Contract:          v.GetString("contract"),
		Topic0:            v.GetString("topic0"),
		FromBlock:         v.GetUint64("from"),
		ToBlock:           v.GetUint64("to"),
		Tokens:            getStringSlice(v, "token"),
		TokensExtra:       getStringMap(v, "token-extra"),
		Out:               v.GetString("out"),
		EventsOut:         v.GetString("events-out"),
		PGDSN:             v.GetString("pg-dsn"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		Timeout:           v.GetDuration("timeout"),
		LogLevel:          v.GetString("log-level"),
	}

	return cfg, nil
}

// ReportConfig holds configuration for the report command.
type ReportConfig struct {
	In       string
	Tokens   []string
	LogLevel string
}

// LoadReport merges config file, environment variables, and flags into ReportConfig.
func LoadReport(cfgFile string, flags *pflag.FlagSet) (ReportConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return ReportConfig{}, err
	}

	v.SetDefault("log-level", "info")

	cfg := ReportConfig{
		In:       v.GetString("in"),
		Tokens:   getStringSlice(v, "token"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("FLASHSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

// resolveBearerToken falls back to the credential variables the service's
// own tooling reads. An empty result means unauthenticated mode.
func resolveBearerToken(fromConfig string) string {
	if fromConfig != "" {
		return fromConfig
	}
	if token := os.Getenv("ENVIO_API_KEY"); token != "" {
		return token
	}
	return os.Getenv("ENVIO_API_TOKEN")
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case []string:
		return parseStringMap(strings.Join(typed, ","))
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, item := range typed {
			out[k] = fmt.Sprintf("%v", item)
		}
		return out
	case string:
		return parseStringMap(typed)
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	pairs := strings.Split(input, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
