package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

type DataConfig struct {
	Path string `mapstructure:"path"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type SimilarityConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

type QualityConfig struct {
	MaxDistance    int     `mapstructure:"max_distance"`
	MinJaroWinkler float64 `mapstructure:"min_jaro_winkler"`
}

// Config is the full service configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Data       DataConfig       `mapstructure:"data"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Similarity SimilarityConfig `mapstructure:"similarity"`
	Quality    QualityConfig    `mapstructure:"quality"`
}

// IsProduction reports whether app.env is "production".
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("data.path", "data/centros_saude.csv")
	v.SetDefault("cors.allowed_origins", []string{
		"http://127.0.0.1:5500",
		"https://matdias0307.github.io",
	})
	v.SetDefault("cache.size", 10000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("redis.url", "")
	v.SetDefault("mongo.url", "")
	v.SetDefault("mongo.database", "health_centers")
	v.SetDefault("similarity.threshold", 0.6)
	v.SetDefault("quality.max_distance", 2)
	v.SetDefault("quality.min_jaro_winkler", 0.95)
}

// Load reads the YAML file at path, or config/app.yaml and ./app.yaml when
// path is empty. A missing file is not an error: defaults and environment
// variables (DATA_PATH, REDIS_URL, ...) still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("app")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitOrigins(cfg.CORS.AllowedOrigins)
	return &cfg, nil
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
