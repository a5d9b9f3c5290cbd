package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"vagasboard-engine/internal/board"
	"vagasboard-engine/internal/store"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Provider struct {
		CID         string `yaml:"cid"`
		FeedBaseURL string `yaml:"feed_base_url"`
		Limit       int    `yaml:"limit"`
	} `yaml:"provider"`

	Cache struct {
		Backend    string            `yaml:"backend"`
		TTLMinutes int               `yaml:"ttl_minutes"`
		Redis      store.RedisConfig `yaml:"redis"`
	} `yaml:"cache"`

	Board board.Settings `yaml:"board"`

	Updater struct {
		Enabled       bool   `yaml:"enabled"`
		Repo          string `yaml:"repo"`
		IntervalHours int    `yaml:"interval_hours"`
	} `yaml:"updater"`
}

// Load reads a yaml config. A .env file next to the process, if present,
// seeds the environment first; ${VAR} references in the yaml are expanded so
// secrets like the redis password never live in the file itself.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	expanded := os.ExpandEnv(string(b))
	err = yaml.Unmarshal([]byte(expanded), &cfg)
	return cfg, err
}
