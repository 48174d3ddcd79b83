package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string       `yaml:"env" env:"ENV" env-default:"local"`
	DatabaseUrl string       `yaml:"database_url" env:"DATABASE_URL"`
	Server      ServerConfig `yaml:"rest"`
	JWT         JWTSecret    `yaml:"jwt"`
	Share       ShareConfig  `yaml:"share"`
	Upload      UploadConfig `yaml:"upload"`
	Player      PlayerConfig `yaml:"player"`
	CORS        CORSConfig   `yaml:"cors"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"REST_PORT" env-default:"8080"`
}

type JWTSecret struct {
	Secret string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
}

type ShareConfig struct {
	BaseURL string `yaml:"base_url" env:"SHARE_BASE_URL" env-default:"http://localhost:3000"`
}

type UploadConfig struct {
	Dir       string `yaml:"dir" env:"UPLOAD_DIR"`
	BaseURL   string `yaml:"base_url" env:"UPLOAD_BASE_URL" env-default:"/uploads"`
	MaxSizeMB int    `yaml:"max_size_mb" env:"UPLOAD_MAX_SIZE_MB" env-default:"10"`
}

type PlayerConfig struct {
	SessionTTL    time.Duration `yaml:"session_ttl" env:"PLAYER_SESSION_TTL" env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"PLAYER_SWEEP_INTERVAL" env-default:"1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

func MustLoad() *Config {
	path := fetchConfigPath()

	if path == "" {
		panic("Config file not found in path")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("Config file not found in path")
	}

	var config Config
	log.Printf("Loading config from %s", path)
	if err := cleanenv.ReadConfig(path, &config); err != nil {
		panic(err)
	}
	return &config
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "./config/local.yaml", "config path")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
