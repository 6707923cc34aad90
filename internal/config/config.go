package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Postgres   Postgres   `yaml:"postgres"`
	Redis      Redis      `yaml:"redis"`
	JWT        JWT        `yaml:"jwt"`
	ES         ES         `yaml:"elasticsearch"`
	Minio      Minio      `yaml:"minio"`
	Theme      Theme      `yaml:"theme"`
}

type Theme struct {
	WWWRoot            string        `yaml:"www_root" env:"SNAP_WWW_ROOT" env-default:"http://localhost"`
	ListLargeThreshold int           `yaml:"list_large_threshold" env-default:"10"`
	StructureCacheTTL  time.Duration `yaml:"structure_cache_ttl" env-default:"10m"`
	AllowOrigins       []string      `yaml:"allow_origins" env-default:"http://localhost:5173"`
}

type Redis struct {
	Addr           string        `yaml:"addr" env-default:"localhost:6379"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env-default:"30s"`
	RetryInterval  time.Duration `yaml:"retry_interval" env-default:"2s"`
	MaxWait        time.Duration `yaml:"max_wait" env-default:"10s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env-default:"2s"`
	EventsChannel  string        `yaml:"events_channel" env-default:"snap:events:user_deleted"`
	CourseChannel  string        `yaml:"course_events_channel" env-default:"snap:events:course_changed"`
}

type Minio struct {
	Endpoint  string                  `yaml:"endpoint" env-default:"minio:9000"`
	AccessKey string                  `yaml:"access_key"`
	SecretKey string                  `yaml:"secret_key"`
	UseSSL    bool                    `yaml:"use_ssl"`
	Region    string                  `yaml:"region"`
	Buckets   map[string]BucketConfig `yaml:"buckets"`
}

type BucketConfig struct {
	Name       string        `yaml:"name"`
	PresignTTL time.Duration `yaml:"presign_ttl"`
}

type ES struct {
	Hosts    []string `yaml:"hosts"`
	Index    string   `yaml:"index" env-default:"snap_courses"`
	Password string   `yaml:"password"`
}

// JWT holds the key used to verify access tokens issued by the host.
type JWT struct {
	SecretKey string `yaml:"secret_key" env:"SNAP_JWT_SECRET"`
	Issuer    string `yaml:"issuer"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8081"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Can not read config file %s", err)
	}
	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
