package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"APP_ENV" env-default:"local"`
	HTTP HTTPConfig
	DB   DBConfig
	Redis
	Kafka
	Cloudinary
	Quota

	JWTSecret      string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL       time.Duration `env:"JWT_TTL" env-default:"24h"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" env-default:"5242880"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" env-default:"24h"`
	FinalizeLock   time.Duration `env:"FINALIZE_LOCK_TTL" env-default:"30s"`
}

type HTTPConfig struct {
	Port         string        `env:"PORT" env-default:"3000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type DBConfig struct {
	Host       string `env:"DB_HOST" env-default:"localhost"`
	User       string `env:"DB_USER" env-default:"postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME" env-default:"motivari"`
	Port       string `env:"DB_PORT" env-default:"5432"`
	SSLMode    string `env:"DB_SSLMODE" env-default:"disable"`
	MaxRetries int    `env:"DB_MAX_RETRIES" env-default:"5"`
}

type Redis struct {
	RedisAddr string `env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Kafka struct {
	KafkaBroker  string        `env:"KAFKA_BROKER" env-default:"localhost:9092"`
	KafkaGroupID string        `env:"KAFKA_GROUP_ID" env-default:"motivari-evidence-release"`
	OutboxPoll   time.Duration `env:"OUTBOX_POLL_INTERVAL" env-default:"3s"`
}

type Cloudinary struct {
	CloudName    string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey       string `env:"CLOUDINARY_API_KEY"`
	APISecret    string `env:"CLOUDINARY_API_SECRET"`
	UploadFolder string `env:"CLOUDINARY_UPLOAD_FOLDER" env-default:"motivari-scolare"`
}

// Quota holds the school-year constants used by hour computations.
type Quota struct {
	HoursPerSchoolDay int `env:"HOURS_PER_SCHOOL_DAY" env-default:"6"`
	AnnualQuotaHours  int `env:"ANNUAL_QUOTA_HOURS" env-default:"42"`
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.HoursPerSchoolDay <= 0 {
		return nil, fmt.Errorf("config.Load: HOURS_PER_SCHOOL_DAY must be positive")
	}
	if cfg.AnnualQuotaHours < 0 {
		return nil, fmt.Errorf("config.Load: ANNUAL_QUOTA_HOURS must not be negative")
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
