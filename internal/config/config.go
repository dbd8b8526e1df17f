package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config - конфигурация HTTP-сервиса посещаемости
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" envDefault:"10"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass     string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Последняя точка стажера в Redis и кеш компаний
	LocationTTL     time.Duration `env:"LOCATION_TTL" envDefault:"24h"`
	CompanyCacheTTL time.Duration `env:"COMPANY_CACHE_TTL" envDefault:"5m"`

	// Часовой пояс, в котором считается "сегодня" для DTR
	Timezone *time.Location `env:"TIMEZONE" envDefault:"Local"`

	// Токены доступа: token -> ID стажера
	APITokens map[string]uuid.UUID `env:"API_TOKENS"`
}

// TrackerConfig - конфигурация клиента стажера (cmd/tracker)
type TrackerConfig struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	APIToken       string        `env:"API_TOKEN"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`

	StudentID uuid.UUID `env:"STUDENT_ID"`
	CompanyID uuid.UUID `env:"COMPANY_ID"`

	BroadcastInterval time.Duration `env:"BROADCAST_INTERVAL" envDefault:"5s"`
	PollInterval      time.Duration `env:"POLL_INTERVAL" envDefault:"10s"`
	GPSTimeout        time.Duration `env:"GPS_TIMEOUT" envDefault:"20s"`
	GPSMaxAge         time.Duration `env:"GPS_MAX_AGE" envDefault:"1s"`

	GeocoderURL string `env:"GEOCODER_URL" envDefault:"https://nominatim.openstreetmap.org"`
	TileURL     string `env:"TILE_URL" envDefault:"https://tile.openstreetmap.org/{z}/{x}/{y}.png"`
	UserAgent   string `env:"USER_AGENT" envDefault:"ojt-tracker/1.0"`

	Timezone *time.Location `env:"TIMEZONE" envDefault:"Local"`
}

// LoadConfig загружает конфигурацию сервера из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	tz, err := getEnvAsLocation("TIMEZONE", "Local")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		LocationTTL:       getEnvAsDuration("LOCATION_TTL", 24*time.Hour),
		CompanyCacheTTL:   getEnvAsDuration("COMPANY_CACHE_TTL", 5*time.Minute),
		Timezone:          tz,
	}

	cfg.APITokens, err = ParseAPITokens(os.Getenv("API_TOKENS"))
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// LoadTrackerConfig загружает конфигурацию клиента стажера
func LoadTrackerConfig() (*TrackerConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	tz, err := getEnvAsLocation("TIMEZONE", "Local")
	if err != nil {
		return nil, err
	}
	studentID, err := getEnvAsUUID("STUDENT_ID")
	if err != nil {
		return nil, err
	}
	companyID, err := getEnvAsUUID("COMPANY_ID")
	if err != nil {
		return nil, err
	}

	cfg := &TrackerConfig{
		APIBaseURL:        os.Getenv("API_BASE_URL"),
		APIToken:          os.Getenv("API_TOKEN"),
		RequestTimeout:    getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StudentID:         studentID,
		CompanyID:         companyID,
		BroadcastInterval: getEnvAsDuration("BROADCAST_INTERVAL", 5*time.Second),
		PollInterval:      getEnvAsDuration("POLL_INTERVAL", 10*time.Second),
		GPSTimeout:        getEnvAsDuration("GPS_TIMEOUT", 20*time.Second),
		GPSMaxAge:         getEnvAsDuration("GPS_MAX_AGE", time.Second),
		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		TileURL:           getEnv("TILE_URL", "https://tile.openstreetmap.org/{z}/{x}/{y}.png"),
		UserAgent:         getEnv("USER_AGENT", "ojt-tracker/1.0"),
		Timezone:          tz,
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is required")
	}

	return cfg, nil
}

// ParseAPITokens разбирает строку вида "token1:studentID1,token2:studentID2"
func ParseAPITokens(raw string) (map[string]uuid.UUID, error) {
	tokens := make(map[string]uuid.UUID)
	if strings.TrimSpace(raw) == "" {
		return tokens, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, id, ok := strings.Cut(pair, ":")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return nil, fmt.Errorf("API_TOKENS: entry %q must look like token:studentID", pair)
		}
		studentID, err := uuid.Parse(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("API_TOKENS: invalid student id for token %q: %w", token, err)
		}
		tokens[token] = studentID
	}
	return tokens, nil
}

// loadDotEnv подхватывает .env, если он есть
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

func getEnvAsLocation(key, defaultValue string) (*time.Location, error) {
	name := getEnv(key, defaultValue)
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%s: unknown time zone %q: %w", key, name, err)
	}
	return loc, nil
}

// getEnvAsUUID - пустое значение дает uuid.Nil
func getEnvAsUUID(key string) (uuid.UUID, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", key, err)
	}
	return id, nil
}
