package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// MigrationsPath: источник миграций golang-migrate (например, "file://migrations")
	MigrationsPath string `mapstructure:"migrationsPath"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Enabled: без Redis сервис работает без кеша категорий и без rate limiting
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт).
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries int `mapstructure:"max_retries"`

	// CategoryCacheTTL: время жизни кеша карты категорий в секундах
	CategoryCacheTTL int `mapstructure:"categoryCacheTTL"`
}

// AuthConfig содержит настройки защиты изменяющих эндпоинтов
type AuthConfig struct {
	// AdminSecret: HMAC-секрет для админских JWT. Пустая строка отключает проверку.
	AdminSecret   string `mapstructure:"admin_secret"`
	TokenTTLHours int    `mapstructure:"tokenTTLHours"`
}

// RateLimitConfig содержит лимиты запросов (применяются только при включенном Redis)
type RateLimitConfig struct {
	QuizMaxRequests  int `mapstructure:"quizMaxRequests"`
	WriteMaxRequests int `mapstructure:"writeMaxRequests"`
	WindowSec        int `mapstructure:"windowSec"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate и lib/pq.
// Учетные данные и имя базы экранируются.
func (d *DatabaseConfig) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// CategoryCacheTTLDuration возвращает TTL кеша категорий
func (r *RedisConfig) CategoryCacheTTLDuration() time.Duration {
	return time.Duration(r.CategoryCacheTTL) * time.Second
}

// Window возвращает окно rate limiting
func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSec) * time.Second
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, без глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readTimeout", 10)
	vip.SetDefault("server.writeTimeout", 10)
	vip.SetDefault("server.allowedOrigins", []string{"*"})
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrationsPath", "file://migrations")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.categoryCacheTTL", 300)
	vip.SetDefault("auth.tokenTTLHours", 24)
	vip.SetDefault("ratelimit.quizMaxRequests", 120)
	vip.SetDefault("ratelimit.writeMaxRequests", 30)
	vip.SetDefault("ratelimit.windowSec", 60)

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrationsPath", "DATABASE_MIGRATIONS_PATH")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("auth.admin_secret", "AUTH_ADMIN_SECRET")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.allowedOrigins", "SERVER_ALLOWED_ORIGINS")

	// 3. Файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("[Config] Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию (файл + env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("[Config] Database: %s@%s:%s/%s (sslmode=%s)", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
		log.Printf("[Config] Redis enabled: %t (mode=%s)", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("[Config] Admin guard enabled: %t", cfg.Auth.AdminSecret != "")
		log.Printf("[Config] Server port: %s", cfg.Server.Port)
	}

	// 5. Проверка обязательных параметров
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}

	return &cfg, nil
}
