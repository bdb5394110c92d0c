package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/joho/godotenv"
)

// Config armazena as configurações da aplicação
type Config struct {
	// Banco de dados
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Servidor
	Port     string
	GinMode  string
	TokenAPI string

	// Logging
	LogLevel string
	LogJSON  bool

	// Painel administrativo (rotas desabilitadas quando vazio)
	AdminUser         string
	AdminPasswordHash string

	// Padrões dos gráficos, usados apenas quando a requisição não
	// especifica unidade/política explicitamente
	DefaultUnit      model.Unit
	DefaultDayPolicy model.DayPolicy

	// Cache e limites
	ChartCacheTTL     time.Duration
	RateLimitRPS      float64
	RateLimitBurst    int
	WSRefreshInterval time.Duration
}

// Load carrega as configurações do ambiente
func Load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "burndown"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		TokenAPI: os.Getenv("TOKEN_API"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnv("LOG_JSON", "true") == "true",

		AdminUser:         os.Getenv("ADMIN_USER"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	// Validações obrigatórias
	if cfg.TokenAPI == "" {
		return nil, errors.New("TOKEN_API não configurado")
	}

	// Padrões de unidade e política de dias: valores inválidos derrubam
	// o startup, nunca são substituídos silenciosamente
	unit, err := model.ParseUnit(getEnv("DEFAULT_UNIT", "hours"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_UNIT: %w", err)
	}
	cfg.DefaultUnit = unit

	policy, err := model.ParseDayPolicy(getEnv("DEFAULT_DAY_POLICY", "all"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_DAY_POLICY: %w", err)
	}
	cfg.DefaultDayPolicy = policy

	cfg.ChartCacheTTL, err = getDuration("CHART_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.WSRefreshInterval, err = getDuration("WS_REFRESH_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return nil, err
	}

	cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}

	// Zeros deixam o pacote database aplicar seus padrões
	cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 0)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 0)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return f, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return i, nil
}
