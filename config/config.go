package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Payment    PaymentConfig
	Settlement SettlementConfig
	CheckIn    CheckInConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type PaymentConfig struct {
	// Provider: "stripe" 或 "mock"（本地開發、測試用）
	Provider        string
	StripeSecretKey string
	Currency        string
}

type SettlementConfig struct {
	// EnforceCapacity: 結帳時是否以活動容量擋單
	EnforceCapacity bool
}

type CheckInConfig struct {
	// DebounceWindow: 相同掃描 payload 的去抖動窗口（啟發式，正確性由 CAS 保證）
	DebounceWindow time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database:   GetDatabaseConfig(),
		Redis:      GetRedisConfig(),
		Auth:       GetAuthConfig(),
		Payment:    GetPaymentConfig(),
		Settlement: GetSettlementConfig(),
		CheckIn:    GetCheckInConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database:   *testConfig,
		Redis:      testRedisConfig,
		Auth:       AuthConfig{JWTSecret: "test-secret"},
		Payment:    PaymentConfig{Provider: "mock", Currency: "usd"},
		Settlement: SettlementConfig{EnforceCapacity: true},
		CheckIn:    CheckInConfig{DebounceWindow: 2 * time.Second},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
	}
}

func GetPaymentConfig() PaymentConfig {
	return PaymentConfig{
		Provider:        getEnv("PAYMENT_PROVIDER", "mock"),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		Currency:        getEnv("PAYMENT_CURRENCY", "usd"),
	}
}

func GetSettlementConfig() SettlementConfig {
	enforce, err := strconv.ParseBool(getEnv("SETTLEMENT_ENFORCE_CAPACITY", "true"))
	if err != nil {
		panic(err)
	}
	return SettlementConfig{EnforceCapacity: enforce}
}

func GetCheckInConfig() CheckInConfig {
	ms, err := strconv.Atoi(getEnv("CHECKIN_DEBOUNCE_MS", "2000"))
	if err != nil {
		panic(err)
	}
	return CheckInConfig{DebounceWindow: time.Duration(ms) * time.Millisecond}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
