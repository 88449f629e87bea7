package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	apiKeyENV         = "KRAKEN_API_KEY"
	apiSecretENV      = "KRAKEN_API_SECRET"

	// credentialsFile — KEY=VALUE файл в домашней директории,
	// приоритетнее переменных окружения.
	credentialsFile = ".krakenapi"
)

// Config — иммутабельная конфигурация бота. Загружается один раз на старте;
// источники по возрастанию приоритета: дефолты -> yaml -> env.
type Config struct {
	// Торговля
	Pair            string  `yaml:"pair"`              // TRADING_PAIR
	BuyPrice        float64 `yaml:"buy_price"`         // BUY_PRICE
	SellPrice       float64 `yaml:"sell_price"`        // SELL_PRICE
	DollarsPerTrade float64 `yaml:"dollars_per_trade"` // DOLLARS_BUY_AMOUNT
	// SellAll: true — продаём весь баланс базового актива,
	// false — продаём DOLLARS_BUY_AMOUNT по курсу sell_price.
	SellAll bool `yaml:"sell_all"` // SELL_ALL
	// MinTradeSize — ниже этого объёма sell не выставляем,
	// чтобы не ловить "volume minimum not met" от биржи.
	MinTradeSize float64 `yaml:"min_trade_size"` // MIN_CRYPTO_TRADE_SIZE

	// Цикл
	CheckIntervalSec int `yaml:"check_interval_sec"` // CHECK_INTERVAL / POLL_INTERVAL

	// Наблюдаемость
	LogLevel   string `yaml:"log_level"`   // LOG_LEVEL
	HealthAddr string `yaml:"health_addr"` // HEALTH_ADDR

	Telegram struct {
		Token  string `yaml:"token"`   // TELEGRAM_BOT_TOKEN
		ChatID int64  `yaml:"chat_id"` // TELEGRAM_CHAT_ID
	} `yaml:"telegram"`

	Jaeger struct {
		Host string `yaml:"host"` // JAEGER_AGENT_HOST
		Port int    `yaml:"port"` // JAEGER_AGENT_PORT
	} `yaml:"jaeger"`

	// Креды не сериализуем.
	APIKey    string `yaml:"-"`
	APISecret string `yaml:"-"`

	// Итоговая пауза между тиками. POLL_INTERVAL (duration-строка)
	// перекрывается CHECK_INTERVAL (секунды).
	CheckInterval time.Duration `yaml:"-"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{
		Pair:             "XRPUSD",
		BuyPrice:         0.45,
		SellPrice:        0.60,
		DollarsPerTrade:  100,
		MinTradeSize:     0.00001,
		CheckIntervalSec: 60,
		LogLevel:         "info",
		HealthAddr:       ":8080",
	}
	cfg.Jaeger.Host = "localhost"
	cfg.Jaeger.Port = 6831

	if name := os.Getenv(configFilePathENV); name != "" {
		file, err := os.Open(filepath.Join("configs", name))
		if err != nil {
			return nil, errors.Wrap(err, "open config file")
		}
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, errors.Wrap(err, "decode config file")
		}
	}

	cfg.Pair = strings.ToUpper(getenvDefault("TRADING_PAIR", cfg.Pair))
	cfg.BuyPrice = floatFromEnv("BUY_PRICE", cfg.BuyPrice)
	cfg.SellPrice = floatFromEnv("SELL_PRICE", cfg.SellPrice)
	cfg.DollarsPerTrade = floatFromEnv("DOLLARS_BUY_AMOUNT", cfg.DollarsPerTrade)
	cfg.SellAll = boolFromEnv("SELL_ALL", cfg.SellAll)
	cfg.MinTradeSize = floatFromEnv("MIN_CRYPTO_TRADE_SIZE", cfg.MinTradeSize)
	cfg.LogLevel = getenvDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.HealthAddr = getenvDefault("HEALTH_ADDR", cfg.HealthAddr)
	cfg.Telegram.Token = getenvDefault("TELEGRAM_BOT_TOKEN", cfg.Telegram.Token)
	cfg.Jaeger.Host = getenvDefault("JAEGER_AGENT_HOST", cfg.Jaeger.Host)
	cfg.Jaeger.Port = intFromEnv("JAEGER_AGENT_PORT", cfg.Jaeger.Port)

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}

	cfg.CheckInterval = time.Duration(cfg.CheckIntervalSec) * time.Second
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CheckInterval = d
		}
	}
	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CheckInterval = time.Duration(n) * time.Second
		}
	}

	if err := cfg.loadCredentials(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate — фатальные проверки до старта цикла.
func (c *Config) Validate() error {
	if c.APIKey == "" || c.APISecret == "" {
		return errors.Errorf("%s and %s must be set in ~/%s or env", apiKeyENV, apiSecretENV, credentialsFile)
	}
	if c.BuyPrice <= 0 {
		return errors.New("BUY_PRICE must be greater than 0")
	}
	if c.SellPrice <= 0 {
		return errors.New("SELL_PRICE must be greater than 0")
	}
	if c.DollarsPerTrade <= 0 {
		return errors.New("DOLLARS_BUY_AMOUNT must be greater than 0")
	}
	if c.CheckInterval <= 0 {
		return errors.New("CHECK_INTERVAL must be greater than 0")
	}
	return nil
}

// loadCredentials: сперва ~/.krakenapi, иначе окружение.
func (c *Config) loadCredentials() error {
	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, credentialsFile)
		if key, secret, ok := parseCredentialsFile(path); ok {
			c.APIKey, c.APISecret = key, secret
			return nil
		}
	}
	c.APIKey = os.Getenv(apiKeyENV)
	c.APISecret = os.Getenv(apiSecretENV)
	return nil
}

func parseCredentialsFile(path string) (key, secret string, ok bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", "", false
	}
	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(k) {
		case apiKeyENV:
			key = strings.TrimSpace(v)
		case apiSecretENV:
			secret = strings.TrimSpace(v)
		}
	}
	return key, secret, key != "" || secret != ""
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := strings.ToLower(os.Getenv(key)); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
