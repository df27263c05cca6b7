package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

type (
	APP struct {
		Name       string
		Host       string
		Port       string
		Env        string
		JWTSecret  string
		PublicURL  string
		SessionTTL time.Duration
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Storage struct {
		UploadDir         string
		AllowedExtensions []string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		MQ      MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func Load() Config {
	app := APP{
		Name:       getEnv("SERVICE_NAME", "fileexchange"),
		Host:       getEnv("SERVICE_HOST", ""),
		Port:       getEnv("SERVICE_PORT", "8000"),
		Env:        getEnv("SERVICE_ENV", ""),
		JWTSecret:  getEnv("SERVICE_JWT_SECRET", ""),
		PublicURL:  getEnv("SERVICE_PUBLIC_URL", "http://localhost:8000"),
		SessionTTL: parseDuration(getEnv("SERVICE_SESSION_TTL", "24h")),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	storage := Storage{
		UploadDir:         getEnv("STORAGE_UPLOAD_DIR", "uploads"),
		AllowedExtensions: splitList(getEnv("STORAGE_ALLOWED_EXTENSIONS", "pptx,docx,xlsx")),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", ""),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		MQ:      mq,
	}
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
