// Package config загружает конфигурацию воркера.
//
// Источники:
//   - окружение (MQ_*, WORKER_*) — подключение к брокеру и параметры воркера
//   - YAML-файл модели: языки, метки классов, адрес модели
//
// Любая ошибка конфигурации фатальна: воркер не начинает потребление.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/shaiso/domain-detection-worker/internal/mq"
)

// ErrInvalidConfig — некорректная конфигурация.
var ErrInvalidConfig = errors.New("invalid configuration")

// MQConfig — параметры брокера (переменные MQ_*).
type MQConfig struct {
	Host           string `env:"HOST"            envDefault:"localhost"`
	Port           int    `env:"PORT"            envDefault:"5672"`
	Username       string `env:"USERNAME"        envDefault:"guest"`
	Password       string `env:"PASSWORD"        envDefault:"guest"`
	Exchange       string `env:"EXCHANGE"        envDefault:"domain-detection"`
	Heartbeat      int    `env:"HEARTBEAT"       envDefault:"30"`
	ConnectionName string `env:"CONNECTION_NAME" envDefault:"Domain detection worker"`
}

// WorkerConfig — параметры воркера (переменные WORKER_*).
type WorkerConfig struct {
	MaxInputLength int           `env:"MAX_INPUT_LENGTH" envDefault:"10000"`
	HTTPPort       string        `env:"HTTP_PORT"        envDefault:"8082"`
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY"  envDefault:"5s"`
}

// Config — конфигурация из окружения.
type Config struct {
	MQ     MQConfig     `envPrefix:"MQ_"`
	Worker WorkerConfig `envPrefix:"WORKER_"`
}

// Load читает конфигурацию из окружения и валидирует её.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет значения.
func (c Config) Validate() error {
	switch {
	case c.MQ.Host == "":
		return fmt.Errorf("%w: MQ_HOST is empty", ErrInvalidConfig)
	case c.MQ.Port <= 0 || c.MQ.Port > 65535:
		return fmt.Errorf("%w: MQ_PORT %d out of range", ErrInvalidConfig, c.MQ.Port)
	case c.MQ.Exchange == "":
		return fmt.Errorf("%w: MQ_EXCHANGE is empty", ErrInvalidConfig)
	case c.MQ.Heartbeat < 0:
		return fmt.Errorf("%w: MQ_HEARTBEAT must not be negative", ErrInvalidConfig)
	case c.Worker.MaxInputLength <= 0:
		return fmt.Errorf("%w: WORKER_MAX_INPUT_LENGTH must be positive", ErrInvalidConfig)
	case c.Worker.ReconnectDelay <= 0:
		return fmt.Errorf("%w: WORKER_RECONNECT_DELAY must be positive", ErrInvalidConfig)
	}
	return nil
}

// Connection возвращает параметры подключения для mq.
func (c MQConfig) Connection() mq.ConnectionConfig {
	return mq.ConnectionConfig{
		Host:      c.Host,
		Port:      c.Port,
		Username:  c.Username,
		Password:  c.Password,
		Heartbeat: time.Duration(c.Heartbeat) * time.Second,
		Name:      c.ConnectionName,
	}
}
