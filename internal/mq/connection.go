package mq

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const dialTimeout = 30 * time.Second

// ConnectionConfig — параметры подключения к RabbitMQ.
type ConnectionConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// Heartbeat — интервал heartbeat (0 — значение сервера).
	Heartbeat time.Duration

	// Name — имя соединения, видимое в management UI.
	Name string
}

// URL возвращает AMQP URL без имени соединения и heartbeat.
func (c ConnectionConfig) URL() string {
	return amqp.URI{
		Scheme:   "amqp",
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		Vhost:    "/",
	}.String()
}

// Address — host:port для логов (без учётных данных).
func (c ConnectionConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AMQPDialer открывает соединения через amqp091.
type AMQPDialer struct {
	cfg ConnectionConfig
}

var _ Dialer = (*AMQPDialer)(nil)

// NewDialer создаёт Dialer для указанных параметров.
func NewDialer(cfg ConnectionConfig) *AMQPDialer {
	return &AMQPDialer{cfg: cfg}
}

// Dial устанавливает соединение. ctx ограничивает только TCP-подключение.
func (d *AMQPDialer) Dial(ctx context.Context) (Connection, error) {
	props := amqp.NewConnectionProperties()
	if d.cfg.Name != "" {
		props.SetClientConnectionName(d.cfg.Name)
	}

	conn, err := amqp.DialConfig(d.cfg.URL(), amqp.Config{
		Heartbeat:  d.cfg.Heartbeat,
		Properties: props,
		Locale:     "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			dialer := net.Dialer{Timeout: dialTimeout}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			// Дедлайн на handshake; amqp091 снимает его после открытия соединения.
			if err := conn.SetDeadline(time.Now().Add(dialTimeout)); err != nil {
				conn.Close()
				return nil, err
			}
			return conn, nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dial amqp %s: %w", d.cfg.Address(), err)
	}

	return &amqpConnection{conn: conn}, nil
}
