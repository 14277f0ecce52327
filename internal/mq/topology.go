package mq

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// DefaultExchange — обменник по умолчанию.
const DefaultExchange Exchange = "domain-detection"

const fingerprintLength = 8

// Topology — производная топология воркера.
type Topology struct {
	Exchange    Exchange
	RoutingKeys []RoutingKey
	Queue       Queue
}

// BuildTopology выводит routing keys и имя очереди из набора языков.
//
// Ключи: "{exchange}.{lang}", отсортированы лексикографически.
// Очередь: "{exchange}_{первые 8 hex символов SHA-256 от ['k1', 'k2', ...]}".
// Результат не зависит от порядка языков на входе.
func BuildTopology(exchange string, languages []string) Topology {
	seen := make(map[string]struct{}, len(languages))
	keys := make([]string, 0, len(languages))
	for _, lang := range languages {
		key := exchange + "." + lang
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	routingKeys := make([]RoutingKey, len(keys))
	for i, k := range keys {
		routingKeys[i] = RoutingKey(k)
	}

	return Topology{
		Exchange:    Exchange(exchange),
		RoutingKeys: routingKeys,
		Queue:       Queue(exchange + "_" + fingerprint(keys)),
	}
}

// fingerprint — короткий хеш канонической записи списка ключей.
func fingerprint(keys []string) string {
	canonical := "[]"
	if len(keys) > 0 {
		canonical = "['" + strings.Join(keys, "', '") + "']"
	}

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}

// Declare объявляет exchange, очередь и привязки. Операции идемпотентны.
func (t Topology) Declare(ch Channel) error {
	// 1. Exchange
	err := ch.ExchangeDeclare(
		string(t.Exchange), // name
		"direct",           // type
		false,              // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", t.Exchange, err)
	}

	// 2. Queue
	_, err = ch.QueueDeclare(
		string(t.Queue), // name
		false,           // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", t.Queue, err)
	}

	// 3. Bindings
	for _, key := range t.RoutingKeys {
		err := ch.QueueBind(
			string(t.Queue),    // queue name
			string(key),        // routing key
			string(t.Exchange), // exchange
			false,              // no-wait
			nil,                // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", t.Queue, key, err)
		}
	}

	return nil
}

// Info возвращает описание топологии для логирования и CLI.
func (t Topology) Info() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (direct)\n", t.Exchange)
	fmt.Fprintf(&b, "└── %s\n", t.Queue)
	for i, key := range t.RoutingKeys {
		branch := "├──"
		if i == len(t.RoutingKeys)-1 {
			branch = "└──"
		}
		fmt.Fprintf(&b, "        %s [routing: %s]\n", branch, key)
	}

	return b.String()
}
