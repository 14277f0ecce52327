// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - topology.go   — вывод имени очереди и routing keys из набора языков, объявление топологии
//   - connection.go — параметры подключения и Dialer поверх amqp091
//   - consumer.go   — супервизор соединения: connect → topology → consume → reconnect
//   - delivery.go   — контекст доставленного сообщения (correlation id, reply-to, headers)
//   - publisher.go  — публикация ответа в очередь reply-to
//
// Топология:
//
//	{exchange} (direct)
//	└── {exchange}_{fingerprint} [routing: {exchange}.{lang} для каждого языка]
//	        Consumer: domain detection worker (prefetch 1)
//
// Воркеры с одинаковым набором языков получают одно и то же имя очереди
// и конкурируют за сообщения; с разным набором — разные очереди.
package mq
