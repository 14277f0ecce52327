// Package worker обрабатывает запросы на определение домена.
//
// # Обзор
//
// Worker получает запросы из RabbitMQ, определяет домен текста и публикует
// ответ в очередь reply-to вызывающей стороны:
//
//	delivery → decode → сегментация → классификатор → голосование → reply → ack
//
// Workers масштабируются горизонтально: экземпляры с одинаковым набором
// языков потребляют из одной очереди.
//
// # Использование
//
//	w := worker.New(worker.Config{
//	    Detector:       det,
//	    DefaultLabel:   "general",
//	    Dialer:         mq.NewDialer(cfg.MQ.Connection()),
//	    Topology:       mq.BuildTopology(cfg.MQ.Exchange, model.Languages),
//	    ConnectionName: cfg.MQ.ConnectionName,
//	    Health:         state,
//	    Logger:         logger,
//	})
//
//	if err := w.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
// # Обработка сообщения
//
//  1. Засекаем время
//  2. Разбор payload; ошибка → ответ с меткой по умолчанию
//  3. Сегментация текста на предложения
//  4. Классификация; ошибка → ответ с меткой по умолчанию
//  5. Публикация ответа (тот же correlation id, заголовки RequestId и MT-MessageType)
//  6. Ack — всегда, независимо от исхода
//  7. Лог и метрики: correlation id, размеры, длительность
//
// # Параллелизм
//
// Prefetch = 1: одновременно обрабатывается не больше одного сообщения,
// поэтому классификатор и канал не требуют блокировок. Таймаута на запрос
// нет — зависший вызов модели блокирует конвейер.
//
// # Ошибки
//
// Ошибки уровня сообщения (decode, классификация, публикация) остаются
// внутри обработчика. Наружу выходят только ошибки соединения (обрабатываются
// переподключением) и ошибки конфигурации при старте.
package worker
