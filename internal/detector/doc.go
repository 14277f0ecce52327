// Package detector определяет домен (тематику) текста запроса.
//
// Конвейер:
//  1. DecodeRequest — разбор JSON-запроса {"text": string|[]string, "src": string}
//  2. Sentences    — сегментация на предложения (с усечением длинных текстов)
//  3. Classifier   — предсказание метки для каждого предложения
//  4. MajorityVote — голосование большинством, при равенстве побеждает меньший индекс
//  5. Labels       — отображение индекса в имя домена
//
// Ошибки не пробрасываются наружу как panic/exception: Detector.Process всегда
// возвращает Result, а ответ с меткой по умолчанию собирается только на границе
// обработчика сообщений.
package detector
