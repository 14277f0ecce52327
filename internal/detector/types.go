package detector

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text — текст запроса: одна строка или упорядоченный список строк.
type Text []string

// UnmarshalJSON принимает как строку, так и массив строк.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*t = Text{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("text must be a string or an array of strings: %w", err)
	}
	if many == nil {
		many = []string{}
	}
	*t = many
	return nil
}

// Request — запрос на определение домена.
type Request struct {
	Text Text   `json:"text"`
	Src  string `json:"src"`
}

// Response — ответ воркера.
type Response struct {
	Domain string `json:"domain"`
}

// Encode сериализует ответ в JSON.
func (r Response) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRequest разбирает payload сообщения.
// Оба поля обязательны; null приравнивается к отсутствию.
func DecodeRequest(body []byte) (Request, error) {
	var raw struct {
		Text *Text   `json:"text"`
		Src  *string `json:"src"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if raw.Text == nil {
		return Request{}, fmt.Errorf("%w: field text is required", ErrDecode)
	}
	if raw.Src == nil {
		return Request{}, fmt.Errorf("%w: field src is required", ErrDecode)
	}

	return Request{Text: *raw.Text, Src: *raw.Src}, nil
}

// Result — результат обработки запроса: метка либо причина отказа.
type Result struct {
	Label string
	Err   error
}

// OK сообщает, удалось ли определить домен.
func (r Result) OK() bool {
	return r.Err == nil
}

// Response сворачивает результат в ответ протокола.
// Причина ошибки в ответ не попадает, только метка по умолчанию.
func (r Result) Response(defaultLabel string) Response {
	if r.Err != nil {
		return Response{Domain: defaultLabel}
	}
	return Response{Domain: r.Label}
}
