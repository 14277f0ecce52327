package detector

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/data"
	"golang.org/x/text/language"
)

// Segmenter делит текст на предложения с учётом языка.
type Segmenter interface {
	Split(lang, text string) []string
}

// punktModels — обученные модели Punkt, доступные в пакете sentences/data.
var punktModels = map[string]string{
	"cs": "czech",
	"da": "danish",
	"de": "german",
	"el": "greek",
	"en": "english",
	"es": "spanish",
	"et": "estonian",
	"fi": "finnish",
	"fr": "french",
	"it": "italian",
	"nb": "norwegian",
	"nl": "dutch",
	"nn": "norwegian",
	"no": "norwegian",
	"pl": "polish",
	"pt": "portuguese",
	"sl": "slovene",
	"sv": "swedish",
	"tr": "turkish",
}

const fallbackLanguage = "en"

// PunktSegmenter — сегментация предложений моделями Punkt.
//
// Модели загружаются один раз при создании. Английская модель обязательна;
// языки без загружаемой модели сегментируются английской.
type PunktSegmenter struct {
	tokenizers map[string]*sentences.DefaultSentenceTokenizer
	fallbacks  []string
}

// NewPunktSegmenter загружает модели для перечисленных языков.
// Ошибка возвращается, только если не загрузилась английская модель.
func NewPunktSegmenter(languages []string) (*PunktSegmenter, error) {
	english, err := loadPunkt(punktModels[fallbackLanguage])
	if err != nil {
		return nil, err
	}

	s := &PunktSegmenter{tokenizers: map[string]*sentences.DefaultSentenceTokenizer{
		fallbackLanguage: english,
	}}

	seen := map[string]bool{fallbackLanguage: true}
	for _, lang := range languages {
		base := baseLanguage(lang)
		if seen[base] {
			continue
		}
		seen[base] = true

		model, ok := punktModels[base]
		if !ok {
			s.fallbacks = append(s.fallbacks, base)
			continue
		}

		tokenizer, err := loadPunkt(model)
		if err != nil {
			s.fallbacks = append(s.fallbacks, base)
			continue
		}
		s.tokenizers[base] = tokenizer
	}

	return s, nil
}

// Fallbacks возвращает языки, для которых используется английская модель.
func (s *PunktSegmenter) Fallbacks() []string {
	return s.fallbacks
}

func loadPunkt(model string) (*sentences.DefaultSentenceTokenizer, error) {
	b, err := data.Asset("data/" + model + ".json")
	if err != nil {
		return nil, fmt.Errorf("load punkt model %s: %w", model, err)
	}

	training, err := sentences.LoadTraining(b)
	if err != nil {
		return nil, fmt.Errorf("parse punkt model %s: %w", model, err)
	}

	return sentences.NewSentenceTokenizer(training), nil
}

// Split делит текст на предложения.
func (s *PunktSegmenter) Split(lang, text string) []string {
	tokenizer, ok := s.tokenizers[baseLanguage(lang)]
	if !ok {
		tokenizer = s.tokenizers[fallbackLanguage]
	}

	var out []string
	for _, sent := range tokenizer.Tokenize(text) {
		out = append(out, sent.Text)
	}
	return out
}

// baseLanguage приводит тег языка к базовому подтегу: "et-EE" → "et".
func baseLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	base, _ := tag.Base()
	return base.String()
}
