package config

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/shaiso/domain-detection-worker/internal/detector"
)

// DefaultModelConfigPath — путь к файлу модели по умолчанию.
const DefaultModelConfigPath = "models/config.yaml"

// ModelConfig — описание модели и топологии воркера.
//
//	languages: [et, en]
//	labels:
//	  0: general
//	  1: legal
//	model_source: http://inference:8000
//	default_label: general
type ModelConfig struct {
	Languages    []string       `yaml:"languages"`
	Labels       map[int]string `yaml:"labels"`
	ModelSource  string         `yaml:"model_source"`
	DefaultLabel string         `yaml:"default_label"`

	// CheckpointDir — устаревшее имя model_source.
	CheckpointDir string `yaml:"checkpoint_dir"`

	labels detector.Labels
}

// ReadModelConfig читает и валидирует файл модели.
func ReadModelConfig(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read model config: %v", ErrInvalidConfig, err)
	}
	return ParseModelConfig(data)
}

// ParseModelConfig разбирает YAML и валидирует результат.
func ParseModelConfig(data []byte) (*ModelConfig, error) {
	var cfg ModelConfig

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse model config: %v", ErrInvalidConfig, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalize валидирует конфигурацию.
//
// Языки проверяются как BCP 47 теги, но сохраняются в исходном написании:
// из них строятся routing keys, по которым публикуют отправители.
func (m *ModelConfig) normalize() error {
	if m.ModelSource == "" {
		m.ModelSource = m.CheckpointDir
	}
	if m.ModelSource == "" {
		return fmt.Errorf("%w: model_source is required", ErrInvalidConfig)
	}

	if len(m.Languages) == 0 {
		return fmt.Errorf("%w: at least one language is required", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(m.Languages))
	languages := make([]string, 0, len(m.Languages))
	for _, lang := range m.Languages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("%w: language %q: %v", ErrInvalidConfig, lang, err)
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		languages = append(languages, lang)
	}
	m.Languages = languages

	labels, err := detector.NewLabels(m.Labels)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	m.labels = labels

	if m.DefaultLabel == "" {
		m.DefaultLabel, _ = labels.Name(0)
	}

	return nil
}

// LabelSet возвращает валидированное отображение индексов в метки.
func (m *ModelConfig) LabelSet() detector.Labels {
	return m.labels
}
