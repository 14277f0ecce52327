// Domain detection worker — определяет предметную область текста.
//
// Worker:
//   - Получает запросы из RabbitMQ (очередь по набору языков модели)
//   - Режет текст на предложения и классифицирует их моделью
//   - Выбирает домен большинством голосов
//   - Отправляет ответ в очередь reply-to
//
// Workers масштабируются горизонтально.
//
// Использование:
//
//	domain-detection-worker [--model-config PATH]
//	domain-detection-worker topology [--model-config PATH]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/domain-detection-worker/internal/config"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var modelConfig string

	rootCmd := &cobra.Command{
		Use:           "domain-detection-worker",
		Short:         "Domain detection worker — classifies text domains over RabbitMQ",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), modelConfig)
		},
	}

	rootCmd.PersistentFlags().StringVar(&modelConfig, "model-config", config.DefaultModelConfigPath, "Path to the model configuration file")

	rootCmd.AddCommand(newTopologyCmd(&modelConfig))

	return rootCmd
}
