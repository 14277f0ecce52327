package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/domain-detection-worker/internal/config"
	"github.com/shaiso/domain-detection-worker/internal/mq"
)

// newTopologyCmd печатает exchange, очередь и routing keys без подключения к брокеру.
func newTopologyCmd(modelConfig *string) *cobra.Command {
	return &cobra.Command{
		Use:   "topology",
		Short: "Print the RabbitMQ topology derived from the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			model, err := config.ReadModelConfig(*modelConfig)
			if err != nil {
				return err
			}

			topology := mq.BuildTopology(cfg.MQ.Exchange, model.Languages)
			_, err = fmt.Fprint(cmd.OutOrStdout(), topology.Info())
			return err
		},
	}
}
