package cmd

import (
	"github.com/pegfee/pegfee-node/api"
	"github.com/pegfee/pegfee-node/core/node"
	"github.com/pegfee/pegfee-node/core/statistics"
	"github.com/pegfee/pegfee-node/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var Serve = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNode(func(n *node.Node) error {
			var (
				stats    *statistics.Data
				gatherer prometheus.Gatherer
			)

			if cfg.Instrumentation.Prometheus {
				registry := prometheus.NewRegistry()
				registry.MustRegister(
					prometheus.NewGoCollector(),
					prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
				)

				stats = statistics.New(prometheus.WrapRegistererWithPrefix(cfg.Instrumentation.Namespace+"_", registry))
				gatherer = registry
				n.SetStatisticData(stats)
			}

			server := api.NewServer(n, stats, gatherer, logger, version.Version)

			return api.Run(cmd.Context(), cfg.ListenAddress, server.Handler(), logger)
		})
	},
}
