package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"addrcluster/pkg/config"
	"addrcluster/pkg/pipeline"
)

func newBuildCmd() *cobra.Command {
	var mapping string
	var spanning string

	cmd := &cobra.Command{
		Use:   "build <transactions_file> <graph_file>",
		Short: "Build the auxiliary co-spend graph from a transaction file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			buildCfg := pipeline.DefaultBuildConfig()
			buildCfg.InputFile = args[0]
			buildCfg.OutputFile = args[1]
			buildCfg.Mapping = cfg.Mapping
			buildCfg.Spanning = cfg.Spanning
			buildCfg.LogEvery = cfg.LogEvery
			if cmd.Flags().Changed("mapping") {
				buildCfg.Mapping = mapping
			}
			if cmd.Flags().Changed("spanning") {
				buildCfg.Spanning = spanning
			}

			result, err := pipeline.RunBuild(buildCfg)
			if err != nil {
				return err
			}
			fmt.Printf("Transactions:\t%d\n", result.NumTransactions)
			fmt.Printf("Nodes:\t%d\n", result.NumNodes)
			fmt.Printf("Edges:\t%d\n", result.NumEdges)
			fmt.Printf("Time:\t%v\n", result.Runtime)
			return nil
		},
	}
	cmd.Flags().StringVar(&mapping, "mapping", "", "node mapping strategy (dense or direct)")
	cmd.Flags().StringVar(&spanning, "spanning", "", "spanning strategy (path or star)")
	return cmd
}
