package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"addrcluster/pkg/config"
	"addrcluster/pkg/pipeline"
)

func newClusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster <graph_file> <output_csv> [node_count]",
		Short: "Compute address clusters as connected components of a graph file",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(configPath); err != nil {
				return err
			}
			clusterCfg := pipeline.DefaultClusterConfig()
			clusterCfg.InputFile = args[0]
			clusterCfg.OutputFile = args[1]
			if len(args) == 3 {
				n, err := strconv.Atoi(args[2])
				if err != nil || n < 0 {
					return fmt.Errorf("invalid node count %q", args[2])
				}
				clusterCfg.NodeCountOverride = n
			}

			result, err := pipeline.RunCluster(clusterCfg)
			if err != nil {
				return err
			}
			fmt.Printf("Nodes:\t%d\n", result.NumNodes)
			fmt.Printf("Edges:\t%d\n", result.NumEdges)
			fmt.Printf("Components:\t%d\n", result.NumComponents)
			fmt.Printf("Time:\t%v\n", result.Runtime)
			return nil
		},
	}
	return cmd
}
