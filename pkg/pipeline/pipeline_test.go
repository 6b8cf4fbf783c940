package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"addrcluster/pkg/graph"
)

// writeTransactions creates a transaction fixture file and returns its path.
func writeTransactions(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}

// readLabels parses a clustering CSV into a node->component map.
func readLabels(t *testing.T, path string) map[int]int {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"node_id", "comp_id"}, records[0])

	labels := make(map[int]int, len(records)-1)
	prev := -1
	for _, rec := range records[1:] {
		node, err := strconv.Atoi(rec[0])
		require.NoError(t, err)
		comp, err := strconv.Atoi(rec[1])
		require.NoError(t, err)
		require.Equal(t, prev+1, node, "rows must be in ascending node order")
		prev = node
		labels[node] = comp
	}
	return labels
}

// runBoth builds a graph from the transaction file and clusters it,
// returning the build result and the labeling.
func runBoth(t *testing.T, txFile, mapping string) (*BuildResult, map[int]int) {
	t.Helper()
	dir := t.TempDir()
	graphFile := filepath.Join(dir, "graph.bin")
	csvFile := filepath.Join(dir, "clusters.csv")

	buildCfg := DefaultBuildConfig()
	buildCfg.InputFile = txFile
	buildCfg.OutputFile = graphFile
	buildCfg.Mapping = mapping
	buildResult, err := RunBuild(buildCfg)
	require.NoError(t, err)

	clusterCfg := DefaultClusterConfig()
	clusterCfg.InputFile = graphFile
	clusterCfg.OutputFile = csvFile
	clusterResult, err := RunCluster(clusterCfg)
	require.NoError(t, err)
	require.Equal(t, buildResult.NumNodes, clusterResult.NumNodes)

	return buildResult, readLabels(t, csvFile)
}

func TestScenarioA(t *testing.T) {
	// Inputs {100,200,300} become one component; output 400 is a separate
	// node. With direct mapping num_nodes = 401.
	txFile := writeTransactions(t, "tx1:100,0;200,0;300,0:400,0\n")

	t.Run("DirectMapping", func(t *testing.T) {
		result, labels := runBoth(t, txFile, graph.MappingDirect)
		require.Equal(t, 401, result.NumNodes)
		require.Equal(t, 2, result.NumEdges)
		require.Equal(t, 1, result.NumTransactions)

		require.Equal(t, labels[100], labels[200])
		require.Equal(t, labels[200], labels[300])
		require.NotEqual(t, labels[100], labels[400])
	})

	t.Run("DenseMapping", func(t *testing.T) {
		result, labels := runBoth(t, txFile, graph.MappingDense)
		require.Equal(t, 4, result.NumNodes)
		require.Equal(t, 2, result.NumEdges)

		// Dense ids: 100->0, 200->1, 300->2, 400->3.
		require.Equal(t, labels[0], labels[1])
		require.Equal(t, labels[1], labels[2])
		require.NotEqual(t, labels[0], labels[3])
	})
}

func TestScenarioB(t *testing.T) {
	// tx2 joins 400 and 500; 100/200/300 stay a separate component; every
	// other id in [0,500] is a singleton under direct mapping.
	txFile := writeTransactions(t,
		"tx1:100,0;200,0;300,0:400,0\n"+
			"tx2:400,0;500,0:\n")

	result, labels := runBoth(t, txFile, graph.MappingDirect)
	require.Equal(t, 501, result.NumNodes)
	require.Equal(t, 3, result.NumEdges)

	require.Equal(t, labels[400], labels[500])
	require.Equal(t, labels[100], labels[300])
	require.NotEqual(t, labels[100], labels[400])

	sizes := make(map[int]int)
	for _, comp := range labels {
		sizes[comp]++
	}
	for node, comp := range labels {
		switch node {
		case 100, 200, 300:
			require.Equal(t, 3, sizes[comp], "node %d", node)
		case 400, 500:
			require.Equal(t, 2, sizes[comp], "node %d", node)
		default:
			require.Equal(t, 1, sizes[comp], "node %d must be a singleton", node)
		}
	}
}

func TestScenarioC(t *testing.T) {
	// A single-input transaction contributes zero edges and no merge.
	txFile := writeTransactions(t, "tx3:999,0:\n")

	result, labels := runBoth(t, txFile, graph.MappingDirect)
	require.Equal(t, 1000, result.NumNodes)
	require.Equal(t, 0, result.NumEdges)

	sizes := make(map[int]int)
	for _, comp := range labels {
		sizes[comp]++
	}
	require.Equal(t, 1, sizes[labels[999]], "999 stays a singleton")
}

func TestBuildIdempotence(t *testing.T) {
	txFile := writeTransactions(t,
		"tx1:3,0;1,0;2,0:9,0\n"+
			"tx2:5,0;1,0:\n"+
			"tx3::7,0\n")
	dir := t.TempDir()
	g1 := filepath.Join(dir, "g1.bin")
	g2 := filepath.Join(dir, "g2.bin")

	for _, out := range []string{g1, g2} {
		cfg := DefaultBuildConfig()
		cfg.InputFile = txFile
		cfg.OutputFile = out
		_, err := RunBuild(cfg)
		require.NoError(t, err)
	}

	d1, err := os.ReadFile(g1)
	require.NoError(t, err)
	d2, err := os.ReadFile(g2)
	require.NoError(t, err)
	require.Equal(t, d1, d2, "two builds of the same input must be byte-identical")
}

func TestMultiInputCoMembership(t *testing.T) {
	// Every transaction's inputs must share one component, whatever the
	// spanning strategy.
	txFile := writeTransactions(t,
		"a:1,0;2,0;3,0;4,0:\n"+
			"b:4,0;10,0:\n"+
			"c:20,0;21,0:\n")

	for _, spanning := range []string{graph.SpanningPath, graph.SpanningStar} {
		t.Run(spanning, func(t *testing.T) {
			dir := t.TempDir()
			graphFile := filepath.Join(dir, "graph.bin")
			csvFile := filepath.Join(dir, "clusters.csv")

			cfg := DefaultBuildConfig()
			cfg.InputFile = txFile
			cfg.OutputFile = graphFile
			cfg.Mapping = graph.MappingDirect
			cfg.Spanning = spanning
			_, err := RunBuild(cfg)
			require.NoError(t, err)

			ccfg := DefaultClusterConfig()
			ccfg.InputFile = graphFile
			ccfg.OutputFile = csvFile
			_, err = RunCluster(ccfg)
			require.NoError(t, err)

			labels := readLabels(t, csvFile)
			for _, group := range [][]int{{1, 2, 3, 4, 10}, {20, 21}} {
				for _, node := range group[1:] {
					require.Equal(t, labels[group[0]], labels[node])
				}
			}
			require.NotEqual(t, labels[1], labels[20])
		})
	}
}

func TestNodeCountOverride(t *testing.T) {
	txFile := writeTransactions(t, "tx:1,0;2,0:\n")
	dir := t.TempDir()
	graphFile := filepath.Join(dir, "graph.bin")
	csvFile := filepath.Join(dir, "clusters.csv")

	cfg := DefaultBuildConfig()
	cfg.InputFile = txFile
	cfg.OutputFile = graphFile
	cfg.Mapping = graph.MappingDirect
	_, err := RunBuild(cfg)
	require.NoError(t, err)

	ccfg := DefaultClusterConfig()
	ccfg.InputFile = graphFile
	ccfg.OutputFile = csvFile
	ccfg.NodeCountOverride = 10
	result, err := RunCluster(ccfg)
	require.NoError(t, err)
	require.Equal(t, 10, result.NumNodes)
	require.Equal(t, 9, result.NumComponents) // {1,2} plus 8 singletons
	require.Len(t, readLabels(t, csvFile), 10)
}

func TestRunErrors(t *testing.T) {
	t.Run("MissingInputFile", func(t *testing.T) {
		cfg := DefaultBuildConfig()
		cfg.InputFile = filepath.Join(t.TempDir(), "nope.txt")
		cfg.OutputFile = filepath.Join(t.TempDir(), "graph.bin")
		_, err := RunBuild(cfg)
		require.Error(t, err)
	})

	t.Run("UnknownStrategies", func(t *testing.T) {
		txFile := writeTransactions(t, "tx:1,0;2,0:\n")
		cfg := DefaultBuildConfig()
		cfg.InputFile = txFile
		cfg.OutputFile = filepath.Join(t.TempDir(), "graph.bin")
		cfg.Mapping = "bogus"
		_, err := RunBuild(cfg)
		require.Error(t, err)

		cfg.Mapping = graph.MappingDense
		cfg.Spanning = "bogus"
		_, err = RunBuild(cfg)
		require.Error(t, err)
	})

	t.Run("MissingGraphFile", func(t *testing.T) {
		cfg := DefaultClusterConfig()
		cfg.InputFile = filepath.Join(t.TempDir(), "nope.bin")
		cfg.OutputFile = filepath.Join(t.TempDir(), "clusters.csv")
		_, err := RunCluster(cfg)
		require.Error(t, err)
	})

	t.Run("NoPartialOutputOnFailure", func(t *testing.T) {
		txFile := writeTransactions(t, "tx:1,0;2,0:\n")
		outDir := filepath.Join(t.TempDir(), "does-not-exist")
		cfg := DefaultBuildConfig()
		cfg.InputFile = txFile
		cfg.OutputFile = filepath.Join(outDir, "graph.bin")
		_, err := RunBuild(cfg)
		require.Error(t, err)
		_, err = os.Stat(cfg.OutputFile)
		require.True(t, os.IsNotExist(err))
	})
}
