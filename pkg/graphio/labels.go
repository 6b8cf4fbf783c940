package graphio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"addrcluster/pkg/cluster"
)

// WriteLabels writes a component labeling as CSV with a "node_id,comp_id"
// header and one row per node in ascending node id order. Like WriteGraph,
// the file is renamed into place only after a complete write.
func WriteLabels(path string, labels cluster.Labeling) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", tmp, err)
	}
	if err := writeLabelsTo(file, labels); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("error writing output file %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error closing output file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error renaming output file into place: %w", err)
	}
	return nil
}

func writeLabelsTo(file *os.File, labels cluster.Labeling) error {
	w := csv.NewWriter(file)
	if err := w.Write([]string{"node_id", "comp_id"}); err != nil {
		return err
	}
	row := make([]string, 2)
	for node, comp := range labels {
		row[0] = strconv.Itoa(node)
		row[1] = strconv.Itoa(comp)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
