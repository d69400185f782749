package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/TrevorS/hotspot"
)

var csvHeader = []string{"longitude", "latitude", "value", "x", "y", "is_hotspot"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per classified observation, in order.
func WriteCSV(w io.Writer, results []hotspot.HotspotResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export: csv: %w", err)
	}
	for _, r := range results {
		row := []string{
			formatFloat(r.Longitude),
			formatFloat(r.Latitude),
			formatFloat(r.Value),
			formatFloat(r.X),
			formatFloat(r.Y),
			strconv.FormatBool(r.IsHotspot),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: csv: %w", err)
	}
	return nil
}
