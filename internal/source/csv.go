package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/TrevorS/hotspot"
)

// Accepted header names per column, already folded.
var (
	longitudeHeaders = []string{"longitude", "lon", "lng", "long", "x"}
	latitudeHeaders  = []string{"latitude", "lat", "y"}
	valueHeaders     = []string{"value", "count", "rate", "intensity"}
)

// normalizeHeader folds a header cell so that "Longitude", " LON " and the
// full-width "ＬＯＮ" all compare equal.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = norm.NFKC.String(s)
	return cases.Fold().String(strings.TrimSpace(s))
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = normalizeHeader(h)
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}
	return -1
}

// ReadCSV reads observations from CSV with a header row naming the
// longitude, latitude and value columns. Other columns are ignored. Blank
// lines are skipped.
func ReadCSV(r io.Reader) ([]hotspot.Observation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("source: csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("source: csv: %w", err)
	}

	lonCol := findColumn(header, longitudeHeaders)
	latCol := findColumn(header, latitudeHeaders)
	valCol := findColumn(header, valueHeaders)
	if lonCol < 0 || latCol < 0 || valCol < 0 {
		return nil, fmt.Errorf("source: csv: header %q must name longitude, latitude and value columns", header)
	}
	width := max(lonCol, latCol, valCol) + 1

	var obs []hotspot.Observation
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(record) < width {
			return nil, fmt.Errorf("source: csv: line %d: expected at least %d fields, got %d", line, width, len(record))
		}

		var o hotspot.Observation
		fields := []struct {
			dst  *float64
			col  int
			name string
		}{
			{&o.Longitude, lonCol, "longitude"},
			{&o.Latitude, latCol, "latitude"},
			{&o.Value, valCol, "value"},
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[f.col]), 64)
			if err != nil {
				return nil, fmt.Errorf("source: csv: line %d: %s: %w", line, f.name, err)
			}
			*f.dst = v
		}
		obs = append(obs, o)
	}
	return obs, nil
}
