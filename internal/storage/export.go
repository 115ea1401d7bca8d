package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/bethesim/internal/sweep"
)

// ExportCSV writes one row per energy with a column per variant. Curves must
// share the same energy grid.
func ExportCSV(w io.Writer, results []sweep.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"energy_mev"}
	for _, r := range results {
		header = append(header, r.Variant.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	if len(results) > 0 {
		for i, p := range results[0].Curve {
			row := []string{strconv.FormatFloat(p.EnergyMeV, 'f', 1, 64)}
			for _, r := range results {
				val := ""
				if i < len(r.Curve) {
					val = strconv.FormatFloat(r.Curve[i].StoppingPower, 'e', -1, 64)
				}
				row = append(row, val)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Metadata *RunMetadata           `json:"metadata,omitempty"`
	Curves   map[string]sweep.Curve `json:"curves"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, results []sweep.Result) error {
	data := ExportData{
		Metadata: meta,
		Curves:   make(map[string]sweep.Curve, len(results)),
	}
	for _, r := range results {
		data.Curves[r.Variant.String()] = r.Curve
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
