package analytics

import (
	"sort"

	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// HeatmapCell is one populated cell of the demand matrix.
type HeatmapCell struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DemandScore float64 `json:"demand_score"`
}

// HeatmapMatrix is the sparse origin x destination demand matrix. The
// two axes are derived independently from the matched records; any
// (origin, destination) pair absent from Cells has demand score zero by
// definition, so a consumer can materialize the dense grid by
// zero-filling. Absent cells are never interpolated.
type HeatmapMatrix struct {
	Origins      []string      `json:"origins"`
	Destinations []string      `json:"destinations"`
	Cells        []HeatmapCell `json:"cells"`
}

// DemandHeatmap scores every observed route and collects the sorted
// distinct origin and destination axes. Cells are ordered by origin
// then destination for deterministic output.
func DemandHeatmap(records []model.Flight) HeatmapMatrix {
	groups, maxCount := groupByRoute(records)

	originSet := make(map[string]struct{})
	destSet := make(map[string]struct{})
	cells := make([]HeatmapCell, 0, len(groups))
	for _, g := range groups {
		originSet[g.origin] = struct{}{}
		destSet[g.destination] = struct{}{}
		cells = append(cells, HeatmapCell{
			Origin:      g.origin,
			Destination: g.destination,
			DemandScore: Score(g.count, maxCount, g.holidayRatio()),
		})
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Origin != cells[j].Origin {
			return cells[i].Origin < cells[j].Origin
		}
		return cells[i].Destination < cells[j].Destination
	})

	return HeatmapMatrix{
		Origins:      sortedKeys(originSet),
		Destinations: sortedKeys(destSet),
		Cells:        cells,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
