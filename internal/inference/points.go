package inference

import (
	"encoding/json"
	"fmt"
)

// Points is point-cloud data as returned by the service: a list of [x, y, z] triplets.
// A flat [x0, y0, z0, x1, ...] array is also accepted when its length is a multiple of 3.
// JSON null decodes to a nil Points.
type Points [][]float64

func (p *Points) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = nil
		return nil
	}
	var nested [][]float64
	if err := json.Unmarshal(data, &nested); err == nil {
		if nested == nil {
			nested = [][]float64{}
		}
		*p = nested
		return nil
	}
	var flat []float64
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("inference: pointcloud_data is neither a list of points nor a flat list: %w", err)
	}
	if len(flat)%3 != 0 {
		return fmt.Errorf("inference: flat pointcloud_data has %d values, not a multiple of 3", len(flat))
	}
	out := make([][]float64, 0, len(flat)/3)
	for i := 0; i < len(flat); i += 3 {
		out = append(out, flat[i:i+3:i+3])
	}
	*p = out
	return nil
}

// Len returns the number of points.
func (p Points) Len() int {
	return len(p)
}
