package metrics

import (
	"encoding/json"
	"strings"
)

// Record is a single immutable measurement.
type Record struct {
	Metric         string // full metric name written to the stream
	Path           string
	Submetric      string
	Value          Value
	HigherIsBetter bool
}

// NewRecord builds a record, joining the root label, the path and the submetric as
// "<root>/<path>//<submetric>".
func NewRecord(root, path, submetric string, v Value, higherIsBetter bool) Record {
	parts := make([]string, 0, 2)
	if root = strings.Trim(root, "/"); root != "" {
		parts = append(parts, root)
	}
	if path = strings.Trim(path, "/"); path != "" {
		parts = append(parts, path)
	}
	return Record{
		Metric:         strings.Join(parts, "/") + "//" + submetric,
		Path:           path,
		Submetric:      submetric,
		Value:          v,
		HigherIsBetter: higherIsBetter,
	}
}

// Direction is 1 when a higher value is better and -1 otherwise.
func (r Record) Direction() int {
	if r.HigherIsBetter {
		return 1
	}
	return -1
}

type wireRecord struct {
	Metric    string  `json:"metric"`
	Value     any     `json:"value"`
	Unit      *string `json:"unit"`
	Direction int     `json:"direction"`
}

// MarshalJSON renders the record in the stream format; a missing unit is null.
func (r Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		Metric:    r.Metric,
		Value:     r.Value.jsonValue(),
		Direction: r.Direction(),
	}
	if u := r.Value.Unit(); u != UnitNone {
		s := string(u)
		w.Unit = &s
	}
	return json.Marshal(w)
}
