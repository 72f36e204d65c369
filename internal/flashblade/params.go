package flashblade

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// StringList decodes from either a JSON string or a JSON array of strings.
// It is sent to the array as a comma separated query value.
type StringList []string

// UnmarshalJSON accepts "a", "a,b" and ["a","b"].
func (l *StringList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = splitCSV(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

func (l StringList) query() string { return strings.Join(l, ",") }

// ListParams are the query parameters shared by every collection endpoint.
type ListParams struct {
	ContinuationToken string     `json:"continuation_token,omitempty"`
	Filter            string     `json:"filter,omitempty"`
	IDs               StringList `json:"ids,omitempty"`
	Limit             int        `json:"limit,omitempty"`
	Names             StringList `json:"names,omitempty"`
	Offset            int        `json:"offset,omitempty"`
	Sort              StringList `json:"sort,omitempty"`
	TotalOnly         bool       `json:"total_only,omitempty"`
}

// Values encodes the set parameters.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.ContinuationToken != "" {
		q.Set("continuation_token", p.ContinuationToken)
	}
	if p.Filter != "" {
		q.Set("filter", p.Filter)
	}
	if len(p.IDs) > 0 {
		q.Set("ids", p.IDs.query())
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if len(p.Names) > 0 {
		q.Set("names", p.Names.query())
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if len(p.Sort) > 0 {
		q.Set("sort", p.Sort.query())
	}
	if p.TotalOnly {
		q.Set("total_only", "true")
	}
	return q
}

// TimeWindow bounds a historical query. Times are milliseconds since the
// epoch, resolution is in milliseconds.
type TimeWindow struct {
	StartTime  int64 `json:"start_time,omitempty"`
	EndTime    int64 `json:"end_time,omitempty"`
	Resolution int64 `json:"resolution,omitempty"`
}

func (w TimeWindow) addTo(q url.Values) {
	if w.StartTime > 0 {
		q.Set("start_time", strconv.FormatInt(w.StartTime, 10))
	}
	if w.EndTime > 0 {
		q.Set("end_time", strconv.FormatInt(w.EndTime, 10))
	}
	if w.Resolution > 0 {
		q.Set("resolution", strconv.FormatInt(w.Resolution, 10))
	}
}

// SpaceParams are accepted by the arrays/space endpoint.
type SpaceParams struct {
	ListParams
	TimeWindow
	// Type is one of array, file-system or object-store.
	Type string `json:"type,omitempty"`
}

// Values encodes the set parameters.
func (p SpaceParams) Values() url.Values {
	q := p.ListParams.Values()
	p.TimeWindow.addTo(q)
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	return q
}

// PerformanceParams are accepted by the arrays/performance endpoint.
type PerformanceParams struct {
	ListParams
	TimeWindow
	// Protocol is one of all, HTTP, SMB, NFS or S3.
	Protocol string `json:"protocol,omitempty"`
}

// Values encodes the set parameters.
func (p PerformanceParams) Values() url.Values {
	q := p.ListParams.Values()
	p.TimeWindow.addTo(q)
	if p.Protocol != "" {
		q.Set("protocol", p.Protocol)
	}
	return q
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
