package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/diwise/water-monitoring/pkg/types"
)

type meta struct {
	TotalRecords uint64  `json:"totalRecords"`
	Offset       *uint64 `json:"offset,omitempty"`
	Limit        *uint64 `json:"limit,omitempty"`
	Count        uint64  `json:"count"`
}

type links struct {
	Self  *string `json:"self,omitempty"`
	First *string `json:"first,omitempty"`
	Prev  *string `json:"prev,omitempty"`
	Next  *string `json:"next,omitempty"`
	Last  *string `json:"last,omitempty"`
}

type ApiResponse struct {
	Meta  *meta  `json:"meta,omitempty"`
	Data  any    `json:"data"`
	Links *links `json:"links,omitempty"`
}

func (r ApiResponse) Byte() []byte {
	b, _ := json.Marshal(r)
	return b
}

// NewApiResponse wraps a collection in the response envelope and derives
// pagination links from the request URL.
func NewApiResponse[T any](c types.Collection[T], requestURL *url.URL) ApiResponse {
	offset := c.Offset
	limit := c.Limit

	data := c.Data
	if data == nil {
		data = []T{}
	}

	response := ApiResponse{
		Meta: &meta{
			TotalRecords: c.TotalCount,
			Offset:       &offset,
			Limit:        &limit,
			Count:        c.Count,
		},
		Data: data,
	}

	if requestURL != nil && limit > 0 {
		response.Links = newLinks(requestURL, offset, limit, c.TotalCount)
	}

	return response
}

func newLinks(u *url.URL, offset, limit, total uint64) *links {
	withOffset := func(o uint64) *string {
		cp := *u
		q := cp.Query()
		q.Set("offset", fmt.Sprintf("%d", o))
		q.Set("limit", fmt.Sprintf("%d", limit))
		cp.RawQuery = q.Encode()
		s := cp.String()
		return &s
	}

	l := &links{
		Self:  withOffset(offset),
		First: withOffset(0),
	}

	if total > 0 {
		last := ((total - 1) / limit) * limit
		l.Last = withOffset(last)

		if offset > 0 {
			prev := uint64(0)
			if offset > limit {
				prev = offset - limit
			}
			l.Prev = withOffset(prev)
		}

		if offset+limit < total {
			l.Next = withOffset(offset + limit)
		}
	}

	return l
}

type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
	Meta     *meta            `json:"meta,omitempty"`
	Links    *links           `json:"links,omitempty"`
}

type GeoJSONFeature struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Geometry   GeoJSONPoint   `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type GeoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func NewFeatureCollectionWithSensors(sensors []types.Sensor) (*GeoJSONFeatureCollection, error) {
	fc := &GeoJSONFeatureCollection{Type: "FeatureCollection", Features: []GeoJSONFeature{}}

	for _, s := range sensors {
		f, err := ConvertSensor(s)
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, *f)
	}

	return fc, nil
}

func ConvertSensor(s types.Sensor) (*GeoJSONFeature, error) {
	feature := &GeoJSONFeature{
		ID:   s.DeviceID,
		Type: "Feature",
		Geometry: GeoJSONPoint{
			Type:        "Point",
			Coordinates: [2]float64{s.Location.Longitude, s.Location.Latitude},
		},
		Properties: map[string]any{},
	}

	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	m := make(map[string]any)
	err = json.Unmarshal(b, &m)
	if err != nil {
		return nil, err
	}

	feature.Properties = m

	return feature, nil
}

func writeCsvWithSensors(w io.Writer, sensors []types.Sensor) error {
	header := []string{"device_id", "name", "description", "kind", "unit", "lat", "lon", "tenant", "pipeline", "interval", "status", "max_rate"}
	rows := [][]string{header}

	maxRate := func(s types.Sensor) string {
		if s.Kind.Thresholds.MaxRateOfChange == nil {
			return ""
		}
		return fmt.Sprintf("%g", *s.Kind.Thresholds.MaxRateOfChange)
	}

	for _, s := range sensors {
		row := []string{
			s.DeviceID,
			s.Name,
			s.Description,
			s.Kind.Code,
			s.Kind.Unit,
			fmt.Sprintf("%f", s.Location.Latitude),
			fmt.Sprintf("%f", s.Location.Longitude),
			s.Tenant,
			s.PipelineID,
			fmt.Sprintf("%d", s.IntervalSeconds),
			s.Status,
			maxRate(s),
		}
		rows = append(rows, row)
	}

	for _, row := range rows {
		_, err := fmt.Fprintln(w, strings.Join(row, ";"))
		if err != nil {
			return err
		}
	}

	return nil
}
