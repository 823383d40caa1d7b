package inspections

import (
	"strings"
	"time"
)

// FilterAll is the sentinel the dashboard sends for "no selection".
const FilterAll = "All"

// RawFilters carries the filter values exactly as supplied by the caller,
// before normalization.
type RawFilters struct {
	Region     string
	Factory    string
	Camera     string
	Prediction string
	DefectType string
	Search     string
	DateFrom   string
	DateTo     string
}

// FilterSet is the normalized predicate set. Every field is either absent
// (empty string, no constraint) or a single scalar. Dates are validated
// YYYY-MM-DD strings and bound inclusively.
type FilterSet struct {
	Region     string
	Factory    string
	Camera     string
	Prediction string
	DefectType string
	Search     string
	DateFrom   string
	DateTo     string
}

// IsEmpty reports whether no field constrains the result set.
func (f FilterSet) IsEmpty() bool {
	return f == FilterSet{}
}

// NormalizeFilters maps the "All"/empty sentinels to absent and validates
// date bounds. Pure, no side effects.
func NormalizeFilters(raw RawFilters) (FilterSet, error) {
	f := FilterSet{
		Region:     normalizeValue(raw.Region),
		Factory:    normalizeValue(raw.Factory),
		Camera:     normalizeValue(raw.Camera),
		Prediction: normalizeValue(raw.Prediction),
		DefectType: normalizeValue(raw.DefectType),
		Search:     strings.TrimSpace(raw.Search),
	}

	var err error
	if f.DateFrom, err = normalizeDate("date_from", raw.DateFrom); err != nil {
		return FilterSet{}, err
	}
	if f.DateTo, err = normalizeDate("date_to", raw.DateTo); err != nil {
		return FilterSet{}, err
	}
	return f, nil
}

func normalizeValue(s string) string {
	s = strings.TrimSpace(s)
	if s == FilterAll {
		return ""
	}
	return s
}

func normalizeDate(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == FilterAll {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", &InvalidFilterError{Field: field, Value: s}
	}
	return s, nil
}
