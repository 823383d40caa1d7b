package inspections

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeFiltersMapsSentinelsToAbsent(t *testing.T) {
	f, err := NormalizeFilters(RawFilters{
		Region:     "All",
		Factory:    "",
		Camera:     "  ",
		Prediction: "All",
		DefectType: "All",
	})
	require.NoError(t, err)
	require.True(t, f.IsEmpty())
}

func TestNormalizeFiltersKeepsScalars(t *testing.T) {
	f, err := NormalizeFilters(RawFilters{
		Region:     "WUH",
		Factory:    " WUH-G426 ",
		Camera:     "CAM-01",
		Prediction: "KO",
		DefectType: "porosity",
		Search:     "INSP-2025",
		DateFrom:   "2025-08-01",
		DateTo:     "2025-08-07",
	})
	require.NoError(t, err)
	require.Equal(t, FilterSet{
		Region:     "WUH",
		Factory:    "WUH-G426",
		Camera:     "CAM-01",
		Prediction: "KO",
		DefectType: "porosity",
		Search:     "INSP-2025",
		DateFrom:   "2025-08-01",
		DateTo:     "2025-08-07",
	}, f)
}

func TestNormalizeFiltersRejectsBadDates(t *testing.T) {
	for _, bad := range []string{"not-a-date", "2025-13-01", "01/02/2025", "2025-02-30"} {
		_, err := NormalizeFilters(RawFilters{DateFrom: bad})
		var filterErr *InvalidFilterError
		require.True(t, errors.As(err, &filterErr), "date_from=%q should fail", bad)
		require.Equal(t, "date_from", filterErr.Field)

		_, err = NormalizeFilters(RawFilters{DateTo: bad})
		require.True(t, errors.As(err, &filterErr), "date_to=%q should fail", bad)
	}
}

func TestNormalizeFiltersRoundTrip(t *testing.T) {
	// The "All" sentinel must produce the same predicate as omitting the
	// field entirely.
	omitted, err := NormalizeFilters(RawFilters{})
	require.NoError(t, err)

	sentinel, err := NormalizeFilters(RawFilters{
		Region: "All", Factory: "All", Camera: "All",
		Prediction: "All", DefectType: "All",
		DateFrom: "All", DateTo: "All",
	})
	require.NoError(t, err)
	require.Equal(t, omitted, sentinel)
}
