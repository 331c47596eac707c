package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ct-price-predictor/internal/core/domain"
)

func TestBuildFeatures_Scenario(t *testing.T) {
	row, err := BuildFeatures("2022-06-15", 250000, "Single Family", "Hartford")
	require.NoError(t, err)

	expect := map[string]float64{
		"Assessed Value":         250000,
		"Year":                   2022,
		"Month":                  6,
		"Quarter":                2,
		"DayOfWeek":              2, // Wednesday
		"Latitude":               0,
		"Longitude":              0,
		"Town_Hartford":          1,
		"PropType_Single Family": 1,
	}
	assert.Equal(t, expect, row.Map())
	assert.Equal(t, []string{
		"Assessed Value", "Year", "Month", "Quarter", "DayOfWeek",
		"Latitude", "Longitude", "Town_Hartford", "PropType_Single Family",
	}, row.Columns())
}

func TestBuildFeatures_AllCategories(t *testing.T) {
	base := []string{
		domain.ColAssessedValue, domain.ColYear, domain.ColMonth, domain.ColQuarter,
		domain.ColDayOfWeek, domain.ColLatitude, domain.ColLongitude,
	}

	for _, town := range domain.Towns {
		for _, pt := range domain.PropertyTypes {
			row, err := BuildFeatures("2021-11-30", 120000, pt, town)
			require.NoError(t, err)

			for _, c := range base {
				assert.True(t, row.Has(c), "missing %s", c)
			}
			lat, _ := row.Get(domain.ColLatitude)
			lon, _ := row.Get(domain.ColLongitude)
			assert.Zero(t, lat)
			assert.Zero(t, lon)

			towns, types := 0, 0
			for _, c := range row.Columns() {
				v, _ := row.Get(c)
				switch {
				case strings.HasPrefix(c, domain.TownPrefix):
					towns++
					assert.Equal(t, domain.TownColumn(town), c)
					assert.Equal(t, 1.0, v)
				case strings.HasPrefix(c, domain.PropTypePrefix):
					types++
					assert.Equal(t, domain.PropTypeColumn(pt), c)
					assert.Equal(t, 1.0, v)
				}
			}
			assert.Equal(t, 1, towns)
			assert.Equal(t, 1, types)
		}
	}
}

func TestBuildFeatures_CalendarParts(t *testing.T) {
	tests := []struct {
		date    string
		quarter float64
		dow     float64
	}{
		{"2022-01-01", 1, 5}, // Saturday
		{"2022-01-03", 1, 0}, // Monday
		{"2022-04-10", 2, 6}, // Sunday
		{"2022-09-30", 3, 4},
		{"2022-10-01", 4, 5},
		{"2022-12-31T10:00:00Z", 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			row, err := BuildFeatures(tt.date, 1000, "Condo", "Avon")
			require.NoError(t, err)
			q, _ := row.Get(domain.ColQuarter)
			d, _ := row.Get(domain.ColDayOfWeek)
			assert.Equal(t, tt.quarter, q)
			assert.Equal(t, tt.dow, d)
		})
	}
}

func TestBuildFeatures_MalformedDate(t *testing.T) {
	for _, raw := range []string{"", "15/06/2022", "2022-13-01", "yesterday"} {
		_, err := BuildFeatures(raw, 1000, "Condo", "Avon")
		assert.ErrorIs(t, err, domain.ErrMalformedInput, raw)
	}
}
