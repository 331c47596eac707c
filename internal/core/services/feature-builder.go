package services

import (
	"fmt"
	"strings"
	"time"

	"ct-price-predictor/internal/core/domain"
)

var saleDateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseSaleDate accepts a calendar date (YYYY-MM-DD) or an RFC3339 timestamp.
func ParseSaleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: sale date %q", domain.ErrMalformedInput, raw)
}

// BuildFeatures maps the raw form inputs onto a feature row. Latitude and
// Longitude are fixed placeholders. Indicator suffixes are the literal inputs.
func BuildFeatures(saleDate string, assessedValue float64, propertyType, town string) (domain.FeatureRow, error) {
	date, err := ParseSaleDate(saleDate)
	if err != nil {
		return domain.FeatureRow{}, err
	}

	row := domain.NewFeatureRow()
	row.Set(domain.ColAssessedValue, assessedValue)
	row.Set(domain.ColYear, float64(date.Year()))
	row.Set(domain.ColMonth, float64(date.Month()))
	row.Set(domain.ColQuarter, float64(quarter(date)))
	row.Set(domain.ColDayOfWeek, float64(weekday(date)))
	row.Set(domain.ColLatitude, 0)
	row.Set(domain.ColLongitude, 0)
	row.Set(domain.TownColumn(town), 1)
	row.Set(domain.PropTypeColumn(propertyType), 1)
	return row, nil
}

func quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// weekday numbers days Monday=0 through Sunday=6.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
