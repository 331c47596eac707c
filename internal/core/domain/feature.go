package domain

// Base feature columns, in the order the builder emits them.
const (
	ColAssessedValue = "Assessed Value"
	ColYear          = "Year"
	ColMonth         = "Month"
	ColQuarter       = "Quarter"
	ColDayOfWeek     = "DayOfWeek"
	ColLatitude      = "Latitude"
	ColLongitude     = "Longitude"

	TownPrefix     = "Town_"
	PropTypePrefix = "PropType_"
)

// TownColumn returns the indicator column name for a town.
func TownColumn(town string) string { return TownPrefix + town }

// PropTypeColumn returns the indicator column name for a property type.
func PropTypeColumn(propertyType string) string { return PropTypePrefix + propertyType }

// FeatureRow is a single named numeric row. Column order is significant:
// Values returns the row in that order.
type FeatureRow struct {
	columns []string
	values  map[string]float64
}

func NewFeatureRow() FeatureRow {
	return FeatureRow{values: make(map[string]float64)}
}

// Set assigns a column, appending it to the column order on first use.
func (r *FeatureRow) Set(column string, value float64) {
	if r.values == nil {
		r.values = make(map[string]float64)
	}
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the column value and whether the row carries the column.
func (r FeatureRow) Get(column string) (float64, bool) {
	v, ok := r.values[column]
	return v, ok
}

func (r FeatureRow) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

func (r FeatureRow) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

func (r FeatureRow) Len() int { return len(r.columns) }

// Values returns the row values in column order.
func (r FeatureRow) Values() []float64 {
	out := make([]float64, len(r.columns))
	for i, c := range r.columns {
		out[i] = r.values[c]
	}
	return out
}

// Reindex aligns the row to columns: the result has exactly those columns in
// that order, absent ones set to 0 and anything else dropped.
func (r FeatureRow) Reindex(columns []string) FeatureRow {
	out := FeatureRow{
		columns: make([]string, 0, len(columns)),
		values:  make(map[string]float64, len(columns)),
	}
	for _, c := range columns {
		if _, dup := out.values[c]; dup {
			continue
		}
		out.columns = append(out.columns, c)
		out.values[c] = r.values[c]
	}
	return out
}

// Map returns a copy of the row as a plain map.
func (r FeatureRow) Map() map[string]float64 {
	out := make(map[string]float64, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
