package data

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Passenger table columns.
const (
	ColSurvived = "Survived"
	ColPclass   = "Pclass"
	ColSex      = "Sex"
	ColSibSp    = "SibSp"
	ColFare     = "Fare"
	ColEmbarked = "Embarked"
	ColAge      = "Age"
	ColTicket   = "Ticket"
)

// columnTypes fixes the series type of every known column. Anything else is
// loaded as a string. Integer columns are floats so that exports like "3.0"
// keep their value.
var columnTypes = map[string]series.Type{
	ColSurvived: series.Float,
	ColPclass:   series.Float,
	ColSibSp:    series.Float,
	ColFare:     series.Float,
	ColAge:      series.Float,
	ColSex:      series.String,
	ColEmbarked: series.String,
	ColTicket:   series.String,
}

// Table is a read-only passenger record table backed by a gota dataframe.
type Table struct {
	df    dataframe.DataFrame
	names []string
	nrows int
}

func newTable(cols []series.Series) (*Table, error) {
	df := dataframe.New(cols...)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Table{df: df, names: df.Names(), nrows: df.Nrow()}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.nrows }

// Names returns the column names in file order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	for _, n := range t.names {
		if n == name {
			return true
		}
	}
	return false
}

// Require returns ErrMissingColumn for the first absent column.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if !t.Has(n) {
			return missingColumn(n)
		}
	}
	return nil
}

func (t *Table) col(name string) (series.Series, error) {
	if !t.Has(name) {
		return series.Series{}, missingColumn(name)
	}
	s := t.df.Col(name)
	if s.Err != nil {
		return series.Series{}, s.Err
	}
	return s, nil
}

// Floats returns the column as float64 values. Missing entries are NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, err
	}
	if s.Type() == series.String {
		// Free-text columns have no numeric reading.
		out := make([]float64, s.Len())
		for i := range out {
			out[i] = math.NaN()
		}
		return out, nil
	}
	return s.Float(), nil
}

// Strings returns the column as text along with a mask of missing entries.
func (t *Table) Strings(name string) ([]string, []bool, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, nil, err
	}
	return s.Records(), s.IsNaN(), nil
}

// Missing returns a mask of missing entries in the column.
func (t *Table) Missing(name string) ([]bool, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, err
	}
	return s.IsNaN(), nil
}
