package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titanic/pkg/data"
)

const header = "Survived,Pclass,Sex,SibSp,Fare,Embarked,Age,Ticket\n"

func table(t *testing.T, rows ...string) *data.Table {
	t.Helper()
	tbl, err := data.Read(strings.NewReader(header + strings.Join(rows, "\n") + "\n"))
	require.NoError(t, err)
	return tbl
}

// repeat builds n rows from a format that takes the row index.
func repeat(n int, format string) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf(format, i)
	}
	return rows
}

func TestEndToEndExample(t *testing.T) {
	tbl := table(t,
		"1,1,female,0,100,C,29,A",
		"0,3,male,1,10,S,40,B",
	)

	rate, err := SurvivalRate(tbl)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, rate, 1e-9)

	gender, err := GenderProportion(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"female": 50, "male": 50}, gender.Map())

	class, err := ClassSurvivalRate(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 100, 3: 0}, class.Map())
	best, err := class.ArgMax()
	require.NoError(t, err)
	assert.Equal(t, 1, best)

	sibsp, err := CountSiblingsSpousesAboard(tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, sibsp)

	fares, err := AverageFareByClass(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 100, 3: 10}, fares.Map())

	ports, err := CountPassengersByPort(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 1, "S": 1}, ports.Map())

	genderRate, err := GenderSurvivalRate(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"female": 100, "male": 0}, genderRate.Map())

	tickets, err := CountUniqueTickets(tbl)
	require.NoError(t, err)
	assert.Equal(t, 2, tickets)
}

func TestSurvivalRateBounds(t *testing.T) {
	none := table(t, repeat(4, "0,3,male,0,7.25,S,20,T%d")...)
	rate, err := SurvivalRate(none)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)

	all := table(t, repeat(4, "1,1,female,0,80,C,30,T%d")...)
	rate, err = SurvivalRate(all)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rate)
}

func TestSurvivalRateEmptyTable(t *testing.T) {
	tbl, err := data.Read(strings.NewReader(header))
	require.NoError(t, err)
	require.Equal(t, 0, tbl.Len())

	_, err = SurvivalRate(tbl)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = GenderProportion(tbl)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestSurvivalRateMissingOutcome(t *testing.T) {
	tbl := table(t,
		"1,1,female,0,80,C,30,A",
		",1,female,0,80,C,30,B",
	)
	rate, err := SurvivalRate(tbl)
	require.NoError(t, err)
	assert.Equal(t, 50.0, rate)

	class, err := ClassSurvivalRate(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 100}, class.Map())
}

func TestGenderProportionSumsToHundred(t *testing.T) {
	tbl := table(t,
		"0,3,male,0,7,S,20,A",
		"0,3,male,0,7,S,20,B",
		"1,2,female,0,20,Q,20,C",
		"1,1,male,0,90,C,20,D",
		"1,1,female,0,90,C,20,E",
		"0,3,male,0,7,S,20,F",
		",3,,0,7,S,20,G",
	)
	gender, err := GenderProportion(tbl)
	require.NoError(t, err)

	total := 0.0
	for _, k := range gender.Keys() {
		v, err := gender.Get(k)
		require.NoError(t, err)
		total += v
	}
	assert.InDelta(t, 100.0, total, 1e-9)

	male, err := gender.Get("male")
	require.NoError(t, err)
	assert.InDelta(t, 400.0/6, male, 1e-9)
}

func TestClassSurvivalRateOmitsEmptyClass(t *testing.T) {
	tbl := table(t,
		"1,1,female,0,80,C,30,A",
		"0,3,male,0,8,S,30,B",
		"1,3,male,0,8,S,30,C",
	)
	class, err := ClassSurvivalRate(tbl)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, class.Keys())
	_, err = class.Get(2)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	rate, err := class.Get(3)
	require.NoError(t, err)
	assert.Equal(t, 50.0, rate)
}

func TestAverageFareOneRowPerClass(t *testing.T) {
	tbl := table(t,
		"1,1,female,0,512.3292,C,30,A",
		"0,2,male,0,13,S,30,B",
		"0,3,male,0,7.8958,S,30,C",
	)
	fares, err := AverageFareByClass(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 512.3292, 2: 13, 3: 7.8958}, fares.Map())
}

func TestAverageFareSkipsMissing(t *testing.T) {
	tbl := table(t,
		"1,1,female,0,100,C,30,A",
		"1,1,female,0,,C,30,B",
		"1,1,female,0,50,C,30,C",
		"0,2,male,0,,S,30,D",
	)
	fares, err := AverageFareByClass(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 75}, fares.Map())
}

func TestCountSiblingsSpousesAboard(t *testing.T) {
	zero := table(t, repeat(5, "0,3,male,0,7,S,20,T%d")...)
	n, err := CountSiblingsSpousesAboard(zero)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	one := table(t, repeat(5, "0,3,male,1,7,S,20,T%d")...)
	n, err = CountSiblingsSpousesAboard(one)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCountPassengersByPortSkipsMissing(t *testing.T) {
	tbl := table(t,
		"1,1,female,0,80,C,30,A",
		"1,1,female,0,80,,30,B",
		"0,3,male,0,8,S,30,C",
		"0,3,male,0,8,S,30,D",
	)
	ports, err := CountPassengersByPort(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "S"}, ports.Keys())
	assert.Equal(t, map[string]int{"C": 1, "S": 2}, ports.Map())

	_, err = ports.Get("Q")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGenderSurvivalRateMissingCategory(t *testing.T) {
	tbl := table(t, repeat(3, "0,3,male,0,7,S,20,T%d")...)
	rates, err := GenderSurvivalRate(tbl)
	require.NoError(t, err)

	_, err = rates.Get("female")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Contains(t, err.Error(), "female")
}

func TestCountUniqueTickets(t *testing.T) {
	rows := make([]string, 6)
	for i := range rows {
		rows[i] = "0,3,male,0,7,S,20,CA 2343"
	}
	shared := table(t, rows...)
	n, err := CountUniqueTickets(shared)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	distinct := table(t, repeat(6, "0,3,male,0,7,S,20,T%d")...)
	n, err = CountUniqueTickets(distinct)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestMissingColumn(t *testing.T) {
	tbl, err := data.Read(strings.NewReader("Survived,Sex\n1,male\n"))
	require.NoError(t, err)

	_, err = ClassSurvivalRate(tbl)
	assert.ErrorIs(t, err, data.ErrMissingColumn)
	_, err = AverageFareByClass(tbl)
	assert.ErrorIs(t, err, data.ErrMissingColumn)
	_, err = CountSiblingsSpousesAboard(tbl)
	assert.ErrorIs(t, err, data.ErrMissingColumn)
	_, err = CountPassengersByPort(tbl)
	assert.ErrorIs(t, err, data.ErrMissingColumn)
	_, err = CountUniqueTickets(tbl)
	assert.ErrorIs(t, err, data.ErrMissingColumn)

	_, err = SurvivalRate(tbl)
	assert.NoError(t, err)
}

func TestAggregatesOverExportedEncodings(t *testing.T) {
	tbl, err := data.Read(strings.NewReader(header +
		"True,1.0,female,1.0,100,C,29,A\n" +
		"False,3.0,male,0.0,10,S,40,B\n" +
		"True,3.0,female,0.0,12,S,,C\n"))
	require.NoError(t, err)

	rate, err := SurvivalRate(tbl)
	require.NoError(t, err)
	assert.InDelta(t, 200.0/3, rate, 1e-9)

	class, err := ClassSurvivalRate(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 100, 3: 50}, class.Map())

	fares, err := AverageFareByClass(tbl)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 100, 3: 11}, fares.Map())

	sibsp, err := CountSiblingsSpousesAboard(tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, sibsp)
}
