package analysis

import (
	"math"

	"titanic/pkg/data"
	"titanic/pkg/stats"
)

// SurvivalRate returns the percentage of passengers who survived, over all
// rows. Missing outcomes count as not survived.
func SurvivalRate(t *data.Table) (float64, error) {
	survived, err := t.Floats(data.ColSurvived)
	if err != nil {
		return 0, err
	}
	if len(survived) == 0 {
		return 0, ErrDivisionByZero
	}
	return stats.Sum(stats.DropNaN(survived)) / float64(len(survived)) * 100, nil
}

// GenderProportion returns each sex's share of the passengers whose sex is
// known, as a percentage.
func GenderProportion(t *data.Table) (Breakdown[string, float64], error) {
	counts, err := countBy(t, data.ColSex)
	if err != nil {
		return Breakdown[string, float64]{}, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return Breakdown[string, float64]{}, ErrDivisionByZero
	}
	share := make(map[string]float64, len(counts))
	for k, n := range counts {
		share[k] = float64(n) / float64(total) * 100
	}
	return newBreakdown(share), nil
}

// ClassSurvivalRate returns the survival percentage per passenger class.
// Classes without a known outcome are left out.
func ClassSurvivalRate(t *data.Table) (Breakdown[int, float64], error) {
	return classMean(t, data.ColSurvived, 100)
}

// CountSiblingsSpousesAboard returns the number of passengers travelling
// with at least one sibling or spouse.
func CountSiblingsSpousesAboard(t *data.Table) (int, error) {
	sibsp, err := t.Floats(data.ColSibSp)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range sibsp {
		if v > 0 {
			n++
		}
	}
	return n, nil
}

// AverageFareByClass returns the mean known fare per passenger class.
func AverageFareByClass(t *data.Table) (Breakdown[int, float64], error) {
	return classMean(t, data.ColFare, 1)
}

// CountPassengersByPort returns the number of passengers per embarkation
// port. Passengers with no recorded port are not counted.
func CountPassengersByPort(t *data.Table) (Breakdown[string, int], error) {
	counts, err := countBy(t, data.ColEmbarked)
	if err != nil {
		return Breakdown[string, int]{}, err
	}
	return newBreakdown(counts), nil
}

// GenderSurvivalRate returns the survival percentage per sex.
func GenderSurvivalRate(t *data.Table) (Breakdown[string, float64], error) {
	sex, missing, err := t.Strings(data.ColSex)
	if err != nil {
		return Breakdown[string, float64]{}, err
	}
	survived, err := t.Floats(data.ColSurvived)
	if err != nil {
		return Breakdown[string, float64]{}, err
	}
	groups := make(map[string][]float64)
	for i, k := range sex {
		if missing[i] || math.IsNaN(survived[i]) {
			continue
		}
		groups[k] = append(groups[k], survived[i])
	}
	return newBreakdown(means(groups, 100)), nil
}

// CountUniqueTickets returns the number of distinct ticket numbers.
func CountUniqueTickets(t *data.Table) (int, error) {
	tickets, missing, err := t.Strings(data.ColTicket)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(tickets))
	for i, tk := range tickets {
		if missing[i] {
			continue
		}
		seen[tk] = struct{}{}
	}
	return len(seen), nil
}

// countBy counts rows per value of a categorical column, skipping missing values.
func countBy(t *data.Table, col string) (map[string]int, error) {
	values, missing, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for i, v := range values {
		if missing[i] {
			continue
		}
		counts[v]++
	}
	return counts, nil
}

// classMean groups col by Pclass and returns the scaled mean per class.
func classMean(t *data.Table, col string, scale float64) (Breakdown[int, float64], error) {
	class, err := t.Floats(data.ColPclass)
	if err != nil {
		return Breakdown[int, float64]{}, err
	}
	values, err := t.Floats(col)
	if err != nil {
		return Breakdown[int, float64]{}, err
	}
	groups := make(map[int][]float64)
	for i, c := range class {
		if math.IsNaN(c) || math.IsNaN(values[i]) {
			continue
		}
		groups[int(c)] = append(groups[int(c)], values[i])
	}
	return newBreakdown(means(groups, scale)), nil
}

func means[K comparable](groups map[K][]float64, scale float64) map[K]float64 {
	out := make(map[K]float64, len(groups))
	for k, vs := range groups {
		out[k] = stats.Mean(vs) * scale
	}
	return out
}
