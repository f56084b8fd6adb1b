package analysis

import (
	"fmt"
	"io"

	"titanic/pkg/data"
)

// Ports in the order the report lists them.
var ports = []struct{ Code, Name string }{
	{"C", "Cherbourg"},
	{"Q", "Queenstown"},
	{"S", "Southampton"},
}

// WriteReport computes every statistic over t and writes the formatted
// summary to w. The first failing statistic aborts the report; that includes
// a sex, class or port the data does not contain.
func WriteReport(w io.Writer, t *data.Table) error {
	rw := &reportWriter{w: w}

	rate, err := SurvivalRate(t)
	if err != nil {
		return fmt.Errorf("survival rate: %w", err)
	}
	rw.printf("Survival Rate:\n\t%.2f%%\n\n", rate)

	gender, err := GenderProportion(t)
	if err != nil {
		return fmt.Errorf("gender proportion: %w", err)
	}
	male, female, err := maleFemale(gender)
	if err != nil {
		return fmt.Errorf("gender proportion: %w", err)
	}
	rw.printf("Gender Proportion:\n\tMale: %.2f%%\n\tFemale: %.2f%%\n\n", male, female)

	classRate, err := ClassSurvivalRate(t)
	if err != nil {
		return fmt.Errorf("class survival rate: %w", err)
	}
	c1, c2, c3, err := byClass(classRate)
	if err != nil {
		return fmt.Errorf("class survival rate: %w", err)
	}
	best, err := classRate.ArgMax()
	if err != nil {
		return fmt.Errorf("class survival rate: %w", err)
	}
	rw.printf("Survival Rate by Class:\n\t1st Class: %.2f%%\n\t2nd Class: %.2f%%\n\t3rd Class: %.2f%%\n", c1, c2, c3)
	rw.printf("\tClass with Highest Survival Rate: %s Class\n\n", Ordinal(best))

	sibsp, err := CountSiblingsSpousesAboard(t)
	if err != nil {
		return fmt.Errorf("siblings/spouses aboard: %w", err)
	}
	rw.printf("Passengers with Siblings or Spouses Aboard:\n\t%d passengers\n\n", sibsp)

	fares, err := AverageFareByClass(t)
	if err != nil {
		return fmt.Errorf("average fare: %w", err)
	}
	f1, f2, f3, err := byClass(fares)
	if err != nil {
		return fmt.Errorf("average fare: %w", err)
	}
	rw.printf("Average Fare by Class:\n\t1st Class: $%.2f\n\t2nd Class: $%.2f\n\t3rd Class: $%.2f\n\n", f1, f2, f3)

	embarked, err := CountPassengersByPort(t)
	if err != nil {
		return fmt.Errorf("passengers by port: %w", err)
	}
	counts := make([]int, len(ports))
	for i, p := range ports {
		if counts[i], err = embarked.Get(p.Code); err != nil {
			return fmt.Errorf("passengers by port: %w", err)
		}
	}
	rw.printf("Passengers by Port of Embarkation:\n")
	for i, p := range ports {
		rw.printf("\t%s (%s): %d\n", p.Name, p.Code, counts[i])
	}
	rw.printf("\n")

	genderRate, err := GenderSurvivalRate(t)
	if err != nil {
		return fmt.Errorf("survival rate by gender: %w", err)
	}
	male, female, err = maleFemale(genderRate)
	if err != nil {
		return fmt.Errorf("survival rate by gender: %w", err)
	}
	rw.printf("Survival Rate by Gender:\n\tMale: %.2f%%\n\tFemale: %.2f%%\n\n", male, female)

	tickets, err := CountUniqueTickets(t)
	if err != nil {
		return fmt.Errorf("unique tickets: %w", err)
	}
	rw.printf("Unique Ticket Numbers:\n\t%d unique tickets\n\n", tickets)

	return rw.err
}

// Ordinal renders a class number as 1st, 2nd, 3rd, 4th and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func maleFemale(b Breakdown[string, float64]) (male, female float64, err error) {
	if male, err = b.Get("male"); err != nil {
		return 0, 0, err
	}
	if female, err = b.Get("female"); err != nil {
		return 0, 0, err
	}
	return male, female, nil
}

func byClass(b Breakdown[int, float64]) (c1, c2, c3 float64, err error) {
	if c1, err = b.Get(1); err != nil {
		return
	}
	if c2, err = b.Get(2); err != nil {
		return
	}
	c3, err = b.Get(3)
	return
}

// reportWriter keeps the first write error so the report reads linearly.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}
