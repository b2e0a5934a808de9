package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/parsical/internal/calendar"
)

// DayResult holds the checks for a single Gregorian day.
type DayResult struct {
	Gregorian string `json:"gregorian"`
	Persian   string `json:"persian,omitempty"`
	Error     string `json:"error,omitempty"`
}

// YearStats tracks results for one Persian year.
type YearStats struct {
	Year       int      `json:"year"`
	Days       int      `json:"days"`
	Leap       bool     `json:"leap"`
	Failed     int      `json:"failed"`
	FailedDays []string `json:"failed_days,omitempty"`
}

// VerifyReport is written by --output.
type VerifyReport struct {
	StartYear   int          `json:"start_year"`
	EndYear     int          `json:"end_year"`
	TotalDays   int          `json:"total_days"`
	TotalFailed int          `json:"total_failed"`
	Years       []*YearStats `json:"years"`
	Failures    []DayResult  `json:"failures,omitempty"`
}

func newVerifyCmd(opts *options) *cobra.Command {
	var startYear, years int
	var output string

	c := &cobra.Command{
		Use:   "verify",
		Short: "Cross-check every day of a span of Persian years",
		Long: `Walk every Gregorian day from Nowruz of the start year to the last day
of the final year and check that:

  - the Persian date converts back to the same Gregorian day
  - consecutive days are one AddDays step apart
  - the weekday agrees with the Gregorian weekday
  - the day of year converts back to the same date
  - every year has the expected number of days`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			endYear := startYear + years - 1
			if years < 1 || startYear < calendar.MinYear || endYear > calendar.MaxYear {
				return fmt.Errorf("years %d-%d are outside %d-%d", startYear, endYear, calendar.MinYear, calendar.MaxYear)
			}

			out := cmd.OutOrStdout()
			report, err := verifyYears(startYear, endYear, opts.verbose, out)
			if err != nil {
				return err
			}
			printVerifySummary(out, report)

			if output != "" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(out, "Report written to %s\n", output)
			}

			if report.TotalFailed > 0 {
				return fmt.Errorf("%d of %d days failed verification", report.TotalFailed, report.TotalDays)
			}
			return nil
		},
	}
	c.Flags().IntVar(&startYear, "start", 1400, "First Persian year")
	c.Flags().IntVar(&years, "years", 10, "Number of years to check")
	c.Flags().StringVarP(&output, "output", "o", "", "Write results to a JSON file")
	return c
}

func verifyYears(startYear, endYear int, verbose bool, out io.Writer) (*VerifyReport, error) {
	first, err := calendar.NewDate(startYear, 1, 1)
	if err != nil {
		return nil, err
	}
	g, err := first.ToGregorian()
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{StartYear: startYear, EndYear: endYear}
	var (
		prev  calendar.Date
		stats *YearStats
	)

	for {
		result := DayResult{Gregorian: g.Format(time.DateOnly)}
		d, err := checkDay(g, prev, report.TotalDays > 0)
		if d.IsValid() {
			result.Persian = d.String()
		}
		if d.Year() > endYear {
			break
		}

		if stats == nil || stats.Year != d.Year() {
			stats = &YearStats{Year: d.Year(), Leap: calendar.IsPersianLeapYear(d.Year())}
			report.Years = append(report.Years, stats)
		}
		stats.Days++
		report.TotalDays++

		if err != nil {
			result.Error = err.Error()
			stats.Failed++
			stats.FailedDays = append(stats.FailedDays, result.Gregorian)
			report.TotalFailed++
			report.Failures = append(report.Failures, result)
		}
		if verbose {
			status := "✓"
			if err != nil {
				status = "✗"
			}
			fmt.Fprintf(out, "  %s %s = %s %s\n", status, result.Gregorian, result.Persian, result.Error)
		}

		if !d.IsValid() || d.Equal(calendar.MaxDate) {
			break
		}
		prev = d
		g = g.AddDate(0, 0, 1)
	}

	for _, s := range report.Years {
		if want := calendar.DaysInYear(s.Year); s.Days != want {
			s.Failed++
			report.TotalFailed++
			report.Failures = append(report.Failures, DayResult{
				Error: fmt.Sprintf("year %d has %d days, want %d", s.Year, s.Days, want),
			})
		}
	}
	return report, nil
}

// checkDay converts g and runs the per-day checks. The returned date is
// valid whenever the conversion itself succeeded.
func checkDay(g time.Time, prev calendar.Date, hasPrev bool) (calendar.Date, error) {
	d, err := calendar.DateFromGregorian(g)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("convert: %w", err)
	}

	back, err := d.ToGregorian()
	if err != nil {
		return d, fmt.Errorf("convert back: %w", err)
	}
	if back.Format(time.DateOnly) != g.Format(time.DateOnly) {
		return d, fmt.Errorf("round trip gave %s", back.Format(time.DateOnly))
	}

	if hasPrev {
		next, err := prev.AddDays(1)
		if err != nil || !next.Equal(d) {
			return d, fmt.Errorf("%s plus one day is %s", prev, next)
		}
	}

	weekday, err := d.WeekdayNumber()
	if err != nil {
		return d, err
	}
	if want := (int(g.Weekday()) + 1) % 7; weekday != want {
		return d, fmt.Errorf("weekday %d, want %d", weekday, want)
	}

	ordinal, err := d.Ordinal()
	if err != nil {
		return d, err
	}
	if again, err := calendar.DateFromOrdinal(d.Year(), ordinal); err != nil || !again.Equal(d) {
		return d, fmt.Errorf("ordinal %d does not map back", ordinal)
	}
	return d, nil
}

func printVerifySummary(out io.Writer, r *VerifyReport) {
	fmt.Fprintln(out, "================================================================")
	fmt.Fprintln(out, "Calendar Verification")
	fmt.Fprintln(out, "================================================================")
	fmt.Fprintf(out, "Years:       %d to %d\n", r.StartYear, r.EndYear)
	fmt.Fprintf(out, "Days tested: %d\n", r.TotalDays)
	fmt.Fprintf(out, "Failures:    %d\n", r.TotalFailed)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%-6s %-5s %5s %7s\n", "Year", "Leap", "Days", "Failed")
	for _, s := range r.Years {
		leap := ""
		if s.Leap {
			leap = "yes"
		}
		fmt.Fprintf(out, "%-6d %-5s %5d %7d\n", s.Year, leap, s.Days, s.Failed)
	}
	fmt.Fprintln(out)

	for _, f := range r.Failures {
		fmt.Fprintf(out, "  ✗ %s %s\n", f.Gregorian, f.Error)
	}
}
