package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zapponejosh/parsical/internal/calendar"
)

const cellWidth = 4

var (
	colorMuted   = lipgloss.Color("#6B7280")
	colorHoliday = lipgloss.Color("#EF4444")

	titleStyle  = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center).Width(7 * cellWidth)
	headerStyle = lipgloss.NewStyle().Foreground(colorMuted).Align(lipgloss.Right).Width(cellWidth)
	dayStyle    = lipgloss.NewStyle().Align(lipgloss.Right).Width(cellWidth)
	fridayStyle = dayStyle.Foreground(colorHoliday)
	todayStyle  = dayStyle.Bold(true).Reverse(true)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

func newMonthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YEAR MONTH]",
		Short: "Print a Persian month as a Saturday-first grid",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts no arguments or YEAR MONTH, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := opts.today()
			if err != nil {
				return err
			}

			first := today.FirstDayOfMonth()
			if len(args) == 2 {
				year, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("year %q: %w", args[0], err)
				}
				month, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("month %q: %w", args[1], err)
				}
				if first, err = calendar.NewDate(year, month, 1); err != nil {
					return err
				}
			}

			grid, err := renderMonth(first, today)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), grid)
			return nil
		},
	}
}

// renderMonth draws the month containing first. today is highlighted when
// it falls inside that month.
func renderMonth(first, today calendar.Date) (string, error) {
	first = first.FirstDayOfMonth()
	lead, err := first.WeekdayNumber()
	if err != nil {
		return "", err
	}
	season, err := first.Season()
	if err != nil {
		return "", err
	}
	monthName, _ := calendar.MonthName(first.Month())
	last := first.LastDayOfMonth().Day()

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s %d", monthName, first.Year())),
	}

	header := make([]string, 0, 7)
	for _, name := range calendar.WeekdayNames {
		initial, _ := utf8.DecodeRuneInString(name)
		header = append(header, headerStyle.Render(string(initial)))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	week := make([]string, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, dayStyle.Render(""))
	}
	for day := 1; day <= last; day++ {
		style := dayStyle
		switch {
		case today.Year() == first.Year() && today.Month() == first.Month() && today.Day() == day:
			style = todayStyle
		case len(week) == 6:
			style = fridayStyle
		}
		week = append(week, style.Render(strconv.Itoa(day)))
		if len(week) == 7 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, week...))
			week = week[:0]
		}
	}
	if len(week) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}

	leap := ""
	if first.IsLeapYear() {
		leap = ", leap year"
	}
	lines = append(lines, footerStyle.Render(fmt.Sprintf("%s (%s), %d days%s",
		season.PersianName(), season.EnglishName(), last, leap)))

	return strings.Join(lines, "\n"), nil
}
