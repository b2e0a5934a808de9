package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/parsical/internal/calendar"
)

func newTodayCmd(opts *options) *cobra.Command {
	var pattern string
	var withTime bool

	c := &cobra.Command{
		Use:   "today",
		Short: "Print today's Persian date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if withTime {
				tz, err := opts.zone()
				if err != nil {
					return err
				}
				now := calendar.ZonedFromInstant(opts.now(), tz)
				if !cmd.Flags().Changed("format") {
					fmt.Fprintln(cmd.OutOrStdout(), now)
					return nil
				}
				dt, err := now.DateTime()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dt.Format(pattern))
				return nil
			}

			today, err := opts.today()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), today.Format(pattern))
			return nil
		},
	}
	c.Flags().StringVarP(&pattern, "format", "f", opts.cfg.DefaultPattern, "Output pattern")
	c.Flags().BoolVar(&withTime, "time", false, "Include the time of day and zone offset, or allow %H %M %S %T in --format")
	return c
}

func newConvertCmd(opts *options) *cobra.Command {
	var pattern string

	c := &cobra.Command{
		Use:   "convert GREGORIAN-DATE",
		Short: "Convert a Gregorian YYYY-MM-DD date to Persian",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := time.Parse(time.DateOnly, args[0])
			if err != nil {
				return fmt.Errorf("gregorian date %q: use YYYY-MM-DD", args[0])
			}
			d, err := calendar.DateFromGregorian(g)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(pattern))
			return nil
		},
	}
	c.Flags().StringVarP(&pattern, "format", "f", opts.cfg.DefaultPattern, "Output pattern")
	return c
}

func newGregorianCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gregorian PERSIAN-DATE",
		Short: "Convert a Persian date to Gregorian YYYY-MM-DD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseInputDate(args[0])
			if err != nil {
				return err
			}
			g, err := d.ToGregorian()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), g.Format(time.DateOnly))
			return nil
		},
	}
}

func newFormatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "format PERSIAN-DATE PATTERN",
		Short: "Format a Persian date with a strftime-style pattern",
		Long: `Format a Persian date with a strftime-style pattern.

Specifiers: %Y %m %d %B %A %w %j %K %%. Unknown specifiers are copied
through unchanged. The named styles short, long and iso may be given in
place of a pattern.`,
		Example: `  parsical format 1403/05/02 "%A %d %B %Y"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseInputDate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(args[1]))
			return nil
		},
	}
}

func newParseCmd(opts *options) *cobra.Command {
	var pattern string
	var withTime bool

	c := &cobra.Command{
		Use:   "parse INPUT",
		Short: "Parse text into a Persian date using a pattern",
		Example: `  parsical parse "02 مرداد 1403" --pattern "%d %B %Y"
  parsical parse "1403/05/02 18:30:00" --pattern "%Y/%m/%d %T" --time`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if withTime {
				dt, err := calendar.ParseDateTime(args[0], pattern)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dt)
				return nil
			}
			d, err := calendar.ParseDate(args[0], pattern)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
	c.Flags().StringVarP(&pattern, "pattern", "p", opts.cfg.DefaultPattern, "Input pattern")
	c.Flags().BoolVar(&withTime, "time", false, "Parse a date and time (%H %M %S %T)")
	return c
}

func newShiftCmd(opts *options) *cobra.Command {
	var years, months, days int

	c := &cobra.Command{
		Use:   "shift PERSIAN-DATE",
		Short: "Move a Persian date by years, months and days",
		Long: `Move a Persian date by years, then months, then days.

Year and month steps clamp the day to the target month's length, so
1403/12/30 plus one year is 1404/12/29.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseInputDate(args[0])
			if err != nil {
				return err
			}
			if d, err = d.AddYears(years); err != nil {
				return err
			}
			if d, err = d.AddMonths(months); err != nil {
				return err
			}
			if d, err = d.AddDays(days); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
	c.Flags().IntVar(&years, "years", 0, "Years to add (may be negative)")
	c.Flags().IntVar(&months, "months", 0, "Months to add (may be negative)")
	c.Flags().IntVar(&days, "days", 0, "Days to add (may be negative)")
	return c
}

func newBetweenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "between FROM TO",
		Short: "Count the days from one Persian date to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseInputDate(args[0])
			if err != nil {
				return err
			}
			to, err := parseInputDate(args[1])
			if err != nil {
				return err
			}
			n, err := from.DaysBetween(to)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
