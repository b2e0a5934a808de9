package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/parsical/internal/calendar"
	"github.com/zapponejosh/parsical/internal/config"
)

// Input dates on the command line may use slashes or dashes.
const (
	slashPattern = "%Y/%m/%d"
	dashPattern  = "%Y-%m-%d"
)

// options carries the persistent flags and test hooks shared by every
// subcommand.
type options struct {
	cfg     *config.Config
	tz      string
	verbose bool
	now     func() time.Time
}

func (o *options) zone() (calendar.TimeZone, error) {
	return calendar.LoadZone(o.tz)
}

// today is the current Persian date in the selected zone.
func (o *options) today() (calendar.Date, error) {
	tz, err := o.zone()
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.ZonedFromInstant(o.now(), tz).Date()
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCmd builds the full command tree. Defaults for --tz and --db come
// from the same environment variables the API server reads.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{cfg: config.FromEnv(), now: time.Now})
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "parsical",
		Short: "Persian (Solar Hijri) calendar tools",
		Long: `parsical converts between the Persian and Gregorian calendars,
formats and parses Persian dates, prints month grids and imports
calendar events into the parsical API database.

Dates are written YYYY/MM/DD or YYYY-MM-DD.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.tz, "tz", opts.cfg.Timezone, "IANA time zone for today and now")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newTodayCmd(opts),
		newConvertCmd(opts),
		newGregorianCmd(opts),
		newFormatCmd(opts),
		newParseCmd(opts),
		newShiftCmd(opts),
		newBetweenCmd(opts),
		newMonthCmd(opts),
		newImportCmd(opts),
		newVerifyCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the parsical command.
func Execute() error {
	return NewRootCmd().Execute()
}

// parseInputDate reads a Persian date written YYYY/MM/DD or YYYY-MM-DD.
func parseInputDate(s string) (calendar.Date, error) {
	pattern := slashPattern
	if strings.Contains(s, "-") {
		pattern = dashPattern
	}
	d, err := calendar.ParseDate(s, pattern)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	return d, nil
}
