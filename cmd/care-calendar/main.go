package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/care-calendar/internal/config"
	"github.com/username/care-calendar/internal/holidays"
	"github.com/username/care-calendar/internal/publish"
	"github.com/username/care-calendar/internal/roster"
	"github.com/username/care-calendar/internal/shifts"
	"github.com/username/care-calendar/internal/stats"
	"github.com/username/care-calendar/internal/store"
	"github.com/username/care-calendar/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Presentation labels, Monday first
var (
	dayLabels   = []string{"L", "M", "X", "J", "V", "S", "D"}
	monthLabels = []string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "care-calendar",
		Short: "Household caregiving shift calendar",
		Long:  "Track rotating caregiving shifts, day comments and per-person statistics over a shared calendar file",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(
		assignCmd(),
		commentCmd(),
		showCmd(),
		monthCmd(),
		statsCmd(),
		resetCmd(),
		publishCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadStore loads config and the calendar file and returns both
func loadStore() (*config.Config, *store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	st := store.NewStore(cfg.Calendar.File, logger)
	if err := st.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load calendar: %w", err)
	}

	return cfg, st, nil
}

func newHolidayCache(cfg *config.Config) *holidays.Cache {
	provider := holidays.NewHTTPProvider(
		cfg.Holidays.APIURL,
		cfg.Holidays.Country,
		cfg.Holidays.GetTimeout(),
		logger,
	)
	return holidays.NewCache(cfg.Holidays.CacheDir, provider, logger)
}

func assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <date> [code|name]",
		Short: "Assign a caregiver to a day (omit the caregiver to unassign)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDay(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", args[0], err)
			}
			code := ""
			if len(args) == 2 {
				code = args[1]
				// Accept display names too, like the selector in the
				// original web UI
				if c, ok := roster.ByName(code); ok {
					code = c.Code
				}
			}

			_, st, err := loadStore()
			if err != nil {
				return err
			}

			svc := shifts.NewService(st, logger)
			if err := svc.Assign(date, code); err != nil {
				return err
			}

			if code == "" {
				fmt.Printf("✅ %s unassigned\n", args[0])
			} else {
				fmt.Printf("✅ %s → %s\n", args[0], roster.ByCode(code).Name)
			}
			return nil
		},
	}
}

func commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <date> <text>...",
		Short: "Append a comment to a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDay(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", args[0], err)
			}
			text := strings.Join(args[1:], " ")

			_, st, err := loadStore()
			if err != nil {
				return err
			}

			svc := shifts.NewService(st, logger)
			if err := svc.Comment(date, text); err != nil {
				return err
			}

			fmt.Printf("✅ Comment saved for %s\n", args[0])
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	var before, after int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the rolling shift window around today",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadStore()
			if err != nil {
				return err
			}

			today := dateutil.Today()
			for _, day := range dateutil.RollingWindow(today, before, after) {
				rec := st.Get(day)

				name := "-"
				if rec.Turno != "" {
					name = roster.ByCode(rec.Turno).Name
				}

				marker := " "
				if dateutil.SameDay(day, today) {
					marker = "»"
				}

				line := fmt.Sprintf("%s %s %2d %s  %-6s",
					marker,
					dayLabel(day),
					day.Day(),
					monthLabels[day.Month()-1],
					name)
				if n := len(rec.Comentarios); n > 0 {
					line += fmt.Sprintf("  📝 %d", n)
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&before, "before", 5, "Days to show before today")
	cmd.Flags().IntVar(&after, "after", 45, "Days to show after today")

	return cmd
}

func monthCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show month grids starting with the current month",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadStore()
			if err != nil {
				return err
			}

			today := dateutil.Today()
			for i := 0; i < months; i++ {
				first := dateutil.MonthStart(today, i)
				printMonthGrid(st, first.Year(), first.Month())
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 3, "Number of months to show")

	return cmd
}

// printMonthGrid renders one month as a 6-week grid. Each in-month cell
// shows the day number and the assigned caregiver's code; padding days
// from adjacent months render blank.
func printMonthGrid(st *store.Store, year int, month time.Month) {
	fmt.Printf("📊 %s %d\n", monthTitle(month), year)
	fmt.Println("  " + strings.Join(dayLabels, "      "))

	grid := dateutil.MonthGrid(year, month, time.Monday)
	for week := 0; week < len(grid); week += 7 {
		var cells []string
		for _, day := range grid[week : week+7] {
			if !dateutil.SameMonth(day, year, month) {
				cells = append(cells, "      ")
				continue
			}
			code := st.Get(day).Turno
			if code == "" {
				code = "-"
			}
			cells = append(cells, fmt.Sprintf("%2d %-3s", day.Day(), code))
		}
		fmt.Println(strings.Join(cells, " "))
	}
}

func statsCmd() *cobra.Command {
	var months int
	var wholeYear bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-person totals with weekend and holiday breakdowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := loadStore()
			if err != nil {
				return err
			}

			ctx := context.Background()
			cache := newHolidayCache(cfg)
			today := dateutil.Today()

			if wholeYear {
				report := stats.YearReport(today.Year(), st, cache.Get(ctx, today.Year()))
				printReport(fmt.Sprintf("Año %d", report.Year), report)
				return nil
			}

			resolve := func(year int) holidays.Set {
				return cache.Get(ctx, year)
			}
			for _, report := range stats.PeriodReports(today, months, st, resolve) {
				title := fmt.Sprintf("%s %d", monthTitle(report.Month), report.Year)
				printReport(title, report)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 3, "Number of months to report")
	cmd.Flags().BoolVar(&wholeYear, "year", false, "Report the whole current year instead")

	return cmd
}

func printReport(title string, report stats.Report) {
	fmt.Printf("📈 %s\n", title)
	for _, c := range roster.All() {
		fmt.Printf("  %-7s %3d días  (%d finde, %d festivos)\n",
			c.Name,
			report.Total[c.Name],
			report.Weekend[c.Name],
			report.Holiday[c.Name])
	}
}

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the whole calendar (irreversible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes every assignment and comment; re-run with --yes to confirm")
			}

			_, st, err := loadStore()
			if err != nil {
				return err
			}

			svc := shifts.NewService(st, logger)
			if err := svc.Reset(); err != nil {
				return err
			}

			fmt.Println("✅ Calendar reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")

	return cmd
}

func publishCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Commit and push the calendar file to the configured remote",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			pub := publish.NewPublisher(
				cfg.Publish.Remote,
				cfg.Publish.Branch,
				cfg.Publish.AuthorName,
				cfg.Publish.AuthorEmail,
				logger,
			)

			if err := pub.Publish(context.Background(), cfg.Calendar.File, message); err != nil {
				return err
			}

			fmt.Println("✅ Changes published")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "Update calendar", "Commit message")

	return cmd
}

// monthTitle returns the capitalized month label
func monthTitle(month time.Month) string {
	label := monthLabels[month-1]
	return strings.ToUpper(label[:1]) + label[1:]
}

// dayLabel returns the Monday-first weekday label for a date
func dayLabel(date time.Time) string {
	return dayLabels[(int(date.Weekday())+6)%7]
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
