package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/dias-uteis/internal/calendar"
	"github.com/username/dias-uteis/internal/config"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/overlay"
	"github.com/username/dias-uteis/internal/report"
	"github.com/username/dias-uteis/internal/workdays"
	"github.com/username/dias-uteis/pkg/dateutil"
	"go.uber.org/zap"
)

// newClassifier builds a day classifier with the given dates toggled as in
// edit mode
func newClassifier(holidays *holiday.Calendar, toggles []string) (*calendar.Classifier, error) {
	ov := overlay.NewStore(holidays, logger)
	for _, s := range toggles {
		date, err := dateutil.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid --toggle: %w", err)
		}
		ov.Toggle(date)
	}
	return calendar.NewClassifier(holidays, ov, nil, dateutil.Today()), nil
}

// defaultYear returns the configured year, or the current one
func defaultYear() int {
	cfg, err := config.Load(configPath)
	if err != nil {
		return time.Now().Year()
	}
	return cfg.Calendar.GetYear(time.Now())
}

func checkYear(year int) error {
	if year < 1583 || year > 9999 {
		return fmt.Errorf("year out of range: %d", year)
	}
	return nil
}

func countCmd() *cobra.Command {
	var from, to, hours string
	var toggles []string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count working days and hours between two dates",
		Example: `  dias-uteis count --from 2024-11-14 --to 2024-11-30 --hours 7.5
  dias-uteis count --from 01/01/2024 --to 07/01/2024 --toggle 2024-01-06`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			end, err := dateutil.ParseDate(to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			if !cmd.Flags().Changed("hours") {
				if cfg, err := config.Load(configPath); err == nil {
					hours = cfg.Calendar.HoursPerDay
				}
			}

			holidays := holiday.NewCalendar(logger)
			days, err := newClassifier(holidays, toggles)
			if err != nil {
				return err
			}

			res := workdays.AggregateRange(start, end, workdays.ParseHoursPerDay(hours), days)
			logger.Debug("Range aggregated",
				zap.String("start", dateutil.Key(res.Start)),
				zap.String("end", dateutil.Key(res.End)),
				zap.Int("working_days", res.WorkingDays))

			return report.WriteSummary(os.Stdout, res)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day of the range (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the range (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&hours, "hours", "8", "Working hours per day")
	cmd.Flags().StringArrayVar(&toggles, "toggle", nil, "Toggle a day as in edit mode (repeatable)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func holidaysCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the computed holidays of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("year") {
				year = defaultYear()
			}
			if err := checkYear(year); err != nil {
				return err
			}
			holidays := holiday.NewCalendar(logger)
			return report.WriteHolidays(os.Stdout, holidays.List(year))
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: configured or current year)")
	return cmd
}

func easterCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "easter",
		Short: "Print Easter Sunday and its movable feasts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("year") {
				year = defaultYear()
			}
			if err := checkYear(year); err != nil {
				return err
			}
			return report.WriteEaster(os.Stdout, year)
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: configured or current year)")
	return cmd
}

func monthCmd() *cobra.Command {
	var year, month int
	var toggles []string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print a month grid with holidays and weekends marked",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if !cmd.Flags().Changed("year") {
				year = defaultYear()
			}
			if !cmd.Flags().Changed("month") {
				month = int(now.Month())
			}
			if err := checkYear(year); err != nil {
				return err
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("month out of range: %d", month)
			}

			holidays := holiday.NewCalendar(logger)
			days, err := newClassifier(holidays, toggles)
			if err != nil {
				return err
			}
			return report.WriteMonth(os.Stdout, days.GetMonthInfo(year, time.Month(month)))
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: configured or current year)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (default: current month)")
	cmd.Flags().StringArrayVar(&toggles, "toggle", nil, "Toggle a day as in edit mode (repeatable)")
	return cmd
}

func dayCmd() *cobra.Command {
	var toggles []string

	cmd := &cobra.Command{
		Use:     "day DATE",
		Short:   "Classify a single day",
		Example: "  dias-uteis day 2024-11-20\n  dias-uteis day 2024-01-06 --toggle 2024-01-06",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			if err := checkYear(date.Year()); err != nil {
				return err
			}

			holidays := holiday.NewCalendar(logger)
			days, err := newClassifier(holidays, toggles)
			if err != nil {
				return err
			}
			fmt.Println(report.DayLine(days.GetDayInfo(date)))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&toggles, "toggle", nil, "Toggle a day as in edit mode (repeatable)")
	return cmd
}
