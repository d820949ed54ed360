package cmd

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailsend/calendar"
)

var (
	calLocation, calSummary string
	calStart, calEnd        string
	calRenderer             calendar.Renderer

	calendarCmd = &cobra.Command{
		Use:   "calendar",
		Short: "Print an iCalendar event, for use with send --calendar-file",
		RunE:  RunCalendar,
	}
)

func init() {
	fs := calendarCmd.Flags()
	fs.StringVar(&calLocation, "location", "", "where the event takes place")
	fs.StringVar(&calSummary, "summary", "", "what the event is")
	fs.StringVar(&calStart, "start", "", "start time, in almost any common format")
	fs.StringVar(&calEnd, "end", "", "end time, defaults to one hour after start")
	fs.StringVar(&calRenderer.Timezone, "timezone", calendar.DefaultTimezone, "TZID of the start and end")
	fs.StringVar(&calRenderer.Product, "product", calendar.DefaultProduct, "product named in PRODID")
	_ = calendarCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(calendarCmd)
}

func RunCalendar(cmd *cobra.Command, _ []string) error {
	start, err := dateparse.ParseAny(calStart)
	if err != nil {
		return fmt.Errorf("bad --start: %w", err)
	}

	end := start.Add(time.Hour)
	if calEnd != "" {
		end, err = dateparse.ParseAny(calEnd)
		if err != nil {
			return fmt.Errorf("bad --end: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), calRenderer.Render(calLocation, calSummary, start, end))
	return nil
}
