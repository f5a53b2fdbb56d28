package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/sheet-events/internal/calendar"
	"github.com/pfrederiksen/sheet-events/internal/filter"
	"github.com/pfrederiksen/sheet-events/internal/logger"
	"github.com/pfrederiksen/sheet-events/internal/server"
)

func newListCmd(a *app) *cobra.Command {
	var (
		search   string
		when     string
		category string
		status   string
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := filter.ParseWhen(when)
			if err != nil {
				return err
			}
			order, err := ParseSortOrder(sortBy)
			if err != nil {
				return err
			}
			f := filter.Filter{Query: search, When: w, Category: category, Status: status}

			set := a.newSession().Load(cmd.Context())
			events := f.Apply(set.Events, time.Now())
			sortEvents(events, order)

			if flagVerbose && !f.IsEmpty() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Filters: %s\n", f)
			}
			return WriteList(cmd.OutOrStdout(), set.Envelope(events), a.format, flagVerbose)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Search title, description, tags and category")
	cmd.Flags().StringVar(&when, "when", "all", "Time window: all, upcoming or past")
	cmd.Flags().StringVar(&category, "category", "", "Only events in this category")
	cmd.Flags().StringVar(&status, "status", "", "Only events with this registration status (open, closed, upcoming)")
	cmd.Flags().StringVar(&sortBy, "sort", "feed", "Sort order: feed, date or title")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := a.newSession().Load(cmd.Context())
			evt, ok := set.Find(args[0])
			if !ok {
				return fmt.Errorf("event not found: %s", args[0])
			}
			return WriteEvent(cmd.OutOrStdout(), evt, a.format)
		},
	}
}

func newICSCmd(a *app) *cobra.Command {
	var (
		all    bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "ics [id]",
		Short: "Export an event, or every dated event with --all, as iCalendar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("pass either an event id or --all")
			}

			set := a.newSession().Load(cmd.Context())
			now := time.Now()

			var ics string
			if all {
				ics = calendar.GenerateBulkICS(set.Events, "Campus Events", now)
				if ics == "" {
					return fmt.Errorf("no events with calendar dates")
				}
			} else {
				evt, ok := set.Find(args[0])
				if !ok {
					return fmt.Errorf("event not found: %s", args[0])
				}
				var err error
				if ics, err = calendar.GenerateICS(evt, now); err != nil {
					return fmt.Errorf("exporting event %s: %w", evt.ID, err)
				}
			}

			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
				return err
			}
			if err := os.WriteFile(output, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			if flagVerbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Export every event that has a date")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the events API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			sess := a.newSession()
			go func() {
				set := sess.Load(ctx)
				logger.Info("Initial load complete", logger.Fields{
					"source": string(set.Source),
					"count":  len(set.Events),
				})
			}()

			srv := server.New(sess,
				server.WithMetrics(a.metrics),
				server.WithAllowedOrigins(a.cfg.Server.AllowedOrigins),
			)
			return srv.ListenAndServe(ctx, a.cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}
