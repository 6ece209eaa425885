package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/onething/internal/config"
	"github.com/verte-zerg/onething/internal/export"
	"github.com/verte-zerg/onething/internal/mirror"
	"github.com/verte-zerg/onething/internal/streak"
)

var (
	graphWindow string
	graphDate   string
	graphTable  bool
	graphColor  bool

	missedLookback  int
	missedThreshold int

	exportFormat string
	exportOut    string

	mirrorInterval time.Duration
	mirrorOut      string
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the streak grid",
		Args:  cobra.NoArgs,
		RunE:  runGraphCmd,
	}
	cmd.Flags().StringVar(&graphWindow, "window", defaultWindow, "window: "+strings.Join(streak.WindowNames(), "|"))
	cmd.Flags().StringVar(&graphDate, "date", "", "last day of the window (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&graphTable, "table", false, "print one row per day instead of a grid")
	cmd.Flags().BoolVar(&graphColor, "color", false, "force ANSI colors")
	return cmd
}

func runGraphCmd(cmd *cobra.Command, _ []string) error {
	st, fileCfg, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	applyStringConfig(cmd, "window", &graphWindow, fileCfg.Graph.Window)
	applyBoolConfig(cmd, "color", &graphColor, fileCfg.Graph.Color)

	size, err := streak.ParseWindow(graphWindow)
	if err != nil {
		return fmt.Errorf("invalid --window: %w", err)
	}
	ref := nowFunc()
	if graphDate != "" {
		ref, err = streak.ParseKey(strings.TrimSpace(graphDate), ref.Location())
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	data := st.Read()
	views, err := streak.WindowDays(data, size, ref)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if graphTable {
		err = streak.RenderTable(out, data, views)
	} else {
		err = streak.RenderGrid(out, views, 0, streak.ShouldUseColor(out, graphColor))
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := streak.RenderSummary(out, streak.Summarize(views)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newMissedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missed",
		Short: "Count consecutive unshipped days before today",
		Args:  cobra.NoArgs,
		RunE:  runMissedCmd,
	}
	cmd.Flags().IntVar(&missedLookback, "lookback", defaultLookback, "days before today to scan")
	cmd.Flags().IntVar(&missedThreshold, "threshold", defaultThreshold, "missed days that trigger a reminder (0 disables)")
	return cmd
}

func runMissedCmd(cmd *cobra.Command, _ []string) error {
	st, fileCfg, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	applyIntConfig(cmd, "lookback", &missedLookback, fileCfg.Reminder.Lookback)
	applyIntConfig(cmd, "threshold", &missedThreshold, fileCfg.Reminder.Threshold)

	missed, err := streak.MissedDayCount(st.Read(), nowFunc(), missedLookback)
	if err != nil {
		return fmt.Errorf("invalid --lookback: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%d\n", missed); err != nil {
		return err
	}
	if streak.ShouldRemind(missed, missedThreshold) {
		_, err = fmt.Fprintf(out, "Reminder: %d days without shipping.\n", missed)
	}
	return err
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json|csv")
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(strings.TrimSpace(exportFormat))
	if format != "json" && format != "csv" {
		return fmt.Errorf("--format must be json or csv, got %q", exportFormat)
	}
	st, fileCfg, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	now := nowFunc()
	data := st.Read()
	out := cmd.OutOrStdout()

	switch format {
	case "csv":
		if exportOut == "" {
			return export.WriteCSV(out, data, now.Location())
		}
		err = export.ToCSV(data, now.Location(), exportOut)
	default:
		lookback, threshold := reminderSettings(fileCfg)
		snap, serr := export.BuildSnapshot(data, now, lookback, threshold)
		if serr != nil {
			return serr
		}
		if exportOut == "" {
			return export.WriteJSON(out, snap)
		}
		err = export.ToJSON(snap, exportOut)
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	logErrf("Wrote %s\n", exportOut)
	return nil
}

func newMirrorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Keep a JSON snapshot in sync and print reminders",
		Args:  cobra.NoArgs,
		RunE:  runMirrorCmd,
	}
	cmd.Flags().DurationVar(&mirrorInterval, "interval", mirror.DefaultInterval, "poll interval")
	cmd.Flags().StringVar(&mirrorOut, "out", "", "snapshot path (default: XDG data dir)")
	return cmd
}

func runMirrorCmd(cmd *cobra.Command, _ []string) error {
	st, fileCfg, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := applyDurationConfig(cmd, "interval", &mirrorInterval, fileCfg.Mirror.Interval); err != nil {
		return err
	}
	applyStringConfig(cmd, "out", &mirrorOut, fileCfg.Mirror.Out)
	if mirrorOut == "" {
		mirrorOut = config.DefaultMirrorPath()
	}
	lookback, threshold := reminderSettings(fileCfg)

	m, err := mirror.New(st, mirror.Options{
		Path:      mirrorOut,
		Interval:  mirrorInterval,
		Lookback:  lookback,
		Threshold: threshold,
		Now:       nowFunc,
		OnRemind: func(missed int) {
			logErrf("Reminder: %d days without shipping. Pick one small thing.\n", missed)
		},
		Logf: logErrf,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logErrf("Mirroring to %s every %s (ctrl+c to stop)\n", mirrorOut, mirrorInterval)
	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logErrln("Mirror stopped.")
	return nil
}
