package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/onething/internal/model"
	"github.com/verte-zerg/onething/internal/store"
	"github.com/verte-zerg/onething/internal/streak"
)

var (
	resetYes bool

	userName     string
	userDayStart string
	userDayEnd   string
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <task...>",
		Short: "Commit today's one task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runStartCmd,
	}
}

func runStartCmd(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	now := nowFunc()
	entry, err := st.CommitTask(streak.TodayKey(now), strings.Join(args, " "), now)
	if err != nil {
		return fmt.Errorf("failed to commit task: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Committed: %s\n", entry.Task)
	return err
}

func newShipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ship",
		Short: "Mark today's task as shipped",
		Args:  cobra.NoArgs,
		RunE:  runShipCmd,
	}
}

func runShipCmd(cmd *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	entry, err := st.MarkShipped(streak.TodayKey(nowFunc()))
	if err != nil {
		if errors.Is(err, store.ErrNoEntry) {
			return fmt.Errorf("nothing committed today, run: onething start <task>")
		}
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Shipped: %s\n", entry.Task)
	return err
}

func newSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Not today: leave today's task unshipped",
		Args:  cobra.NoArgs,
		RunE:  runSkipCmd,
	}
}

func runSkipCmd(cmd *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	entry, ok := st.NotToday(streak.TodayKey(nowFunc()))
	if !ok {
		return fmt.Errorf("nothing committed today")
	}
	if entry.Shipped {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Already shipped: %s\n", entry.Task)
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Not today. Tomorrow is another day.")
	return err
}

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's task and state",
		Args:  cobra.NoArgs,
		RunE:  runTodayCmd,
	}
}

func runTodayCmd(cmd *cobra.Command, _ []string) error {
	st, fileCfg, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	now := nowFunc()
	data := st.Read()
	key := streak.TodayKey(now)
	state, err := streak.ClassifyDay(data, key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s  %s\n", key, state); err != nil {
		return err
	}
	if entry, ok := data.Days[key]; ok {
		line := "Task: " + entry.Task
		if entry.StartedAt > 0 {
			line += "  (committed " + entry.Started(now.Location()).Format("15:04") + ")"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(out, "No task yet. Run: onething start <task>"); err != nil {
		return err
	}

	lookback, threshold := reminderSettings(fileCfg)
	missed, err := streak.MissedDayCount(data, now, lookback)
	if err != nil {
		return err
	}
	if streak.ShouldRemind(missed, threshold) {
		_, err = fmt.Fprintf(out, "Reminder: %d days without shipping.\n", missed)
	}
	return err
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show or update the user profile",
		Args:  cobra.NoArgs,
		RunE:  runUserCmd,
	}
	cmd.Flags().StringVar(&userName, "name", "", "display name")
	cmd.Flags().StringVar(&userDayStart, "day-start", "", "start of the working day (HH:MM)")
	cmd.Flags().StringVar(&userDayEnd, "day-end", "", "end of the working day (HH:MM)")
	return cmd
}

func runUserCmd(cmd *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	profile := st.Read().User
	changed := false
	for name, target := range map[string]*string{
		"name":      &profile.Name,
		"day-start": &profile.DayStart,
		"day-end":   &profile.DayEnd,
	} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetString(name)
		*target = strings.TrimSpace(value)
		changed = true
	}
	if changed {
		if err := store.ValidateProfile(profile); err != nil {
			return err
		}
		st.UpdateUser(profile)
	}
	return printProfile(cmd, profile)
}

func printProfile(cmd *cobra.Command, profile model.UserProfile) error {
	name := profile.Name
	if name == "" {
		name = "(not set)"
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\nDay: %s-%s\n", name, profile.DayStart, profile.DayEnd)
	return err
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data and restore defaults",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return fmt.Errorf("refusing to reset without --yes")
	}
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	st.ResetAllData()
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "All data reset.")
	return err
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <YYYY-MM-DD>",
		Short: "Delete the entry for one day",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteCmd,
	}
}

func runDeleteCmd(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	if _, err := streak.ParseKey(key, time.Local); err != nil {
		return err
	}
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if _, ok := st.GetDayEntry(key); !ok {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "No entry for %s.\n", key)
		return err
	}
	st.DeleteDayEntry(key)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", key)
	return err
}
