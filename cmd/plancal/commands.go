package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/plancal/internal/calendar"
	"github.com/christopherklint97/plancal/internal/config"
	"github.com/christopherklint97/plancal/internal/meeting"
	"github.com/christopherklint97/plancal/internal/schedule"
	"github.com/christopherklint97/plancal/internal/tui"
	"github.com/christopherklint97/plancal/internal/watch"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [schedule]",
	Short: "List conflicting meetings and cart sections that do not fit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

var timesCmd = &cobra.Command{
	Use:   "times [schedule]",
	Short: "Show each section's meeting times",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTimes,
}

var gridCmd = &cobra.Command{
	Use:   "grid [schedule]",
	Short: "Browse the schedule on an interactive week grid",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGrid,
}

var cartCmd = &cobra.Command{
	Use:   "cart [schedule]",
	Short: "Pick cart sections to move into the schedule",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCart,
}

var fitsCmd = &cobra.Command{
	Use:   "fits <schedule> <candidates>",
	Short: "Check whether the sections of one schedule fit into another",
	Args:  cobra.ExactArgs(2),
	RunE:  runFits,
}

var importCmd = &cobra.Command{
	Use:   "import <calendar.ics|url> <out>",
	Short: "Convert an iCalendar feed into a schedule file",
	Args:  cobra.ExactArgs(2),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <schedule> <out.ics>",
	Short: "Write the sections and breaks as weekly recurring calendar events",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Store a schedule file in the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runSave,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored schedules",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var useCmd = &cobra.Command{
	Use:   "use <name|file>",
	Short: "Make a stored schedule or a schedule file the default",
	Args:  cobra.ExactArgs(1),
	RunE:  runUse,
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a schedule from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var watchCmd = &cobra.Command{
	Use:   "watch [schedule]",
	Short: "Re-check a schedule periodically and notify on new conflicts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running watcher",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of schedule files",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func weekOptions(cfg *config.Config) (tui.WeekOptions, error) {
	days, err := tui.ParseDays(cfg.Display.Days)
	if err != nil {
		return tui.WeekOptions{}, fmt.Errorf("display days: %w", err)
	}
	return tui.WeekOptions{
		Days:        days,
		DayStart:    cfg.Display.DayStart,
		DayEnd:      cfg.Display.DayEnd,
		ColumnWidth: cfg.Display.ColumnWidth,
	}, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	showFlags, _ := cmd.Flags().GetBool("flags")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, _, err := resolveSchedule(cmd.Context(), cfg, argOrEmpty(args))
	if err != nil {
		return err
	}

	r := s.Conflicts()
	fmt.Println(tui.Title.Render(fmt.Sprintf("%s (%d sections, %d meetings)", s.Name, len(s.Sections), len(r.Blocks))))
	fmt.Println(tui.Summary(r))

	if showFlags {
		fmt.Println()
		for i, flagged := range meeting.DayOverlapFlags(r.Blocks) {
			mark := " "
			if flagged {
				mark = tui.Warning.Render("!")
			}
			fmt.Printf("  %s %s\n", mark, r.Blocks[i])
		}
	}

	if len(r.Cart) > 0 {
		fmt.Println()
		fmt.Println("Cart:")
		for _, c := range r.Cart {
			printFit(c)
		}
	}

	return nil
}

func printFit(c schedule.CartStatus) {
	status := tui.Success.Render("fits")
	if c.Conflicts {
		status = tui.Error.Render("conflicts with " + strings.Join(c.With, ", "))
	}
	fmt.Printf("  %-16s %-22s %s\n", c.Section.ID, c.Section.TimeString(), status)
}

func runTimes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, _, err := resolveSchedule(cmd.Context(), cfg, argOrEmpty(args))
	if err != nil {
		return err
	}

	if len(s.Sections) == 0 {
		fmt.Println("No sections scheduled.")
		return nil
	}

	for _, sec := range s.Sections {
		title := sec.Title
		if sec.Instructor != "" {
			title += tui.Dim.Render(" — " + sec.Instructor)
		}
		fmt.Printf("  %-16s %-22s %s\n", sec.ID, sec.TimeString(), title)
	}
	for _, b := range s.Breaks {
		fmt.Printf("  %-16s %s\n", tui.Dim.Render(b.Name), meeting.TimeString(b.Blocks()))
	}
	fmt.Printf("\nTotal: %.1f credits\n", s.Credits())

	return nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, _, err := resolveSchedule(cmd.Context(), cfg, argOrEmpty(args))
	if err != nil {
		return err
	}
	opts, err := weekOptions(cfg)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(tui.NewApp(s, opts)).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func runCart(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, ref, err := resolveSchedule(cmd.Context(), cfg, argOrEmpty(args))
	if err != nil {
		return err
	}

	r := s.Conflicts()
	if len(r.Cart) == 0 {
		fmt.Println("Cart is empty.")
		return nil
	}

	app := tui.NewCartPickerApp(r.Cart)
	if _, err := tea.NewProgram(app).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	result := app.GetResult()
	if result == nil || result.Canceled {
		fmt.Println("Nothing scheduled.")
		return nil
	}

	for _, id := range result.SectionIDs {
		if err := s.MoveFromCart(id); err != nil {
			return err
		}
		fmt.Printf("Scheduled %s\n", id)
	}

	if n := len(s.Conflicts().Groups); n > 0 {
		fmt.Println(tui.Warning.Render(fmt.Sprintf("Schedule now has %d conflict group(s).", n)))
	}
	if dryRun {
		return nil
	}
	return writeBack(cfg, s, ref)
}

func runFits(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	base, _, err := resolveSchedule(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}
	candidates, _, err := resolveSchedule(cmd.Context(), cfg, args[1])
	if err != nil {
		return err
	}

	scheduled := base.Blocks()
	if !meeting.SetsIntersect(scheduled, candidates.Blocks()) {
		fmt.Println(tui.Success.Render(fmt.Sprintf("Everything in %s fits into %s.", candidates.Name, base.Name)))
		return nil
	}

	for _, sec := range candidates.Sections {
		printFit(schedule.Fit(sec, scheduled))
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	s, err := calendar.NewImporter(loc, logger).Import(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := schedule.Save(args[1], s); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}

	fmt.Printf("Imported %d sections into %s\n", len(s.Sections), args[1])
	if n := len(s.Conflicts().Groups); n > 0 {
		fmt.Println(tui.Warning.Render(fmt.Sprintf("%d conflict group(s) found — run 'plancal check %s'", n, args[1])))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	weeks, _ := cmd.Flags().GetInt("weeks")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if from == "" {
		from = cfg.Export.FirstWeek
	}
	if weeks == 0 {
		weeks = cfg.Export.Weeks
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	s, _, err := resolveSchedule(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	firstWeek, err := calendar.ParseWeekStart(from, time.Now().In(loc))
	if err != nil {
		return err
	}

	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	defer f.Close()

	if err := calendar.Export(f, s, firstWeek, weeks); err != nil {
		return err
	}

	fmt.Printf("Exported %s: %d weeks from %s to %s\n", s.Name, weeks, firstWeek.Format("Mon Jan 2, 2006"), args[1])
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	use, _ := cmd.Flags().GetBool("use")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, _, err := resolveSchedule(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveSchedule(s); err != nil {
		return err
	}
	fmt.Printf("Saved %s (%s)\n", s.Name, s.ID)

	if use {
		if _, err := db.SetActive(s.ID); err != nil {
			return err
		}
		fmt.Printf("Now using %s\n", s.Name)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.ListSchedules()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No schedules saved.")
		return nil
	}

	active, err := db.ActiveID()
	if err != nil {
		return err
	}

	fmt.Printf("Found %d schedules:\n\n", len(list))
	for _, sum := range list {
		marker := "  "
		if sum.ID == active {
			marker = "* "
		}
		fmt.Printf("%s%-24s %-8s %2d sections  %s\n",
			marker, sum.Name, sum.Semester, sum.Sections,
			tui.Dim.Render(sum.UpdatedAt.Local().Format("2006-01-02 15:04")))
	}
	return nil
}

func runUse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ref := args[0]
	if isScheduleFile(ref) || isCalendarSource(ref) {
		if !isCalendarSource(ref) {
			if ref, err = filepath.Abs(ref); err != nil {
				return fmt.Errorf("resolving %s: %w", args[0], err)
			}
		}
		s, _, err := resolveSchedule(cmd.Context(), cfg, ref)
		if err != nil {
			return err
		}
		if err := config.SaveSchedulePath(ref); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Now using %s (%s)\n", s.Name, ref)
		return nil
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.SetActive(ref)
	if err != nil {
		return err
	}
	// storage.schedule wins over the library, so forget a file chosen earlier.
	if cfg.Storage.Schedule != "" {
		if err := config.SaveSchedulePath(""); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}
	fmt.Printf("Now using %s\n", s.Name)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.GetSchedule(args[0])
	if err != nil {
		return err
	}

	if out != "" {
		if err := schedule.Save(out, s); err != nil {
			return fmt.Errorf("writing schedule: %w", err)
		}
		fmt.Printf("Wrote %s to %s\n", s.Name, out)
		return nil
	}

	data, err := schedule.Encode(s, schedule.FormatTOML)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteSchedule(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ref := argOrEmpty(args)
	// Resolve once up front so a bad reference fails before the loop starts.
	if _, _, err := resolveSchedule(cmd.Context(), cfg, ref); err != nil {
		return err
	}
	source := func(ctx context.Context) (*schedule.Schedule, error) {
		s, _, err := resolveSchedule(ctx, cfg, ref)
		return s, err
	}

	opts := []watch.Option{
		watch.WithLogger(logger),
		watch.WithPIDDir(cfg.Storage.DataDir),
	}
	if cfg.Watch.Notify {
		opts = append(opts, watch.WithNotifier(watch.DesktopNotifier))
	}
	w := watch.New(source, cfg.WatchInterval(), opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return w.Run(ctx)
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pid, err := watch.ReadPID(cfg.Storage.DataDir)
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("finding process %d: %w", pid, err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("sending stop signal: %w", err)
	}

	fmt.Printf("Sent stop signal to plancal watch (PID %d)\n", pid)
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	data, err := schedule.JSONSchema()
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err := config.WriteDefault(configPath); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	editorPath, err := exec.LookPath(editor)
	if err != nil {
		fmt.Printf("Could not find %s. Config file is at: %s\n", editor, configPath)
		return nil
	}

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editorPath, []string{editor, configPath}, &proc)
	if err != nil {
		// If editor fails, just print the path
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
