package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "plancal",
	Short: "Plan a semester schedule and catch conflicting meetings",
	Long: "plancal loads mock course schedules, groups overlapping meetings, lays them out " +
		"on a week grid and checks cart sections against the schedule.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	checkCmd.Flags().Bool("flags", false, "Also print the per-meeting day overlap flags")
	exportCmd.Flags().String("from", "", "First week of classes (date or phrase, default from config)")
	exportCmd.Flags().Int("weeks", 0, "Number of weekly occurrences (default from config)")
	showCmd.Flags().StringP("out", "o", "", "Write the schedule to a file instead of stdout")
	saveCmd.Flags().Bool("use", false, "Make the saved schedule the active one")
	cartCmd.Flags().Bool("dry-run", false, "Show what would be scheduled without writing the file")
	sectionFlags(addCmd)
	sectionFlags(cartAddCmd)
	dropCmd.Flags().Bool("to-cart", false, "Keep the section in the cart")
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(timesCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(fitsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
