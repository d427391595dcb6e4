package main

import (
	"fmt"
	"strings"

	"github.com/christopherklint97/plancal/internal/config"
	"github.com/christopherklint97/plancal/internal/schedule"
	"github.com/christopherklint97/plancal/internal/tui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <schedule> <section-id>",
	Short: "Put a section on the schedule",
	Long: "Put a section on the schedule. Without --from or --meet a section waiting in the " +
		"cart is moved over.",
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var dropCmd = &cobra.Command{
	Use:   "drop <schedule> <section-id>",
	Short: "Take a section off the schedule",
	Args:  cobra.ExactArgs(2),
	RunE:  runDrop,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <schedule> <section-id>",
	Short: "Add a candidate section to the cart",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <schedule> <section-id>",
	Short: "Remove a section from the cart",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartRemove,
}

func sectionFlags(c *cobra.Command) {
	c.Flags().String("from", "", "Schedule or calendar to copy the section from")
	c.Flags().StringArray("meet", nil, `Meeting such as "MWF 10:00-11:00 Towne 100" (repeatable)`)
	c.Flags().String("title", "", "Course title")
	c.Flags().String("instructor", "", "Instructor name")
	c.Flags().Float64("credits", 0, "Course units")
}

// sectionFromFlags builds a section from --from and --meet. The bool is false
// when neither was given.
func sectionFromFlags(cmd *cobra.Command, cfg *config.Config, id string) (schedule.Section, bool, error) {
	from, _ := cmd.Flags().GetString("from")
	meets, _ := cmd.Flags().GetStringArray("meet")
	title, _ := cmd.Flags().GetString("title")
	instructor, _ := cmd.Flags().GetString("instructor")
	credits, _ := cmd.Flags().GetFloat64("credits")

	sec := schedule.Section{ID: id}
	given := false

	if from != "" {
		catalog, _, err := resolveSchedule(cmd.Context(), cfg, from)
		if err != nil {
			return sec, false, err
		}
		found, ok := catalog.Find(id)
		if !ok {
			return sec, false, fmt.Errorf("%s in %s: %w", id, from, schedule.ErrSectionNotFound)
		}
		sec, given = found, true
	}

	if len(meets) > 0 {
		sec.Meetings = nil
		for _, expr := range meets {
			ms, err := schedule.ParseMeetings(expr)
			if err != nil {
				return sec, false, err
			}
			sec.Meetings = append(sec.Meetings, ms...)
		}
		given = true
	}

	if title != "" {
		sec.Title = title
	}
	if instructor != "" {
		sec.Instructor = instructor
	}
	if credits != 0 {
		sec.Credits = credits
	}
	return sec, given, nil
}

// editSchedule loads a schedule, applies fn and writes the result back.
func editSchedule(cmd *cobra.Command, ref string, fn func(cfg *config.Config, s *schedule.Schedule) error) (*schedule.Schedule, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s, where, err := resolveSchedule(cmd.Context(), cfg, ref)
	if err != nil {
		return nil, err
	}
	if err := fn(cfg, s); err != nil {
		return nil, err
	}
	if err := writeBack(cfg, s, where); err != nil {
		return nil, err
	}
	return s, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	id := args[1]
	s, err := editSchedule(cmd, args[0], func(cfg *config.Config, s *schedule.Schedule) error {
		sec, given, err := sectionFromFlags(cmd, cfg, id)
		if err != nil {
			return err
		}
		if !given {
			return s.MoveFromCart(id)
		}
		if _, ok := s.CartSection(id); ok {
			if err := s.RemoveFromCart(id); err != nil {
				return err
			}
		}
		return s.Add(sec)
	})
	if err != nil {
		return err
	}

	status, _ := s.FitScheduled(id)
	fmt.Printf("Scheduled %s %s\n", id, status.Section.TimeString())
	if status.Conflicts {
		fmt.Println(tui.Warning.Render(fmt.Sprintf("%s conflicts with %s", id, strings.Join(status.With, ", "))))
	}
	return nil
}

func runDrop(cmd *cobra.Command, args []string) error {
	toCart, _ := cmd.Flags().GetBool("to-cart")
	id := args[1]

	_, err := editSchedule(cmd, args[0], func(_ *config.Config, s *schedule.Schedule) error {
		if toCart {
			return s.MoveToCart(id)
		}
		return s.Remove(id)
	})
	if err != nil {
		return err
	}

	if toCart {
		fmt.Printf("Moved %s to the cart\n", id)
	} else {
		fmt.Printf("Dropped %s\n", id)
	}
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	id := args[1]
	s, err := editSchedule(cmd, args[0], func(cfg *config.Config, s *schedule.Schedule) error {
		sec, given, err := sectionFromFlags(cmd, cfg, id)
		if err != nil {
			return err
		}
		if !given {
			return fmt.Errorf("give the meetings of %s with --meet or --from", id)
		}
		return s.AddToCart(sec)
	})
	if err != nil {
		return err
	}

	sec, _ := s.CartSection(id)
	printFit(schedule.Fit(sec, s.Blocks()))
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	id := args[1]
	if _, err := editSchedule(cmd, args[0], func(_ *config.Config, s *schedule.Schedule) error {
		return s.RemoveFromCart(id)
	}); err != nil {
		return err
	}
	fmt.Printf("Removed %s from the cart\n", id)
	return nil
}
