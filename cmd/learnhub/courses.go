package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/learnhub/learnhub-client/internal/core/domain"
)

// coursesConfig holds the flags for the courses command.
type coursesConfig struct {
	category   int
	difficulty string
	search     string
	page       int
	limit      int
}

// newCoursesCmd creates the courses subcommand.
func newCoursesCmd() *cobra.Command {
	cfg := &coursesConfig{}

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List the course catalog from the remote API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCourses(cmd, cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.category, "category", 0, "filter by category id")
	cmd.Flags().StringVar(&cfg.difficulty, "difficulty", "", "filter by difficulty (beginner, intermediate, advanced)")
	cmd.Flags().StringVar(&cfg.search, "search", "", "free-text search")
	cmd.Flags().IntVar(&cfg.page, "page", 0, "page number")
	cmd.Flags().IntVar(&cfg.limit, "limit", 0, "page size")

	return cmd
}

func runCourses(cmd *cobra.Command, cfg *coursesConfig) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	// Restore the session so the catalog request carries the bearer token.
	if err := a.session.LoadFromStorage(cmd.Context()); err != nil {
		a.log.Debug().Err(err).Msg("restore before catalog query failed")
	}

	env, err := a.client.GetCourses(cmd.Context(), domain.CourseFilter{
		Category:   cfg.category,
		Difficulty: cfg.difficulty,
		Search:     cfg.search,
		Page:       cfg.page,
		Limit:      cfg.limit,
	})
	if err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("catalog query failed: %s", env.Message)
	}
	if env.Data == nil || len(env.Data.Courses) == 0 {
		cmd.Println("no courses found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDIFFICULTY\tLESSONS\tRATING")
	for _, course := range env.Data.Courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.1f\n",
			course.ID, course.Title, course.Difficulty, course.Lessons, course.Rating)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cmd.Printf("%d of %d courses\n", len(env.Data.Courses), env.Data.Total)
	return nil
}
