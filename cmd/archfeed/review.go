package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archfeed/archfeed/internal/review"
	"github.com/archfeed/archfeed/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review unmatched discoveries (TUI)",
	Long:  "Browses the discoveries from the last fetch run. Dismissed entries are remembered and never shown again, even after the file is rewritten.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(cfg.ReviewDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open review store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	pending, err := review.Load(cfg.DiscoveriesFile, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load discoveries: %v\n", err)
		os.Exit(1)
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to review.")
		return nil
	}

	dismissed, err := review.RunTUI(pending, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Dismissed %d of %d discoveries.\n", dismissed, len(pending))
	return nil
}
