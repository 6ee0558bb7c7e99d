package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archfeed/archfeed/internal/firmdb"
)

var firmsCmd = &cobra.Command{
	Use:   "firms",
	Short: "List all firms in the database",
	Long:  "Reads the firm database and prints a table of firms with their job-board slugs.",
	RunE:  runFirms,
}

func init() {
	rootCmd.AddCommand(firmsCmd)
}

func runFirms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	firms, err := firmdb.Load(cfg.FirmsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load firm database: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-35s %-20s %-20s %s\n", "Firm", "Greenhouse", "Lever", "Location")
	fmt.Println(strings.Repeat("─", 90))

	withSlug := 0
	for _, f := range firms {
		gh, lv := f.GreenhouseSlug, f.LeverSlug
		if gh == "" {
			gh = "-"
		}
		if lv == "" {
			lv = "-"
		}
		if f.GreenhouseSlug != "" || f.LeverSlug != "" {
			withSlug++
		}
		loc := f.City
		if f.State != "" {
			loc += ", " + f.State
		}
		fmt.Printf("%-35s %-20s %-20s %s\n", f.Name, gh, lv, loc)
	}

	fmt.Printf("\nTotal: %d firms (%d with a board slug)\n", len(firms), withSlug)
	return nil
}
