package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/api"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/ui"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases in plain text",
	Long: `List cases from the backend in a simple text format.
This command works in any terminal environment and provides an alternative
to the TUI when terminal capabilities are limited.

Examples:
  # First page of cases
  jrss-console list

  # Filter by state and court
  jrss-console list --state CLOSED --court-id 12

  # Search and paginate
  jrss-console list --search contract --page 2 --size 20`,
	RunE: runList,
}

var (
	listPage      int
	listSize      int
	listSearch    string
	listState     string
	listCourtID   string
	listLawsuitID string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number (1-based)")
	listCmd.Flags().IntVar(&listSize, "size", 7, "Page size")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Free-text search key")
	listCmd.Flags().StringVar(&listState, "state", "", "Case state filter (e.g. IN_PROGRESS, CLOSED)")
	listCmd.Flags().StringVar(&listCourtID, "court-id", "", "Specialized court id filter")
	listCmd.Flags().StringVar(&listLawsuitID, "lawsuit-type-id", "", "Lawsuit type id filter")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	if config.User.Email == "" {
		return fmt.Errorf("no user email configured; set --email or user.email in the config file")
	}

	client := api.NewClient(api.ClientConfig{
		BaseURL:     config.API.BaseURL,
		Environment: config.API.Environment,
		AppVersion:  appVersion,
		Email:       config.User.Email,
		Language:    config.User.Language,
	}, log.New(io.Discard, "", 0))

	criteria := model.DefaultFilterCriteria(listSize)
	if listSearch != "" {
		criteria.SearchKey = &listSearch
	}
	if listState != "" {
		criteria.State = &listState
	}
	if listCourtID != "" {
		criteria.CourtID = &listCourtID
	}
	if listLawsuitID != "" {
		criteria.LawsuitTypeID = &listLawsuitID
	}

	page, err := client.GetCases(ctx, criteria, model.PageData{Page: listPage, Size: listSize})
	if err != nil {
		if err == api.ErrUnauthorized {
			fmt.Fprintln(os.Stderr, "Session rejected by the backend (401); log in again.")
			os.Exit(1)
		}
		return fmt.Errorf("failed to list cases: %w", err)
	}

	if len(page.Content) == 0 {
		fmt.Println("No cases found.")
		return nil
	}

	fmt.Printf("Page %d/%d (%d cases total):\n\n", listPage, page.TotalPages, page.TotalElements)

	for i, c := range page.Content {
		badge := ui.StatusBadge(c.State)
		fmt.Printf("%d. [%s] %s\n", i+1, strings.ToUpper(badge.Label), c.Name)
		fmt.Printf("   ID: %d\n", c.ID)
		fmt.Printf("   Number: %s\n", c.CaseInformation.CaseNumber)
		fmt.Printf("   Filed: %s\n", c.CaseFilingDate)
		if c.SpecializedCourt.ID != 0 {
			fmt.Printf("   Court: %s\n", c.SpecializedCourt.DisplayName(config.User.Language))
		}
		if c.AssignedConsultantName != "" {
			fmt.Printf("   Consultant: %s\n", c.AssignedConsultantName)
		}
		if c.Description != "" {
			fmt.Printf("   Description: %s\n", c.Description)
		}
		fmt.Println()
	}

	return nil
}
