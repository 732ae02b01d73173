package cmd

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/api"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// lookupsCmd dumps one reference-data category, mostly as an ops aid when
// a select in the TUI shows unexpected options.
var lookupsCmd = &cobra.Command{
	Use:   "lookups <category>",
	Short: "Print a lookup category",
	Long: `Print the items of a reference-data (lookup) category.

Categories: CASE_TYPE, CASE_LEVEL, CASE_CATEGORY, INTERNAL_CLIENT, COURTS,
DISTRICT, CITY, JUDGMENT_TYPES, JUDGMENT_RESULT, STATES.

Examples:
  jrss-console lookups COURTS
  jrss-console lookups CITY --district-id 5`,
	Args: cobra.ExactArgs(1),
	RunE: runLookups,
}

var lookupDistrictID int

func init() {
	rootCmd.AddCommand(lookupsCmd)

	lookupsCmd.Flags().IntVar(&lookupDistrictID, "district-id", 0, "District id (CITY category only)")
}

func runLookups(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	client := api.NewClient(api.ClientConfig{
		BaseURL:     config.API.BaseURL,
		Environment: config.API.Environment,
		AppVersion:  appVersion,
		Email:       config.User.Email,
		Language:    config.User.Language,
	}, log.New(io.Discard, "", 0))

	category := model.LookupCategory(strings.ToUpper(args[0]))

	var items []model.LookupItem
	var err error
	if category == model.LookupCity && lookupDistrictID > 0 {
		items, err = client.GetCitiesByDistrict(ctx, &lookupDistrictID)
	} else {
		items, err = client.GetLookups(ctx, category)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch lookups: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No items found.")
		return nil
	}

	for _, item := range items {
		code := item.Code
		if code == "" {
			code = "-"
		}
		fmt.Printf("%s  %-40s %-40s code=%s order=%s\n",
			padID(item.ID), item.NameEn, item.NameAr, code, strconv.Itoa(item.OrderNumber))
	}

	return nil
}

func padID(id int) string {
	return fmt.Sprintf("%6d", id)
}
