package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groundwork-civic/civicfeed/internal/feed"
	"github.com/groundwork-civic/civicfeed/internal/model"
)

var (
	feedLocation   string
	feedIncome     float64
	feedAge        int
	feedDependents int
	feedVeteran    bool
	feedHomeowner  bool
	feedInterests  []string
	feedCategories []string
	feedLimit      int
	feedJSON       bool
	feedRefresh    bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Print a personalized civic feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline("feed")
		if err != nil {
			return err
		}
		defer env.Close()

		profile := buildProfile(cmd)

		if feedRefresh {
			env.Feed.Refresh()
		}

		var categories []model.Category
		for _, c := range feedCategories {
			categories = append(categories, model.Category(c))
		}

		res, err := env.Feed.GetPersonalizedFeed(cmd.Context(), profile, feed.Filters{
			Categories: categories,
			Limit:      feedLimit,
		})
		if err != nil {
			return err
		}

		if feedJSON {
			return json.NewEncoder(os.Stdout).Encode(res)
		}

		printFeed(res)
		return nil
	},
}

// buildProfile assembles a profile from the flags that were actually
// set, so unset flags stay unknown rather than defaulting.
func buildProfile(cmd *cobra.Command) *model.UserProfile {
	p := &model.UserProfile{
		Location:  feedLocation,
		Interests: feedInterests,
	}
	if cmd.Flags().Changed("income") {
		p.MonthlyIncome = model.Ptr(feedIncome)
	}
	if cmd.Flags().Changed("age") {
		p.Age = model.Ptr(feedAge)
	}
	if cmd.Flags().Changed("dependents") {
		p.Dependents = model.Ptr(feedDependents)
	}
	if cmd.Flags().Changed("veteran") {
		p.IsVeteran = model.Ptr(feedVeteran)
	}
	if cmd.Flags().Changed("homeowner") {
		p.Homeowner = model.Ptr(feedHomeowner)
	}
	return p
}

func printFeed(res *feed.Result) {
	if res.Location.IsValid {
		fmt.Printf("Feed for %s, %s\n\n", res.Location.City, res.Location.StateCode)
	}

	for i, r := range res.Items {
		sample := ""
		if r.IsSampleContent {
			sample = " [sample]"
		}
		fmt.Printf("%2d. %s%s\n", i+1, r.Title, sample)
		fmt.Printf("    %s | %s | %s | relevance %.0f\n", r.Scope, r.Category, r.Status, r.RelevanceScore)
		if r.RelevanceExplanation != nil {
			fmt.Printf("    why: %s\n", *r.RelevanceExplanation)
		}
		if r.PersonalImpact != nil {
			fmt.Printf("    impact: %s\n", *r.PersonalImpact)
		}
		if r.FinancialEffect != nil && *r.FinancialEffect != 0 {
			fmt.Printf("    estimated effect: $%.0f/yr (%s, confidence %d%%)\n",
				*r.FinancialEffect, r.Timeline, r.Confidence)
		}
		fmt.Println()
	}

	if res.HasMore {
		fmt.Printf("%d more items. Re-run with a larger --limit.\n", res.Remaining)
	}
}

func init() {
	feedCmd.Flags().StringVar(&feedLocation, "location", "", "free-text location, e.g. \"Sacramento, CA\"")
	feedCmd.Flags().Float64Var(&feedIncome, "income", 0, "monthly income in USD")
	feedCmd.Flags().IntVar(&feedAge, "age", 0, "age in years")
	feedCmd.Flags().IntVar(&feedDependents, "dependents", 0, "number of dependents")
	feedCmd.Flags().BoolVar(&feedVeteran, "veteran", false, "military veteran")
	feedCmd.Flags().BoolVar(&feedHomeowner, "homeowner", false, "owns their home")
	feedCmd.Flags().StringSliceVar(&feedInterests, "interests", nil, "comma-separated interests")
	feedCmd.Flags().StringSliceVar(&feedCategories, "categories", nil,
		"filter to categories: "+strings.Join(categoryNames(), ", "))
	feedCmd.Flags().IntVar(&feedLimit, "limit", 10, "number of items to show")
	feedCmd.Flags().BoolVar(&feedJSON, "json", false, "emit JSON instead of text")
	feedCmd.Flags().BoolVar(&feedRefresh, "refresh", false, "bypass source caches")
	rootCmd.AddCommand(feedCmd)
}

func categoryNames() []string {
	return []string{
		string(model.CategoryHousing), string(model.CategoryHealthcare),
		string(model.CategoryTransportation), string(model.CategoryEducation),
		string(model.CategoryEconomic), string(model.CategoryEnvironment),
		string(model.CategoryPublicSafety), string(model.CategoryVeteransAffairs),
		string(model.CategorySocialIssues), string(model.CategoryInfrastructure),
		string(model.CategoryTaxPolicy), string(model.CategoryOther),
	}
}
