package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var repsCmd = &cobra.Command{
	Use:   "reps <address>",
	Short: "Look up elected representatives for an address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline("feed")
		if err != nil {
			return err
		}
		defer env.Close()

		reps, err := env.Civic.Representatives(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		for _, rep := range reps {
			fmt.Printf("%s - %s", rep.Name, rep.Office)
			if rep.Party != "" {
				fmt.Printf(" (%s)", rep.Party)
			}
			fmt.Println()
			if rep.Phone != "" || rep.Email != "" {
				fmt.Printf("  %s %s\n", rep.Phone, rep.Email)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repsCmd)
}
