package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCodesCmd() *cobra.Command {
	var date, shift string

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Show the corner codes scheduled for a date and shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			sel, err := selection(date, shift)
			if err != nil {
				return err
			}

			codes := settings.CodesFor(sel.Shift, sel.DayName())
			out := cmd.OutOrStdout()
			if len(codes) == 0 {
				fmt.Fprintf(out, "No shift codes configured for %s on %s (shifts: %s)\n",
					sel.Shift, sel.DayName(), strings.Join(settings.Shifts(), ", "))
				return nil
			}
			fmt.Fprintf(out, "Shifts for %s - %s: %s\n", sel.DayName(), sel.Shift, strings.Join(codes, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&shift, "shift", "", "Shift name (default from config)")
	return cmd
}
