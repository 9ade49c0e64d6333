package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/taskflow/client/theme"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [name]",
		Short: "Show or set the UI theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if len(args) == 0 {
				fmt.Printf("Current theme: %s\n", theme.Load(app.store))
				fmt.Printf("Available: %s\n", strings.Join(theme.Known, ", "))
				return nil
			}

			name := args[0]
			if err := theme.Save(app.store, name); err != nil {
				return err
			}
			fmt.Printf("Theme set to %s\n", name)
			return nil
		},
	}
}
