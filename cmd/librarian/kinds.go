package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gobd/librarian/schema"
)

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the schema kinds",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, k := range schema.Kinds() {
				if _, err := fmt.Fprintln(a.stdout, k); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
