// Package cli implements the interconnections command line tool, which runs
// the same search as the HTTP service and prints the result as JSON.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand returns the command tree writing results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "interconnections",
		Short:         "Search direct and connecting Ryanair flights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(out)
	root.AddCommand(newSearchCmd())

	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, out io.Writer, args []string) error {
	root := NewRootCommand(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
