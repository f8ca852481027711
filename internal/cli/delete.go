package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restkit/http"
)

func newDeleteCmd(a *app) *cobra.Command {
	opts := &requestOptions{}

	cmd := &cobra.Command{
		Use:   "delete URL",
		Short: "Make a DELETE request to the specified URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRequest(cmd, http.MethodDelete, args[0], opts)
		},
	}

	addRequestFlags(cmd, opts, false)
	return cmd
}
