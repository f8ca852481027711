package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restkit/http"
)

func newPatchCmd(a *app) *cobra.Command {
	opts := &requestOptions{}

	cmd := &cobra.Command{
		Use:   "patch URL -d BODY",
		Short: "Make a PATCH request to the specified URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRequest(cmd, http.MethodPatch, args[0], opts)
		},
	}

	addRequestFlags(cmd, opts, true)
	return cmd
}
