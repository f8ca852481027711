package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restkit/http"
)

func newPutCmd(a *app) *cobra.Command {
	opts := &requestOptions{}

	cmd := &cobra.Command{
		Use:   "put URL -d BODY",
		Short: "Make a PUT request to the specified URL",
		Long: `Make a PUT request. A body that is valid JSON is sent with
Content-Type: application/json unless a Content-Type header is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRequest(cmd, http.MethodPut, args[0], opts)
		},
	}

	addRequestFlags(cmd, opts, true)
	return cmd
}
