package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restkit/http"
)

func newGetCmd(a *app) *cobra.Command {
	opts := &requestOptions{}

	cmd := &cobra.Command{
		Use:     "get URL",
		Short:   "Make a GET request to the specified URL",
		Example: `  restkit get https://jsonplaceholder.typicode.com/posts/1 --pretty
  restkit get https://api.example.com/users -H "Accept: application/json" -e first='$[0].name'
  restkit get https://api.example.com/health -n 20`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRequest(cmd, http.MethodGet, args[0], opts)
		},
	}

	addRequestFlags(cmd, opts, false)
	return cmd
}
