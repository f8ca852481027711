package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restkit/http"
)

func newPostCmd(a *app) *cobra.Command {
	opts := &requestOptions{}

	cmd := &cobra.Command{
		Use:     "post URL -d BODY",
		Short:   "Make a POST request to the specified URL",
		Example: `  restkit post https://jsonplaceholder.typicode.com/posts -d '{"title":"hello","userId":1}'
  restkit post https://api.example.com/upload -d @payload.json --bearer "$TOKEN"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRequest(cmd, http.MethodPost, args[0], opts)
		},
	}

	addRequestFlags(cmd, opts, true)
	return cmd
}
