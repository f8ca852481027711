package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restkit/format"
	"github.com/wesleyorama2/restkit/http"
	"github.com/wesleyorama2/restkit/internal/output"
)

const demoTimeoutSeconds = 5

type demoPost struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

func newDemoCmd(a *app) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through GET, POST, PUT and DELETE against a JSON placeholder API",
		Long: `Runs a short tour of the client against an API shaped like
jsonplaceholder.typicode.com: a GET with pretty JSON, a POST reading back the
new id, an authenticated GET, a PUT, a DELETE and a GET with a short timeout.

The base URL defaults to RESTKIT_DEMO_URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("base-url") {
				baseURL = a.settings.DemoURL
			}
			return a.runDemo(cmd, strings.TrimRight(baseURL, "/"))
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "API to run the demo against")
	return cmd
}

// demoStep is one request of the tour. show prints the step specific lines.
type demoStep struct {
	title  string
	method http.Method
	path   string
	body   string
	cfg    http.RequestConfig
	client *http.Client
	show   func(w io.Writer, resp *http.Response)
}

func (a *app) runDemo(cmd *cobra.Command, baseURL string) error {
	if err := http.ValidateURL(baseURL); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colors := colorScheme(a.color)
	client := http.NewClient(http.WithUserAgent(a.settings.UserAgent))
	shortClient, err := http.NewClientWithTimeout(demoTimeoutSeconds, http.WithUserAgent(a.settings.UserAgent))
	if err != nil {
		return err
	}

	steps := []demoStep{
		{
			title:  "GET Request",
			method: http.MethodGet,
			path:   "/posts/1",
			cfg:    http.NewRequestConfig().WithPrettyPrint(true),
			show: func(w io.Writer, resp *http.Response) {
				fmt.Fprintf(w, "Response Time: %s\n", format.Duration(resp.ResponseTimeMs))
				body := resp.Body
				if resp.IsJSON() {
					if pretty, err := format.ColorJSON(resp.Body); err == nil {
						body = pretty
					}
				}
				fmt.Fprintf(w, "Response:\n%s\n", body)
			},
		},
		{
			title:  "POST Request",
			method: http.MethodPost,
			path:   "/posts",
			body:   `{"title": "restkit", "body": "hello from the demo", "userId": 1}`,
			cfg: http.NewRequestConfig().WithHeaders(map[string]string{
				"Content-Type": "application/json",
				"Accept":       "application/json",
			}),
			show: func(w io.Writer, resp *http.Response) {
				if !resp.IsSuccess() {
					return
				}
				fmt.Fprintln(w, "POST done")
				if post, err := http.ParseJSON[demoPost](resp); err == nil && post.ID != 0 {
					fmt.Fprintf(w, "New post ID: %d\n", post.ID)
				}
			},
		},
		{
			title:  "Authenticated Request",
			method: http.MethodGet,
			path:   "/users",
			cfg: http.NewRequestConfig().
				WithBearerToken("demo-token-12345").
				AddHeader("Accept", "application/json"),
			show: func(w io.Writer, resp *http.Response) {
				fmt.Fprintf(w, "Headers count: %d\n", len(resp.Headers))
				if resp.ContentType != "" {
					fmt.Fprintf(w, "Content-Type: %s\n", resp.ContentType)
				}
			},
		},
		{
			title:  "PUT Request",
			method: http.MethodPut,
			path:   "/users/1",
			body:   `{"id": 1, "name": "restkit", "email": "demo@example.com"}`,
			cfg:    http.NewRequestConfig(),
			show: func(w io.Writer, resp *http.Response) {
				fmt.Fprintln(w, "PUT done")
			},
		},
		{
			title:  "DELETE Request",
			method: http.MethodDelete,
			path:   "/posts/1",
			cfg:    http.NewRequestConfig(),
			show: func(w io.Writer, resp *http.Response) {
				fmt.Fprintln(w, "DELETE done")
			},
		},
		{
			title:  "Custom Timeout",
			method: http.MethodGet,
			path:   "/posts",
			cfg:    http.NewRequestConfig(),
			client: shortClient,
			show: func(w io.Writer, resp *http.Response) {
				fmt.Fprintf(w, "Completed within %ds\n", demoTimeoutSeconds)
			},
		},
	}

	fmt.Fprintln(out, colors.Label.Sprint("restkit demo"))
	fmt.Fprintln(out, strings.Repeat("=", 40))

	start := time.Now()
	failed := 0
	for _, step := range steps {
		c := client
		if step.client != nil {
			c = step.client
		}

		fmt.Fprintf(out, "\n%s %s %s\n", colors.Highlight.Sprint(step.title),
			colors.Method.Sprint(step.method), colors.URL.Sprint(baseURL+step.path))

		resp, err := c.Do(cmd.Context(), step.method, baseURL+step.path, step.body, step.cfg)
		if err != nil {
			failed++
			a.logger.Warn().Err(err).Str("step", step.title).Msg("demo request failed")
			fmt.Fprintf(out, "%s Error: %v\n", output.ErrorIcon(!a.color), err)
			continue
		}

		indicator := format.StatusIndicator(resp.StatusCode)
		if !a.color {
			indicator.Color.DisableColor()
		}
		fmt.Fprintf(out, "Status: %s %s\n", indicator, resp.StatusText)
		step.show(out, resp)
	}

	fmt.Fprintln(out)
	if failed > 0 {
		fmt.Fprintf(out, "%s %d of %d demo requests failed (%s)\n",
			output.ErrorIcon(!a.color), failed, len(steps), format.Duration(elapsed(start)))
		return fmt.Errorf("%d demo requests failed", failed)
	}
	fmt.Fprintf(out, "%s All demo requests completed (%s)\n",
		output.SuccessIcon(!a.color), format.Duration(elapsed(start)))
	return nil
}

func colorScheme(enabled bool) *output.ColorScheme {
	if enabled {
		return output.DefaultColorScheme()
	}
	return output.NoColorScheme()
}

func elapsed(start time.Time) int64 {
	return time.Since(start).Round(time.Millisecond).Milliseconds()
}
