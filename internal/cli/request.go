package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restkit/format"
	"github.com/wesleyorama2/restkit/http"
	"github.com/wesleyorama2/restkit/internal/output"
	"github.com/wesleyorama2/restkit/internal/stats"
	"github.com/wesleyorama2/restkit/pkg/jsonpath"
	"github.com/wesleyorama2/restkit/pkg/jsonschema"
)

// requestOptions holds the flags shared by the method commands.
type requestOptions struct {
	headers     []string
	data        string
	bearer      string
	basic       string
	pretty      bool
	noRedirects bool
	insecure    bool
	timeout     int
	verbose     bool
	output      string
	extract     []string
	schema      string
	repeat      int
}

func addRequestFlags(cmd *cobra.Command, opts *requestOptions, withBody bool) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.headers, "header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	if withBody {
		flags.StringVarP(&opts.data, "data", "d", "", "Data to send in the request body (@file reads a file)")
	}
	flags.StringVar(&opts.bearer, "bearer", "", "Bearer token for the Authorization header")
	flags.StringVar(&opts.basic, "basic", "", "Basic auth credentials as user:password")
	flags.BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON bodies")
	flags.BoolVar(&opts.noRedirects, "no-redirects", false, "Do not follow redirects")
	flags.BoolVarP(&opts.insecure, "insecure", "k", false, "Skip TLS certificate verification")
	flags.IntVarP(&opts.timeout, "timeout", "t", 0, "Request timeout in seconds (default 30 or RESTKIT_TIMEOUT)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show headers and timing details")
	flags.StringVarP(&opts.output, "output", "o", "", "Output format: text, json or yaml (default text or RESTKIT_OUTPUT)")
	flags.StringArrayVarP(&opts.extract, "extract", "e", []string{}, "Extract a value as name=$.json.path (can be used multiple times)")
	flags.StringVar(&opts.schema, "schema", "", "JSON Schema file the response body must satisfy")
	flags.IntVarP(&opts.repeat, "repeat", "n", 1, "Send the request N times and report latency percentiles")
}

// requestConfig turns the header and auth flags into a RequestConfig.
func (o *requestOptions) requestConfig() (http.RequestConfig, error) {
	cfg := http.NewRequestConfig().
		WithPrettyPrint(o.pretty).
		WithRedirects(!o.noRedirects).
		WithSSLVerification(!o.insecure)

	for _, header := range o.headers {
		parsed, err := format.ParseHeaders(header)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.WithHeaders(parsed)
	}

	if o.bearer != "" && o.basic != "" {
		return cfg, errors.New("--bearer and --basic cannot be used together")
	}
	if o.bearer != "" {
		cfg = cfg.WithBearerToken(o.bearer)
	}
	if o.basic != "" {
		username, password, ok := strings.Cut(o.basic, ":")
		if !ok || username == "" {
			return cfg, errors.New("--basic must be user:password")
		}
		cfg = cfg.WithBasicAuth(username, password)
	}

	return cfg, nil
}

// body returns the request body, reading it from a file for "@path".
func (o *requestOptions) body() (string, error) {
	if !strings.HasPrefix(o.data, "@") {
		return o.data, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(o.data, "@"))
	if err != nil {
		return "", fmt.Errorf("error reading body file: %w", err)
	}
	return string(data), nil
}

// parseExtracts reads name=path pairs. A bare path is named after itself.
func parseExtracts(specs []string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	paths := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			name, path = spec, spec
		}
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if name == "" || path == "" {
			return nil, fmt.Errorf("invalid extract %q: want name=$.path", spec)
		}
		paths[name] = path
	}
	return paths, nil
}

func loadSchema(path string) (*jsonschema.Validator, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading schema file: %w", err)
	}
	validator, err := jsonschema.Compile(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return validator, nil
}

// runRequest sends one request, or opts.repeat of them, and prints the
// outcome. A non-2xx status is not an error; transport failures, failed
// extraction and schema violations are.
func (a *app) runRequest(cmd *cobra.Command, method http.Method, rawURL string, opts *requestOptions) error {
	log := a.logger.With().Str("method", string(method)).Str("url", rawURL).Logger()

	if err := http.ValidateURL(rawURL); err != nil {
		return err
	}

	cfg, err := opts.requestConfig()
	if err != nil {
		return err
	}

	body, err := opts.body()
	if err != nil {
		return err
	}

	timeout := opts.timeout
	if !cmd.Flags().Changed("timeout") {
		timeout = a.settings.Timeout
	}
	client, err := http.NewClientWithTimeout(timeout, http.WithUserAgent(a.settings.UserAgent))
	if err != nil {
		return err
	}

	formatName := opts.output
	if !cmd.Flags().Changed("output") {
		formatName = a.settings.Output
	}
	outputFormat, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	paths, err := parseExtracts(opts.extract)
	if err != nil {
		return err
	}

	validator, err := loadSchema(opts.schema)
	if err != nil {
		return err
	}

	if opts.repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", opts.repeat)
	}

	out := cmd.OutOrStdout()
	formatter := output.GetFormatter(outputFormat, opts.verbose, !a.color, cfg.PrettyPrint())

	// structured output carries only the response document
	if outputFormat == output.FormatText {
		fmt.Fprint(out, formatter.FormatRequest(output.NewRequestData(method, rawURL, body, cfg)))
	}

	log.Debug().
		Int("timeout", timeout).
		Int("headers", len(cfg.Headers())).
		Str("auth", cfg.Auth().String()).
		Bool("followRedirects", cfg.FollowRedirects()).
		Bool("verifySSL", cfg.VerifySSL()).
		Int("repeat", opts.repeat).
		Msg("sending request")

	recorder := stats.NewRecorder()
	var first *http.Response
	var lastErr error

	for i := 0; i < opts.repeat; i++ {
		resp, err := client.Do(cmd.Context(), method, rawURL, body, cfg)
		if err != nil {
			recorder.RecordFailure()
			lastErr = err
			log.Warn().Err(err).Int("attempt", i+1).Msg("request failed")
			if cmd.Context().Err() != nil {
				break
			}
			continue
		}

		recorder.Record(resp.Stats())
		log.Debug().
			Int("attempt", i+1).
			Int("status", resp.StatusCode).
			Int64("responseTimeMs", resp.ResponseTimeMs).
			Int("bytes", len(resp.Body)).
			Msg("response received")

		if first == nil {
			first = resp
		}
	}

	var problems []string

	if first != nil {
		var extracted map[string]string
		if len(paths) > 0 {
			var extractErr error
			extracted, extractErr = jsonpath.ExtractAll(first.Body, paths)
			if extractErr != nil {
				log.Warn().Err(extractErr).Msg("extraction failed")
				problems = append(problems, extractErr.Error())
			}
		}

		fmt.Fprint(out, formatter.FormatResponse(first, extracted))

		if validator != nil {
			if err := validator.Validate(first.Body); err != nil {
				// structured output keeps stdout parseable
				report := out
				if outputFormat != output.FormatText {
					report = cmd.ErrOrStderr()
				}
				fmt.Fprintf(report, "%s Schema validation failed: %v\n", output.ErrorIcon(!a.color), err)
				problems = append(problems, "schema validation failed")
			} else if outputFormat == output.FormatText {
				fmt.Fprintf(out, "%s Schema validation passed\n", output.SuccessIcon(!a.color))
			}
		}
	}

	if opts.repeat > 1 {
		if outputFormat == output.FormatYAML {
			fmt.Fprintln(out, "---")
		}
		fmt.Fprint(out, formatter.FormatSummary(recorder.Summary()))
	}

	if first == nil {
		return lastErr
	}
	if failed := recorder.Summary().Failed; failed > 0 {
		problems = append(problems, fmt.Sprintf("%d of %d requests failed: %v", failed, opts.repeat, lastErr))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
