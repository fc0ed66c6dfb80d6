package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	client "github.com/broadinstitute/clearpass-go-client"
)

var (
	debug   bool
	timeout time.Duration
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clearpassctl",
		Short: "Call the ClearPass REST API using CLEARPASS_* credentials from the environment",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output, including request bodies")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall deadline for the command")

	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newBodyCmd("post", "Send a POST request with a JSON body", (*client.Client).Post))
	rootCmd.AddCommand(newBodyCmd("put", "Send a PUT request with a JSON body", (*client.Client).Put))
	rootCmd.AddCommand(newDeleteCmd())

	return rootCmd
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Obtain an access token and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := connect(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), c.AccessToken())
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	var params, headers []string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Send a GET request and print the response body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseQuery(params)
			if err != nil {
				return err
			}

			hdrs, err := parsePairs(headers, "header")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := connect(ctx)
			if err != nil {
				return err
			}

			resp, err := c.Get(ctx, args[0], hdrs, query)
			if err != nil {
				return err
			}

			return printBody(cmd, resp)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header as key=value (repeatable)")

	return cmd
}

type bodyFunc func(c *client.Client, ctx context.Context, path string, headers map[string]string, data any) (*resty.Response, error)

func newBodyCmd(use, short string, send bodyFunc) *cobra.Command {
	var data string
	var headers []string

	cmd := &cobra.Command{
		Use:   use + " <path>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload any
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data is not valid JSON")
				}
				payload = json.RawMessage(data)
			}

			hdrs, err := parsePairs(headers, "header")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := connect(ctx)
			if err != nil {
				return err
			}

			resp, err := send(c, ctx, args[0], hdrs, payload)
			if err != nil {
				return err
			}

			return printBody(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header as key=value (repeatable)")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	var headers []string

	cmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Send a DELETE request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hdrs, err := parsePairs(headers, "header")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := connect(ctx)
			if err != nil {
				return err
			}

			resp, err := c.Delete(ctx, args[0], hdrs)
			if err != nil {
				return err
			}

			return printBody(cmd, resp)
		},
	}

	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header as key=value (repeatable)")

	return cmd
}

func connect(ctx context.Context) (*client.Client, error) {
	cfg, err := client.LoadConfig(client.DefaultEnvPrefix)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("client_id", cfg.ClientID).
		Str("grant_type", cfg.GrantType).
		Msg("connecting")

	verbose := debug || cfg.Debug

	return client.NewFromConfig(ctx, cfg,
		client.WithRequestLogger(requestLogger(verbose)),
		client.WithDebug(verbose),
	)
}

// requestLogger only forwards client logs in debug mode; otherwise errors
// reach the user once, through main.
func requestLogger(verbose bool) client.RequestLogger {
	if !verbose {
		return &client.NoopLogger{}
	}

	return client.NewZerologLogger(log.Logger)
}

func printBody(cmd *cobra.Command, resp *resty.Response) error {
	log.Debug().Int("status", resp.StatusCode()).Dur("elapsed", resp.Time()).Msg("response received")

	body := resp.Body()
	if len(body) == 0 {
		return nil
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return err
}

func parseQuery(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	query := url.Values{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", pair)
		}
		query.Add(k, v)
	}

	return query, nil
}

func parsePairs(pairs []string, kind string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid %s %q, expected key=value", kind, pair)
		}
		out[strings.TrimSpace(k)] = v
	}

	return out, nil
}
