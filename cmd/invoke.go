package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/shandysiswandi/cryptogate/internal/app"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/cryptogate/internal/pkg/pkguid"
	"github.com/spf13/cobra"
)

type invokeOptions struct {
	method string
	path   string
	query  []string
	body   string
	cid    string
}

func newInvokeCmd() *cobra.Command {
	opts := &invokeOptions{}

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Dispatch one request locally and print the response envelope",
		Long: `Dispatch one request through the route table without starting a server
and print the response envelope as JSON on stdout. The status line and
logs go to stderr.

Examples:
  cryptogate invoke --path /api/v1/market/overview
  cryptogate invoke --method POST --path /api/v1/addresses/0xABC/broadcast --body 0xf86b...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInvoke(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "X", http.MethodGet, "request method")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "request path, e.g. /api/v1/market/overview")
	cmd.Flags().StringArrayVarP(&opts.query, "query", "q", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.body, "body", "d", "", "raw request body")
	cmd.Flags().StringVar(&opts.cid, "correlation-id", "", "correlation id to log with (generated when empty)")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runInvoke(cmd *cobra.Command, opts *invokeOptions) error {
	req, err := opts.request()
	if err != nil {
		return err
	}

	application := app.New(app.WithLogOutput(cmd.ErrOrStderr()))

	ctx, cid := pkgrouter.CorrelationID(context.Background(), pkguid.NewUUID(), opts.cid)
	resp := application.Router().Dispatch(ctx, req)
	if cid != "" {
		resp.Headers[pkgrouter.HeaderCorrelationID] = cid
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s -> %s\n", req.Method, req.Path, statusString(resp.StatusCode))

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

func (o *invokeOptions) request() (pkgrouter.Request, error) {
	if !strings.HasPrefix(o.path, "/") {
		return pkgrouter.Request{}, fmt.Errorf("path must start with '/': %q", o.path)
	}

	query := make(map[string]string, len(o.query))
	for _, kv := range o.query {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return pkgrouter.Request{}, fmt.Errorf("invalid query %q, want key=value", kv)
		}
		if _, seen := query[key]; !seen {
			query[key] = value
		}
	}

	return pkgrouter.Request{
		Method: strings.ToUpper(o.method),
		Path:   o.path,
		Query:  query,
		Body:   o.body,
	}, nil
}

func statusString(code int) string {
	s := fmt.Sprintf("%d %s", code, http.StatusText(code))
	switch {
	case code >= http.StatusInternalServerError:
		return color.RedString(s)
	case code >= http.StatusBadRequest:
		return color.YellowString(s)
	default:
		return color.GreenString(s)
	}
}
