package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andreicionca/motivare-absente/internal/client"
	"github.com/andreicionca/motivare-absente/internal/client/api"

	"github.com/spf13/cobra"
)

const appVersion = "1.0.0"

type options struct {
	server  string
	token   string
	timeout time.Duration
}

func (o *options) client() *api.Client {
	return api.New(o.server, api.WithToken(o.token))
}

// session resolves the signed-in user from the token and loads the view of
// their role.
func (o *options) session(ctx context.Context) (*client.AppState, error) {
	if strings.TrimSpace(o.token) == "" {
		return nil, errors.New("no token: run `excusectl login` and export EXCUSE_TOKEN")
	}
	c := o.client()
	user, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}
	return client.Resume(ctx, c, user)
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "excusectl",
		Short:         "Submit, review and export absence excuses",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", envOr("EXCUSE_API_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("EXCUSE_TOKEN"), "access token")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")

	root.AddCommand(
		newLoginCmd(opts),
		newListCmd(opts),
		newSubmitExcuseCmd(opts),
		newSubmitShortLeaveCmd(opts),
		newWithdrawCmd(opts),
		newReviewCmd(opts),
		newFinalizeCmd(opts),
		newExportCmd(opts),
		newStatsCmd(opts),
		newHolidaysCmd(opts),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printErrorDetails(cmd *cobra.Command, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && len(apiErr.Details) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "details: %s\n", apiErr.Details)
	}
	return err
}
