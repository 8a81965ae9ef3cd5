package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qualmap/pkg/cache"
	"github.com/matzehuels/qualmap/pkg/pipeline"
	"github.com/matzehuels/qualmap/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags sceneFlags
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [workbook]",
		Short: "Serve a live map over HTTP",
		Long: `Serve one workbook as a live map. The browser can pan, zoom and toggle the
axes; GET /export.svg downloads a static snapshot, and POST /reload
re-reads the workbook after it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			opts := c.baseOptions(args[0])
			applyFlags(cmd, &opts, flags)
			return c.runServe(cmd.Context(), addr, opts, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Keyer = cache.NewScopedKeyer(nil, "serve:")

	srv := server.New(runner, opts, c.Logger)
	if err := srv.Load(ctx); err != nil {
		return err
	}

	printSuccess("Serving %s", opts.Input)
	printNextStep("Open", "http://"+addr+"/")

	err = srv.ListenAndServe(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
