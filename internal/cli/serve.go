package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/internal/server"
	"github.com/matzehuels/slicereveal/pkg/cache"
	"github.com/matzehuels/slicereveal/pkg/observability"
	"github.com/matzehuels/slicereveal/pkg/observability/prom"
	"github.com/matzehuels/slicereveal/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP preview.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "serve [image|url]",
		Short: "Serve a live preview over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), args[0], addr, opts)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8080", "listen address")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr string, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()
	// Preview layers live under their own key prefix.
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "serve")

	src, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	player, err := runner.NewPlayer(ctx, src, opts)
	if err != nil {
		return err
	}
	defer player.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom.New(reg).Install()
	defer observability.Reset()

	app := server.New(runner, player, src, opts)
	app.Gatherer = reg

	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	printSuccess("Serving %s", StyleHighlight.Render(input))
	printKeyValue("preview", StyleLink.Render("http://"+ln.Addr().String()+"/"))
	printKeyValue("metrics", StyleLink.Render("http://"+ln.Addr().String()+"/metrics"))
	printKeyValue("instance", player.ID())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.Logger.Warn("shutdown", "error", err)
	}
	c.Logger.Info("server stopped")
	return nil
}
