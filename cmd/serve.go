package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/desertthunder/tunely/internal/metrics"
	"github.com/desertthunder/tunely/internal/repositories"
	"github.com/desertthunder/tunely/internal/server"
	"github.com/desertthunder/tunely/internal/shared"
	"github.com/desertthunder/tunely/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web front-end until the context is canceled (SIGINT/SIGTERM).
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.cfg()

	if addr := cmd.String("addr"); addr != "" {
		host, port, err := splitAddr(addr)
		if err != nil {
			return err
		}
		config.Server.Host, config.Server.Port = host, port
	}
	if driver := cmd.String("store"); driver != "" {
		config.Store.Driver = driver
		if err := config.Validate(); err != nil {
			return err
		}
	}

	favorites, release, err := r.openFavorites()
	if err != nil {
		return err
	}
	defer release()

	handler, err := r.newRouter(favorites)
	if err != nil {
		return err
	}

	srv := server.NewHTTPServer(config.Server, handler, r.logger)
	r.logger.Info("starting tunely", "addr", srv.Addr(), "store", config.Store.Driver, "metrics", config.Server.Metrics)
	return srv.Run(ctx)
}

// newRouter assembles middleware, the health and metrics endpoints, and the web front-end.
func (r *Runner) newRouter(favorites *repositories.Favorites) (http.Handler, error) {
	config := r.cfg()

	app, err := web.New(web.Options{
		Search:      r.searchService(),
		Favorites:   favorites,
		Logger:      r.logger,
		DefaultTerm: config.Search.DefaultTerm,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build web front-end: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestID, server.Recoverer(r.logger), server.Logger(r.logger))
	if config.Server.Metrics {
		router.Use(metrics.Middleware)
		router.Handler(server.NewMetricsHandler())
	}
	router.Handler(server.NewHealthHandler(version))
	app.Register(router)

	return router, nil
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("%w: --addr %q: %v", shared.ErrInvalidFlag, addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("%w: --addr %q: invalid port", shared.ErrInvalidFlag, addr)
	}

	return host, port, nil
}
