package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-catalog-sync/httpapi"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the catalog HTTP server",
	Long:    `Start the catalog HTTP server with the specified configuration. Configuration can be set via command line flags or environment variables with the CATALOG_ prefix (e.g. CATALOG_STORE_ENGINE=redis).`,
	PreRunE: bindContainerFlags,
	RunE:    runServe,
}

func init() {
	serveCmd.PersistentFlags().String("addr", ":8080", "address the HTTP server listens on")
	serveCmd.PersistentFlags().Duration("shutdown-timeout", 10*time.Second, "grace period for in-flight requests on shutdown")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := buildContainer(ctx)
	if err != nil {
		return err
	}
	defer container.Close()

	log := container.Logger()
	engine := httpapi.NewRouter(container.Catalog(), container.Auth(), log)

	addr := viper.GetString("addr")
	server := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s (engine=%s codec=%s)", addr, container.Config().Engine, container.Config().Codec)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("shutdown-timeout"))
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
