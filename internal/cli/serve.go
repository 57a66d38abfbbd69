package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"blackpiston/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("store", "memory", "store driver: memory, sqlite, mysql or pgx")
	serveCmd.Flags().String("dsn", "", "store DSN (driver default when empty)")
	serveCmd.Flags().Bool("auth", false, "require an admin session on /api/admin")
	serveCmd.Flags().Duration("latency", 0, "artificial delay added to every response")
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd, map[string]string{
		"APP_ADDR":      "addr",
		"STORE_DRIVER":  "store",
		"STORE_DSN":     "dsn",
		"AUTH_REQUIRED": "auth",
		"MOCK_LATENCY":  "latency",
	})
	if err != nil {
		return err
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, env)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] listening addr=%s store=%s auth=%t", env.AppAddr, env.StoreDriver, env.AuthRequired)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[SERVER] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("[SERVER] stopped")
	return nil
}
