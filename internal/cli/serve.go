package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"rideshare/internal/bus"
	"rideshare/internal/config"
	"rideshare/internal/docs"
	"rideshare/internal/drivers"
	api "rideshare/internal/http"
	"rideshare/internal/http/handlers"
	"rideshare/internal/storage"
)

var skipMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply schema before serving")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.GinMode != "" {
			gin.SetMode(cfg.GinMode)
		}

		db, err := storage.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		if !skipMigrate {
			reg, err := storage.DomainRegistry()
			if err != nil {
				return fmt.Errorf("schema registry: %w", err)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err = storage.Migrate(ctx, db, storage.Dialect(cfg.DB.Driver), reg)
			cancel()
			if err != nil {
				return err
			}
		}

		b := bus.New()
		drivers.Listeners{DB: db, Bus: b, Cfg: cfg.Dispatch}.Register()
		docs.Listeners{Bus: b}.Register()

		a := &handlers.API{DB: db, Bus: b, Cfg: cfg}
		r := api.NewRouter(a)

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       20 * time.Second,
			WriteTimeout:      20 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			log.Printf("server listening on %s", cfg.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("server error: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		if err := b.Close(ctx); err != nil {
			log.Printf("warning: %v", err)
		}

		log.Println("server stopped cleanly")
		return nil
	},
}
