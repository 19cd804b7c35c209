package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	httpHdlr "dealrag/handler/http"
	"dealrag/src/core/assistant"
	"dealrag/src/infrastructure/journal"
	"dealrag/src/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assistant as an HTTP server",
	Long:  `The serve command starts an HTTP server exposing ask, search, history and health endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sdk := newWeaviateSDK()
	oc := newOllamaClient()
	searchSvc := newSearchService(sdk, oc)
	assistantSvc := assistant.NewService(searchSvc, oc, viper.GetString("models.chat"))

	store, err := newHistoryStore()
	if err != nil {
		return err
	}

	wmLogger := watermill.NewStdLogger(false, false)
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	defer pubsub.Close()

	router, err := journal.NewRouter(wmLogger)
	if err != nil {
		return err
	}
	journal.AddPersistHandler(router, pubsub, store)
	defer router.Close()

	go func() {
		if err := router.Run(ctx); err != nil {
			log.Error(err, "journal router stopped")
		}
	}()
	<-router.Running()

	journalSvc, err := journal.NewService(pubsub)
	if err != nil {
		return err
	}

	handler := httpHdlr.NewHandler(assistantSvc, searchSvc, journalSvc, store, sdk, oc)

	// Setup gin router
	r := gin.Default()
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "failed to start server")
		}
	}()
	log.Info("server started", "port", viper.GetString("server.port"))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	timeout, err := time.ParseDuration(viper.GetString("server.shutdown_timeout"))
	if err != nil {
		log.Error(err, "invalid shutdown timeout, using default 5s")
		timeout = 5 * time.Second
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "server forced to shutdown")
	}

	log.Info("server exited")
	return nil
}
