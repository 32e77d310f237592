package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"eduverse/internal/api"
	"eduverse/internal/channel"
	"eduverse/internal/config"
	"eduverse/internal/notify"
	"eduverse/internal/rendezvous"
	"eduverse/internal/router"
	"eduverse/internal/ws"
	"eduverse/pkg/interfaces"
)

// Application coordinates all system components.
type Application struct {
	config     *config.Config
	store      interfaces.RendezvousStore
	layer      *channel.InProcessLayer
	notifier   *notify.Service
	wsHandler  *ws.Handler
	apiServer  *api.Server
	httpServer *http.Server
}

// NewApplication creates an application with all components initialized.
// Initialization follows dependency order:
// Rendezvous → Channel layer → Notifier/Routers → Handlers → HTTP.
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// STEP 1: Rendezvous store (foundation layer). An empty path selects
	// the in-memory slot.
	var store interfaces.RendezvousStore
	if cfg.Rendezvous.Path == "" {
		store = rendezvous.NewMemoryStore()
	} else {
		sqliteStore, err := rendezvous.NewSQLiteStore(cfg.Rendezvous.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rendezvous store: %w", err)
		}
		store = sqliteStore
	}

	// STEP 2: Channel layer for group membership and fan-out.
	layer := channel.NewInProcessLayer()

	// STEP 3: Collaborator notifier and per-endpoint routers.
	notifier := notify.NewService(layer)
	chatRouter := router.NewChatRouter(layer)
	removalRouter := router.NewRemovalRouter(layer)
	notificationRouter := router.NewNotificationRouter(layer)

	// STEP 4: WebSocket and API handlers.
	wsHandler := ws.NewHandler(layer, chatRouter, removalRouter, notificationRouter,
		cfg.WebSocket.PingInterval, cfg.WebSocket.ReadTimeout)
	apiServer := api.NewServer(store, notifier, layer)

	// STEP 5: HTTP server carrying both surfaces.
	root := mux.NewRouter()
	wsHandler.Register(root)
	root.PathPrefix("/").Handler(apiServer)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      root,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &Application{
		config:     cfg,
		store:      store,
		layer:      layer,
		notifier:   notifier,
		wsHandler:  wsHandler,
		apiServer:  apiServer,
		httpServer: httpServer,
	}, nil
}

// Start begins serving. It returns once the server is accepting connections
// or startup failed.
func (app *Application) Start(ctx context.Context) error {
	log.Printf("Starting eduverse messaging core on %s", app.httpServer.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case err := <-serverErrCh:
		return err
	case <-time.After(100 * time.Millisecond):
		log.Printf("eduverse messaging core started")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop shuts components down in reverse dependency order: HTTP first so no
// new connections arrive, then the rendezvous store.
func (app *Application) Stop(ctx context.Context) error {
	log.Printf("Shutting down eduverse messaging core")

	if err := app.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if err := app.store.Close(); err != nil {
		log.Printf("Rendezvous store shutdown error: %v", err)
	}

	log.Printf("Shutdown complete")
	return nil
}
