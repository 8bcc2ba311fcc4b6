// Package main is the entry point for the AI office simulation server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/config"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/engine"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/infra/storage"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/network"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/metrics"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/optimization"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/presenter"
)

func main() {
	log.Println("[OFFICE-SERVER] Initializing AI office simulation server...")

	appLogger := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	appLogger.Info("Initializing SQLite database %q...", cfg.DBPath)
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	eventRepo := storage.NewSQLiteEventRepository(db)
	snapRepo := storage.NewSQLiteSnapshotRepository(db)
	eventPersister := storage.NewJournalPersister(eventRepo, appLogger)

	appLogger.Info("Bootstrapping event journal...")
	eventLog := events.NewLog(eventPersister)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Rebuild the agents read model from whatever the previous run journaled.
	reconstructor := storage.NewReconstructor(eventRepo, snapRepo)
	if rebuilt, err := reconstructor.RebuildSnapshots(ctx); err != nil {
		appLogger.Warn("Snapshot rebuild failed: %v", err)
	} else if rebuilt > 0 {
		appLogger.Info("Rebuilt %d agent snapshots from the journal.", rebuilt)
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := engine.NewRand(seed)

	appLogger.Info("Seeding character state for %d agents...", len(agent.Roster))
	store := engine.NewStateStore(eventLog, appLogger, rng, cfg.StateTickInterval, agent.RosterIDs())
	go store.Start(ctx)

	animator := presenter.NewWireAnimator(eventLog)

	movers := make(map[string]*engine.Mover, len(agent.Roster))
	for _, p := range agent.Roster {
		movers[p.ID] = engine.NewMover(p, animator, appLogger)
	}

	pres := presenter.New(eventLog, appLogger, presenter.DefaultNotificationTimings())

	schedulerCfg := engine.SchedulerConfig{
		MinDelay:         cfg.EventMinDelay,
		MaxDelay:         cfg.EventMaxDelay,
		Travel:           cfg.TravelDuration,
		BubbleDuration:   cfg.BubbleDuration,
		IconDuration:     cfg.IconDuration,
		SettleHold:       cfg.SettleHold,
		NewsfeedMinDelay: cfg.NewsfeedMinDelay,
		NewsfeedMaxDelay: cfg.NewsfeedMaxDelay,
	}
	scheduler := engine.NewScheduler(movers, pres, animator, eventLog, appLogger, rng, schedulerCfg)
	go scheduler.Start(ctx)
	go scheduler.RunNewsfeed(ctx, agent.RandomNewsflash)

	// Automated state backup routine
	go func() {
		backupTicker := time.NewTicker(cfg.SnapshotInterval)
		defer backupTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-backupTicker.C:
				persistSnapshots(ctx, snapRepo, store, movers)
			}
		}
	}()

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(appLogger, scheduler)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, eventLog)

	api := network.NewAPIBridge(store, movers, scheduler, rng, appLogger)
	replay := network.NewReplayHandler(eventLog, appLogger)

	// Setup API routes
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})
	http.HandleFunc("/api/agents", api.HandleAgents)
	http.HandleFunc("/api/agents/", api.HandleDialogue)
	http.HandleFunc("/api/trigger-event", api.HandleTriggerEvent)
	http.HandleFunc("/api/journal", replay.HandleReplay)
	http.HandleFunc("/api/tuning", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(optimization.Analyze(metrics.Get().Snapshot()))
	})
	http.HandleFunc("/metrics", metrics.Handler())
	http.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())

	go func() {
		log.Printf("[OFFICE-SERVER] HTTP API & WS server listening on %s", cfg.HTTPAddr)
		if err := http.ListenAndServe(cfg.HTTPAddr, nil); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[OFFICE-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[OFFICE-SERVER] Shutting down...")
	scheduler.Stop()
	store.Destroy()
	for _, m := range movers {
		m.Destroy()
	}
	pres.Destroy()

	// One last snapshot so the next boot starts warm.
	persistSnapshots(context.Background(), snapRepo, store, movers)
	cancel()
}

// persistSnapshots writes the current state of every agent to the agents
// read model.
func persistSnapshots(ctx context.Context, repo *storage.SQLiteSnapshotRepository, store *engine.StateStore, movers map[string]*engine.Mover) {
	for _, p := range agent.Roster {
		snap := storage.AgentSnapshot{
			AgentID:     p.ID,
			Name:        p.Name,
			Role:        p.Role,
			PosX:        p.Home.X,
			PosY:        p.Home.Y,
			LastUpdated: time.Now(),
		}
		if st, ok := store.GetState(p.ID); ok {
			snap.Mood = string(st.Mood)
			snap.Activity = string(st.Activity)
			snap.Energy = st.Energy
			snap.TaskCount = st.TaskCount
			snap.LastUpdated = st.LastActive
		}
		if m, ok := movers[p.ID]; ok {
			pos := m.Position()
			snap.PosX = pos.X
			snap.PosY = pos.Y
		}
		_ = repo.Upsert(ctx, snap)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for the Phaser dev server
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection: %v", err)
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.WritePump()
	go client.ReadPump()
}
