package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	httpadapter "gridwright/internal/adapter/http"
	"gridwright/internal/adapter/journal"
	metricsinmem "gridwright/internal/adapter/metrics/inmemory"
	gormrepo "gridwright/internal/adapter/repo/gorm"
	"gridwright/internal/adapter/repo/memory"
	"gridwright/internal/adapter/stream/ws"
	"gridwright/internal/app/agents"
	"gridwright/internal/app/decide"
	"gridwright/internal/app/ports"
	"gridwright/internal/app/replay"
	"gridwright/internal/app/session"
	"gridwright/internal/config"
	"gridwright/internal/domain/policy"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	hlog.SetLevel(cfg.HlogLevel())

	mem := memory.NewStore(nil)
	store := memory.NewWorldStore(mem)
	history, sinks, closers := mustBuildJournal(cfg, mem)
	kpiRecorder := metricsinmem.NewRecorder()

	var publisher ports.DecisionPublisher
	var streamSrv *http.Server
	if cfg.StreamAddr != "" {
		hub := ws.NewHub()
		publisher = hub
		streamSrv = newStreamServer(cfg.StreamAddr, hub)
		go func() {
			if err := streamSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				hlog.Errorf("decision stream stopped: %v", err)
			}
		}()
		hlog.Infof("decision stream listening on %s/ws/decisions", cfg.StreamAddr)
	}

	h := httpadapter.Handler{
		InitUC: session.InitUseCase{
			Store:    store,
			Defaults: sessionDefaults(cfg),
			NewID:    uuid.NewString,
		},
		RoundUC:    session.RoundUseCase{Store: store},
		SnapshotUC: session.SnapshotUseCase{Store: store},
		UpsertUC:   agents.UpsertUseCase{Store: store},
		PatchUC:    agents.PatchUseCase{Store: store},
		RemoveUC:   agents.RemoveUseCase{Store: store, ReleaseTile: cfg.ReleaseTileOnRemove},
		ViewUC:     agents.ViewUseCase{Store: store},
		DecideUC: decide.UseCase{
			Store:     store,
			Engine:    policy.NewEngine(cfg.Tuning),
			Journal:   sinks,
			Metrics:   kpiRecorder,
			Publisher: publisher,
			Now:       time.Now,
		},
		ReplayUC: replay.UseCase{History: history},
		KPI:      kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		if streamSrv != nil {
			_ = streamSrv.Shutdown(ctx)
		}
		for _, c := range closers {
			if err := c(); err != nil {
				hlog.Warnf("shutdown: %v", err)
			}
		}
	})

	log.Printf("gridwright listening on %s", cfg.ListenAddr)
	s.Spin()
}

func sessionDefaults(cfg config.Config) session.Defaults {
	d := session.DefaultDefaults()
	d.MapSize = cfg.DefaultMapSize
	d.InitBalance = cfg.DefaultInitBalance
	d.Team = cfg.DefaultTeam
	return d
}

// mustBuildJournal picks where decisions are recorded and read back from.
// Postgres, when configured, replaces the in-memory history; the archive is
// write-only and sits alongside either one.
func mustBuildJournal(cfg config.Config, mem *memory.Store) (ports.DecisionHistory, journal.Fanout, []func() error) {
	var (
		history ports.DecisionHistory
		sinks   journal.Fanout
		closers []func() error
	)
	if cfg.DBDSN != "" {
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		if err := gormrepo.ApplyMigrations(context.Background(), db, gormrepo.Migrations()); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		repo := gormrepo.NewDecisionRepo(db)
		history = repo
		sinks = append(sinks, repo)
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, sqlDB.Close)
		}
	} else {
		repo := memory.NewDecisionRepo(mem)
		history = repo
		sinks = append(sinks, repo)
	}
	if cfg.ArchiveDir != "" {
		archive := journal.NewArchive(cfg.ArchiveDir, "decisions")
		sinks = append(sinks, archive)
		closers = append(closers, archive.Close)
	}
	return history, sinks, closers
}

func newStreamServer(addr string, hub *ws.Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws/decisions", hub.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
