package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"vagasboard-engine/internal/board"
	"vagasboard-engine/internal/cache"
	"vagasboard-engine/internal/config"
	"vagasboard-engine/internal/events"
	"vagasboard-engine/internal/httpapi"
	"vagasboard-engine/internal/kombo"
	"vagasboard-engine/internal/scheduler"
	"vagasboard-engine/internal/secrets"
	"vagasboard-engine/internal/store"
	"vagasboard-engine/internal/updater"
)

// Version is stamped at build time via -ldflags "-X main.Version=...".
var Version = "1.0.0"

func main() {
	// Engine data dir: env wins, else local folder.
	dataDir := os.Getenv("VAGAS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; two processes sharing a sqlite cache is asking
	// for trouble.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, wmsg := range vr.Warnings {
			log.Printf("level=warn msg=\"config\" warn=%q", wmsg)
		}
		for _, emsg := range vr.Errors {
			log.Printf("level=error msg=\"config\" err=%q", emsg)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	st, err := openStore(cfg, dataDir)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	gateway := cache.NewGateway(st)

	clientOpts := []kombo.Option{}
	if cfg.Provider.FeedBaseURL != "" {
		clientOpts = append(clientOpts, kombo.WithBaseURL(cfg.Provider.FeedBaseURL))
	}
	client := kombo.NewClient(clientOpts...)

	renderer, err := board.NewRenderer()
	if err != nil {
		log.Fatalf("renderer init failed: %v", err)
	}

	hub := events.NewHub()

	var fetchStatus atomic.Value
	fetchStatus.Store(httpapi.FetchStatus{})

	var checker *updater.Checker
	if cfg.Updater.Enabled {
		checker = updater.NewChecker(st, cfg.Updater.Repo, Version)
	}

	deps := httpapi.Deps{
		Gateway:       gateway,
		Client:        client,
		Renderer:      renderer,
		Hub:           hub,
		CfgVal:        &cfgVal,
		FetchStatus:   &fetchStatus,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		Checker:       checker,
		OperatorToken: secrets.GetOperatorToken,
	}

	mux := httpapi.NewMux(deps)

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	)

	port := cfg.App.Port
	if port == 0 {
		port = 38471
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine %s listening on http://%s (data=%s)", Version, addr, dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Shutdown endpoint for the hosting process.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Printf("shutdown token: %s", token)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if checker != nil {
		interval := time.Duration(cfg.Updater.IntervalHours) * time.Hour
		g.Go(func() error {
			scheduler.Every(ctx, interval, "update-check", func(ctx context.Context) error {
				rel, err := checker.Check(ctx, false)
				if err != nil {
					return err
				}
				if rel.Newer {
					hub.Publish(events.MakeEvent("", events.TypeUpdateAvailable, 1, rel))
				}
				return nil
			})
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// closableStore is what main needs from either cache backend.
type closableStore interface {
	cache.Store
	Close() error
}

func openStore(cfg config.Config, dataDir string) (closableStore, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return store.OpenRedis(cfg.Cache.Redis)
	default:
		return store.OpenSQLite(filepath.Join(dataDir, "vagasboard.db"))
	}
}
