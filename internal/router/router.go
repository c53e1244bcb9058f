package router

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mem "dog-registry/internal/adapters/storage/memory"
	pg "dog-registry/internal/adapters/storage/postgres"
	sqlitestore "dog-registry/internal/adapters/storage/sqlite"
	"dog-registry/internal/domain/dogs"
	"dog-registry/internal/livereload"
	"dog-registry/internal/nav"
	"dog-registry/internal/pages"
	"dog-registry/internal/platform/config"
	"dog-registry/internal/platform/httpclient"
	"dog-registry/internal/platform/logger"
	"dog-registry/internal/platform/metrics"
)

type Options struct {
	Config config.Config
	Log    logger.Logger

	// Repo opcional: si viene, pisa la selección por config (tests).
	Repo dogs.Repository
	// Static opcional: si viene, pisa Config.StaticDir (tests).
	Static fs.FS
}

// New arma el handler completo: API JSON, páginas SSR, métricas y live
// reload. Todo estado compartido (renderer, fetcher, logger) viaja en objetos
// construidos una vez acá y pasados explícitamente; no hay globals de módulo.
func New(opts Options) (http.Handler, error) {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	repo := opts.Repo
	if repo == nil {
		var err error
		repo, err = openRepo(cfg)
		if err != nil {
			return nil, err
		}
	}
	svc := dogs.NewService(repo)

	// El fetch del SSR sale por HTTP contra el propio origin, igual que el
	// del navegador: un solo contrato de Fetcher, dos transportes.
	api, err := nav.NewAPIClient(cfg.Origin, httpclient.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("router: api client: %w", err)
	}
	controller := nav.NewController(api, log)
	submitter := nav.NewSubmitter(api, log)

	static := opts.Static
	if static == nil {
		static = os.DirFS(cfg.StaticDir)
	}

	var reload http.Handler
	if cfg.Dev {
		reload = livereload.NewHub(log)
	}

	pagesHandler := pages.New(pages.Options{
		Controller: controller,
		Submitter:  submitter,
		Static:     static,
		Log:        log,
		Dev:        cfg.Dev,
		Reload:     reload,
	})

	m := metrics.New()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(m.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(ar chi.Router) {
		dogs.RegisterRoutes(ar, svc)
	})

	r.Route("/dogs", pagesHandler.Register)

	return r, nil
}

func openRepo(cfg config.Config) (dogs.Repository, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("router: open postgres: %w", err)
		}
		if err := pg.EnsureSchema(context.Background(), db); err != nil {
			return nil, fmt.Errorf("router: postgres schema: %w", err)
		}
		return pg.NewDogsRepo(db), nil

	case config.StoreSQLite:
		db, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("router: open sqlite: %w", err)
		}
		if err := sqlitestore.EnsureSchema(context.Background(), db); err != nil {
			return nil, fmt.Errorf("router: sqlite schema: %w", err)
		}
		return sqlitestore.NewDogsRepo(db), nil

	default:
		return mem.NewDogRepo(), nil
	}
}
