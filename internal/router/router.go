package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "cat-rescue/docs"
	rediscache "cat-rescue/internal/adapters/cache/redis"
	mem "cat-rescue/internal/adapters/storage/memory"
	pg "cat-rescue/internal/adapters/storage/postgres"
	"cat-rescue/internal/domain/adoptions"
	"cat-rescue/internal/domain/apitokens"
	"cat-rescue/internal/domain/breeds"
	"cat-rescue/internal/domain/cats"
	"cat-rescue/internal/domain/dashboard"
	"cat-rescue/internal/domain/users"
	"cat-rescue/internal/middleware"
	"cat-rescue/internal/platform/logger"
	"cat-rescue/internal/platform/metrics"
	"cat-rescue/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: cache de gatos disponibles.
	Redis    *redis.Client
	CacheTTL time.Duration

	Logger logger.Logger
}

// repos agrupa las implementaciones elegidas (postgres o memoria).
type repos struct {
	cats      cats.Repository
	users     users.Repository
	breeds    breeds.Repository
	adoptions adoptions.Repository
	tokens    apitokens.Repository
	tx        adoptions.Transactor
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	rp := newRepos(opts.DB)

	// Services por módulo
	catOpts := []cats.Option{cats.WithLogger(log.With(map[string]any{"module": "cats"}))}
	if opts.Redis != nil {
		ttl := opts.CacheTTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		catOpts = append(catOpts, cats.WithCache(rediscache.NewAvailableCats(opts.Redis, ttl)))
	}
	catsSvc := cats.NewService(rp.cats, catOpts...)
	usersSvc := users.NewService(rp.users)
	breedsSvc := breeds.NewService(rp.breeds)
	tokensSvc := apitokens.NewService(rp.tokens)

	adoptionsSvc := adoptions.NewService(rp.adoptions, rp.tx, rp.users,
		adoptions.WithObserver(catsSvc),
		adoptions.WithLogger(log.With(map[string]any{"module": "adoptions"})),
	)
	reporter := adoptions.NewReporter(rp.adoptions, rp.cats, rp.users, rp.breeds)
	dashboardSvc := dashboard.NewService(catsSvc, usersSvc, adoptionsSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, adoptions.UserRoutes(adoptionsSvc))
	breeds.RegisterRoutes(r, breedsSvc)
	cats.RegisterRoutes(r, catsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	adoptions.RegisterReportRoutes(r, reporter, apitokens.RequireToken(tokensSvc))
	apitokens.RegisterRoutes(r, tokensSvc)
	dashboard.RegisterRoutes(r, dashboardSvc)

	return r
}

func newRepos(db *sql.DB) repos {
	if db != nil {
		return repos{
			cats:      pg.NewCatsRepo(db),
			users:     pg.NewUsersRepo(db),
			breeds:    pg.NewBreedsRepo(db),
			adoptions: pg.NewAdoptionsRepo(db),
			tokens:    pg.NewAPITokensRepo(db),
			tx:        pg.NewTransactor(db),
		}
	}

	catRepo := mem.NewCatRepo()
	adoptionRepo := mem.NewAdoptionRepo()
	return repos{
		cats:      catRepo,
		users:     mem.NewUserRepo(),
		breeds:    mem.NewBreedRepo(),
		adoptions: adoptionRepo,
		tokens:    mem.NewAPITokenRepo(),
		tx:        mem.NewTransactor(adoptionRepo, catRepo),
	}
}
