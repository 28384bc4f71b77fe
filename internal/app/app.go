// Package app wires repositories, services, handlers and the router
// into a runnable HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskblog/internal/auth"
	"taskblog/internal/config"
	"taskblog/internal/handlers"
	"taskblog/internal/logger"
	"taskblog/internal/middleware"
	"taskblog/internal/repository"
	"taskblog/internal/repository/inmemory"
	"taskblog/internal/repository/mongostore"
	"taskblog/internal/service"
	"taskblog/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	cfg       *config.Config
	server    *http.Server
	router    *chi.Mux
	shutdowns []func()
}

func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	users, posts, tasks, err := a.buildRepositories()
	if err != nil {
		return nil, err
	}

	authCfg := auth.Config{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	}

	authHandler := handlers.NewAuthHandler(service.NewAuthService(users, authCfg))
	postHandler := handlers.NewPostHandler(service.NewPostService(posts))
	taskHandler := handlers.NewTaskHandler(service.NewTaskService(tasks))
	healthHandler := handlers.NewHealthHandler()

	a.router = NewRouter(RouterDeps{
		AuthConfig: authCfg,
		Users:      users,
		Auth:       authHandler,
		Posts:      postHandler,
		Tasks:      taskHandler,
		Health:     healthHandler,
		RateLimit:  cfg.RateLimit,
	})

	a.server = &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	return a, nil
}

func (a *App) buildRepositories() (repository.UserRepository, repository.PostRepository, repository.TaskRepository, error) {
	switch a.cfg.Repository.Type {
	case "inmemory":
		logger.Info("app: using in-memory repositories")
		return inmemory.NewUserStorage(), inmemory.NewPostStorage(), inmemory.NewTaskStorage(), nil
	case "mongo", "":
		store, err := mongostore.NewStore(a.cfg.Mongo.URI, a.cfg.Mongo.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			if err := store.Close(); err != nil {
				logger.Warn("app: closing mongo connection: " + err.Error())
			}
		})
		logger.Info("app: connected to mongo")
		return store.Users(), store.Posts(), store.Tasks(), nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown repository type %q", a.cfg.Repository.Type)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("app: server listening on " + a.server.Addr)
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		a.runShutdowns()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := a.server.Shutdown(shutdownCtx)
	a.runShutdowns()
	if err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return <-errCh
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}

type RouterDeps struct {
	AuthConfig auth.Config
	Users      repository.UserRepository
	Auth       *handlers.AuthHandler
	Posts      *handlers.PostHandler
	Tasks      *handlers.TaskHandler
	Health     *handlers.HealthHandler
	RateLimit  config.RateLimitConfig
}

// NewRouter builds the full route table with its middleware chains:
// validation runs before authentication, authentication before handlers.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	if deps.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(deps.RateLimit.RPS, deps.RateLimit.Burst))
	}

	protect := auth.Protect(deps.AuthConfig, deps.Users)

	r.Get("/health", deps.Health.Health)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(validation.Body(validation.UserRegistration()...)).
			Post("/register", deps.Auth.Register)
		r.With(validation.Body(validation.UserLogin()...)).
			Post("/login", deps.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.Get("/me", deps.Auth.Me)
			r.With(validation.Body(validation.PasswordChange()...)).
				Put("/password", deps.Auth.ChangePassword)
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.With(validation.Query(validation.Pagination()...)).
			Get("/", deps.Posts.GetAllPosts)
		r.Get("/{id}", deps.Posts.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(protect)
			r.With(validation.Body(validation.Post()...)).
				Post("/", deps.Posts.CreatePost)
			r.With(validation.Body(validation.Post()...)).
				Put("/{id}", deps.Posts.UpdatePost)
			r.Delete("/{id}", deps.Posts.DeletePost)
			r.Post("/{id}/like", deps.Posts.LikePost)
		})
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/stats/overview", deps.Tasks.GetTaskStats)

		r.With(validation.Query(validation.Pagination()...)).
			Get("/", deps.Tasks.GetAllTasks)
		r.With(validation.Body(validation.TaskCreate()...)).
			Post("/", deps.Tasks.CreateTask)

		r.Get("/{id}", deps.Tasks.GetTaskById)
		r.With(validation.Body(validation.TaskUpdate()...)).
			Put("/{id}", deps.Tasks.UpdateTask)
		r.Delete("/{id}", deps.Tasks.DeleteTask)
	})

	r.NotFound(jsonError(http.StatusNotFound, "Route not found"))
	r.MethodNotAllowed(jsonError(http.StatusMethodNotAllowed, "Method not allowed"))

	return r
}

func jsonError(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":%q}`, message)
	}
}
