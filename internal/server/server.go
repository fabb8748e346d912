package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/sipas-org/sipas-api/internal/auth"
	"github.com/sipas-org/sipas-api/internal/catalog"
	"github.com/sipas-org/sipas-api/internal/config"
	"github.com/sipas-org/sipas-api/internal/crud"
	"github.com/sipas-org/sipas-api/internal/http/handlers"
	"github.com/sipas-org/sipas-api/internal/http/respond"
	"github.com/sipas-org/sipas-api/internal/middleware"
	"github.com/sipas-org/sipas-api/internal/models"
	"github.com/sipas-org/sipas-api/internal/models/dto"
	"github.com/sipas-org/sipas-api/internal/storage"
	"github.com/sipas-org/sipas-api/internal/storage/postgres"
)

const requestTimeout = 30 * time.Second

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server. A nil limiter
// disables login rate limiting.
func New(cfg config.Config, store *postgres.Store, limiter middleware.RateLimiter) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())
	validate := handlers.NewValidator()
	authenticate := middleware.Authenticate(tokens)

	var loginLimit func(http.Handler) http.Handler
	if limiter != nil {
		loginLimit = middleware.RateLimit(limiter, "login", cfg.LoginRateLimit)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins()))
	r.Use(chimw.Timeout(requestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Mount("/health", handlers.NewHealthHandler(time.Now(), store).Routes())
	sessions := auth.NewService(postgres.NewSessionStore(store), tokens)
	r.Mount("/auth", handlers.NewAuthHandler(sessions, validate).Routes(authenticate, loginLimit))

	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		mountResources(r, store, validate)
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

func mountResources(r chi.Router, store *postgres.Store, validate *validator.Validate) {
	mount[models.Unit, dto.CreateUnit, dto.UpdateUnit](r, store, catalog.Units, validate)
	mount[models.Department, dto.CreateDepartment, dto.UpdateDepartment](r, store, catalog.Departments, validate)
	mount[models.Role, dto.CreateRole, dto.UpdateRole](r, store, catalog.Roles, validate)
	mount[models.Person, dto.CreatePerson, dto.UpdatePerson](r, store, catalog.Persons, validate)
	mount[models.Employee, dto.CreateEmployee, dto.UpdateEmployee](r, store, catalog.Employees, validate)
	mount[models.FamilyComposition, dto.CreateFamilyComposition, dto.UpdateFamilyComposition](r, store, catalog.FamilyCompositions, validate)
	mount[models.User, dto.CreateUser, dto.UpdateUser](r, store, catalog.Users, validate, crud.WithPrepare(auth.PrepareUserRecord))
	mount[models.UserUnit, dto.CreateUserUnit, dto.UpdateUserUnit](r, store, catalog.UserUnits, validate)
	mount[models.UserDepartment, dto.CreateUserDepartment, dto.UpdateUserDepartment](r, store, catalog.UserDepartments, validate)
	mount[models.UserRole, dto.CreateUserRole, dto.UpdateUserRole](r, store, catalog.UserRoles, validate)
	for _, desc := range []storage.Descriptor{catalog.KinshipTypes, catalog.MaritalStatuses, catalog.EducationLevels} {
		mount[models.Lookup, dto.CreateLookup, dto.UpdateLookup](r, store, desc, validate)
	}
}

// mount exposes desc under /<table-name-with-dashes>.
func mount[T, C, U any](r chi.Router, store *postgres.Store, desc storage.Descriptor, validate *validator.Validate, opts ...crud.Option) {
	svc := crud.New[T](postgres.NewTable[T](store, desc), opts...)
	h := handlers.NewCRUDHandler[T, C, U](desc.Resource, svc, validate)
	r.Mount(resourcePath(desc), h.Routes())
}

func resourcePath(desc storage.Descriptor) string {
	return "/" + strings.ReplaceAll(desc.Name, "_", "-")
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
