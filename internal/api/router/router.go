package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"petconnect/internal/api/adoption"
	"petconnect/internal/api/auth"
	"petconnect/internal/api/blog"
	"petconnect/internal/api/donation"
	"petconnect/internal/api/followup"
	"petconnect/internal/api/form"
	"petconnect/internal/api/pet"
	"petconnect/internal/api/stats"
	"petconnect/internal/domain"
	"petconnect/internal/pkg/cache"
	"petconnect/internal/pkg/middleware"
	"petconnect/internal/pkg/token"
)

// Handlers agrupa os handlers injetados no roteador.
type Handlers struct {
	Auth     *auth.Handler
	Pet      *pet.Handler
	Adoption *adoption.Handler
	FollowUp *followup.Handler
	Donation *donation.Handler
	Blog     *blog.Handler
	Form     *form.Handler
	Stats    *stats.Handler
}

// Deps são as dependências transversais do roteador.
type Deps struct {
	TokenService token.TokenService
	Cache        cache.Client
	RateLimit    int
	RatePeriod   time.Duration
}

// NewRouter monta a árvore de rotas da API sob /api. Leitura do catálogo
// e das campanhas é pública; escrita e painéis exigem o papel admin.
func NewRouter(h Handlers, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimiter(deps.Cache, deps.RateLimit, deps.RatePeriod))

	requireAuth := middleware.RequireAuth(deps.TokenService)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(requireAuth).Get("/me", h.Auth.Me)
		})

		r.Route("/pets", func(r chi.Router) {
			r.Get("/", h.Pet.List)
			r.Get("/{id}", h.Pet.GetByID)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Post("/", h.Pet.Create)
				r.Put("/{id}", h.Pet.Update)
				r.Delete("/{id}", h.Pet.Delete)
			})
		})

		r.Route("/adoption-requests", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.Adoption.Create)
				r.Get("/my-requests", h.Adoption.MyRequests)
			})
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Get("/", h.Adoption.List)
				r.Get("/{id}", h.Adoption.GetByID)
				r.Put("/{id}", h.Adoption.UpdateStatus)
				r.Delete("/{id}", h.Adoption.Delete)
			})
		})

		r.Route("/follow-ups", func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Get("/", h.FollowUp.ListGrouped)
			r.Post("/start", h.FollowUp.Start)
			r.Get("/by-pet/{petId}", h.FollowUp.ListByPet)
			r.Get("/{id}", h.FollowUp.GetByID)
			r.Put("/{id}", h.FollowUp.Update)
			r.Delete("/{id}", h.FollowUp.Delete)
		})

		r.Route("/donations", func(r chi.Router) {
			r.Post("/checkout", h.Donation.CreateCheckout)
			r.Post("/confirm-payment", h.Donation.ConfirmPayment)
			r.With(requireAuth, requireAdmin).Get("/", h.Donation.List)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.Blog.List)
			r.Get("/{id}", h.Blog.GetByID)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Post("/", h.Blog.Create)
				r.Put("/{id}", h.Blog.Update)
				r.Delete("/{id}", h.Blog.Delete)
			})
		})

		r.Route("/form-submissions", func(r chi.Router) {
			r.Post("/", h.Form.Submit)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Get("/", h.Form.List)
				r.Get("/{id}", h.Form.GetByID)
				r.Put("/{id}", h.Form.UpdateStatus)
				r.Delete("/{id}", h.Form.Delete)
			})
		})

		r.With(requireAuth, requireAdmin).Get("/stats/dashboard", h.Stats.Dashboard)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
