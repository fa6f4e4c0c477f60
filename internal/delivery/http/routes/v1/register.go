package v1

import (
	"jobswipe/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Vacancies *handler.VacancyHandler
	Targets   *handler.TargetHandler
	Swipes    *handler.SwipeHandler
	Matches   *handler.MatchHandler
	Reference *handler.ReferenceHandler
}

func Register(r fiber.Router, h Handlers, authMw fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r
	if authMw != nil {
		protected = r.Group("", authMw)
	}

	if h.Users != nil {
		h.Users.RegisterRoutes(protected.Group("/users"))
	}
	if h.Vacancies != nil {
		h.Vacancies.RegisterRoutes(protected.Group("/vacancies"))
	}
	if h.Targets != nil {
		h.Targets.RegisterRoutes(protected.Group("/targets"))
	}
	if h.Swipes != nil {
		h.Swipes.RegisterRoutes(protected.Group("/swipes"))
	}
	if h.Matches != nil {
		h.Matches.RegisterRoutes(protected.Group("/matches"))
	}
	if h.Reference != nil {
		h.Reference.RegisterRoutes(protected)
	}
}
