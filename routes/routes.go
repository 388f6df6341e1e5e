package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/sportsbridge/platform/handlers"
	"github.com/sportsbridge/platform/middleware"
	"github.com/sportsbridge/platform/models"
)

// SetupRoutes собирает все маршруты платформы на переданном роутере.
// Группы защищены по ролям: athlete, organization, donor.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	opportunityHandler *handlers.OpportunityHandler,
	applicationHandler *handlers.ApplicationHandler,
	donationHandler *handlers.DonationHandler,
	profileHandler *handlers.ProfileHandler,
	mediaHandler *handlers.MediaHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Route("/api", func(r chi.Router) {
		// Публичные маршруты
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/events", opportunityHandler.ListEvents)
		r.Get("/sponsorships", opportunityHandler.ListSponsorships)
		r.Get("/athletes/travel-supports", opportunityHandler.ListTravelSupports)

		// Маршруты атлета
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireRole(models.RoleAthlete))

			r.Post("/athletes/apply/{type}/{opportunityID}", applicationHandler.Apply)
			r.Get("/athletes/applications", applicationHandler.ListMine)

			r.Get("/athletes/profile", profileHandler.GetMine)
			r.Put("/athletes/profile", profileHandler.Update)

			r.Post("/athletes/media", mediaHandler.Upload)
			r.Delete("/athletes/media/{mediaID}", mediaHandler.Delete)
		})

		// Маршруты организации
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireRole(models.RoleOrganization))

			r.Post("/organizations/opportunities/{type}", opportunityHandler.Create)
			r.Get("/organizations/applications", applicationHandler.ListForOrganization)
			r.Put("/organizations/applications/{applicationID}", applicationHandler.Review)
			r.Get("/organizations/athlete/{athleteID}", profileHandler.GetByID)
		})

		// Маршруты донора
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireRole(models.RoleDonor))

			r.Get("/donors/athletes", profileHandler.Search)
			r.Get("/donors/athlete/{athleteID}", profileHandler.GetByID)
			r.Post("/donors/donate/{athleteID}", donationHandler.Donate)
			r.Get("/donors/donations", donationHandler.ListMine)
			r.Delete("/donors/donations", donationHandler.ClearHistory)
		})

		// Колбэк платёжного шлюза
		r.Post("/payments/webhook", donationHandler.ConfirmPayment)
	})

	// WebSocket-уведомления; токен приходит query-параметром
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/ws", webSocketHandler.ServeWs)
	})
}
