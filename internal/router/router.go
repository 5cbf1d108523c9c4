package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ridereg/internal/auth"
	"ridereg/internal/config"
	"ridereg/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	regHandler *handler.RegistrationHandler,
	qnaHandler *handler.QnaHandler,
	contentHandler *handler.ContentHandler,
	ticketHandler *handler.TicketHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register-rider", authHandler.RegisterRider)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/tickets/:id", ticketHandler.GetTicket)
	api.GET("/certificates/:id", ticketHandler.GetCertificate)
	api.GET("/qna", qnaHandler.List)

	api.GET("/faqs", contentHandler.FAQs.List)
	api.GET("/offers", contentHandler.Offers.List)
	api.GET("/organizers", contentHandler.Organizers.List)
	api.GET("/partners", contentHandler.Partners.List)
	api.GET("/schedule", contentHandler.Schedule.List)
	api.GET("/announcements", contentHandler.Announcements.List)
	api.GET("/settings/event", contentHandler.GetEventSettings)
	api.GET("/settings/route", contentHandler.GetLocationSettings)

	// Secured routes. Tokens are parsed by our own JWT service so the stored
	// claims are *auth.Claims; role checks happen in the services against the
	// profile record, never against the token.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.POST("/me/access-request", userHandler.RequestAccess)
	secured.POST("/upload", uploadHandler.Upload)

	secured.POST("/registrations", regHandler.Register)
	secured.GET("/registrations/me", regHandler.GetOwn)
	secured.POST("/registrations/me/cancellation-request", regHandler.RequestCancellation)

	secured.POST("/qna/questions", qnaHandler.PostQuestion)
	secured.POST("/qna/questions/:id/replies", qnaHandler.PostReply)

	// Admin routes. The JWT gate only proves identity; each handler's service
	// re-verifies the caller's role before any write.
	admin := secured.Group("/admin")

	admin.GET("/registrations", regHandler.List)
	admin.GET("/registrations/counts", regHandler.Counts)
	admin.PATCH("/registrations/:id/status", regHandler.UpdateStatus)
	admin.PUT("/registrations/:id", regHandler.Edit)
	admin.POST("/registrations/:id/check-in", regHandler.CheckIn)
	admin.POST("/registrations/:id/revert-check-in", regHandler.RevertCheckIn)
	admin.POST("/registrations/:id/finish", regHandler.Finish)
	admin.POST("/registrations/:id/revert-finish", regHandler.RevertFinish)
	admin.POST("/registrations/:id/certificate", regHandler.GrantCertificate)
	admin.DELETE("/registrations/:id/certificate", regHandler.RevokeCertificate)
	admin.DELETE("/registrations/:id", regHandler.Delete)

	admin.GET("/access-requests", userHandler.ListAccessRequests)
	admin.POST("/access-requests/:id/review", userHandler.ReviewAccess)
	admin.PUT("/users/:id/role", userHandler.ChangeRole)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.POST("/qna/questions/:id/pin", qnaHandler.Pin)
	admin.POST("/qna/questions/:id/unpin", qnaHandler.Unpin)

	registerContentAdmin(admin, "/faqs", contentHandler.FAQs)
	registerContentAdmin(admin, "/offers", contentHandler.Offers)
	registerContentAdmin(admin, "/organizers", contentHandler.Organizers)
	registerContentAdmin(admin, "/partners", contentHandler.Partners)
	registerContentAdmin(admin, "/schedule", contentHandler.Schedule)
	registerContentAdmin(admin, "/announcements", contentHandler.Announcements)
	admin.PUT("/settings/event", contentHandler.SaveEventSettings)
	admin.PUT("/settings/route", contentHandler.SaveLocationSettings)
}

type contentRoutes interface {
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

func registerContentAdmin(g *echo.Group, prefix string, h contentRoutes) {
	g.POST(prefix, h.Create)
	g.PUT(prefix+"/:id", h.Update)
	g.DELETE(prefix+"/:id", h.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
