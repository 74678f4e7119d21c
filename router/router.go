// Package router wires the controllers, middleware and templates into a gin engine.
// File: router/router.go
package router

import (
	"context"
	"fmt"
	"net/http"

	"catering-admin/auth"
	"catering-admin/config"
	"catering-admin/controllers"
	"catering-admin/middleware"
	"catering-admin/models"
	"catering-admin/services"
	"catering-admin/storage"
	"catering-admin/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "catering_admin"

// AdminGateway is everything the panel needs from the admin table.
type AdminGateway interface {
	controllers.Gateway[models.Admin]
	Count(ctx context.Context) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Deps are the collaborators the routes are built from.
type Deps struct {
	Config    *config.Config
	Reviews   controllers.Gateway[models.Review]
	Inquiries controllers.Gateway[models.Inquiry]
	Menu      controllers.Gateway[models.MenuItem]
	Admins    AdminGateway
	Store     storage.BlobStore
	Metrics   services.MetricsPublisher
}

// New builds the engine with every route registered.
func New(d Deps) (*gin.Engine, error) {
	if d.Metrics == nil {
		d.Metrics = services.NopPublisher{}
	}
	if d.Config.App.SessionSecret == "" {
		return nil, fmt.Errorf("router: empty session secret")
	}
	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())

	store := cookie.NewStore([]byte(d.Config.App.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   d.Config.App.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(SessionCookie, store))
	router.Use(middleware.SessionGate())
	router.Use(middleware.RequestLogger())

	site := &controllers.Site{BusinessName: d.Config.App.BusinessName}
	inflight := services.NewInFlight()
	uploads := services.NewUploadPipeline(d.Store, d.Metrics)
	dashboard := services.NewDashboardService(d.Reviews, d.Inquiries, d.Menu, d.Admins, d.Metrics)

	media, _ := d.Store.(*storage.MemoryStorage)
	pages := controllers.NewPageController(site, media)
	authc := controllers.NewAuthController(site, auth.NewAuthenticator(d.Admins), d.Metrics)
	dash := controllers.NewDashboardController(site, dashboard)
	reviews := controllers.NewReviewController(site, d.Reviews, inflight)
	inquiries := controllers.NewInquiryController(site, d.Inquiries, inflight)
	menu := controllers.NewMenuController(site, d.Menu, uploads, inflight)
	admins := controllers.NewAdminController(site, d.Admins, d.Admins, uploads, inflight)

	// Public routes
	router.GET("/health", controllers.Health)
	router.GET("/login", middleware.GuestOnly, authc.ShowLogin)
	router.POST("/login", middleware.GuestOnly, authc.PerformLogin)
	router.GET("/logout", authc.Logout)
	router.POST("/logout", authc.Logout)
	if media != nil {
		router.GET("/media/:bucket/*key", pages.Media)
	}

	// Protected routes
	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.GET("/", pages.Root)
		protected.GET("/dashboard", dash.Show)

		mountResource(protected, reviews)
		mountResource(protected, inquiries.Resource)
		mountResource(protected, menu.Resource)
		mountResource(protected, admins.Resource)

		protected.POST("/menu/:id/toggle", menu.ToggleAvailability)
		protected.GET("/inquiries/:id/whatsapp-qr", inquiries.WhatsAppQR)
	}

	router.NoRoute(pages.NotFound)
	return router, nil
}

// mountResource registers the list page and the create/edit/delete actions.
func mountResource[T any, F controllers.Form[T]](g *gin.RouterGroup, r *controllers.Resource[T, F]) {
	g.GET(r.Path, r.List)
	g.POST(r.Path, r.Create)
	g.POST(r.Path+"/:id", r.Update)
	g.POST(r.Path+"/:id/delete", r.Remove)
}
