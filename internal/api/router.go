package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tidyops/dispatch-backend/internal/auth"
	"github.com/tidyops/dispatch-backend/internal/booking"
	bookingHttp "github.com/tidyops/dispatch-backend/internal/booking/http"
	"github.com/tidyops/dispatch-backend/internal/customer"
	customerHttp "github.com/tidyops/dispatch-backend/internal/customer/http"
	"github.com/tidyops/dispatch-backend/internal/notice"
	noticeHttp "github.com/tidyops/dispatch-backend/internal/notice/http"
	"github.com/tidyops/dispatch-backend/internal/organization"
	orgHttp "github.com/tidyops/dispatch-backend/internal/organization/http"
	"github.com/tidyops/dispatch-backend/internal/photo"
	photoHttp "github.com/tidyops/dispatch-backend/internal/photo/http"
	"github.com/tidyops/dispatch-backend/internal/servicetype"
	servicetypeHttp "github.com/tidyops/dispatch-backend/internal/servicetype/http"
	"github.com/tidyops/dispatch-backend/internal/team"
	teamHttp "github.com/tidyops/dispatch-backend/internal/team/http"
	"github.com/tidyops/dispatch-backend/internal/user"
	userHttp "github.com/tidyops/dispatch-backend/internal/user/http"
)

// Config collects the services the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService        user.Service
	OrgService         organization.Service
	TeamService        team.Service
	CustomerService    customer.Service
	ServiceTypeService servicetype.Service
	BookingService     booking.Service
	PhotoService       photo.Service
	NoticeService      notice.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine. It assembles global
// middleware (Logger, Recovery, CORS) and registers routes for all modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS. In production only the allow-listed origins may call
	// the API; in development local frontends are allowed.
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// authMiddleware: validates the JWT on the request.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// sysAdminMiddleware: additionally requires system admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	orgHandler := orgHttp.NewHandler(cfg.OrgService)
	teamHandler := teamHttp.NewHandler(cfg.TeamService, cfg.OrgService)
	customerHandler := customerHttp.NewHandler(cfg.CustomerService, cfg.OrgService)
	serviceTypeHandler := servicetypeHttp.NewHandler(cfg.ServiceTypeService, cfg.OrgService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService, cfg.OrgService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService, cfg.BookingService, cfg.OrgService)
	noticeHandler := noticeHttp.NewHandler(cfg.NoticeService, cfg.OrgService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		orgHttp.RegisterRoutes(v1, orgHandler, authMiddleware, sysAdminMiddleware)
		teamHttp.RegisterRoutes(v1, teamHandler, authMiddleware)
		customerHttp.RegisterRoutes(v1, customerHandler, authMiddleware)
		servicetypeHttp.RegisterRoutes(v1, serviceTypeHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
		noticeHttp.RegisterRoutes(v1, noticeHandler, authMiddleware)
	}

	return r
}
