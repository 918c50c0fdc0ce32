package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tidyops/dispatch-backend/internal/api"
	"github.com/tidyops/dispatch-backend/internal/auth"
	"github.com/tidyops/dispatch-backend/internal/booking"
	"github.com/tidyops/dispatch-backend/internal/customer"
	"github.com/tidyops/dispatch-backend/internal/notice"
	"github.com/tidyops/dispatch-backend/internal/organization"
	"github.com/tidyops/dispatch-backend/internal/photo"
	"github.com/tidyops/dispatch-backend/internal/pkg/storage"
	"github.com/tidyops/dispatch-backend/internal/servicetype"
	"github.com/tidyops/dispatch-backend/internal/team"
	"github.com/tidyops/dispatch-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	DBPool        *pgxpool.Pool
	JWTSecret     string
	JWTTTL        time.Duration
	BcryptCost    int
	ConflictGuard string
	StoragePath   string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Organization Module
	orgRepo := organization.NewPgxRepository(cfg.DBPool)
	orgService := organization.NewService(orgRepo, userService)

	// Team Module
	teamRepo := team.NewPgxRepository(cfg.DBPool)
	teamService := team.NewService(teamRepo, orgService)

	// Customer Module
	customerRepo := customer.NewPgxRepository(cfg.DBPool)
	customerService := customer.NewService(customerRepo, orgService)

	// ServiceType Module
	stRepo := servicetype.NewPgxRepository(cfg.DBPool)
	stService := servicetype.NewService(stRepo, orgService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool, cfg.ConflictGuard)
	bookingService := booking.NewService(bookingRepo, teamService, orgService)

	// Photo Module
	photoRepo := photo.NewRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, store)

	// Notice Module
	noticeRepo := notice.NewPgxRepository(cfg.DBPool)
	noticeService := notice.NewService(noticeRepo)

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UserService:        userService,
		OrgService:         orgService,
		TeamService:        teamService,
		CustomerService:    customerService,
		ServiceTypeService: stService,
		BookingService:     bookingService,
		PhotoService:       photoService,
		NoticeService:      noticeService,
		JWTManager:         jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
