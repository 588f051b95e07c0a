package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"usagl/internal/config"
	"usagl/internal/database"
	"usagl/internal/middleware"
	"usagl/internal/modules/auth"
	"usagl/internal/modules/carriers"
	"usagl/internal/modules/fleet"
	"usagl/internal/modules/orders"
	"usagl/internal/modules/shipments"
	jwtsvc "usagl/internal/pkg/jwt"
	"usagl/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if err := database.EnsureAdmin(db, "admin@usagl.com", "admin123"); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	modelRepo := repository.NewVehicleModelRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	carrierRepo := repository.NewCarrierRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL)

	authService := auth.NewService(userRepo, tokenRepo, j, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	ordersService := orders.NewService(customerRepo, orderRepo)
	ordersHandler := orders.NewHandler(ordersService)

	fleetService := fleet.NewService(modelRepo, vehicleRepo)
	fleetHandler := fleet.NewHandler(fleetService)

	carriersService := carriers.NewService(carrierRepo, driverRepo)
	carriersHandler := carriers.NewHandler(carriersService)

	hub := shipments.NewHub()
	defer hub.Close()

	shipmentsService := shipments.NewService(shipmentRepo, locationRepo, orderRepo, hub)
	shipmentsHandler := shipments.NewHandler(shipmentsService, hub)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// public
	authHandler.RegisterRoutes(&r.RouterGroup)

	// protected
	protected := r.Group("/")
	protected.Use(middleware.JWTAuth(j))
	{
		ordersHandler.RegisterRoutes(protected)
		fleetHandler.RegisterRoutes(protected)
		carriersHandler.RegisterRoutes(protected)
		shipmentsHandler.RegisterRoutes(protected)

		admin := protected.Group("/")
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("/seed", func(c *gin.Context) {
				if err := database.SeedDemo(db); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"message": "Seed failed"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"message": "Seed completed"})
			})
		}
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
