package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"usagl/internal/database"
	"usagl/internal/domain"
	"usagl/internal/middleware"
	"usagl/internal/modules/auth"
	"usagl/internal/modules/carriers"
	"usagl/internal/modules/fleet"
	"usagl/internal/modules/orders"
	"usagl/internal/modules/shipments"
	jwtsvc "usagl/internal/pkg/jwt"
	"usagl/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

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

	j := jwtsvc.New("test_secret_key_32_characters_min_", "usagl.test", "usagl.client", time.Hour)

	authService := auth.NewService(userRepo, tokenRepo, j, 7*24*time.Hour)
	authHandler := auth.NewHandler(authService)

	ordersHandler := orders.NewHandler(orders.NewService(customerRepo, orderRepo))
	fleetHandler := fleet.NewHandler(fleet.NewService(modelRepo, vehicleRepo))
	carriersHandler := carriers.NewHandler(carriers.NewService(carrierRepo, driverRepo))

	hub := shipments.NewHub()
	shipmentsService := shipments.NewService(shipmentRepo, locationRepo, orderRepo, hub)
	shipmentsHandler := shipments.NewHandler(shipmentsService, hub)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	authHandler.RegisterRoutes(&r.RouterGroup)

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

	return &E2ETestSuite{router: r, db: db}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out),
		"status %d, body %s", w.Code, w.Body.String())
	return out
}

func (s *E2ETestSuite) createAdmin(t *testing.T, email, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}).Error)
}

func (s *E2ETestSuite) login(t *testing.T, email, password string) (access, refresh string) {
	t.Helper()

	w := s.makeRequest("POST", "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return body["accessToken"].(string), body["refreshToken"].(string)
}

func TestAuthFlow(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("register", func(t *testing.T) {
		w := suite.makeRequest("POST", "/auth/register", map[string]string{
			"email":    "dispatch@usagl.com",
			"password": "Password123",
			"role":     "Dispatcher",
		}, "")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, "dispatch@usagl.com", body["email"])
		assert.Equal(t, "Dispatcher", body["role"])
	})

	t.Run("register duplicate email", func(t *testing.T) {
		w := suite.makeRequest("POST", "/auth/register", map[string]string{
			"email":    "dispatch@usagl.com",
			"password": "Password123",
			"role":     "Dispatcher",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email already exists", decodeBody(t, w)["message"])
	})

	t.Run("login wrong password", func(t *testing.T) {
		w := suite.makeRequest("POST", "/auth/login", map[string]string{
			"email":    "dispatch@usagl.com",
			"password": "nope",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["message"])
	})

	access, refresh := suite.login(t, "dispatch@usagl.com", "Password123")

	t.Run("me", func(t *testing.T) {
		w := suite.makeRequest("GET", "/auth/me", nil, access)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "dispatch@usagl.com", decodeBody(t, w)["email"])
	})

	t.Run("me without token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected route requires token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/customers", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	var newAccess, newRefresh string

	t.Run("refresh rotates the pair", func(t *testing.T) {
		w := suite.makeRequest("POST", "/auth/refresh", map[string]string{
			"refreshToken": refresh,
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		newAccess = body["accessToken"].(string)
		newRefresh = body["refreshToken"].(string)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.NotEqual(t, refresh, newRefresh)
	})

	t.Run("replay of rotated token fails", func(t *testing.T) {
		w := suite.makeRequest("POST", "/auth/refresh", map[string]string{
			"refreshToken": refresh,
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid refresh token", decodeBody(t, w)["message"])
	})

	t.Run("new pair stays usable", func(t *testing.T) {
		w := suite.makeRequest("GET", "/auth/me", nil, newAccess)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/auth/refresh", map[string]string{
			"refreshToken": newRefresh,
		}, "")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func TestDispatchFlow(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest("POST", "/auth/register", map[string]string{
		"email":    "ops@usagl.com",
		"password": "Password123",
		"role":     "Dispatcher",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	access, _ := suite.login(t, "ops@usagl.com", "Password123")

	id := func(body map[string]interface{}) int64 {
		return int64(body["id"].(float64))
	}

	// customer and order
	w = suite.makeRequest("POST", "/customers", map[string]interface{}{
		"name":         "Acme Dealer",
		"contactEmail": "ops@acmedealer.com",
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customerID := id(decodeBody(t, w))

	w = suite.makeRequest("POST", "/orders", map[string]interface{}{
		"customerId": customerID,
		"status":     "Confirmed",
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := id(decodeBody(t, w))

	// locations
	w = suite.makeRequest("POST", "/locations", map[string]interface{}{
		"name":     "Dallas Terminal",
		"address1": "100 Commerce St",
		"city":     "Dallas",
		"state":    "TX",
		"zip":      "75201",
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pickupID := id(decodeBody(t, w))

	w = suite.makeRequest("POST", "/locations", map[string]interface{}{
		"name":     "Atlanta Yard",
		"address1": "200 Peachtree St NE",
		"city":     "Atlanta",
		"state":    "GA",
		"zip":      "30303",
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	deliveryID := id(decodeBody(t, w))

	// fleet
	w = suite.makeRequest("POST", "/vehicle-models", map[string]interface{}{
		"make":  "Toyota",
		"model": "Camry",
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	modelID := id(decodeBody(t, w))

	w = suite.makeRequest("POST", "/vehicles", map[string]interface{}{
		"vin":      "1HGCM82633A123456",
		"year":     2022,
		"modelId":  modelID,
		"operable": true,
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	vehicleID := id(decodeBody(t, w))

	// carrier and driver
	w = suite.makeRequest("POST", "/carriers", map[string]interface{}{
		"legalName": "US Logistics LLC",
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	carrierID := id(decodeBody(t, w))

	w = suite.makeRequest("POST", "/drivers", map[string]interface{}{
		"carrierId": carrierID,
		"fullName":  "John Doe",
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	driverID := id(decodeBody(t, w))

	// shipment
	w = suite.makeRequest("POST", "/shipments", map[string]interface{}{
		"orderId":            orderID,
		"pickupLocationId":   pickupID,
		"deliveryLocationId": deliveryID,
		"priceUsd":           850,
	}, access)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	shipmentBody := decodeBody(t, w)
	shipmentID := id(shipmentBody)
	assert.Equal(t, "Created", shipmentBody["status"])

	t.Run("assign vehicle and driver", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/shipments/%d/vehicles", shipmentID), map[string]interface{}{
			"vehicleIds": []int64{vehicleID},
		}, access)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = suite.makeRequest("POST", fmt.Sprintf("/shipments/%d/drivers", shipmentID), map[string]interface{}{
			"drivers": []map[string]interface{}{
				{"driverId": driverID, "role": "Primary"},
			},
		}, access)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	t.Run("unknown driver role rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/shipments/%d/drivers", shipmentID), map[string]interface{}{
			"drivers": []map[string]interface{}{
				{"driverId": driverID, "role": "Navigator"},
			},
		}, access)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Equal(t, "Invalid driver role", decodeBody(t, w)["message"])
	})

	t.Run("assigning the same vehicle twice is idempotent", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/shipments/%d/vehicles", shipmentID), map[string]interface{}{
			"vehicleIds": []int64{vehicleID},
		}, access)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	t.Run("shipment detail includes assignments", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/shipments/%d", shipmentID), nil, access)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		vehicles := body["vehicles"].([]interface{})
		drivers := body["drivers"].([]interface{})
		require.Len(t, vehicles, 1)
		require.Len(t, drivers, 1)

		driver := drivers[0].(map[string]interface{})
		assert.Equal(t, "Primary", driver["role"])
	})

	t.Run("status change", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/shipments/%d/status", shipmentID), map[string]string{
			"status": "InTransit",
		}, access)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "InTransit", decodeBody(t, w)["status"])
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/shipments/%d/status", shipmentID), map[string]string{
			"status": "Teleported",
		}, access)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("customer orders listing", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/customers/%d/orders", customerID), nil, access)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "Confirmed", list[0]["status"])
	})

	t.Run("missing shipment is 404", func(t *testing.T) {
		w := suite.makeRequest("GET", "/shipments/99999", nil, access)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("remove driver then delete shipment", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/shipments/%d/drivers/%d", shipmentID, driverID), nil, access)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = suite.makeRequest("DELETE", fmt.Sprintf("/shipments/%d", shipmentID), nil, access)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = suite.makeRequest("GET", fmt.Sprintf("/shipments/%d", shipmentID), nil, access)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSeedEndpointIsAdminOnly(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest("POST", "/auth/register", map[string]string{
		"email":    "dispatch@usagl.com",
		"password": "Password123",
		"role":     "Dispatcher",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dispatcherAccess, _ := suite.login(t, "dispatch@usagl.com", "Password123")

	t.Run("dispatcher is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/seed", nil, dispatcherAccess)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	suite.createAdmin(t, "admin@usagl.com", "admin123")
	adminAccess, _ := suite.login(t, "admin@usagl.com", "admin123")

	t.Run("admin seeds demo data", func(t *testing.T) {
		w := suite.makeRequest("POST", "/seed", nil, adminAccess)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var count int64
		require.NoError(t, suite.db.Model(&domain.Shipment{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("seeding twice does not duplicate", func(t *testing.T) {
		w := suite.makeRequest("POST", "/seed", nil, adminAccess)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var count int64
		require.NoError(t, suite.db.Model(&domain.Shipment{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
