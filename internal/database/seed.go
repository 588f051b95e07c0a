package database

import (
	"log"
	"time"

	"usagl/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureAdmin creates the default admin account if no user with that email
// exists yet. Safe to call on every startup.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}).Error
}

// SeedDemo loads a small demo dataset: one dealer with an order, two
// terminals, a carrier with a driver, a car on a scheduled load. Runs in a
// single transaction and skips itself if demo data is already present.
func SeedDemo(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Customer{}).Where("name = ?", "Acme Dealer").Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Println("demo data already present, skipping seed")
			return nil
		}

		customer := domain.Customer{
			Name:         "Acme Dealer",
			ContactEmail: ptr("ops@acmedealer.com"),
			Phone:        ptr("+1 214 555 0101"),
			BillingTerms: ptr("Net 30"),
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		pickup := domain.Location{
			Name:     "Dallas Terminal",
			Address1: "100 Commerce St",
			City:     "Dallas",
			State:    "TX",
			Zip:      "75201",
		}
		delivery := domain.Location{
			Name:     "Atlanta Yard",
			Address1: "200 Peachtree St NE",
			City:     "Atlanta",
			State:    "GA",
			Zip:      "30303",
		}
		if err := tx.Create(&pickup).Error; err != nil {
			return err
		}
		if err := tx.Create(&delivery).Error; err != nil {
			return err
		}

		model := domain.VehicleModel{
			Make:     "Toyota",
			Model:    "Camry",
			BodyType: ptr("Sedan"),
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		vehicle := domain.Vehicle{
			Vin:      "1HGCM82633A123456",
			Year:     2022,
			Color:    ptr("Silver"),
			ModelID:  model.ID,
			Operable: true,
			ValueUsd: ptrF(24500),
		}
		if err := tx.Create(&vehicle).Error; err != nil {
			return err
		}

		carrier := domain.Carrier{
			LegalName: "US Logistics LLC",
			DotNumber: ptr("1234567"),
			McNumber:  ptr("987654"),
			Phone:     ptr("+1 404 555 0190"),
			Email:     ptr("dispatch@uslogistics.com"),
		}
		if err := tx.Create(&carrier).Error; err != nil {
			return err
		}

		driver := domain.Driver{
			CarrierID:    carrier.ID,
			FullName:     "John Doe",
			LicenseNo:    ptr("D1234567"),
			LicenseState: ptr("GA"),
			Phone:        ptr("+1 404 555 0191"),
		}
		if err := tx.Create(&driver).Error; err != nil {
			return err
		}

		order := domain.Order{
			CustomerID: customer.ID,
			Status:     domain.OrderConfirmed,
			Notes:      ptr("Single sedan, standard lane"),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		pickupAt := time.Now().AddDate(0, 0, 2).Truncate(time.Hour)
		deliverAt := pickupAt.AddDate(0, 0, 3)
		shipment := domain.Shipment{
			OrderID:            order.ID,
			PickupLocationID:   pickup.ID,
			DeliveryLocationID: delivery.ID,
			ScheduledPickup:    &pickupAt,
			ScheduledDelivery:  &deliverAt,
			Status:             domain.ShipmentScheduled,
			PriceUsd:           ptrF(850),
		}
		if err := tx.Create(&shipment).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&domain.ShipmentVehicle{
			ShipmentID: shipment.ID,
			VehicleID:  vehicle.ID,
		}).Error; err != nil {
			return err
		}

		role := domain.DriverPrimary
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&domain.ShipmentDriver{
			ShipmentID: shipment.ID,
			DriverID:   driver.ID,
			Role:       &role,
		}).Error; err != nil {
			return err
		}

		log.Println("demo data seeded")
		return nil
	})
}

func ptr(s string) *string    { return &s }
func ptrF(f float64) *float64 { return &f }
