package domain

type Carrier struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	LegalName string  `json:"legalName" gorm:"size:200;not null"`
	DotNumber *string `json:"dotNumber" gorm:"size:20"`
	McNumber  *string `json:"mcNumber" gorm:"size:20"`
	Phone     *string `json:"phone" gorm:"size:50"`
	Email     *string `json:"email" gorm:"size:200"`
}

type Driver struct {
	ID           int64    `json:"id" gorm:"primaryKey"`
	CarrierID    int64    `json:"carrierId" gorm:"index;not null"`
	Carrier      *Carrier `json:"carrier,omitempty" gorm:"foreignKey:CarrierID"`
	FullName     string   `json:"fullName" gorm:"size:150;not null"`
	LicenseNo    *string  `json:"licenseNo" gorm:"size:50"`
	LicenseState *string  `json:"licenseState" gorm:"size:2"`
	Phone        *string  `json:"phone" gorm:"size:50"`
}
