package domain

type VehicleModel struct {
	ID       int64   `json:"id" gorm:"primaryKey"`
	Make     string  `json:"make" gorm:"size:100;not null"`
	Model    string  `json:"model" gorm:"size:100;not null"`
	BodyType *string `json:"bodyType" gorm:"size:50"`
}

type Vehicle struct {
	ID       int64         `json:"id" gorm:"primaryKey"`
	Vin      string        `json:"vin" gorm:"size:17;not null"`
	Year     int           `json:"year"`
	Color    *string       `json:"color" gorm:"size:50"`
	ModelID  int64         `json:"modelId" gorm:"index;not null"`
	Model    *VehicleModel `json:"model,omitempty" gorm:"foreignKey:ModelID"`
	Operable bool          `json:"operable"`
	ValueUsd *float64      `json:"valueUsd"`
}
