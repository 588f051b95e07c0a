package domain

type Location struct {
	ID       int64    `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"size:150;not null"`
	Address1 string   `json:"address1" gorm:"size:200;not null"`
	City     string   `json:"city" gorm:"size:100;not null"`
	State    string   `json:"state" gorm:"size:2;not null"`
	Zip      string   `json:"zip" gorm:"size:10;not null"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}
