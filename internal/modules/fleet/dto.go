package fleet

type VehicleModelInput struct {
	Make     string  `json:"make" binding:"required"`
	Model    string  `json:"model" binding:"required"`
	BodyType *string `json:"bodyType"`
}

type VehicleInput struct {
	Vin      string   `json:"vin" binding:"required,max=17"`
	Year     int      `json:"year"`
	Color    *string  `json:"color"`
	ModelID  int64    `json:"modelId" binding:"required"`
	Operable bool     `json:"operable"`
	ValueUsd *float64 `json:"valueUsd"`
}
