package carriers

type CarrierInput struct {
	LegalName string  `json:"legalName" binding:"required"`
	DotNumber *string `json:"dotNumber"`
	McNumber  *string `json:"mcNumber"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

type DriverInput struct {
	CarrierID    int64   `json:"carrierId" binding:"required"`
	FullName     string  `json:"fullName" binding:"required"`
	LicenseNo    *string `json:"licenseNo"`
	LicenseState *string `json:"licenseState"`
	Phone        *string `json:"phone"`
}
