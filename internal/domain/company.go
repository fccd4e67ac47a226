package domain

// CompanyInfo describes the business operating the storefront.
type CompanyInfo struct {
	Name      string `json:"name"`
	LegalName string `json:"legalName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Email     string `json:"email"`
}

// Company is the storefront operator.
var Company = CompanyInfo{
	Name:      "HeloJet",
	LegalName: "HeloJet Systems LLC",
	Phone:     "888-416-9212",
	Address:   "132 W International Speedway Blvd #44, Daytona Beach, FL 32114",
	Email:     "info@helojet.me",
}
