package company

// CompanyRecord is the display form of one lookup. Missing values are "".
type CompanyRecord struct {
	CUI              string `json:"cui"`
	CompanyName      string `json:"companyName"`
	Status           string `json:"status"`
	FiscalActivity   string `json:"fiscalActivity"`
	LegalForm        string `json:"legalForm"`
	RegistrationDate string `json:"registrationDate"`
	Employees        string `json:"employees"`
	NACECode         string `json:"naceCode"`
	Address          string `json:"address"`
	City             string `json:"city"`
	County           string `json:"county"`
	Turnover         string `json:"turnover"`
	Profit           string `json:"profit"`
	Cost             string `json:"cost"`
	ViewsRemaining   string `json:"viewsRemaining"`
}

type LookupRequest struct {
	CUI string `form:"cui" json:"cui" binding:"required,number"`
}

type LookupResponse struct {
	Company *CompanyRecord `json:"company"`
	Demo    bool           `json:"demo"`
}
