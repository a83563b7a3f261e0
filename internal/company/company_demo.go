package company

import "go-firme/internal/listafirme"

// demoPayload mirrors the shape of an info-v2 response.
func demoPayload(cui string) listafirme.RawResponse {
	return listafirme.RawResponse{
		"TaxCode":          cui,
		"Name":             "EXEMPLU DEMO SRL",
		"Status":           "functiune",
		"FiscalActivity":   "ACTIVA",
		"LegalForm":        "SRL",
		"RegistrationDate": "2002/8/26",
		"NACE": map[string]any{
			"code":        "6201",
			"description": "Activitati de realizare a soft-ului la comanda",
		},
		"Address":   "Str. Exemplului nr. 1",
		"City":      "Bucuresti",
		"County":    "Bucuresti",
		"Employees": "12",
		"Turnover":  "2500000",
		"Profit":    "310000",
		"Balance": []any{
			map[string]any{"Year": "2023", "Employees": "15", "Turnover": "3708712", "NetProfit": "412507"},
			map[string]any{"Year": "2022", "Employees": "12", "Turnover": "2500000", "NetProfit": "310000"},
		},
		"cost":  "0",
		"views": "demo",
	}
}

// DemoRecord is returned for the test CUI while demo mode is on.
func DemoRecord(cui string) *CompanyRecord {
	return Normalize(demoPayload(cui))
}
