package company

import "go-firme/internal/listafirme"

// Normalize maps a provider payload to a CompanyRecord. It returns nil for a
// nil payload, a payload carrying an error, or one without TaxCode.
//
// Employees, Turnover and Profit are taken from the first Balance entry when
// it has them, and from the top level otherwise.
func Normalize(raw listafirme.RawResponse) *CompanyRecord {
	if raw == nil {
		return nil
	}
	if _, failed := raw.ErrorText(); failed {
		return nil
	}
	taxCode, ok := raw["TaxCode"]
	if !ok || taxCode == nil {
		return nil
	}

	latest := latestBalance(raw)

	return &CompanyRecord{
		CUI:              stringify(taxCode),
		CompanyName:      stringify(raw["Name"]),
		Status:           stringify(raw["Status"]),
		FiscalActivity:   stringify(raw["FiscalActivity"]),
		LegalForm:        stringify(raw["LegalForm"]),
		RegistrationDate: FormatDate(raw["RegistrationDate"]),
		Employees:        stringify(pick(latest, "Employees", raw, "Employees")),
		NACECode:         FormatNACE(raw["NACE"]),
		Address:          stringify(raw["Address"]),
		City:             stringify(raw["City"]),
		County:           stringify(raw["County"]),
		Turnover:         FormatCurrency(pick(latest, "Turnover", raw, "Turnover")),
		Profit:           FormatCurrency(pick(latest, "NetProfit", raw, "Profit", "NetProfit")),
		Cost:             stringify(raw["cost"]),
		ViewsRemaining:   stringify(raw["views"]),
	}
}

// latestBalance returns the first Balance entry, or nil.
func latestBalance(raw listafirme.RawResponse) map[string]any {
	list, ok := raw["Balance"].([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	first, _ := list[0].(map[string]any)
	return first
}

// pick returns balance[key] when set, else the first set top-level key.
func pick(balance map[string]any, key string, raw listafirme.RawResponse, fallbacks ...string) any {
	if v, ok := balance[key]; ok && v != nil {
		return v
	}
	for _, k := range fallbacks {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
