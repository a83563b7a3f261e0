package listafirme

import (
	"fmt"
)

// RawResponse is the decoded provider payload, left untyped.
type RawResponse map[string]any

// ErrorText reports the provider's "error" field. Null and "" do not count.
func (r RawResponse) ErrorText() (string, bool) {
	v, ok := r["error"]
	if !ok || v == nil {
		return "", false
	}
	s := fmt.Sprint(v)
	if s == "" {
		return "", false
	}
	return s, true
}

// requestedFields are the fields info-v2 is asked to return.
var requestedFields = []string{
	"TaxCode",
	"Name",
	"Status",
	"FiscalActivity",
	"LegalForm",
	"RegistrationDate",
	"Employees",
	"NACE",
	"Address",
	"City",
	"County",
	"Turnover",
	"Profit",
	"Balance",
}

// BuildPayload returns the field request for cui. Every field is an empty
// placeholder except TaxCode, and NACE which carries the "info" modifier.
func BuildPayload(cui string) map[string]string {
	payload := make(map[string]string, len(requestedFields))
	for _, f := range requestedFields {
		payload[f] = ""
	}
	payload["TaxCode"] = cui
	payload["NACE"] = "info"
	return payload
}

// RedactKey keeps the first 6 and last 3 characters of key. Keys too short
// to keep anything hidden are fully masked.
func RedactKey(key string) string {
	if len(key) <= 9 {
		return "***"
	}
	return key[:6] + "..." + key[len(key)-3:]
}
