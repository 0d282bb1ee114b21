// Package factcheck extracts factual claims from document text and scores
// them through a pluggable checker. The default checker produces mock
// results standing in for an external verification service.
package factcheck

import "regexp"

// NoFactsFound is the sentinel claim returned when no category matches,
// so callers can rely on a non-empty claim list.
const NoFactsFound = "Keine spezifischen Fakten zur Überprüfung gefunden"

// Claim categories, applied in this order.
var (
	datePattern    = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`)
	percentPattern = regexp.MustCompile(`\d+[,.]?\d*\s*%`)
	amountPattern  = regexp.MustCompile(`\d+[,.]?\d*\s*€`)
	legalPattern   = regexp.MustCompile(`§\s*\d+`)
)

// ExtractClaims pulls checkable statements out of plain document text:
// German-format dates, percentages, Euro amounts and statute references,
// concatenated in that category order.
func ExtractClaims(text string) []string {
	var claims []string
	for _, m := range datePattern.FindAllString(text, -1) {
		claims = append(claims, "Datum: "+m)
	}
	for _, m := range percentPattern.FindAllString(text, -1) {
		claims = append(claims, "Prozentsatz: "+m)
	}
	for _, m := range amountPattern.FindAllString(text, -1) {
		claims = append(claims, "Betrag: "+m)
	}
	for _, m := range legalPattern.FindAllString(text, -1) {
		claims = append(claims, "Rechtliche Referenz: "+m)
	}

	if len(claims) == 0 {
		return []string{NoFactsFound}
	}
	return claims
}
