package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MissingNumber is rendered when a record has no building number.
const MissingNumber = "s/n"

// streetTypes expands the street type codes used by the published dataset.
// Unknown codes are rendered unchanged.
var streetTypes = map[string]string{
	"AVE": "Avenida",
	"R":   "Rua",
	"TV":  "Travessa",
	"PCA": "Praça",
	"AL":  "Alameda",
	"ROD": "Rodovia",
}

// FormatAddress renders "{type} {street}, {number} - {neighborhood}".
func FormatAddress(streetType, streetName, number, neighborhood string) string {
	if full, ok := streetTypes[strings.ToUpper(streetType)]; ok {
		streetType = full
	}
	if number == "" {
		number = MissingNumber
	}

	// A Caser keeps state between calls, so each call gets its own.
	caser := cases.Title(language.BrazilianPortuguese)
	street := strings.TrimSpace(streetType + " " + caser.String(streetName))
	return street + ", " + number + " - " + caser.String(neighborhood)
}
