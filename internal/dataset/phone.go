package dataset

import (
	"regexp"
	"strings"
)

// DefaultAreaCode is assumed for 8-digit numbers.
const DefaultAreaCode = "31"

var reNotPhone = regexp.MustCompile(`[^\d,]`)

// FormatPhones turns a comma separated list of numbers into display form:
// 8 digits get the default area code, 10 and 11 digits are split into area
// code and subscriber number, anything else is kept as bare digits.
// Multiple numbers are joined with " / ".
func FormatPhones(raw string) string {
	cleaned := reNotPhone.ReplaceAllString(raw, "")
	if cleaned == "" {
		return ""
	}

	var formatted []string
	for _, num := range strings.Split(cleaned, ",") {
		if num == "" {
			continue
		}
		formatted = append(formatted, formatPhone(num))
	}
	return strings.Join(formatted, " / ")
}

func formatPhone(num string) string {
	switch len(num) {
	case 8:
		return "(" + DefaultAreaCode + ") " + num[:4] + "-" + num[4:]
	case 10:
		return "(" + num[:2] + ") " + num[2:6] + "-" + num[6:]
	case 11:
		return "(" + num[:2] + ") " + num[2:7] + "-" + num[7:]
	default:
		return num
	}
}
