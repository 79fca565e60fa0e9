package normalizer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// maxPasses bounds the fixed-point loop in Normalize. Two passes are enough
// for any input the rule tables can produce; the extra ones are headroom.
const maxPasses = 4

var reSpaces = regexp.MustCompile(`\s+`)

// TextNormalizer rewrites free text into the matching form shared by user
// queries and dataset fields. It holds only compiled, read-only state and is
// safe for concurrent use.
type TextNormalizer struct {
	rules *RulesConfig

	rePunctuation *regexp.Regexp

	// Step 2: administrative abbreviations
	reAdmin  *regexp.Regexp
	adminMap map[string]string

	// Step 3: street type abbreviations
	reStreet  *regexp.Regexp
	streetMap map[string]string

	// Step 4: health center synonyms
	reVariant *regexp.Regexp
	canonical string
}

// NewTextNormalizer compiles the rule tables into whole-token patterns.
func NewTextNormalizer(rules *RulesConfig) *TextNormalizer {
	tn := &TextNormalizer{
		rules:         rules,
		rePunctuation: regexp.MustCompile(`[^\p{L}\p{N}_\s]+`),
		adminMap:      foldKeys(rules.AdminAbbreviations),
		streetMap:     foldKeys(rules.StreetAbbreviations),
		canonical:     Fold(rules.CanonicalCenter),
	}
	tn.reAdmin = wordAlternation(mapKeys(tn.adminMap))
	tn.reStreet = wordAlternation(mapKeys(tn.streetMap))

	// Variants are compared against text that already went through steps
	// 1-3, so they are prepared the same way ("ubs usf" becomes
	// "unidade basica de saude usf").
	seen := map[string]struct{}{tn.canonical: {}}
	variants := []string{tn.canonical}
	for _, v := range rules.HealthCenterVariants {
		prepared := tn.expand(Fold(v))
		if prepared == "" {
			continue
		}
		if _, ok := seen[prepared]; ok {
			continue
		}
		seen[prepared] = struct{}{}
		variants = append(variants, prepared)
	}
	tn.reVariant = wordAlternation(variants)

	return tn
}

// NewDefaultTextNormalizer builds a normalizer from the embedded rules.
func NewDefaultTextNormalizer() (*TextNormalizer, error) {
	rules, err := LoadRulesConfig()
	if err != nil {
		return nil, err
	}
	return NewTextNormalizer(rules), nil
}

// Rules returns the tables the normalizer was built from.
func (tn *TextNormalizer) Rules() *RulesConfig {
	return tn.rules
}

// Canonical returns the phrase every health center synonym collapses into.
func (tn *TextNormalizer) Canonical() string {
	return tn.canonical
}

// Normalize returns the matching form of text. The pass is repeated until
// its output is stable because punctuation removal may fuse tokens into a
// new abbreviation ("a.v" -> "av"). Normalize(Normalize(x)) == Normalize(x).
func (tn *TextNormalizer) Normalize(text string) string {
	out := tn.pass(text)
	for i := 1; i < maxPasses; i++ {
		next := tn.pass(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

// Tokens splits the normalized text into words.
func (tn *TextNormalizer) Tokens(text string) []string {
	return strings.Fields(tn.Normalize(text))
}

func (tn *TextNormalizer) pass(s string) string {
	// 1. lower + fold diacritics
	s = Fold(s)
	// 2-3. abbreviations
	s = tn.expand(s)
	// 4. synonyms of "health center"
	if tn.reVariant != nil {
		s = tn.reVariant.ReplaceAllLiteralString(s, tn.canonical)
	}
	// 5. punctuation and whitespace
	s = tn.rePunctuation.ReplaceAllString(s, "")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

func (tn *TextNormalizer) expand(s string) string {
	s = replaceTokens(tn.reAdmin, tn.adminMap, s)
	return replaceTokens(tn.reStreet, tn.streetMap, s)
}

// Fold lowercases s, transliterates it to ASCII and collapses whitespace.
func Fold(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

func replaceTokens(re *regexp.Regexp, table map[string]string, s string) string {
	if re == nil {
		return s
	}
	return re.ReplaceAllStringFunc(s, func(tok string) string {
		if full, ok := table[tok]; ok {
			return full
		}
		return tok
	})
}

// wordAlternation compiles \b(?:a|b|...)\b with longer alternatives first so
// that leftmost-first matching prefers the longest phrase at a position.
func wordAlternation(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func foldKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if key := Fold(k); key != "" {
			out[key] = strings.ToLower(v)
		}
	}
	return out
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
