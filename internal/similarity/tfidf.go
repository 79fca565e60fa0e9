// Package similarity scores free text against the center names of a dataset
// with a TF-IDF model. It backs the name lookup when no name contains the
// query literally.
//
// The weighting follows the usual vectorizer defaults so that scores are
// stable across implementations:
//   - tokens are runs of two or more word characters
//   - term frequency is the raw count
//   - idf is ln((1+n)/(1+df)) + 1
//   - every row is L2-normalized, so cosine similarity is a dot product
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultThreshold is the minimum similarity, exclusive, for a fuzzy match.
const DefaultThreshold = 0.6

var reToken = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

type term struct {
	id     int
	weight float64
}

// vector is a sparse L2-normalized row sorted by term id.
type vector []term

// Index is an immutable TF-IDF matrix over a list of documents. It is safe
// for concurrent use.
type Index struct {
	vocabulary map[string]int
	idf        []float64
	rows       []vector
}

// NewIndex fits the vocabulary and idf weights on documents and transforms
// each one into a row. Documents are expected to be normalized already.
func NewIndex(documents []string) *Index {
	idx := &Index{
		vocabulary: make(map[string]int),
		rows:       make([]vector, len(documents)),
	}

	tokenized := make([][]string, len(documents))
	var df []int
	for i, doc := range documents {
		tokens := tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[int]struct{}, len(tokens))
		for _, tok := range tokens {
			id, ok := idx.vocabulary[tok]
			if !ok {
				id = len(idx.vocabulary)
				idx.vocabulary[tok] = id
				df = append(df, 0)
			}
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				df[id]++
			}
		}
	}

	n := float64(len(documents))
	idx.idf = make([]float64, len(df))
	for id, d := range df {
		idx.idf[id] = math.Log((1+n)/(1+float64(d))) + 1
	}

	for i, tokens := range tokenized {
		idx.rows[i] = idx.transform(tokens)
	}
	return idx
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int { return len(idx.rows) }

// VocabularySize returns the number of distinct terms seen while fitting.
func (idx *Index) VocabularySize() int { return len(idx.vocabulary) }

// Scores returns the cosine similarity of query to every document, in
// document order. Terms unknown to the index are ignored; a query without
// known terms scores 0 everywhere.
func (idx *Index) Scores(query string) []float64 {
	q := idx.transform(tokenize(query))
	scores := make([]float64, len(idx.rows))
	if len(q) == 0 {
		return scores
	}
	for i, row := range idx.rows {
		scores[i] = dot(q, row)
	}
	return scores
}

// Above returns, in document order, the indices of documents whose
// similarity to query is strictly greater than threshold.
func (idx *Index) Above(query string, threshold float64) []int {
	var out []int
	for i, s := range idx.Scores(query) {
		if s > threshold {
			out = append(out, i)
		}
	}
	return out
}

func (idx *Index) transform(tokens []string) vector {
	counts := make(map[int]int, len(tokens))
	for _, tok := range tokens {
		if id, ok := idx.vocabulary[tok]; ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	v := make(vector, 0, len(counts))
	var norm float64
	for id, c := range counts {
		w := float64(c) * idx.idf[id]
		v = append(v, term{id: id, weight: w})
		norm += w * w
	}
	sort.Slice(v, func(i, j int) bool { return v[i].id < v[j].id })

	norm = math.Sqrt(norm)
	for i := range v {
		v[i].weight /= norm
	}
	return v
}

func dot(a, b vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].id == b[j].id:
			sum += a[i].weight * b[j].weight
			i++
			j++
		case a[i].id < b[j].id:
			i++
		default:
			j++
		}
	}
	return sum
}

func tokenize(text string) []string {
	var out []string
	for _, tok := range reToken.FindAllString(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(tok) >= 2 {
			out = append(out, tok)
		}
	}
	return out
}
