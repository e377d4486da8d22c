// Package tfidf fits a term-frequency / inverse-document-frequency vectorizer
// over a small text corpus and produces L2-normalised sparse vectors.
//
// Tokens are runs of two or more letters, digits or underscores, lowercased,
// with English stop words removed. IDF is smoothed: ln((1+n)/(1+df)) + 1.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxFeatures caps the vocabulary when no limit is configured.
const DefaultMaxFeatures = 5000

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vector is a sparse vector with strictly increasing indices.
type Vector struct {
	Idx []int     `json:"i"`
	Val []float64 `json:"v"`
}

// Model is a fitted vectorizer.
type Model struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// Tokenize lowercases text and splits it into non-stop-word tokens.
func Tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := stopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Fit learns the vocabulary and IDF weights. The vocabulary keeps the
// maxFeatures terms with the highest corpus frequency, ties broken alphabetically.
// maxFeatures <= 0 keeps every term.
func Fit(docs []string, maxFeatures int) *Model {
	counts := make(map[string]int)
	df := make(map[string]int)
	for _, d := range docs {
		seen := make(map[string]struct{})
		for _, t := range Tokenize(d) {
			counts[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	// Column order is alphabetical, independent of the frequency cut.
	sort.Strings(terms)

	n := float64(len(docs))
	m := &Model{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}
	for i, t := range terms {
		m.Vocabulary[t] = i
		m.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return m
}

// Size returns the vocabulary size.
func (m *Model) Size() int {
	return len(m.IDF)
}

// Transform vectorises text with the fitted vocabulary. Unknown terms are
// ignored; a text with no known terms yields the zero vector.
func (m *Model) Transform(text string) Vector {
	tf := make(map[int]float64)
	for _, t := range Tokenize(text) {
		if i, ok := m.Vocabulary[t]; ok {
			tf[i]++
		}
	}

	v := Vector{Idx: make([]int, 0, len(tf)), Val: make([]float64, 0, len(tf))}
	for i := range tf {
		v.Idx = append(v.Idx, i)
	}
	sort.Ints(v.Idx)

	var norm float64
	for _, i := range v.Idx {
		w := tf[i] * m.IDF[i]
		v.Val = append(v.Val, w)
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for k := range v.Val {
			v.Val[k] /= norm
		}
	}
	return v
}

// TransformAll vectorises every document.
func (m *Model) TransformAll(docs []string) []Vector {
	out := make([]Vector, len(docs))
	for i, d := range docs {
		out[i] = m.Transform(d)
	}
	return out
}

// Cosine returns the cosine similarity of two L2-normalised vectors.
func Cosine(a, b Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Idx) && j < len(b.Idx) {
		switch {
		case a.Idx[i] == b.Idx[j]:
			dot += a.Val[i] * b.Val[j]
			i++
			j++
		case a.Idx[i] < b.Idx[j]:
			i++
		default:
			j++
		}
	}
	return dot
}
