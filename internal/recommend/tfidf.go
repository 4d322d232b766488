// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package recommend

import (
	"math"
	"strings"
	"unicode"
)

// featureVector is a sparse L2-normalized TF-IDF vector. Keys index into
// the vectorizer's fitted vocabulary.
type featureVector map[int]float64

// stopwords filters common English terms from tag text. Tag vocabularies
// are mostly perfumery terms so this only strips connective words.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "in": true, "is": true, "it": true,
	"its": true, "no": true, "not": true, "of": true, "on": true,
	"or": true, "such": true, "that": true, "the": true, "their": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"to": true, "was": true, "were": true, "will": true, "with": true,
}

// tokenize lower-cases text and splits on non-alphanumeric runes,
// dropping single-character tokens and stopwords.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// vectorizer is a TF-IDF vectorizer fitted over one document corpus. The
// vocabulary is scoped to a single model rebuild and never reused.
type vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// fitVectorizer builds the vocabulary and smoothed IDF weights from the
// corpus. idf(t) = ln((1+n)/(1+df(t))) + 1.
func fitVectorizer(docs []string) *vectorizer {
	v := &vectorizer{vocab: make(map[string]int)}

	docFreq := make(map[int]int)
	for _, doc := range docs {
		seen := make(map[int]bool)
		for _, tok := range tokenize(doc) {
			idx, ok := v.vocab[tok]
			if !ok {
				idx = len(v.vocab)
				v.vocab[tok] = idx
			}
			if !seen[idx] {
				seen[idx] = true
				docFreq[idx]++
			}
		}
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(v.vocab))
	for idx, df := range docFreq {
		v.idf[idx] = math.Log((1+n)/(1+float64(df))) + 1
	}
	return v
}

// transform maps a document into the fitted vocabulary space. Terms not
// in the vocabulary are ignored. The result is L2-normalized so cosine
// similarity reduces to a dot product.
func (v *vectorizer) transform(doc string) featureVector {
	counts := make(map[int]float64)
	for _, tok := range tokenize(doc) {
		if idx, ok := v.vocab[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make(featureVector, len(counts))
	var norm float64
	for idx, tf := range counts {
		w := tf * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil
	}
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// cosine returns the cosine similarity of two normalized vectors.
func cosine(a, b featureVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		dot += w * b[idx]
	}
	return dot
}
