package models

import (
	"bytes"
	"encoding/json"
)

// Category is one clothing group of an outfit plan together with the query used to shop for it.
type Category struct {
	Name        string `json:"name" jsonschema:"required,minLength=1"`
	Icon        string `json:"icon"`
	SearchQuery string `json:"searchQuery" jsonschema:"required,minLength=1"`
	PriceRange  string `json:"priceRange"`
}

// OutfitPlan is the structured breakdown of a free-text outfit description.
type OutfitPlan struct {
	Summary    string     `json:"summary" jsonschema:"required"`
	Categories []Category `json:"categories" jsonschema:"required,minItems=1"`
}

// CategoryResult is a category enriched with the products found for it.
// Category fields are flattened into the same JSON object.
type CategoryResult struct {
	Category
	Products []Product `json:"products"`
}

// SearchResults maps category names to their results.
// Iteration and JSON encoding follow insertion order; setting an existing
// name replaces the value but keeps its original position.
type SearchResults struct {
	names   []string
	results map[string]CategoryResult
}

// NewSearchResults creates an empty result set
func NewSearchResults() *SearchResults {
	return &SearchResults{
		results: make(map[string]CategoryResult),
	}
}

// Set stores the result under its category name
func (r *SearchResults) Set(result CategoryResult) {
	if r.results == nil {
		r.results = make(map[string]CategoryResult)
	}
	if _, exists := r.results[result.Name]; !exists {
		r.names = append(r.names, result.Name)
	}
	r.results[result.Name] = result
}

// Get returns the result stored for a category name
func (r *SearchResults) Get(name string) (CategoryResult, bool) {
	result, ok := r.results[name]
	return result, ok
}

// Len returns the number of distinct category names
func (r *SearchResults) Len() int {
	return len(r.names)
}

// Names returns category names in insertion order
func (r *SearchResults) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Ordered returns the results in insertion order
func (r *SearchResults) Ordered() []CategoryResult {
	out := make([]CategoryResult, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.results[name])
	}
	return out
}

func (r *SearchResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.results[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *SearchResults) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}

	fresh := NewSearchResults()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var result CategoryResult
		if err := dec.Decode(&result); err != nil {
			return err
		}
		// the object key wins over the embedded name
		if _, exists := fresh.results[name]; !exists {
			fresh.names = append(fresh.names, name)
		}
		fresh.results[name] = result
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = *fresh
	return nil
}
