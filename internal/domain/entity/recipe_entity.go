package entity

import "time"

// Recipe is a shared recipe record. Any authenticated user may modify it.
type Recipe struct {
	ID           string
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalize guarantees the list fields are never nil so they encode as [].
func (r *Recipe) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
}
