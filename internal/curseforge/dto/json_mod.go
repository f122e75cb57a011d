package dto

import "github.com/handiism/modfetch/internal/model"

// ModResponse is the envelope returned by GET /mods/{modId}.
type ModResponse struct {
	Data *JSONMod `json:"data"`
}

// JSONMod represents a project from the catalog.
type JSONMod struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	Slug  string       `json:"slug"`
	Links JSONModLinks `json:"links"`

	// AllowModDistribution is null for some older projects; null decodes
	// to false and is treated as restricted.
	AllowModDistribution bool `json:"allowModDistribution"`
}

// JSONModLinks contains the project's external links.
type JSONModLinks struct {
	WebsiteURL string `json:"websiteUrl"`
}

// ToProjectInfo converts JSONMod to a model.ProjectInfo.
func (m *JSONMod) ToProjectInfo() model.ProjectInfo {
	return model.ProjectInfo{
		Name:                 m.Name,
		WebsiteURL:           m.Links.WebsiteURL,
		AllowModDistribution: m.AllowModDistribution,
	}
}
