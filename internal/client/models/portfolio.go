// Package models defines the portfolio document exchanged with the portfolio
// service, its partial-update form, and the client-side notification type.
package models

import "slices"

// Expertise is one skill tile.
type Expertise struct {
	Name string `json:"name"`
	Img  string `json:"img"`
}

type Project struct {
	Name        string `json:"name"`
	Img         string `json:"img"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type SocialLink struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
	Link string `json:"link"`
}

type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Portfolio is the record identified by ID. Nested lists are ordered for
// display and their items carry no identity of their own.
type Portfolio struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	ProfilePic     string       `json:"profile_pic"`
	AboutMe        string       `json:"about_me"`
	ExpertiseRoles []string     `json:"expertise_roles"`
	Expertise      []Expertise  `json:"expertise"`
	Projects       []Project    `json:"projects"`
	SocialLinks    []SocialLink `json:"social_links"`
	Contact        Contact      `json:"contact"`
	// Timestamps are kept as sent; the client never interprets them.
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Clone returns a deep copy; the nested slices of the copy share no backing
// arrays with p.
func (p *Portfolio) Clone() *Portfolio {
	if p == nil {
		return nil
	}
	c := *p
	c.ExpertiseRoles = slices.Clone(p.ExpertiseRoles)
	c.Expertise = slices.Clone(p.Expertise)
	c.Projects = slices.Clone(p.Projects)
	c.SocialLinks = slices.Clone(p.SocialLinks)
	return &c
}
