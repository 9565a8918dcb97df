package models

// PortfolioUpdate is the body of a partial update. A nil field is absent from
// the JSON and must be left untouched by the server; a non-nil pointer to an
// empty slice clears the list.
type PortfolioUpdate struct {
	Name           *string       `json:"name,omitempty"`
	ProfilePic     *string       `json:"profile_pic,omitempty"`
	AboutMe        *string       `json:"about_me,omitempty"`
	ExpertiseRoles *[]string     `json:"expertise_roles,omitempty"`
	Expertise      *[]Expertise  `json:"expertise,omitempty"`
	Projects       *[]Project    `json:"projects,omitempty"`
	SocialLinks    *[]SocialLink `json:"social_links,omitempty"`
	Contact        *Contact      `json:"contact,omitempty"`
}

// Fields lists the JSON names of the present fields, in declaration order.
func (u PortfolioUpdate) Fields() []string {
	var f []string
	if u.Name != nil {
		f = append(f, "name")
	}
	if u.ProfilePic != nil {
		f = append(f, "profile_pic")
	}
	if u.AboutMe != nil {
		f = append(f, "about_me")
	}
	if u.ExpertiseRoles != nil {
		f = append(f, "expertise_roles")
	}
	if u.Expertise != nil {
		f = append(f, "expertise")
	}
	if u.Projects != nil {
		f = append(f, "projects")
	}
	if u.SocialLinks != nil {
		f = append(f, "social_links")
	}
	if u.Contact != nil {
		f = append(f, "contact")
	}
	return f
}

func (u PortfolioUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}
