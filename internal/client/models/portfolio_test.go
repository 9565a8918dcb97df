package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePortfolioJSON = `{
  "id": "abc123",
  "name": "Ada Lovelace",
  "profile_pic": "https://img.example/ada.png",
  "about_me": "Analyst.",
  "expertise_roles": ["Engineer", "Writer"],
  "expertise": [{"name": "Go", "img": "https://img.example/go.png"}],
  "projects": [{"name": "Engine", "img": "", "description": "Analytical", "link": "https://example.org"}],
  "social_links": [{"name": "GitHub", "logo": "gh.png", "link": "https://github.com/ada"}],
  "contact": {"email": "ada@example.org", "phone": "+44", "address": "London"},
  "createdAt": "2024-01-02T03:04:05.000Z",
  "updatedAt": "2024-02-02T03:04:05.000Z"
}`

func TestPortfolio_DecodesServiceJSON(t *testing.T) {
	var p Portfolio
	require.NoError(t, json.Unmarshal([]byte(samplePortfolioJSON), &p))

	assert.Equal(t, "abc123", p.ID)
	assert.Equal(t, []string{"Engineer", "Writer"}, p.ExpertiseRoles)
	assert.Equal(t, "Go", p.Expertise[0].Name)
	assert.Equal(t, "Analytical", p.Projects[0].Description)
	assert.Equal(t, "gh.png", p.SocialLinks[0].Logo)
	assert.Equal(t, "London", p.Contact.Address)
	assert.Equal(t, "2024-01-02T03:04:05.000Z", p.CreatedAt)
}

func TestPortfolio_DecodesLooseTimestamps(t *testing.T) {
	var p Portfolio
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","name":"N","createdAt":"","updatedAt":"yesterday"}`), &p))
	assert.Equal(t, "", p.CreatedAt)
	assert.Equal(t, "yesterday", p.UpdatedAt)
}

func TestPortfolio_CloneIsDeep(t *testing.T) {
	var p Portfolio
	require.NoError(t, json.Unmarshal([]byte(samplePortfolioJSON), &p))

	c := p.Clone()
	c.Name = "changed"
	c.ExpertiseRoles[0] = "changed"
	c.Expertise[0].Name = "changed"
	c.Projects[0].Name = "changed"
	c.SocialLinks[0].Name = "changed"
	c.Contact.Email = "changed"

	assert.Equal(t, "Ada Lovelace", p.Name)
	assert.Equal(t, "Engineer", p.ExpertiseRoles[0])
	assert.Equal(t, "Go", p.Expertise[0].Name)
	assert.Equal(t, "Engine", p.Projects[0].Name)
	assert.Equal(t, "GitHub", p.SocialLinks[0].Name)
	assert.Equal(t, "ada@example.org", p.Contact.Email)

	var nilP *Portfolio
	assert.Nil(t, nilP.Clone())
}

func TestPortfolioUpdate_OmitsAbsentFields(t *testing.T) {
	name := "Grace"
	u := PortfolioUpdate{Name: &name}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Grace"}`, string(b))
	assert.Equal(t, []string{"name"}, u.Fields())
	assert.False(t, u.IsEmpty())
}

func TestPortfolioUpdate_EmptyListIsSent(t *testing.T) {
	roles := []string{}
	u := PortfolioUpdate{ExpertiseRoles: &roles}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"expertise_roles":[]}`, string(b))
}

func TestPortfolioUpdate_Empty(t *testing.T) {
	assert.True(t, PortfolioUpdate{}.IsEmpty())
	b, err := json.Marshal(PortfolioUpdate{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}
