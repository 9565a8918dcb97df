package editor

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownList     = errors.New("unknown list")
)

// ListKind names one of the editable nested lists.
type ListKind string

const (
	Roles     ListKind = "roles"
	Expertise ListKind = "expertise"
	Projects  ListKind = "projects"
	Social    ListKind = "social"
)

// Kinds lists the editable lists in display order.
var Kinds = []ListKind{Roles, Expertise, Projects, Social}

func ParseListKind(s string) (ListKind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, s)
}

// Item is a list entry tagged with a key that stays stable while the draft
// is edited. Keys never leave the draft.
type Item[T any] struct {
	Key   string
	Value T
}

// Draft is the editable copy of a portfolio.
type Draft struct {
	Name       string
	ProfilePic string
	AboutMe    string
	Roles      []Item[string]
	Expertise  []Item[models.Expertise]
	Projects   []Item[models.Project]
	Social     []Item[models.SocialLink]
	Contact    models.Contact
}

func newDraft(p *models.Portfolio) *Draft {
	return &Draft{
		Name:       p.Name,
		ProfilePic: p.ProfilePic,
		AboutMe:    p.AboutMe,
		Roles:      keyed(p.ExpertiseRoles),
		Expertise:  keyed(p.Expertise),
		Projects:   keyed(p.Projects),
		Social:     keyed(p.SocialLinks),
		Contact:    p.Contact,
	}
}

func (d *Draft) clone() *Draft {
	c := *d
	c.Roles = append([]Item[string](nil), d.Roles...)
	c.Expertise = append([]Item[models.Expertise](nil), d.Expertise...)
	c.Projects = append([]Item[models.Project](nil), d.Projects...)
	c.Social = append([]Item[models.SocialLink](nil), d.Social...)
	return &c
}

// Apply returns base with the draft's content in place of its editable fields.
func (d *Draft) Apply(base models.Portfolio) models.Portfolio {
	base.Name = d.Name
	base.ProfilePic = d.ProfilePic
	base.AboutMe = d.AboutMe
	base.ExpertiseRoles = values(d.Roles)
	base.Expertise = values(d.Expertise)
	base.Projects = values(d.Projects)
	base.SocialLinks = values(d.Social)
	base.Contact = d.Contact
	return base
}

func keyed[T any](vs []T) []Item[T] {
	out := make([]Item[T], len(vs))
	for i, v := range vs {
		out[i] = Item[T]{Key: uuid.NewString(), Value: v}
	}
	return out
}

// values strips the keys; the result is never nil so an emptied list is
// sent as [].
func values[T any](items []Item[T]) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out
}

func indexOf[T any](items []Item[T], key string) int {
	for i, it := range items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func keyAt[T any](items []Item[T], i int) (string, error) {
	if i < 0 || i >= len(items) {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return items[i].Key, nil
}

func removeKey[T any](items []Item[T], key string) ([]Item[T], error) {
	i := indexOf(items, key)
	if i < 0 {
		return items, ErrUnknownItem
	}
	return append(items[:i:i], items[i+1:]...), nil
}

func updateKey[T any](items []Item[T], key string, fn func(*T) error) error {
	i := indexOf(items, key)
	if i < 0 {
		return ErrUnknownItem
	}
	v := items[i].Value
	if err := fn(&v); err != nil {
		return err
	}
	items[i].Value = v
	return nil
}

func setRole(v *string, field, value string) error {
	if field != "" && field != "value" && field != "name" {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	*v = value
	return nil
}

func setExpertise(v *models.Expertise, field, value string) error {
	switch field {
	case "name":
		v.Name = value
	case "img":
		v.Img = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func setProject(v *models.Project, field, value string) error {
	switch field {
	case "name":
		v.Name = value
	case "img":
		v.Img = value
	case "description":
		v.Description = value
	case "link":
		v.Link = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func setSocial(v *models.SocialLink, field, value string) error {
	switch field {
	case "name":
		v.Name = value
	case "logo":
		v.Logo = value
	case "link":
		v.Link = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func setContact(c *models.Contact, field, value string) error {
	switch field {
	case "email":
		c.Email = value
	case "phone":
		c.Phone = value
	case "address":
		c.Address = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// imageField is the field of a list item that holds its image URL.
func imageField(kind ListKind) (string, error) {
	switch kind {
	case Expertise, Projects:
		return "img", nil
	case Social:
		return "logo", nil
	default:
		return "", fmt.Errorf("%w: %s items have no image", ErrUnknownField, kind)
	}
}
