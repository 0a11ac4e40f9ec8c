package products

import (
	"regexp"
	"strings"
)

// HandlePattern is the accepted form of product handles.
var HandlePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CreateProduct is the body of POST /products.
type CreateProduct struct {
	Title         string             `json:"title" validate:"required,max=255"`
	Subtitle      *string            `json:"subtitle" validate:"omitempty,max=255"`
	Description   *string            `json:"description"`
	Handle        string             `json:"handle" validate:"required,max=255,handle"`
	Status        Status             `json:"status" validate:"omitempty,oneof=draft proposed"`
	Thumbnail     *string            `json:"thumbnail" validate:"omitempty,url"`
	Options       []CreateOption     `json:"options" validate:"dive"`
	Variants      []CreateVariant    `json:"variants" validate:"dive"`
	SalesChannels []SalesChannelLink `json:"sales_channels" validate:"dive"`
}

// SalesChannelLink references a sales channel by id.
type SalesChannelLink struct {
	ID string `json:"id" validate:"required"`
}

func (c *CreateProduct) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Handle = strings.TrimSpace(c.Handle)
	if c.Handle == "" {
		c.Handle = Slugify(c.Title)
	}
	if c.Status == "" {
		c.Status = StatusDraft
	}
	for i := range c.Options {
		c.Options[i].Normalize()
	}
	for i := range c.Variants {
		c.Variants[i].Normalize()
	}
}

// UpdateProduct is the body of POST /products/{id}. Absent fields are unchanged.
type UpdateProduct struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Subtitle    *string `json:"subtitle" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Handle      *string `json:"handle" validate:"omitempty,max=255,handle"`
	Status      *Status `json:"status" validate:"omitempty,oneof=draft proposed"`
	Thumbnail   *string `json:"thumbnail" validate:"omitempty,url"`
}

func (u *UpdateProduct) Normalize() {
	trimPtr(u.Title)
	trimPtr(u.Handle)
}

// AssignBrand is the body of POST /products/{id}/brand.
type AssignBrand struct {
	BrandName string `json:"brand_name" validate:"required,max=255"`
}

func (a *AssignBrand) Normalize() {
	a.BrandName = strings.TrimSpace(a.BrandName)
}

// UpdateStatus is the body of POST /products/{id}/status.
type UpdateStatus struct {
	Status Status `json:"status" validate:"required,oneof=draft proposed published"`
}

// CreateVariant is the body of POST /products/{id}/variants.
type CreateVariant struct {
	Title   string            `json:"title" validate:"required,max=255"`
	SKU     *string           `json:"sku" validate:"omitempty,min=1,max=64"`
	Options map[string]string `json:"options"`
	Prices  []Price           `json:"prices" validate:"dive"`
}

func (c *CreateVariant) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	trimPtr(c.SKU)
	if c.Options == nil {
		c.Options = map[string]string{}
	}
	if c.Prices == nil {
		c.Prices = []Price{}
	}
}

// UpdateVariant is the body of POST /products/{id}/variants/{variant_id}.
type UpdateVariant struct {
	Title   *string           `json:"title" validate:"omitempty,min=1,max=255"`
	SKU     *string           `json:"sku" validate:"omitempty,min=1,max=64"`
	Options map[string]string `json:"options"`
	Prices  []Price           `json:"prices" validate:"omitempty,dive"`
}

func (u *UpdateVariant) Normalize() {
	trimPtr(u.Title)
	trimPtr(u.SKU)
}

// CreateOption is the body of POST /products/{id}/options.
type CreateOption struct {
	Title  string   `json:"title" validate:"required,max=255"`
	Values []string `json:"values" validate:"required,min=1,dive,required"`
}

func (c *CreateOption) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Values = dedupe(c.Values)
}

// UpdateOption is the body of POST /products/{id}/options/{option_id}.
type UpdateOption struct {
	Title  *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Values []string `json:"values" validate:"omitempty,min=1,dive,required"`
}

func (u *UpdateOption) Normalize() {
	trimPtr(u.Title)
	if u.Values != nil {
		u.Values = dedupe(u.Values)
	}
}

// Params are the query parameters accepted by product routes.
type Params struct {
	ID             []string `query:"id"`
	Q              string   `query:"q"`
	Title          string   `query:"title"`
	Handle         []string `query:"handle"`
	Status         []string `query:"status" validate:"dive,oneof=draft proposed published rejected"`
	SalesChannelID []string `query:"sales_channel_id"`
	PriceListID    []string `query:"price_list_id"`
}

// Slugify derives a handle from a title: lowercase ASCII letters and digits
// separated by single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		case b.Len() > 0 && !hyphen:
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
