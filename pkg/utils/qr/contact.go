package qr

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	DefaultContactTitle = "Contact Agent"
	NoContactMessage    = "No contact methods were provided."
)

// Contact is the set of channels shown on the contact page.
type Contact struct {
	Name      string `json:"name" query:"name"`
	Phone     string `json:"phone" query:"phone"`
	Email     string `json:"email" query:"email"`
	Facebook  string `json:"facebook" query:"facebook"`
	Telegram  string `json:"telegram" query:"telegram"`
	Instagram string `json:"instagram" query:"instagram"`
	Tiktok    string `json:"tiktok" query:"tiktok"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

func (c Contact) trimmed() Contact {
	return Contact{
		Name:      strings.TrimSpace(c.Name),
		Phone:     strings.TrimSpace(c.Phone),
		Email:     strings.TrimSpace(c.Email),
		Facebook:  strings.TrimSpace(c.Facebook),
		Telegram:  strings.TrimSpace(c.Telegram),
		Instagram: strings.TrimSpace(c.Instagram),
		Tiktok:    strings.TrimSpace(c.Tiktok),
	}
}

// Title is the agent name, or a generic heading when it is blank.
func (c Contact) Title() string {
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	return DefaultContactTitle
}

// Links lists call and mail links first, then the social profiles as given.
func (c Contact) Links() []Link {
	c = c.trimmed()
	var out []Link
	if c.Phone != "" {
		out = append(out, Link{Label: "Call: " + c.Phone, Href: "tel:" + c.Phone})
	}
	if c.Email != "" {
		out = append(out, Link{Label: "Email: " + c.Email, Href: "mailto:" + c.Email})
	}
	for _, s := range []Link{
		{Label: "Telegram", Href: c.Telegram},
		{Label: "Facebook", Href: c.Facebook},
		{Label: "Instagram", Href: c.Instagram},
		{Label: "TikTok", Href: c.Tiktok},
	} {
		if s.Href != "" {
			out = append(out, s)
		}
	}
	return out
}

// URL appends the non-empty channels of c to the contact page address base.
func (c Contact) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid contact page url: %w", err)
	}

	c = c.trimmed()
	q := u.Query()
	for _, kv := range [][2]string{
		{"name", c.Name},
		{"phone", c.Phone},
		{"email", c.Email},
		{"facebook", c.Facebook},
		{"telegram", c.Telegram},
		{"instagram", c.Instagram},
		{"tiktok", c.Tiktok},
	} {
		if kv[1] != "" {
			q.Set(kv[0], kv[1])
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
