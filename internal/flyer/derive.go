package flyer

import (
	"strings"

	"flyer_builder/internal/model"
	"flyer_builder/pkg/utils/format"
)

const (
	CurrencySymbol     = "$"
	FallbackTitle      = "New Property Listing"
	FallbackTitleDream = "Dream Home"
	FallbackAddress    = "Address not provided"
	FallbackAgent      = "Agent"
	FallbackContact    = "Add contact info"
	MaxFeatures        = 6
)

var fillerFeatures = []string{"Living Area", "Dining Area", "Kitchen"}

type StatChip struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type ContactItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Derived holds the display values shared by every template.
type Derived struct {
	Title       string        `json:"title"`
	Address     string        `json:"address"`
	Price       string        `json:"price"`
	Type        string        `json:"type"`
	Stats       []StatChip    `json:"stats"`
	AgentName   string        `json:"agentName"`
	AgentPhoto  string        `json:"agentPhoto"`
	AgentQRCode string        `json:"agentQrCode"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Socials     []ContactItem `json:"socials"`
	Contacts    []ContactItem `json:"contacts"`
	Description string        `json:"description"`
	Features    []string      `json:"features"`
}

// HasContact reports whether any contact channel is filled in.
func (d Derived) HasContact() bool { return len(d.Contacts) > 0 }

// Derive resolves rec into display values. Missing or malformed optional data falls
// back to placeholder text; it never fails.
func Derive(rec model.PropertyRecord, titleFallback string) Derived {
	d := Derived{
		Title:       orDefault(rec.PropertyTitle, titleFallback),
		Address:     orDefault(rec.Address, FallbackAddress),
		Price:       format.Price(rec.Price, CurrencySymbol),
		Type:        strings.ToUpper(strings.TrimSpace(rec.PropertyType)),
		AgentName:   orDefault(rec.AgentName, FallbackAgent),
		Phone:       strings.TrimSpace(rec.AgentPhone),
		Email:       strings.TrimSpace(rec.AgentEmail),
		Description: strings.TrimSpace(rec.Description),
	}

	if rec.AgentPhoto != nil {
		d.AgentPhoto = rec.AgentPhoto.Preview
	}
	if rec.AgentQRCode != nil {
		d.AgentQRCode = rec.AgentQRCode.Preview
	}

	d.Stats = statChips(rec)

	for _, s := range []ContactItem{
		{Key: "facebook", Value: rec.AgentFacebook},
		{Key: "telegram", Value: rec.AgentTelegram},
		{Key: "instagram", Value: rec.AgentInstagram},
		{Key: "tiktok", Value: rec.AgentTiktok},
	} {
		if v := strings.TrimSpace(s.Value); v != "" {
			d.Socials = append(d.Socials, ContactItem{Key: s.Key, Value: v})
		}
	}

	if d.Phone != "" {
		d.Contacts = append(d.Contacts, ContactItem{Key: "phone", Value: d.Phone})
	}
	if d.Email != "" {
		d.Contacts = append(d.Contacts, ContactItem{Key: "email", Value: d.Email})
	}
	d.Contacts = append(d.Contacts, d.Socials...)

	d.Features = features(rec)
	return d
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

func plural(n float64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func statChips(rec model.PropertyRecord) []StatChip {
	var chips []StatChip
	if v, ok := format.ParseNumber(rec.Bedrooms); ok {
		chips = append(chips, StatChip{Key: "bedrooms", Value: v, Label: format.Number(v) + " " + plural(v, "Bed", "Beds")})
	}
	if v, ok := format.ParseNumber(rec.Bathrooms); ok {
		chips = append(chips, StatChip{Key: "bathrooms", Value: v, Label: format.Number(v) + " " + plural(v, "Bath", "Baths")})
	}
	if v, ok := format.ParseNumber(rec.Size); ok {
		chips = append(chips, StatChip{Key: "size", Value: v, Label: format.Number(v) + " sqm"})
	}
	return chips
}

// features builds the Minimalistic feature list: stats and type first, then generic
// fillers in fixed order until MaxFeatures is reached.
func features(rec model.PropertyRecord) []string {
	var out []string
	if v, ok := format.ParseNumber(rec.Bedrooms); ok {
		out = append(out, format.Number(v)+" "+plural(v, "Bed Room", "Bed Rooms"))
	}
	if v, ok := format.ParseNumber(rec.Bathrooms); ok {
		out = append(out, format.Number(v)+" "+plural(v, "Bath Room", "Bath Rooms"))
	}
	if v, ok := format.ParseNumber(rec.Size); ok {
		out = append(out, format.Number(v)+" sqm")
	}
	if t := strings.TrimSpace(rec.PropertyType); t != "" {
		out = append(out, t)
	}

	for _, f := range fillerFeatures {
		if len(out) >= MaxFeatures {
			break
		}
		out = append(out, f)
	}
	if len(out) > MaxFeatures {
		out = out[:MaxFeatures]
	}
	return out
}
