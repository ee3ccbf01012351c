package model

import "strings"

// Property Types
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeTownhouse  PropertyType = "townhouse"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeIndustrial PropertyType = "industrial"
)

var PropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeApartment,
	PropertyTypeCondo,
	PropertyTypeVilla,
	PropertyTypeTownhouse,
	PropertyTypeLand,
	PropertyTypeCommercial,
	PropertyTypeIndustrial,
}

// IsValidPropertyType reports whether code is one of the selectable property types.
func IsValidPropertyType(code string) bool {
	code = strings.TrimSpace(code)
	for _, t := range PropertyTypes {
		if string(t) == code {
			return true
		}
	}
	return false
}

// DescriptionMaxLength is the cap applied when the description is set.
const DescriptionMaxLength = 1000

// ImageAsset is an uploaded image held as a data URI preview.
type ImageAsset struct {
	Preview string `json:"preview"`
	Name    string `json:"name"`
}

// PropertyRecord holds the listing and agent fields collected by the form.
// Numeric fields stay strings; the validator decides whether they parse.
type PropertyRecord struct {
	PropertyTitle string `json:"propertyTitle"`
	Address       string `json:"address"`
	Price         string `json:"price"`
	PropertyType  string `json:"propertyType"`
	Bedrooms      string `json:"bedrooms"`
	Bathrooms     string `json:"bathrooms"`
	Size          string `json:"size"`
	Description   string `json:"description"`

	AgentName      string `json:"agentName"`
	AgentPhone     string `json:"agentPhone"`
	AgentEmail     string `json:"agentEmail"`
	AgentFacebook  string `json:"agentFacebook"`
	AgentTelegram  string `json:"agentTelegram"`
	AgentInstagram string `json:"agentInstagram"`
	AgentTiktok    string `json:"agentTiktok"`

	AgentPhoto  *ImageAsset `json:"agentPhoto"`
	AgentQRCode *ImageAsset `json:"agentQrCode"`
}

// RecordPatch is a partial update of the text fields. Nil fields are left untouched.
type RecordPatch struct {
	PropertyTitle *string `json:"propertyTitle"`
	Address       *string `json:"address"`
	Price         *string `json:"price"`
	PropertyType  *string `json:"propertyType"`
	Bedrooms      *string `json:"bedrooms"`
	Bathrooms     *string `json:"bathrooms"`
	Size          *string `json:"size"`
	Description   *string `json:"description"`

	AgentName      *string `json:"agentName"`
	AgentPhone     *string `json:"agentPhone"`
	AgentEmail     *string `json:"agentEmail"`
	AgentFacebook  *string `json:"agentFacebook"`
	AgentTelegram  *string `json:"agentTelegram"`
	AgentInstagram *string `json:"agentInstagram"`
	AgentTiktok    *string `json:"agentTiktok"`
}

// Apply copies every non-nil field of p onto rec.
func (p RecordPatch) Apply(rec *PropertyRecord) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&rec.PropertyTitle, p.PropertyTitle)
	set(&rec.Address, p.Address)
	set(&rec.Price, p.Price)
	set(&rec.PropertyType, p.PropertyType)
	set(&rec.Bedrooms, p.Bedrooms)
	set(&rec.Bathrooms, p.Bathrooms)
	set(&rec.Size, p.Size)
	set(&rec.AgentName, p.AgentName)
	set(&rec.AgentPhone, p.AgentPhone)
	set(&rec.AgentEmail, p.AgentEmail)
	set(&rec.AgentFacebook, p.AgentFacebook)
	set(&rec.AgentTelegram, p.AgentTelegram)
	set(&rec.AgentInstagram, p.AgentInstagram)
	set(&rec.AgentTiktok, p.AgentTiktok)

	if p.Description != nil {
		rec.Description = truncateRunes(*p.Description, DescriptionMaxLength)
	}
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
