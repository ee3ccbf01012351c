package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"flyer_builder/internal/model"
	"flyer_builder/pkg/utils/format"
)

const emailShapeTag = "email_shape"

func newFieldChecker() *validator.Validate {
	v := validator.New()
	v.RegisterValidation(emailShapeTag, func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

// Policy decides how images and agent contact details gate submission.
type Policy string

const (
	// PolicyStrict requires at least one image and both phone and email.
	PolicyStrict Policy = "strict"
	// PolicyContactEither makes images optional and needs only one of phone or email.
	PolicyContactEither Policy = "contact-either"
)

// ParsePolicy maps a config value to a policy, defaulting to PolicyStrict.
func ParsePolicy(s string) Policy {
	if Policy(strings.ToLower(strings.TrimSpace(s))) == PolicyContactEither {
		return PolicyContactEither
	}
	return PolicyStrict
}

// Errors maps a field name to a user facing message. Only failing fields are present.
type Errors map[string]string

func (e Errors) OK() bool { return len(e) == 0 }

const (
	FieldTitle        = "propertyTitle"
	FieldAddress      = "address"
	FieldPrice        = "price"
	FieldPropertyType = "propertyType"
	FieldBedrooms     = "bedrooms"
	FieldBathrooms    = "bathrooms"
	FieldSize         = "size"
	FieldAgentName    = "agentName"
	FieldAgentPhone   = "agentPhone"
	FieldAgentEmail   = "agentEmail"
	FieldAgentContact = "agentContact"
	FieldImages       = "images"
)

const (
	minTitleLength   = 6
	minAddressLength = 6
	minPhoneDigits   = 9
)

var (
	emailShape   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneStrip   = regexp.MustCompile(`[^\d+]`)
	priceStrip   = regexp.MustCompile(`[,\s]`)
	fieldChecker = newFieldChecker()
)

// ValidateListing checks rec against every rule and returns all failures together.
func ValidateListing(rec model.PropertyRecord, imageCount int, policy Policy) Errors {
	errs := Errors{}

	title := strings.TrimSpace(rec.PropertyTitle)
	address := strings.TrimSpace(rec.Address)
	agentName := strings.TrimSpace(rec.AgentName)
	phone := strings.TrimSpace(rec.AgentPhone)
	email := strings.TrimSpace(rec.AgentEmail)

	if title == "" {
		errs[FieldTitle] = "Property title is required."
	} else if len([]rune(title)) < minTitleLength {
		errs[FieldTitle] = "Title should be at least 6 characters."
	}

	if address == "" {
		errs[FieldAddress] = "Address is required."
	} else if len([]rune(address)) < minAddressLength {
		errs[FieldAddress] = "Address should be more specific."
	}

	if strings.TrimSpace(rec.Price) == "" {
		errs[FieldPrice] = "Price is required."
	} else if v, ok := format.ParseNumber(priceStrip.ReplaceAllString(rec.Price, "")); !ok || v <= 0 {
		errs[FieldPrice] = "Price must be a number greater than 0."
	}

	if strings.TrimSpace(rec.PropertyType) == "" || !model.IsValidPropertyType(rec.PropertyType) {
		errs[FieldPropertyType] = "Please select a property type."
	}

	checkOptionalCount(errs, FieldBedrooms, rec.Bedrooms)
	checkOptionalCount(errs, FieldBathrooms, rec.Bathrooms)
	checkOptionalCount(errs, FieldSize, rec.Size)

	if agentName == "" {
		errs[FieldAgentName] = "Agent name is required."
	}

	switch policy {
	case PolicyContactEither:
		if phone == "" && email == "" {
			errs[FieldAgentContact] = "Add at least a phone number or an email."
		}
		if phone != "" && !IsValidPhone(phone) {
			errs[FieldAgentPhone] = "Phone number looks too short."
		}
		if email != "" && !IsValidEmail(email) {
			errs[FieldAgentEmail] = "Please enter a valid email address."
		}
	default:
		if imageCount < 1 {
			errs[FieldImages] = "Please upload at least one photo."
		}
		if phone == "" {
			errs[FieldAgentPhone] = "Phone number is required."
		} else if !IsValidPhone(phone) {
			errs[FieldAgentPhone] = "Phone number looks too short."
		}
		if email == "" {
			errs[FieldAgentEmail] = "Email is required."
		} else if !IsValidEmail(email) {
			errs[FieldAgentEmail] = "Please enter a valid email address."
		}
	}

	return errs
}

func checkOptionalCount(errs Errors, field, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	if v, ok := format.ParseNumber(raw); !ok || v < 0 {
		errs[field] = "Must be 0 or more."
	}
}

// NormalizePhone keeps digits and plus signs only.
func NormalizePhone(value string) string {
	return phoneStrip.ReplaceAllString(value, "")
}

// IsValidPhone requires at least 9 digits once formatting characters are removed.
func IsValidPhone(value string) bool {
	digits := 0
	for _, r := range NormalizePhone(value) {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

// IsValidEmail accepts anything shaped like local@domain.tld. The validator's
// built-in email rule is stricter than the form and is not used here.
func IsValidEmail(value string) bool {
	return fieldChecker.Var(value, emailShapeTag) == nil
}
