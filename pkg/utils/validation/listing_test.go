package validation

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyer_builder/internal/model"
)

func validRecord() model.PropertyRecord {
	return model.PropertyRecord{
		PropertyTitle: "Riverside Villa",
		Address:       "12 Sisowath Quay, Phnom Penh",
		Price:         "250,000",
		PropertyType:  string(model.PropertyTypeVilla),
		Bedrooms:      "3",
		Bathrooms:     "2",
		Size:          "180",
		AgentName:     "Dara Sok",
		AgentPhone:    "+855 12 345 678",
		AgentEmail:    "dara@example.com",
	}
}

func TestValidateListing_ValidRecord(t *testing.T) {
	errs := ValidateListing(validRecord(), 1, PolicyStrict)
	assert.True(t, errs.OK(), "unexpected errors: %v", errs)
}

func TestValidateListing_Title(t *testing.T) {
	for _, title := range []string{"", "   ", "Villa", "  Villa  ", "12345"} {
		rec := validRecord()
		rec.PropertyTitle = title
		errs := ValidateListing(rec, 1, PolicyStrict)
		assert.Contains(t, errs, FieldTitle, "title %q", title)
	}
	for _, title := range []string{"Villas", "  Villas  ", "A long descriptive title"} {
		rec := validRecord()
		rec.PropertyTitle = title
		errs := ValidateListing(rec, 1, PolicyStrict)
		assert.NotContains(t, errs, FieldTitle, "title %q", title)
	}
}

func TestValidateListing_Address(t *testing.T) {
	rec := validRecord()
	rec.Address = ""
	assert.Equal(t, "Address is required.", ValidateListing(rec, 1, PolicyStrict)[FieldAddress])

	rec.Address = "PP"
	assert.Equal(t, "Address should be more specific.", ValidateListing(rec, 1, PolicyStrict)[FieldAddress])
}

func TestValidateListing_Price(t *testing.T) {
	bad := []string{"", "abc", "0", "-5", "0.00", "12abc", "NaN"}
	for _, price := range bad {
		rec := validRecord()
		rec.Price = price
		assert.Contains(t, ValidateListing(rec, 1, PolicyStrict), FieldPrice, "price %q", price)
	}

	good := []string{"1", "250000", "250,000", " 1 250 000 ", "99.5"}
	for _, price := range good {
		rec := validRecord()
		rec.Price = price
		assert.NotContains(t, ValidateListing(rec, 1, PolicyStrict), FieldPrice, "price %q", price)
	}
}

func TestValidateListing_PropertyType(t *testing.T) {
	rec := validRecord()
	rec.PropertyType = ""
	assert.Contains(t, ValidateListing(rec, 1, PolicyStrict), FieldPropertyType)

	rec.PropertyType = "castle"
	assert.Contains(t, ValidateListing(rec, 1, PolicyStrict), FieldPropertyType)
}

func TestValidateListing_OptionalCounts(t *testing.T) {
	rec := validRecord()
	rec.Bedrooms = ""
	rec.Bathrooms = "-1"
	rec.Size = "big"
	errs := ValidateListing(rec, 1, PolicyStrict)

	assert.NotContains(t, errs, FieldBedrooms)
	assert.Equal(t, "Must be 0 or more.", errs[FieldBathrooms])
	assert.Equal(t, "Must be 0 or more.", errs[FieldSize])

	rec.Bathrooms = "0"
	rec.Size = ""
	errs = ValidateListing(rec, 1, PolicyStrict)
	assert.NotContains(t, errs, FieldBathrooms)
	assert.NotContains(t, errs, FieldSize)
}

func TestValidateListing_CollectsAllErrors(t *testing.T) {
	errs := ValidateListing(model.PropertyRecord{}, 0, PolicyStrict)

	for _, field := range []string{
		FieldTitle, FieldAddress, FieldPrice, FieldPropertyType,
		FieldAgentName, FieldAgentPhone, FieldAgentEmail, FieldImages,
	} {
		assert.Contains(t, errs, field)
	}
	assert.NotContains(t, errs, FieldAgentContact)
	assert.NotContains(t, errs, FieldBedrooms)
}

func TestValidateListing_StrictPolicy(t *testing.T) {
	rec := validRecord()
	errs := ValidateListing(rec, 0, PolicyStrict)
	assert.Equal(t, "Please upload at least one photo.", errs[FieldImages])

	rec.AgentPhone = "12 34"
	rec.AgentEmail = "dara.example.com"
	errs = ValidateListing(rec, 1, PolicyStrict)
	assert.Equal(t, "Phone number looks too short.", errs[FieldAgentPhone])
	assert.Equal(t, "Please enter a valid email address.", errs[FieldAgentEmail])

	rec.AgentPhone = ""
	errs = ValidateListing(rec, 1, PolicyStrict)
	assert.Equal(t, "Phone number is required.", errs[FieldAgentPhone])
}

func TestValidateListing_ContactEitherPolicy(t *testing.T) {
	rec := validRecord()
	rec.AgentPhone = ""
	rec.AgentEmail = ""

	errs := ValidateListing(rec, 0, PolicyContactEither)
	assert.NotContains(t, errs, FieldImages)
	assert.Equal(t, "Add at least a phone number or an email.", errs[FieldAgentContact])
	assert.NotContains(t, errs, FieldAgentPhone)
	assert.NotContains(t, errs, FieldAgentEmail)

	rec.AgentEmail = "dara@example.com"
	errs = ValidateListing(rec, 0, PolicyContactEither)
	assert.True(t, errs.OK(), "unexpected errors: %v", errs)

	rec.AgentPhone = "123"
	errs = ValidateListing(rec, 0, PolicyContactEither)
	assert.Contains(t, errs, FieldAgentPhone)
}

func TestValidateListing_Deterministic(t *testing.T) {
	rec := validRecord()
	rec.PropertyTitle = "abc"
	assert.Equal(t, ValidateListing(rec, 0, PolicyStrict), ValidateListing(rec, 0, PolicyStrict))
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyStrict, ParsePolicy(""))
	assert.Equal(t, PolicyStrict, ParsePolicy("bogus"))
	assert.Equal(t, PolicyContactEither, ParsePolicy(" Contact-Either "))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+855 12 345 678"))
	assert.True(t, IsValidPhone("(012) 345-6789"))
	assert.False(t, IsValidPhone("12-34-56"))
	assert.False(t, IsValidPhone(""))
}

func TestIsValidEmail(t *testing.T) {
	for _, email := range []string{
		"dara@example.com",
		"user@host_name.com",
		"a..b@x.com",
		"ann@x.y.",
		"a@[1.2.3.4].x",
	} {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range []string{
		"",
		"dara.example.com",
		"dara@example",
		"da ra@example.com",
		"a@b@c.com",
	} {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestValidateImage(t *testing.T) {
	require.ErrorIs(t, ValidateImage(nil, 0), ErrFileRequired)

	big := &multipart.FileHeader{Filename: "a.jpg", Size: MaxImageSize + 1}
	assert.ErrorIs(t, ValidateImage(big, 0), ErrFileSize)

	gif := &multipart.FileHeader{Filename: "a.gif", Size: 10}
	assert.ErrorIs(t, ValidateImage(gif, 0), ErrFileType)

	ok := &multipart.FileHeader{Filename: strings.ToUpper("photo.webp"), Size: 10}
	assert.NoError(t, ValidateImage(ok, 0))

	assert.ErrorIs(t, ValidateImages(nil, 0), ErrFileRequired)
	assert.ErrorIs(t, ValidateImages([]*multipart.FileHeader{ok, gif}, 0), ErrFileType)
}
