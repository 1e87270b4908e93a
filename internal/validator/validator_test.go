package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name       string   `json:"name" validate:"required,min=5,max=50"`
	Email      string   `json:"email" validate:"required,email"`
	Days       []string `json:"days" validate:"required,min=1,dive,weekday"`
	WorkPeriod string   `json:"workperiod" validate:"required,workperiod"`
	Zip        string   `json:"zip" validate:"required,min=3,max=6,digits"`
	Kind       string   `json:"socialsecurity" validate:"required,oneof=SSN EIN"`
	Number     string   `json:"socialsecurityNumber" validate:"omitempty,len=11"`
	Licence    string   `json:"licence" validate:"yesno"`
}

func validSample() sampleRequest {
	return sampleRequest{
		Name:       "Maria Lopez",
		Email:      "maria@example.com",
		Days:       []string{"Monday", "friday"},
		WorkPeriod: "full-time",
		Zip:        "33101",
		Kind:       "SSN",
		Number:     "123-45-6789",
		Licence:    "YES",
	}
}

func TestValidate_Valid(t *testing.T) {
	v := New()
	req := validSample()
	assert.NoError(t, v.Validate(&req))
}

func TestValidate_WeekdayAbbreviations(t *testing.T) {
	v := New()
	for _, day := range []string{"Mon", "tue", "WED", " Sun ", "Thursday"} {
		req := validSample()
		req.Days = []string{day}
		assert.NoError(t, v.Validate(&req), day)
	}

	req := validSample()
	req.Days = []string{"Mo"}
	assert.Error(t, v.Validate(&req))
}

func TestValidate_FieldNamesAndMessages(t *testing.T) {
	v := New()
	req := validSample()
	req.Name = "Ana"
	req.Days = []string{"Monday", "Funday"}
	req.Zip = "33a01"
	req.Number = "123"
	req.Licence = "maybe"

	err := v.Validate(&req)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be at least 5 characters long", vErr.Errors["name"])
	assert.Equal(t, "Must be a day of the week", vErr.Errors["days[1]"])
	assert.Equal(t, "Must contain digits only", vErr.Errors["zip"])
	assert.Equal(t, "Must be exactly 11 characters long", vErr.Errors["socialsecurityNumber"])
	assert.Equal(t, "Must be yes or no", vErr.Errors["licence"])
	assert.NotContains(t, vErr.Errors, "email")
	assert.True(t, strings.HasPrefix(vErr.Error(), "Validation failed: "))
}

func TestValidate_OptionalLengthSkippedWhenEmpty(t *testing.T) {
	v := New()
	req := validSample()
	req.Kind = "EIN"
	req.Number = ""
	assert.NoError(t, v.Validate(&req))
}

func TestVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("crew@example.com", "email"))
	assert.Error(t, v.Var("not-an-address", "email"))
}
