package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStruct(t *testing.T) {
	type form struct {
		Name  string `validate:"required,min=2"`
		Email string `validate:"required,email"`
	}

	assert.NoError(t, Struct(form{Name: "Asha", Email: "asha@example.com"}))

	err := Struct(form{Name: "Asha", Email: "not-an-email"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email")

	// First failing field wins.
	err = Struct(form{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid name")
}

func TestPAN(t *testing.T) {
	assert.True(t, PAN("ABCDE1234F"))
	assert.True(t, PAN("abcde1234f"))
	assert.True(t, PAN(""))
	assert.False(t, PAN("12345ABCDE"))
}

func TestAadhar(t *testing.T) {
	assert.True(t, Aadhar("123456789012"))
	assert.True(t, Aadhar(""))
	assert.False(t, Aadhar("12345"))
	assert.False(t, Aadhar("12345678901a"))
}
