package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBDMobile(t *testing.T) {
	cases := []struct {
		number string
		valid  bool
	}{
		{"01712345678", true},
		{"01898765432", true},
		{"0171234567", false},   // too short
		{"017123456789", false}, // too long
		{"02712345678", false},  // wrong prefix
		{"01712a45678", false},  // non-digit
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, bdMobileRe.MatchString(tc.number), tc.number)
	}
}

func TestSanitizeStruct(t *testing.T) {
	extra := "  <i>note</i> "
	req := struct {
		Name  string
		Extra *string
		Count int
	}{
		Name:  "  <b>Rahim</b>  ",
		Extra: &extra,
		Count: 3,
	}

	SanitizeStruct(&req)

	assert.Equal(t, "&lt;b&gt;Rahim&lt;/b&gt;", req.Name)
	assert.Equal(t, "&lt;i&gt;note&lt;/i&gt;", *req.Extra)
	assert.Equal(t, 3, req.Count)
}

func TestSanitizeStruct_IgnoresNonStructPointers(t *testing.T) {
	s := "  hello  "
	SanitizeStruct(s)  // not a pointer
	SanitizeStruct(&s) // pointer, but not to a struct
	assert.Equal(t, "  hello  ", s)
}
