package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

func tech(name, phone, trade, city string) boardstore.Technician {
	return boardstore.Technician{Name: name, Phone: phone, Trade: trade, City: city}
}

func TestDuplicateTechnician(t *testing.T) {
	tests := []struct {
		name string
		a, b boardstore.Technician
		dup  bool
	}{
		{
			name: "same name and phone",
			a:    tech("Marco Reyes", "+1 (512) 555-0133", "Electrical", "Austin"),
			b:    tech("marco reyes", "+15125550133", "Plumbing", "Dallas"),
			dup:  true,
		},
		{
			name: "same name different phone",
			a:    tech("Marco Reyes", "+15125550133", "Electrical", "Austin"),
			b:    tech("Marco Reyes", "+15125550199", "Electrical", "Austin"),
			dup:  false,
		},
		{
			name: "no phones, same name trade city",
			a:    tech("Dana Fox", "", "HVAC", "Houston"),
			b:    tech("DANA FOX", "", "hvac", "houston"),
			dup:  true,
		},
		{
			name: "no phones, same name different city",
			a:    tech("Dana Fox", "", "HVAC", "Houston"),
			b:    tech("Dana Fox", "", "HVAC", "Dallas"),
			dup:  false,
		},
		{
			name: "one phone missing never matches on fallback",
			a:    tech("Dana Fox", "+15125550133", "HVAC", "Houston"),
			b:    tech("Dana Fox", "", "HVAC", "Houston"),
			dup:  false,
		},
		{
			name: "different names",
			a:    tech("Dana Fox", "", "HVAC", "Houston"),
			b:    tech("Dana Cox", "", "HVAC", "Houston"),
			dup:  false,
		},
		{
			name: "empty names never match",
			a:    tech("", "", "HVAC", "Houston"),
			b:    tech("", "", "HVAC", "Houston"),
			dup:  false,
		},
		{
			name: "lone plus is not a phone",
			a:    tech("Dana Fox", "+", "HVAC", "Houston"),
			b:    tech("Dana Fox", "", "HVAC", "Houston"),
			dup:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dup, DuplicateTechnician(tt.a, tt.b))
			assert.Equal(t, tt.dup, DuplicateTechnician(tt.b, tt.a), "predicate should be symmetric")
		})
	}
}

func TestFindDuplicate(t *testing.T) {
	techs := []boardstore.Technician{
		{ID: "t1", Name: "Marco Reyes", Phone: "+15125550133"},
		{ID: "t2", Name: "Dana Fox", Trade: "HVAC", City: "Houston"},
	}

	t.Run("finds match", func(t *testing.T) {
		candidate := boardstore.Technician{Name: "Marco Reyes", Phone: "1-512-555-0133"}
		match := FindDuplicate(techs, candidate, "")
		require.NotNil(t, match)
		assert.Equal(t, "t1", match.ID)
	})

	t.Run("ignores the record being edited", func(t *testing.T) {
		candidate := boardstore.Technician{Name: "Marco Reyes", Phone: "1-512-555-0133"}
		assert.Nil(t, FindDuplicate(techs, candidate, "t1"))
	})

	t.Run("no match", func(t *testing.T) {
		candidate := boardstore.Technician{Name: "New Person", Phone: "+15125550000"}
		assert.Nil(t, FindDuplicate(techs, candidate, ""))
	})
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Dana Fox", SanitizeText("  Dana \t\n Fox ", 240))
	assert.Equal(t, "abc", SanitizeText("a\x00b\x1fc", 240))
	assert.Equal(t, "ab", SanitizeText("abcd", 2))
	assert.Equal(t, "", SanitizeText("\x00\x01", 240))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15125550133", NormalizePhone("+1 (512) 555-0133"))
	assert.Equal(t, "", NormalizePhone("+"))
	assert.Equal(t, "", NormalizePhone("ext."))
	assert.Equal(t, "5125550133", NormalizePhone("512.555.0133"))
}
