package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketing-mailer/database"
)

// TestNormalizeProfession checks the first-upper-rest-lower folding rule.
func TestNormalizeProfession(t *testing.T) {
	assert.Equal(t, "Student", NormalizeProfession("STUDENT"))
	assert.Equal(t, "Student", NormalizeProfession("student"))
	assert.Equal(t, "Student", NormalizeProfession("Student"))
	assert.Equal(t, "Mc-donald", NormalizeProfession("mc-donald"))
	assert.Equal(t, "", NormalizeProfession(""))
}

// TestAggregateProfessionsMergesCaseVariants checks that spellings differing
// only in case sum into one bucket.
func TestAggregateProfessionsMergesCaseVariants(t *testing.T) {
	out := AggregateProfessions([]database.ProfessionCount{
		{Profession: "Engineer", Count: 2},
		{Profession: "engineer", Count: 3},
		{Profession: "ENGINEER", Count: 1},
	})
	assert.Equal(t, []database.ProfessionCount{{Profession: "Engineer", Count: 6}}, out)
}

// TestAggregateProfessionsSortsDescending checks the count ordering contract.
func TestAggregateProfessionsSortsDescending(t *testing.T) {
	out := AggregateProfessions([]database.ProfessionCount{
		{Profession: "dj", Count: 1},
		{Profession: "student", Count: 4},
		{Profession: "teacher", Count: 2},
	})
	assert.Equal(t, []database.ProfessionCount{
		{Profession: "Student", Count: 4},
		{Profession: "Teacher", Count: 2},
		{Profession: "Dj", Count: 1},
	}, out)
}

// TestAggregateProfessionsSkipsEmpty checks that empty professions never form
// a bucket; the "Unspecified" label is display-layer only.
func TestAggregateProfessionsSkipsEmpty(t *testing.T) {
	out := AggregateProfessions([]database.ProfessionCount{
		{Profession: "", Count: 7},
		{Profession: "dj", Count: 1},
	})
	assert.Equal(t, []database.ProfessionCount{{Profession: "Dj", Count: 1}}, out)
}

// TestAggregateProfessionsEmptyInput checks the zero-contact case.
func TestAggregateProfessionsEmptyInput(t *testing.T) {
	out := AggregateProfessions(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
