package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"formfiller/models"
)

func TestClassify(t *testing.T) {
	c := NewFieldClassifier()

	tests := []struct {
		evidence string
		want     models.SemanticRole
	}{
		{"Email Address", models.RoleEmail},
		{"Official Email", models.RoleEmail},
		{"Your Gmail", models.RoleEmail},
		{"Mail ID:", models.RoleEmail},
		{"Contact email", models.RoleEmail},
		{"Mailing Address", models.RoleAddress},
		{"Mailing address (email not accepted)", models.RoleAddress},
		{"First Name", models.RoleFirstName},
		{"Given name", models.RoleFirstName},
		{"First name (as on your ID)", models.RoleFirstName},
		{"Last Name", models.RoleLastName},
		{"Surname", models.RoleLastName},
		{"Family name", models.RoleLastName},
		{"Full Name", models.RoleFullName},
		{"Candidate Name *", models.RoleFullName},
		{"Name", models.RoleFullName},
		{"Company name", models.RoleFullName},
		{"Phone number", models.RolePhone},
		{"Mobile", models.RolePhone},
		{"Contact no.", models.RolePhone},
		{"Residential Address", models.RoleAddress},
		{"City", models.RoleCity},
		{"Organization", models.RoleCompany},
		{"Company", models.RoleCompany},
		{"What is your favourite colour?", models.RoleUnclassified},
		{"", models.RoleUnclassified},
		{"   ", models.RoleUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.evidence, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.evidence))
		})
	}
}

func TestClassifyMailingAddressNeverEmail(t *testing.T) {
	c := NewFieldClassifier()
	labels := []string{
		"mailing address",
		"Mailing Address / Email",
		"email mailing address",
		"your gmail mailing address",
		"E-mail or mailing address",
	}
	for _, l := range labels {
		assert.NotEqual(t, models.RoleEmail, c.Classify(l), l)
	}
}

func TestClassifyFirstNameBeatsGenericName(t *testing.T) {
	c := NewFieldClassifier()
	labels := []string{
		"first name",
		"Name: first name",
		"your name (first name only)",
		"Full name / first name",
	}
	for _, l := range labels {
		assert.Equal(t, models.RoleFirstName, c.Classify(l), l)
	}
}

func TestClassifyFieldUsesAllEvidence(t *testing.T) {
	c := NewFieldClassifier()
	field := models.FieldDescriptor{
		Kind:          models.KindShortText,
		Placeholder:   "Your answer",
		QuestionText:  "Where do you live?",
		NameAttribute: "city",
	}
	assert.Equal(t, models.RoleCity, c.ClassifyField(field))
}

func TestRulesAreOrderedByPriority(t *testing.T) {
	rules := NewFieldClassifier().Rules()
	var order []models.SemanticRole
	for _, r := range rules {
		order = append(order, r.Role)
	}
	assert.Equal(t, []models.SemanticRole{
		models.RoleEmail,
		models.RoleFirstName,
		models.RoleLastName,
		models.RoleFullName,
		models.RolePhone,
		models.RoleAddress,
		models.RoleCity,
		models.RoleCompany,
	}, order)
}

func TestFallbackSequenceAlternates(t *testing.T) {
	var seq FallbackSequence
	var got []models.SemanticRole
	for i := 0; i < 6; i++ {
		got = append(got, seq.Next())
	}
	assert.Equal(t, []models.SemanticRole{
		models.RoleFullName, models.RoleEmail,
		models.RoleFullName, models.RoleEmail,
		models.RoleFullName, models.RoleEmail,
	}, got)
}
