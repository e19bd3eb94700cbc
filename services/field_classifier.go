package services

import (
	"strings"

	"formfiller/models"
)

var emailLabelPatterns = []string{
	"email", "e-mail", "email id", "emailid", "mail id", "mailid", "gmail",
	"email address", "official email", "work email", "college email", "contact email",
	"primary email", "personal email", "enter email", "enter your email", "provide email",
	"email:", "e-mail:", "email address:", "your email:", "email id:", "mail id:",
}

var nameLabelPatterns = []string{
	"full name", "your name", "candidate name", "student name", "employee name", "name",
	"enter name", "enter your name", "provide name", "your full name", "my name", "name field",
	"name *", "name (required)", "name:", "full name:", "your name:", "enter name:",
}

var (
	firstNamePatterns = []string{"first name", "given name"}
	lastNamePatterns  = []string{"last name", "surname", "family name"}
	phonePatterns     = []string{"phone", "mobile", "contact"}
	addressPatterns   = []string{"address"}
	cityPatterns      = []string{"city"}
	companyPatterns   = []string{"company", "organization"}

	// A generic "name" match must not steal any of these.
	specificNamePatterns = []string{"first name", "last name", "surname", "family name", "given name"}
)

// ClassifierRule pairs a predicate over the lowercased evidence with the role it assigns.
type ClassifierRule struct {
	Role  models.SemanticRole
	Match func(haystack string) bool
}

func containsAny(haystack string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(haystack, p) {
			return true
		}
	}
	return false
}

func anyOf(patterns []string) func(string) bool {
	return func(h string) bool { return containsAny(h, patterns) }
}

func isEmailLabel(h string) bool {
	if strings.Contains(h, "mailing address") {
		return false
	}
	return containsAny(h, emailLabelPatterns)
}

func isGenericNameLabel(h string) bool {
	if containsAny(h, specificNamePatterns) {
		return false
	}
	return containsAny(h, nameLabelPatterns)
}

// defaultRules is evaluated top to bottom; the first match wins.
var defaultRules = []ClassifierRule{
	{Role: models.RoleEmail, Match: isEmailLabel},
	{Role: models.RoleFirstName, Match: anyOf(firstNamePatterns)},
	{Role: models.RoleLastName, Match: anyOf(lastNamePatterns)},
	{Role: models.RoleFullName, Match: isGenericNameLabel},
	{Role: models.RolePhone, Match: anyOf(phonePatterns)},
	{Role: models.RoleAddress, Match: anyOf(addressPatterns)},
	{Role: models.RoleCity, Match: anyOf(cityPatterns)},
	{Role: models.RoleCompany, Match: anyOf(companyPatterns)},
}

// FieldClassifier maps field evidence text to a semantic role.
type FieldClassifier struct {
	rules []ClassifierRule
}

func NewFieldClassifier() *FieldClassifier {
	return &FieldClassifier{rules: defaultRules}
}

// Rules returns the ordered rule table.
func (c *FieldClassifier) Rules() []ClassifierRule {
	out := make([]ClassifierRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify lowercases the evidence and returns the role of the first matching rule.
func (c *FieldClassifier) Classify(evidence string) models.SemanticRole {
	haystack := strings.ToLower(strings.TrimSpace(evidence))
	if haystack == "" {
		return models.RoleUnclassified
	}
	for _, rule := range c.rules {
		if rule.Match(haystack) {
			return rule.Role
		}
	}
	return models.RoleUnclassified
}

// ClassifyField classifies a descriptor's joined evidence.
func (c *FieldClassifier) ClassifyField(field models.FieldDescriptor) models.SemanticRole {
	return c.Classify(field.Evidence())
}

// FallbackSequence hands out roles for unclassified fields of one container
// (a form section or a grid): full name, email, full name, email, ...
type FallbackSequence struct {
	next int
}

// Next returns the role for the next unclassified field and advances the ordinal.
func (s *FallbackSequence) Next() models.SemanticRole {
	role := ColumnRole(s.next)
	s.next++
	return role
}

// ColumnRole is the fixed two-column convention: even positions are names, odd are emails.
func ColumnRole(index int) models.SemanticRole {
	if index%2 == 0 {
		return models.RoleFullName
	}
	return models.RoleEmail
}
