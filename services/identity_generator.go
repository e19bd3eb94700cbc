package services

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"formfiller/models"
)

// EmailDomains are the free-mail providers identities are issued on.
var EmailDomains = []string{"gmail.com", "outlook.com", "yahoo.in", "rediffmail.com"}

var (
	indianFirstNames = []string{
		"Aarav", "Aditi", "Aditya", "Ananya", "Arjun", "Avni", "Diya", "Gaurav", "Ishaan", "Isha",
		"Kabir", "Kavya", "Krishna", "Meera", "Neha", "Nikhil", "Pooja", "Pranav", "Priya", "Rahul",
		"Riya", "Rohan", "Sai", "Saanvi", "Sanjay", "Shreya", "Siddharth", "Sneha", "Tanvi", "Varun",
		"Vihaan", "Vikram", "Yash", "Zoya", "Aniket", "Bhavna", "Deepak", "Harsh", "Jyoti", "Lakshmi",
	}
	indianLastNames = []string{
		"Agarwal", "Bhatt", "Chopra", "Das", "Desai", "Gupta", "Iyer", "Jain", "Joshi", "Kapoor",
		"Khan", "Kulkarni", "Kumar", "Malhotra", "Mehta", "Menon", "Mishra", "Nair", "Patel", "Pillai",
		"Rao", "Reddy", "Saxena", "Shah", "Sharma", "Singh", "Sinha", "Srinivasan", "Trivedi", "Verma",
	}

	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// IdentityGenerator issues one respondent identity per form pass.
type IdentityGenerator struct {
	rng        *rand.Rand
	firstNames []string
	lastNames  []string
	domains    []string
}

func NewIdentityGenerator(rng *rand.Rand) *IdentityGenerator {
	return &IdentityGenerator{
		rng:        rng,
		firstNames: indianFirstNames,
		lastNames:  indianLastNames,
		domains:    EmailDomains,
	}
}

// Generate never fails.
func (g *IdentityGenerator) Generate() models.Identity {
	first := g.firstNames[g.rng.Intn(len(g.firstNames))]
	last := g.lastNames[g.rng.Intn(len(g.lastNames))]

	suffix := 10 + g.rng.Intn(90)
	domain := g.domains[g.rng.Intn(len(g.domains))]

	return models.Identity{
		FirstName: first,
		LastName:  last,
		FullName:  first + " " + last,
		Email:     fmt.Sprintf("%s%d@%s", emailLocalPart(first, last), suffix, domain),
	}
}

// emailLocalPart lowercases "first.last", folds accents and drops everything that is
// not a-z or 0-9.
func emailLocalPart(first, last string) string {
	raw := strings.ToLower(first + "." + last)
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(folder, raw); err == nil {
		raw = folded
	}
	return nonAlphanumeric.ReplaceAllString(raw, "")
}
