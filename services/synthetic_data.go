package services

import (
	"github.com/brianvoe/gofakeit/v7"

	"formfiller/models"
)

// SyntheticData produces filler values for non-identity roles.
type SyntheticData interface {
	Phone() string
	Address() string
	City() string
	Company() string
}

type fakeitData struct {
	faker *gofakeit.Faker
}

// NewSyntheticData returns gofakeit-backed filler data. A zero seed uses a random seed.
func NewSyntheticData(seed uint64) SyntheticData {
	return &fakeitData{faker: gofakeit.New(seed)}
}

func (d *fakeitData) Phone() string { return d.faker.Phone() }

func (d *fakeitData) Address() string { return d.faker.Address().Address }

func (d *fakeitData) City() string { return d.faker.City() }

func (d *fakeitData) Company() string { return d.faker.Company() }

// syntheticValue makes exactly one generator call for the role.
func syntheticValue(data SyntheticData, role models.SemanticRole) (string, bool) {
	switch role {
	case models.RolePhone:
		return data.Phone(), true
	case models.RoleAddress:
		return data.Address(), true
	case models.RoleCity:
		return data.City(), true
	case models.RoleCompany:
		return data.Company(), true
	}
	return "", false
}
