package repository

import "ricemill/models"

type PartyRepository interface {
	CreateParty(p *models.Party) error
	UpdateParty(p *models.Party) error
	DeleteParty(id int64) error
	GetAllParties() ([]*models.Party, error)
	GetParty(id int64) (*models.Party, error)
}

type VarietyRepository interface {
	CreateVariety(v *models.PaddyVariety) error
	UpdateVariety(v *models.PaddyVariety) error
	GetAllVarieties() ([]*models.PaddyVariety, error)
}
