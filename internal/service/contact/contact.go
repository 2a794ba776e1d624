package contact

import (
	"context"

	"github.com/google/uuid"

	"github.com/dkotelnikov/contacts/internal/models"
	"github.com/dkotelnikov/contacts/internal/repository"
)

type ContactService struct {
	// Repository to access long term data
	contactRepo repository.ContactRepo
}

func NewService(contactRepo repository.ContactRepo) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
	}
}

func (s *ContactService) CreateContact(ctx context.Context, user *models.User, name string, phone string) (models.Contact, error) {
	return s.contactRepo.CreateContact(ctx, user.ID, name, phone)
}

func (s *ContactService) ListContacts(ctx context.Context, user *models.User) ([]models.Contact, error) {
	return s.contactRepo.ListContacts(ctx, user.ID)
}

func (s *ContactService) GetContact(ctx context.Context, user *models.User, contactID uuid.UUID) (models.Contact, error) {
	return s.contactRepo.GetContact(ctx, user.ID, contactID)
}

func (s *ContactService) UpdateContact(ctx context.Context, user *models.User, contactID uuid.UUID, name string, phone string) (models.Contact, error) {
	return s.contactRepo.UpdateContact(ctx, user.ID, contactID, name, phone)
}

func (s *ContactService) DeleteContact(ctx context.Context, user *models.User, contactID uuid.UUID) error {
	return s.contactRepo.DeleteContact(ctx, user.ID, contactID)
}
