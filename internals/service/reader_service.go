package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"library-service/internals/apperrors"
	"library-service/internals/models"
	"library-service/internals/repository"
)

// ReaderService is patron CRUD, mirroring the catalog: unique email, and no
// deletion while the reader holds an open loan.
type ReaderService struct {
	readers repository.ReaderRepository
	loans   repository.LoanRepository
	log     *logrus.Logger
}

func NewReaderService(readers repository.ReaderRepository, loans repository.LoanRepository, log *logrus.Logger) *ReaderService {
	return &ReaderService{readers: readers, loans: loans, log: log}
}

type ReaderUpdate struct {
	Name  *string
	Email *string
}

func (s *ReaderService) Create(ctx context.Context, reader *models.ReaderModel) (*models.ReaderModel, error) {
	if _, err := s.readers.FindByEmail(ctx, reader.Email); err == nil {
		return nil, apperrors.Conflict("Reader with this email already exists")
	} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}
	if err := s.readers.Create(ctx, reader); err != nil {
		return nil, err
	}
	s.log.WithField("reader_id", reader.ID).Info("created reader")
	return reader, nil
}

func (s *ReaderService) Get(ctx context.Context, id uint) (*models.ReaderModel, error) {
	return s.readers.FindById(ctx, id)
}

func (s *ReaderService) List(ctx context.Context, skip, limit int) ([]models.ReaderModel, error) {
	return s.readers.FindAll(ctx, skip, limit)
}

func (s *ReaderService) Update(ctx context.Context, id uint, update ReaderUpdate) (*models.ReaderModel, error) {
	reader, err := s.readers.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Email != nil && *update.Email != reader.Email {
		if _, err := s.readers.FindByEmail(ctx, *update.Email); err == nil {
			return nil, apperrors.Conflict("Reader with this email already exists")
		} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, err
		}
	}
	if update.Name != nil {
		reader.Name = *update.Name
	}
	if update.Email != nil {
		reader.Email = *update.Email
	}
	if err := s.readers.Save(ctx, reader); err != nil {
		return nil, err
	}
	return reader, nil
}

func (s *ReaderService) Delete(ctx context.Context, id uint) error {
	reader, err := s.readers.FindById(ctx, id)
	if err != nil {
		return err
	}
	openLoans, err := s.loans.CountOpenByReader(ctx, id)
	if err != nil {
		return err
	}
	if openLoans > 0 {
		return apperrors.Conflict("Cannot delete reader that has borrowed books")
	}
	if err := s.readers.Delete(ctx, reader); err != nil {
		return err
	}
	s.log.WithField("reader_id", id).Info("deleted reader")
	return nil
}
