package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/dmitrijs2005/bucketlist/internal/server/repositories/repomanager"
)

// BucketlistService is the owner-scoped CRUD surface over bucketlists.
type BucketlistService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewBucketlistService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *BucketlistService {
	return &BucketlistService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "bucketlists"),
	}
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	return name, nil
}

func (s *BucketlistService) Create(ctx context.Context, ownerID int64, name string) (*models.Bucketlist, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	b, err := s.repomanager.Bucketlists(s.db).Create(ctx, &models.Bucketlist{Name: name, CreatedBy: ownerID})
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "bucketlist created", "user_id", ownerID, "bucketlist_id", b.ID)
	return b, nil
}

// GetAll returns the owner's bucketlists ordered by id; never nil.
func (s *BucketlistService) GetAll(ctx context.Context, ownerID int64) ([]*models.Bucketlist, error) {
	return s.repomanager.Bucketlists(s.db).GetAll(ctx, ownerID)
}

func (s *BucketlistService) Get(ctx context.Context, ownerID, id int64) (*models.Bucketlist, error) {
	return s.repomanager.Bucketlists(s.db).Get(ctx, ownerID, id)
}

// Rename changes the name and refreshes date_modified.
func (s *BucketlistService) Rename(ctx context.Context, ownerID, id int64, name string) (*models.Bucketlist, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Bucketlists(s.db).UpdateName(ctx, ownerID, id, name)
}

func (s *BucketlistService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repomanager.Bucketlists(s.db).Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.Debug(ctx, "bucketlist deleted", "user_id", ownerID, "bucketlist_id", id)
	return nil
}
