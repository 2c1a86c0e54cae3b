package users

import (
	"context"

	"github.com/dkalnins/auctionhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
