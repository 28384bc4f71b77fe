package mongostore

import (
	"context"
	"time"

	"taskblog/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserStore struct {
	s *Store
}

func (u *UserStore) Create(ctx context.Context, user *models.User) error {
	return insertOne(ctx, u.s.col(ColUsers), user)
}

func (u *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, u.s.col(ColUsers), bson.D{{Key: "_id", Value: id}})
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, u.s.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

func (u *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return findOne[models.User](ctx, u.s.col(ColUsers), bson.D{{Key: "username", Value: username}})
}

func (u *UserStore) Update(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.UpdatedAt = &now
	return replaceByID(ctx, u.s.col(ColUsers), user.ID, user)
}

func (u *UserStore) HealthCheck(ctx context.Context) error {
	return u.s.HealthCheck(ctx)
}
