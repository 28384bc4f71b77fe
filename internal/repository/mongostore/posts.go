package mongostore

import (
	"context"
	"time"

	"taskblog/internal/models"
	"taskblog/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PostStore struct {
	s *Store
}

func (p *PostStore) Create(ctx context.Context, post *models.Post) error {
	return insertOne(ctx, p.s.col(ColPosts), post)
}

func (p *PostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return findOne[models.Post](ctx, p.s.col(ColPosts), bson.D{{Key: "_id", Value: id}})
}

func (p *PostStore) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return findOne[models.Post](ctx, p.s.col(ColPosts), bson.D{{Key: "slug", Value: slug}})
}

func (p *PostStore) List(ctx context.Context, filter repository.PostFilter) ([]*models.Post, int, error) {
	query := bson.D{}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}
	if filter.Author != "" {
		query = append(query, bson.E{Key: "author", Value: filter.Author})
	}

	col := p.s.col(ColPosts)
	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapError(err)
	}

	skip, limit := countAndPage(filter.Page, filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	posts, err := findMany[models.Post](ctx, col, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return posts, int(total), nil
}

func (p *PostStore) Update(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.UpdatedAt = &now
	return replaceByID(ctx, p.s.col(ColPosts), post.ID, post)
}

func (p *PostStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, p.s.col(ColPosts), id)
}

func (p *PostStore) HealthCheck(ctx context.Context) error {
	return p.s.HealthCheck(ctx)
}
