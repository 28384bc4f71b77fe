package mongostore

import (
	"context"
	"time"

	"taskblog/internal/models"
	"taskblog/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type TaskStore struct {
	s *Store
}

func (t *TaskStore) Create(ctx context.Context, task *models.Task) error {
	return insertOne(ctx, t.s.col(ColTasks), task)
}

func (t *TaskStore) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return findOne[models.Task](ctx, t.s.col(ColTasks), bson.D{{Key: "_id", Value: id}})
}

var taskSortFields = map[string]string{
	"created_at": "created_at",
	"due_date":   "due_date",
	"priority":   "priority",
	"title":      "title",
}

func (t *TaskStore) List(ctx context.Context, filter repository.TaskFilter) ([]*models.Task, int, error) {
	query := bson.D{}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}
	if filter.Priority != "" {
		query = append(query, bson.E{Key: "priority", Value: filter.Priority})
	}

	col := t.s.col(ColTasks)
	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapError(err)
	}

	sortField, ok := taskSortFields[filter.SortBy]
	if !ok {
		sortField = "created_at"
	}
	dir := -1
	if filter.Order == "asc" {
		dir = 1
	}

	skip, limit := countAndPage(filter.Page, filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: dir}}).
		SetSkip(skip).
		SetLimit(limit)

	tasks, err := findMany[models.Task](ctx, col, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return tasks, int(total), nil
}

func (t *TaskStore) Update(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	task.UpdatedAt = &now
	return replaceByID(ctx, t.s.col(ColTasks), task.ID, task)
}

func (t *TaskStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, t.s.col(ColTasks), id)
}

// Stats groups tasks by status and priority and counts the ones past
// their due date that are not completed.
func (t *TaskStore) Stats(ctx context.Context) (*repository.TaskStats, error) {
	col := t.s.col(ColTasks)

	byStatus, err := groupCount(ctx, col, "$status")
	if err != nil {
		return nil, err
	}
	byPriority, err := groupCount(ctx, col, "$priority")
	if err != nil {
		return nil, err
	}

	overdue, err := col.CountDocuments(ctx, bson.D{
		{Key: "due_date", Value: bson.D{{Key: "$lt", Value: time.Now().UTC()}}},
		{Key: "status", Value: bson.D{{Key: "$ne", Value: models.TaskStatusCompleted}}},
	})
	if err != nil {
		return nil, wrapError(err)
	}

	return &repository.TaskStats{
		ByStatus:   byStatus,
		ByPriority: byPriority,
		Overdue:    int(overdue),
	}, nil
}

func groupCount(ctx context.Context, col *mongo.Collection, field string) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, wrapError(err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

func (t *TaskStore) HealthCheck(ctx context.Context) error {
	return t.s.HealthCheck(ctx)
}
