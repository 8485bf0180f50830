package course_import

import (
	"context"
	"fmt"
	"time"

	"go-coursecreator/internal/database"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// TaskDispatcher hands a staged import to the asynchronous import worker.
// Enqueue returns as soon as the task is recorded.
type TaskDispatcher interface {
	Enqueue(ctx context.Context, userID, courseKey, stagedPath, filename, language string) (string, error)
}

type MongoTaskDispatcher struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewTaskDispatcher(db *database.MongodbDB) TaskDispatcher {
	return &MongoTaskDispatcher{
		collection: db.DB.Collection("import_tasks"),
		now:        time.Now,
	}
}

func (d *MongoTaskDispatcher) Enqueue(ctx context.Context, userID, courseKey, stagedPath, filename, language string) (string, error) {
	task := ImportTask{
		TaskID:     uuid.NewString(),
		UserID:     userID,
		CourseKey:  courseKey,
		StagedPath: stagedPath,
		Filename:   filename,
		Language:   language,
		Status:     TaskQueued,
		CreatedAt:  d.now().UTC(),
	}
	if _, err := d.collection.InsertOne(ctx, task); err != nil {
		return "", fmt.Errorf("failed to enqueue import task: %w", err)
	}
	return task.TaskID, nil
}
