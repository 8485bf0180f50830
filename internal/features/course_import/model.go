package course_import

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	courseKeyPrefix  = "course-v1:"
	archiveExtension = ".tar.gz"
	defaultFilename  = "uploaded.tar.gz"
	testEvent        = "webhook.test"
)

var ErrInvalidCourseKey = errors.New("invalid course key")

// CourseKey is a parsed course-v1:{org}+{number}+{run} identifier
type CourseKey struct {
	Org    string
	Number string
	Run    string
}

func (k CourseKey) String() string {
	return courseKeyPrefix + k.Org + "+" + k.Number + "+" + k.Run
}

// ParseCourseKey requires the course-v1: prefix followed by exactly three
// non-empty +-separated segments.
func ParseCourseKey(s string) (CourseKey, error) {
	rest, ok := strings.CutPrefix(s, courseKeyPrefix)
	if !ok {
		return CourseKey{}, ErrInvalidCourseKey
	}
	parts := strings.Split(rest, "+")
	if len(parts) != 3 {
		return CourseKey{}, ErrInvalidCourseKey
	}
	for _, p := range parts {
		if p == "" {
			return CourseKey{}, ErrInvalidCourseKey
		}
	}
	return CourseKey{Org: parts[0], Number: parts[1], Run: parts[2]}, nil
}

// WebhookPayload is the JSON control document. Fields may be nested under
// "data" or sit at the top level; Data wins.
type WebhookPayload struct {
	Event     string       `json:"event"`
	APIKey    string       `json:"api_key"`
	UserEmail string       `json:"user_email"`
	CourseKey string       `json:"course_key"`
	Data      *WebhookData `json:"data"`
}

type WebhookData struct {
	APIKey    string `json:"api_key"`
	UserEmail string `json:"user_email"`
	CourseKey string `json:"course_key"`
}

func ParsePayload(raw []byte) (*WebhookPayload, error) {
	var p WebhookPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *WebhookPayload) Key() string {
	if p.Data != nil && p.Data.APIKey != "" {
		return p.Data.APIKey
	}
	return p.APIKey
}

// Email falls back to the form field when the payload carries none
func (p *WebhookPayload) Email(formValue string) string {
	if p.Data != nil && p.Data.UserEmail != "" {
		return p.Data.UserEmail
	}
	if formValue != "" {
		return formValue
	}
	return p.UserEmail
}

// CourseKeyString only reads data.course_key
func (p *WebhookPayload) CourseKeyString() string {
	if p.Data != nil {
		return p.Data.CourseKey
	}
	return ""
}

type TaskStatus string

const (
	TaskQueued TaskStatus = "queued"
)

// ImportTask is one queued course import, consumed by the import worker
type ImportTask struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TaskID     string             `bson:"task_id" json:"task_id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	CourseKey  string             `bson:"course_key" json:"course_key"`
	StagedPath string             `bson:"staged_path" json:"staged_path"`
	Filename   string             `bson:"filename" json:"filename"`
	Language   string             `bson:"language" json:"language"`
	Status     TaskStatus         `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// ImportRequest is a validated import ready to be executed
type ImportRequest struct {
	UserEmail string
	CourseKey CourseKey
	Filename  string
}

type ImportResult struct {
	CourseURL string `json:"course_url"`
	CourseKey string `json:"course_key"`
	TaskID    string `json:"task_id"`
}
