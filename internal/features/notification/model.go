package notification

// MessageType is the closed set of course-creation notifications
type MessageType string

const (
	CourseCreationSuccess    MessageType = "course_creation_success"
	CourseCreationFailure    MessageType = "course_creation_failure"
	CourseCreationProgress   MessageType = "course_creation_progress"
	CourseStructureGenerated MessageType = "course_structure_generated"
)

// Recipient identifies who receives a notification
type Recipient struct {
	UserID string
	Email  string
	Org    string
}

// Notification is a message type plus its type-specific parameters. The
// platform parameters are added by the service at send time.
type Notification struct {
	Type   MessageType
	To     Recipient
	Params map[string]any
}

func Success(to Recipient, courseKey, courseName string) Notification {
	return Notification{Type: CourseCreationSuccess, To: to, Params: map[string]any{
		"course_key":  courseKey,
		"course_name": courseName,
	}}
}

func Failure(to Recipient, courseTopic, errorMessage string) Notification {
	return Notification{Type: CourseCreationFailure, To: to, Params: map[string]any{
		"course_topic":  courseTopic,
		"error_message": errorMessage,
	}}
}

func Progress(to Recipient, courseTopic, progressMessage string) Notification {
	return Notification{Type: CourseCreationProgress, To: to, Params: map[string]any{
		"course_topic":     courseTopic,
		"progress_message": progressMessage,
	}}
}

func StructureGenerated(to Recipient, courseTopic string) Notification {
	return Notification{Type: CourseStructureGenerated, To: to, Params: map[string]any{
		"course_topic": courseTopic,
	}}
}
