package user

// User is a platform account as mirrored into the "users" collection.
// The LMS owns these rows; this service only reads them.
type User struct {
	ID       string `json:"id" bson:"_id"`
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
	FullName string `json:"full_name,omitempty" bson:"full_name,omitempty"`
	IsActive bool   `json:"is_active" bson:"is_active"`
}
