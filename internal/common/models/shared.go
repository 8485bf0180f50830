package models

import (
	"time"
)

type ContextKey string

const (
	OrgKey ContextKey = "org"
)

// Log is a persisted application log line
type Log struct {
	AppId        string    `bson:"app_id" json:"app_id"`
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	IpAddress    string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserId       string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}

// MaskSensitive returns a copy of params with secret-looking keys replaced,
// suitable for logging.
func MaskSensitive(params map[string]any) map[string]any {
	sensitive := []string{"password", "token", "client_id", "client_secret", "Authorization", "secret", "api_key"}
	masked := make(map[string]any, len(params))
	for k, v := range params {
		masked[k] = v
	}
	for _, k := range sensitive {
		if _, ok := masked[k]; ok {
			masked[k] = "***"
		}
	}
	return masked
}
