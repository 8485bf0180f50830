package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	FSPath      string // Physical directory for attachment storage
	FSURL       string // URL path prefix for attachment access
	DefaultOrg  string

	// External AI course-generation service
	AICCBaseURL       string
	AICCAPIKey        string
	AICCCreateTimeout time.Duration
	AICCReadTimeout   time.Duration
	AICCListPageSize  int

	// Shared secret expected on the import webhook. Empty rejects every call.
	WebhookAPIKey string

	LMSRootURL  string
	CMSRootURL  string
	CMSAPIToken string

	StagingDir             string
	StagingRetention       time.Duration
	StagingCleanupSchedule string

	PlatformName         string
	ReplyToEmail         string
	EnableCourseEmails   bool
	NotificationLanguage string
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPassword         string
	SMTPFrom             string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "course-creator"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "course-creator"),
		FSPath:      getEnv("FS_PATH", "./media"),
		FSURL:       getEnv("FS_URL", "/media"),
		DefaultOrg:  getEnv("DEFAULT_ORG", "AI"),

		AICCBaseURL:       strings.TrimRight(getEnv("AICC_BASE_URL", "http://localhost:8001"), "/"),
		AICCAPIKey:        getEnv("AICC_API_KEY", ""),
		AICCCreateTimeout: time.Duration(getEnvInt("AICC_CREATE_TIMEOUT_SECONDS", 300)) * time.Second,
		AICCReadTimeout:   time.Duration(getEnvInt("AICC_READ_TIMEOUT_SECONDS", 30)) * time.Second,
		AICCListPageSize:  getEnvInt("AICC_LIST_PAGE_SIZE", 1000),

		WebhookAPIKey: getEnv("BLENDX_AICC_KEY", ""),

		LMSRootURL:  strings.TrimRight(getEnv("LMS_ROOT_URL", ""), "/"),
		CMSRootURL:  strings.TrimRight(getEnv("CMS_ROOT_URL", ""), "/"),
		CMSAPIToken: getEnv("CMS_API_TOKEN", ""),

		StagingDir:             getEnv("STAGING_DIR", "course_exports"),
		StagingRetention:       time.Duration(getEnvInt("STAGING_RETENTION_HOURS", 72)) * time.Hour,
		StagingCleanupSchedule: getEnv("STAGING_CLEANUP_SCHEDULE", "@hourly"),

		PlatformName:         getEnv("PLATFORM_NAME", "BlendX"),
		ReplyToEmail:         getEnv("REPLY_TO_EMAIL", "contact@blend-ed.com"),
		EnableCourseEmails:   strings.ToLower(getEnv("ENABLE_COURSE_CREATION_EMAILS", "true")) == "true",
		NotificationLanguage: getEnv("EMAIL_NOTIFICATION_LANGUAGE", "en"),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 587),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:             getEnv("SMTP_FROM", ""),
	}, nil
}

// DashboardURL is the learner dashboard linked from notification emails.
func (c *Config) DashboardURL() string {
	return c.LMSRootURL + "/dashboard"
}

func (c *Config) CourseURL(courseKey string) string {
	return c.LMSRootURL + "/courses/" + courseKey + "/course/"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s (%q), using %d", key, value, fallback)
		return fallback
	}
	return n
}
