package main

import (
	"fmt"
	"log"
	"time"

	"go-coursecreator/internal/config"
	"go-coursecreator/internal/features/course_import"

	"github.com/spf13/pflag"
)

// One-shot version of the scheduled staging cleanup
func main() {
	olderThan := pflag.DurationP("older-than", "o", 0, "remove staged archives older than this (defaults to STAGING_RETENTION_HOURS)")
	dir := pflag.String("dir", "", "staging directory (defaults to STAGING_DIR)")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	retention := cfg.StagingRetention
	if *olderThan > 0 {
		retention = *olderThan
	}

	if *dir != "" {
		cfg.StagingDir = *dir
	}

	removed, err := course_import.NewDirStager(cfg).Cleanup(retention)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Removed %d staged archives from %s older than %s\n", removed, cfg.StagingDir, retention.Round(time.Minute))
}
