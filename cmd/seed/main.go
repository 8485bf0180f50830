package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"go-coursecreator/internal/config"
	"go-coursecreator/internal/database"
	"go-coursecreator/internal/features/user"
	"go-coursecreator/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed mirrors development users into the users collection so the course
// creator and import webhook can resolve them without a running LMS.
func Seed(
	lc fx.Lifecycle,
	userRepo user.UserRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				usersPath := "seeds/users.json"
				if len(os.Args) > 1 {
					usersPath = os.Args[1]
				}
				logger.Info("Seeding users", zap.String("file", usersPath))

				b, err := os.ReadFile(usersPath)
				if err != nil {
					logger.Error("Failed to read users file", zap.Error(err))
					return
				}
				var users []user.User
				if err := json.Unmarshal(b, &users); err != nil {
					logger.Error("Failed to parse users file", zap.Error(err))
					return
				}

				seeded := 0
				for i := range users {
					u := &users[i]
					if u.ID == "" || u.Email == "" {
						logger.Warn("Skipping user without id or email", zap.String("username", u.Username))
						continue
					}
					if err := userRepo.Upsert(context.Background(), u); err != nil {
						logger.Error("Failed to seed user", zap.String("user_id", u.ID), zap.Error(err))
						continue
					}
					seeded++
				}
				logger.Info("Seeding completed", zap.Int("users", seeded))
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			user.NewUserRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	<-app.Done()
}
