package main

import (
	"context"
	"flag"
	"time"

	"bed-admission-service/cmd/bootstrap"
	"bed-admission-service/config"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/infrastructure/database"
	"bed-admission-service/internal/repository"
	"bed-admission-service/pkg/jwt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	force := flag.Bool("force", false, "seed even when active beds already exist")
	rooms := flag.Int("rooms", 4, "rooms per ward")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed development tokens")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := bootstrap.NewLogger(cfg.App.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DB, log, cfg.App.Timezone)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var existing int64
	if err := db.WithContext(ctx).Model(&entity.Bed{}).Where("is_active = ?", true).Count(&existing).Error; err != nil {
		log.Fatalf("Failed to count beds: %v", err)
	}

	if existing > 0 && !*force {
		log.Infof("Skipping bed seed: %d active beds already exist (use -force to add more)", existing)
	} else {
		beds := planBeds(gofakeit.New(0), *rooms, time.Now())
		bedRepo := repository.NewBedRepository()

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i := range beds {
				if err := bedRepo.Create(tx, &beds[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to seed beds: %v", err)
		}
		log.Infof("Seeded %d beds across %d wards", len(beds), len(seedWards))
	}

	jwtService := jwt.NewJWTService(cfg.JWT)
	for _, role := range []string{entity.RoleAdmin, entity.RoleStaff} {
		token, _, err := jwtService.GenerateToken("seed-"+role, role, *tokenTTL)
		if err != nil {
			log.Fatalf("Failed to sign %s token: %v", role, err)
		}
		log.WithField("role", role).Infof("Development token: %s", token)
	}
}
