package config

import (
	"github.com/chenson2018/website/global"
	"github.com/chenson2018/website/models"
	log "github.com/sirupsen/logrus"
)

// MigrateDB creates the articles and emails tables when database.auto_migrate
// is set. Production schemas are managed outside the application.
func MigrateDB() {
	if !AppConfig.Database.AutoMigrate {
		return
	}
	err := global.DB.AutoMigrate(
		&models.Article{},
		&models.Subscriber{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database migration completed successfully")
}
