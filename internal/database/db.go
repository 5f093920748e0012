package database

import (
	"fmt"
	"time"

	"studio-site/internal/logging"
	"studio-site/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	attemptDelay = 2 * time.Second
)

// Open подключается к Postgres с повторами: база в docker-compose поднимается дольше сервиса.
func Open(dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 1; i <= maxAttempts; i++ {
		logging.Info().Int("attempt", i).Int("max", maxAttempts).Msg("connecting to DB")

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			logging.Info().Msg("connected to DB successfully")
			return db, nil
		}

		logging.Warn().Err(err).Msg("failed to connect to DB")
		time.Sleep(attemptDelay)
	}

	return nil, fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
}

// Migrate создаёт/обновляет все таблицы.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedAdmin создаёт администратора, если в базе нет ни одного.
func SeedAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := CreateUser(db, username, password, models.RoleAdmin); err != nil {
		return err
	}

	logging.Info().Str("username", username).Msg("created default admin user")
	return nil
}

// CreateUser хэширует пароль и сохраняет пользователя.
func CreateUser(db *gorm.DB, username, password string, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	if len(username) < 3 || len(password) < 8 {
		return nil, fmt.Errorf("username must be at least 3 and password at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}
	return &user, nil
}

// SeedCategories заполняет справочник категорий интерьера, пропуская уже существующие.
func SeedCategories(db *gorm.DB) error {
	for i, cat := range models.Categories {
		var count int64
		if err := db.Model(&models.InteriorCategory{}).
			Where("category_key = ?", cat).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check category %s: %w", cat, err)
		}
		if count > 0 {
			continue
		}

		row := models.InteriorCategory{
			ContentMeta: models.ContentMeta{SortOrder: i},
			Key:         cat,
			Name:        cat.Label(),
		}
		if err := db.Create(&row).Error; err != nil {
			logging.Warn().Err(err).Str("category", string(cat)).Msg("failed to seed category")
			continue
		}
	}
	return nil
}
