package repositories

import (
	"github.com/specdeploy/database"
	"github.com/specdeploy/models"
)

// AppRepository handles database operations for apps
type AppRepository struct{}

// NewAppRepository creates a new app repository instance
func NewAppRepository() *AppRepository {
	return &AppRepository{}
}

// FindAll retrieves all apps
func (r *AppRepository) FindAll() ([]models.App, error) {
	var apps []models.App
	result := database.DB.Find(&apps)
	return apps, result.Error
}

// FindByID retrieves an app by its ID
func (r *AppRepository) FindByID(id string) (models.App, error) {
	var app models.App
	result := database.DB.First(&app, "id = ?", id)
	return app, result.Error
}

// FindByUserID retrieves all apps owned by a user
func (r *AppRepository) FindByUserID(userID string) ([]models.App, error) {
	var apps []models.App
	result := database.DB.Where("user_id = ?", userID).Find(&apps)
	return apps, result.Error
}

// ExistsByName checks whether an app name is already taken
func (r *AppRepository) ExistsByName(name string) (bool, error) {
	var count int64
	result := database.DB.Model(&models.App{}).Where("name = ?", name).Count(&count)
	return count > 0, result.Error
}

// GetOwnerID returns the owning user of an app
func (r *AppRepository) GetOwnerID(id string) (string, error) {
	var app models.App
	result := database.DB.Select("user_id").First(&app, "id = ?", id)
	return app.UserID, result.Error
}

// Create inserts a new app into the database
func (r *AppRepository) Create(app models.App) (models.App, error) {
	result := database.DB.Create(&app)
	return app, result.Error
}

// Update modifies an existing app
func (r *AppRepository) Update(app models.App) error {
	result := database.DB.Save(&app)
	return result.Error
}

// Delete removes an app from the database
func (r *AppRepository) Delete(id string) error {
	result := database.DB.Delete(&models.App{}, "id = ?", id)
	return result.Error
}
