package catalog

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"moviechamp/src/config"
	models "moviechamp/src/modules/catalog/models"
	"moviechamp/src/utils"
)

type VJRequest struct {
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

func CreateVJ(req VJRequest) (*models.VJ, *utils.ServiceError) {
	db := config.DB

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.BadRequest("VJ name is required")
	}

	var existing models.VJ
	err := db.Where("name = ?", name).Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("VJ with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking VJ conflict: %v", err)
		return nil, utils.ServerError("Failed to create VJ")
	}

	vj := models.VJ{
		Name: name,
		Bio:  trimmedOrNil(req.Bio),
	}
	if req.AvatarURL != nil && strings.TrimSpace(*req.AvatarURL) != "" {
		vj.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}

	if err := db.Create(&vj).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("VJ with this name already exists")
		}
		log.Printf("Error creating VJ: %v", err)
		return nil, utils.ServerError("Failed to create VJ")
	}

	return &vj, nil
}

func ListVJs() ([]models.VJ, *utils.ServiceError) {
	db := config.DB

	var vjs []models.VJ
	if err := db.Order("name asc").Find(&vjs).Error; err != nil {
		log.Printf("Error fetching VJs: %v", err)
		return nil, utils.ServerError("Failed to fetch VJs")
	}

	counts, svcErr := movieCountsBy("vj_id")
	if svcErr != nil {
		return nil, svcErr
	}
	for i := range vjs {
		vjs[i].MovieCount = counts[vjs[i].ID]
	}

	return vjs, nil
}

func GetVJByID(id string) (*models.VJ, *utils.ServiceError) {
	return getVJ("id = ?", id)
}

func GetVJByName(name string) (*models.VJ, *utils.ServiceError) {
	return getVJ("name = ?", name)
}

func getVJ(query string, arg string) (*models.VJ, *utils.ServiceError) {
	db := config.DB

	var vj models.VJ
	if err := db.Where(query, arg).First(&vj).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("VJ not found")
		}
		log.Printf("Error fetching VJ: %v", err)
		return nil, utils.ServerError("Server error")
	}

	if err := db.Model(&models.Movie{}).Where("vj_id = ?", vj.ID).Count(&vj.MovieCount).Error; err != nil {
		log.Printf("Error counting VJ movies: %v", err)
		return nil, utils.ServerError("Server error")
	}

	return &vj, nil
}

func UpdateVJ(id string, req VJRequest) (*models.VJ, *utils.ServiceError) {
	db := config.DB

	var existing models.VJ
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("VJ not found")
		}
		log.Printf("Error fetching VJ: %v", err)
		return nil, utils.ServerError("Failed to update VJ")
	}

	name := strings.TrimSpace(req.Name)
	if name != "" && name != existing.Name {
		var conflict models.VJ
		err := db.Where("name = ? AND id <> ?", name, id).Select("id").First(&conflict).Error
		if err == nil {
			return nil, utils.Conflict("VJ with this name already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking VJ conflict: %v", err)
			return nil, utils.ServerError("Failed to update VJ")
		}
		existing.Name = name
	}

	if req.Bio != nil {
		existing.Bio = trimmedOrNil(req.Bio)
	}
	if req.AvatarURL != nil && strings.TrimSpace(*req.AvatarURL) != "" {
		existing.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}

	if err := db.Save(&existing).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("VJ with this name already exists")
		}
		log.Printf("Error updating VJ: %v", err)
		return nil, utils.ServerError("Failed to update VJ")
	}

	if err := db.Model(&models.Movie{}).Where("vj_id = ?", id).Count(&existing.MovieCount).Error; err != nil {
		log.Printf("Error counting VJ movies: %v", err)
		return nil, utils.ServerError("Failed to update VJ")
	}

	return &existing, nil
}

func DeleteVJ(id string) *utils.ServiceError {
	db := config.DB

	var vj models.VJ
	if err := db.Select("id").First(&vj, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("VJ not found")
		}
		log.Printf("Error fetching VJ: %v", err)
		return utils.ServerError("Failed to delete VJ")
	}

	var movieCount int64
	if err := db.Model(&models.Movie{}).Where("vj_id = ?", id).Count(&movieCount).Error; err != nil {
		log.Printf("Error counting VJ movies: %v", err)
		return utils.ServerError("Failed to delete VJ")
	}
	if movieCount > 0 {
		return utils.BadRequest(fmt.Sprintf("Cannot delete VJ. It has %d movie(s) associated with it.", movieCount))
	}

	if err := db.Delete(&models.VJ{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting VJ: %v", err)
		return utils.ServerError("Failed to delete VJ")
	}

	return nil
}
