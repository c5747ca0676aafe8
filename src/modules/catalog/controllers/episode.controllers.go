package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/catalog/services"
	events "moviechamp/src/services"
	"moviechamp/src/utils"
)

func CreateEpisode(c *gin.Context) {
	var req services.EpisodeRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	episode, svcErr := services.CreateEpisode(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("episode.created", episode)
	utils.JSON(c, http.StatusCreated, episode)
}

func ListEpisodes(c *gin.Context) {
	episodes, svcErr := services.ListEpisodes(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, episodes)
}

func GetEpisode(c *gin.Context) {
	episode, svcErr := services.GetEpisodeByID(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, episode)
}

func UpdateEpisode(c *gin.Context) {
	var req services.EpisodeRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	episode, svcErr := services.UpdateEpisode(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("episode.updated", episode)
	utils.JSON(c, http.StatusOK, episode)
}

func DeleteEpisode(c *gin.Context) {
	id := c.Param("id")
	if svcErr := services.DeleteEpisode(id); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("episode.deleted", gin.H{"id": id})
	utils.JSONMessage(c, http.StatusOK, "Episode deleted successfully")
}

func IncrementEpisodeViews(c *gin.Context) {
	episode, svcErr := services.IncrementEpisodeViews(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, episode)
}

func NextEpisode(c *gin.Context) {
	episode, svcErr := services.NextEpisode(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, episode)
}

func PreviousEpisode(c *gin.Context) {
	episode, svcErr := services.PreviousEpisode(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, episode)
}
