package files

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/files/services"
	"moviechamp/src/utils"
)

// ServeStatic streams an object out of the media bucket.
func ServeStatic(c *gin.Context) {
	obj, svcErr := services.FetchObject(c.Request.Context(), c.Param("filepath"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	defer obj.Reader.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Reader, nil)
}

// UploadMedia receives a multipart file and stores it under a dated path.
func UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.Fail(c, utils.BadRequest("A file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.Fail(c, utils.ServerError("Failed to read upload"))
		return
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	objectPath := fmt.Sprintf("uploads/%s/%s%s", time.Now().Format("2006/01"), utils.NewID(), ext)

	contentType := file.Header.Get("Content-Type")
	svcErr := services.StoreObject(c.Request.Context(), objectPath, contentType, file.Size, src)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	utils.JSON(c, http.StatusCreated, gin.H{"path": "/static/" + objectPath})
}
