package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/bohdan-dev/fileshare/db"
	"github.com/bohdan-dev/fileshare/internal/models"
	"github.com/bohdan-dev/fileshare/internal/storage"
	"github.com/bohdan-dev/fileshare/internal/types"
	"github.com/bohdan-dev/fileshare/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UploadFile stores the multipart file in the bucket under
// users/{email}/{filename} and persists its metadata. The object write happens
// first; if the metadata insert then fails, the object is deleted again so no
// orphan is left in the bucket.
func UploadFile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User with email '" + currentUser.Email + "' was not found"})
		return
	}

	fileHeader, err := ctx.FormFile("file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing file in request"})
		return
	}

	isPublic, err := strconv.ParseBool(ctx.PostForm("isPublic"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid isPublic value"})
		return
	}

	s3Key := "users/" + user.Email + "/" + fileHeader.Filename

	var existingFile models.FileItem

	err = db.DB.Where("s3_key = ?", s3Key).First(&existingFile).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File with name '" + fileHeader.Filename + "' already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	file, err := fileHeader.Open()

	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)

	if err != nil {
		log.Printf("Failed to read uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	url, err := storage.Store.Put(ctx.Request.Context(), s3Key, body, contentType, isPublic)

	if err != nil {
		log.Printf("Failed to upload %s to object storage: %v", s3Key, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	newFile := models.FileItem{
		S3Key:       s3Key,
		FileSize:    fileHeader.Size,
		ContentType: contentType,
		IsPublic:    isPublic,
		FileURL:     url,
		UserID:      user.ID,
	}

	if err := db.DB.Create(&newFile).Error; err != nil {
		// The object made it to the bucket but the row did not: delete the
		// object again so the two stores stay consistent.
		if delErr := storage.Store.Delete(ctx.Request.Context(), s3Key); delErr != nil {
			log.Printf("Failed to delete orphaned object %s: %v", s3Key, delErr)
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "File with name '" + fileHeader.Filename + "' already exists"})
			return
		}
		log.Printf("Failed to save file metadata for %s: %v", s3Key, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	log.Printf("File %s uploaded by %s", s3Key, user.Email)

	ctx.JSON(http.StatusOK, types.FileItemResponse{
		S3Key: newFile.S3Key,
		URL:   newFile.FileURL,
	})
}

func MyFiles(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var files []models.FileItem

	if err := db.DB.Where("user_id = ?", currentUser.ID).Find(&files).Error; err != nil {
		log.Printf("Failed to list files for user %d: %v", currentUser.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, files)
}

// DeleteFile removes the object from the bucket, then its metadata row. If the
// storage delete fails the row is left intact so the file stays listed.
func DeleteFile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	s3Key := ctx.Query("s3Key")

	if s3Key == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "s3Key query parameter is required"})
		return
	}

	var file models.FileItem

	err = db.DB.Where("s3_key = ?", s3Key).First(&file).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "File was not found"})
			return
		}
		log.Printf("Database error when fetching file %s: %v", s3Key, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if file.UserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := storage.Store.Delete(ctx.Request.Context(), s3Key); err != nil {
		log.Printf("Failed to delete %s from object storage: %v", s3Key, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	// Hard delete: the unique index on s3_key must not keep a soft-deleted row
	// around, uploading the same filename again has to work.
	if err := db.DB.Unscoped().Delete(&file).Error; err != nil {
		log.Printf("Failed to delete file metadata for %s: %v", s3Key, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	log.Printf("File %s deleted by %s", s3Key, currentUser.Email)

	ctx.String(http.StatusOK, "File was deleted successfully")
}
