package models

import "gorm.io/gorm"

type FileItem struct {
	gorm.Model

	S3Key       string `gorm:"uniqueIndex;not null" json:"s3Key"`
	FileSize    int64  `gorm:"not null" json:"fileSize"`
	ContentType string `json:"contentType"`
	IsPublic    bool   `gorm:"not null;default:false" json:"isPublic"`
	FileURL     string `json:"url"`

	UserID uint `gorm:"not null;index" json:"-"`
	Owner  User `gorm:"foreignKey:UserID" json:"-"`
}
