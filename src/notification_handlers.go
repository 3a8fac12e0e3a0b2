package main

import (
	"daily/src/db"
	"daily/src/models"
	"daily/src/types"
	"daily/src/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/notifications", func(ctx *gin.Context) {
			var params types.SearchQueryParams
			if err := ctx.ShouldBindQuery(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var notifications []models.Notification
			query := db.
				Model(&models.Notification{}).
				Where(&models.Notification{ReceiverID: userId}).
				Preload("Sender").
				Preload("Rent").
				Preload("Product")
			if err := utils.ApplySearchQuery(query, &params).Find(&notifications).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var unread int64
			if err := db.
				Model(&models.Notification{}).
				Where(&models.Notification{ReceiverID: userId}).
				Where("is_read = ?", false).
				Count(&unread).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "unread_count": unread})
		}).
		PATCH("/notifications/:id/read", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var notification models.Notification
				if err := tx.
					Model(&models.Notification{}).
					Where(&models.Notification{ID: params.ID, ReceiverID: userId}).
					First(&notification).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewDomainError(types.ErrRecordNotFound, "Could not find record.")
					}
					return err
				}
				return tx.
					Model(&models.Notification{}).
					Where(&models.Notification{ID: params.ID}).
					Update("is_read", true).
					Error
			})
			if err != nil {
				var derr *types.DomainError
				if errors.As(err, &derr) {
					ctx.JSON(derr.Status(), gin.H{"error": derr.Message})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusOK)
		}).
		PUT("/notifications/read", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Notification{}).
					Where(&models.Notification{ReceiverID: userId}).
					Where("is_read = ?", false).
					Update("is_read", true).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusOK)
		})
	return g
}
