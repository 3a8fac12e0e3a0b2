package main

import (
	"daily/src/db"
	"daily/src/models"
	"daily/src/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func favouriteHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/favourites", func(ctx *gin.Context) {
			var body types.CreateFavouriteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			favourite := models.Favourite{
				UserID:    userId,
				ProductID: body.Product,
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				var product models.Product
				if err := tx.
					Model(&models.Product{}).
					Where(&models.Product{ID: body.Product}).
					First(&product).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewDomainError(types.ErrProductNotFound, "Could not find any product.")
					}
					return err
				}
				return tx.
					Where(&models.Favourite{UserID: userId, ProductID: body.Product}).
					FirstOrCreate(&favourite).
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
			ctx.JSON(http.StatusCreated, gin.H{"data": favourite})
		}).
		GET("/favourites", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var favourites []models.Favourite
			if err := db.
				Model(&models.Favourite{}).
				Where(&models.Favourite{UserID: userId}).
				Preload("Product").
				Preload("Product.Owner").
				Order("created_at DESC").
				Find(&favourites).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": favourites, "count": len(favourites)})
		}).
		DELETE("/favourites/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var favourite models.Favourite
				if err := tx.
					Model(&models.Favourite{}).
					Where(&models.Favourite{ID: params.ID, UserID: userId}).
					First(&favourite).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewDomainError(types.ErrRecordNotFound, "Could not find record.")
					}
					return err
				}
				return tx.Delete(&models.Favourite{}, params.ID).Error
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
			ctx.Status(http.StatusNoContent)
		})
	return g
}
