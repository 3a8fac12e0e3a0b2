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

func reviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reviews", func(ctx *gin.Context) {
			var body types.CreateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			review := models.Review{
				ProductID: body.Product,
				UserID:    userId,
				Rating:    body.Rating,
				Comment:   body.Comment,
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
				if err := tx.Create(&review).Error; err != nil {
					return err
				}
				return refreshProductRatings(tx, body.Product)
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
			ctx.JSON(http.StatusCreated, gin.H{"data": review})
		}).
		GET("/products/:id/reviews", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var reviews []models.Review
			if err := db.
				Model(&models.Review{}).
				Where(&models.Review{ProductID: params.ID}).
				Preload("User").
				Order("created_at DESC").
				Find(&reviews).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
		}).
		PATCH("/reviews/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var review models.Review
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.Review{}).
					Where(&models.Review{ID: params.ID}).
					First(&review).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewDomainError(types.ErrRecordNotFound, "Could not find record.")
					}
					return err
				}
				if review.UserID != userId {
					return types.NewDomainError(types.ErrForbidden, "Only the author can edit this review")
				}
				updates := map[string]any{}
				if body.Rating != nil {
					updates["rating"] = *body.Rating
				}
				if body.Comment != nil {
					updates["comment"] = *body.Comment
				}
				if len(updates) == 0 {
					return nil
				}
				if err := tx.
					Model(&models.Review{}).
					Where(&models.Review{ID: params.ID}).
					Updates(updates).
					Error; err != nil {
					return err
				}
				return refreshProductRatings(tx, review.ProductID)
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
			ctx.JSON(http.StatusOK, gin.H{"data": review})
		}).
		DELETE("/reviews/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var review models.Review
				if err := tx.
					Model(&models.Review{}).
					Where(&models.Review{ID: params.ID}).
					First(&review).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewDomainError(types.ErrRecordNotFound, "Could not find record.")
					}
					return err
				}
				if review.UserID != userId {
					return types.NewDomainError(types.ErrForbidden, "Only the author can delete this review")
				}
				if err := tx.Delete(&models.Review{}, params.ID).Error; err != nil {
					return err
				}
				return refreshProductRatings(tx, review.ProductID)
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

// refreshProductRatings recomputes the denormalized rating fields on
// the product after any review write.
func refreshProductRatings(tx *gorm.DB, productId uint) error {
	var stats struct {
		Avg   float64
		Count uint
	}
	err := tx.
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where(&models.Review{ProductID: productId}).
		Scan(&stats).
		Error
	if err != nil {
		return err
	}
	return tx.
		Model(&models.Product{}).
		Where(&models.Product{ID: productId}).
		Updates(map[string]any{
			"ratings_average": stats.Avg,
			"ratings_count":   stats.Count,
		}).
		Error
}
