package main

import (
	"context"
	"daily/src/common"
	"daily/src/db"
	"daily/src/lib"
	"daily/src/models"
	"daily/src/types"
	"daily/src/utils"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func productHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/products", func(ctx *gin.Context) {
			var body types.CreateProductRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			status := types.PRODUCT_AVAILABLE
			if body.Status != nil {
				status = *body.Status
			}
			product := models.Product{
				OwnerID:                   userId,
				Title:                     body.Title,
				Slug:                      slug.Make(body.Title),
				Description:               body.Description,
				Status:                    status,
				RetailPrice:               body.RetailPrice,
				RentPerDayPrice:           body.RentPerDayPrice,
				MinimalRentalPeriodInDays: body.MinimalRentalPeriodInDays,
				CleaningPrice:             body.CleaningPrice,
				Postage:                   body.Postage,
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&product).Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			go lib.GetProductCountCache().Invalidate(context.Background())

			productId := product.ID
			common.PublishActivity(&common.ActivityEvent{
				ActivityName: types.ACTIVITY_PRODUCT,
				ActivityType: types.ACTIVITY_CREATED,
				Sender:       userId,
				Receiver:     userId,
				Product:      &productId,
			})
			ctx.JSON(http.StatusCreated, gin.H{"data": product})
		}).
		GET("/products", func(ctx *gin.Context) {
			var params types.SearchQueryParams
			if err := ctx.ShouldBindQuery(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var filters types.ProductQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			applyFilters := func(tx *gorm.DB) *gorm.DB {
				if filters.Owner > 0 {
					tx = tx.Where("owner_id = ?", filters.Owner)
				}
				if filters.Status != "" {
					tx = tx.Where("status = ?", filters.Status)
				}
				if filters.Search != "" {
					tx = tx.Where("title ILIKE ?", fmt.Sprintf("%%%s%%", filters.Search))
				}
				return tx
			}

			var products []models.Product
			query := applyFilters(db.Model(&models.Product{})).Preload("Owner")
			if err := utils.ApplySearchQuery(query, &params).Find(&products).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if !params.Pagination {
				ctx.JSON(http.StatusOK, gin.H{"data": products})
				return
			}

			cache := lib.GetProductCountCache()
			key := cache.Key(map[string]string{
				"owner":  fmt.Sprint(filters.Owner),
				"status": string(filters.Status),
				"search": filters.Search,
			})
			total, ok := cache.Get(ctx, key)
			if !ok {
				if err := applyFilters(db.Model(&models.Product{})).Count(&total).Error; err != nil {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				cache.Set(ctx, key, total)
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":       products,
				"pagination": types.Pagination{Total: total, Limit: params.Limit, Skip: params.Skip},
			})
		}).
		GET("/products/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var product models.Product
			if err := db.
				Model(&models.Product{}).
				Where(&models.Product{ID: params.ID}).
				Preload("Owner").
				Preload("Reviews").
				First(&product).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Could not find any product."})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			go func() {
				db.
					Model(&models.Product{}).
					Where(&models.Product{ID: params.ID}).
					Update("view_count", gorm.Expr("view_count + 1"))
			}()
			ctx.JSON(http.StatusOK, gin.H{"data": product})
		}).
		PATCH("/products/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateProductRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var product models.Product
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.Product{}).
					Where(&models.Product{ID: params.ID}).
					First(&product).
					Error; err != nil {
					return err
				}
				if product.OwnerID != userId {
					return types.NewDomainError(types.ErrForbidden, "Only the owner can edit this product")
				}
				updates := map[string]any{}
				if body.Title != nil {
					updates["title"] = *body.Title
					updates["slug"] = slug.Make(*body.Title)
				}
				if body.Description != nil {
					updates["description"] = *body.Description
				}
				if body.RetailPrice != nil {
					updates["retail_price"] = *body.RetailPrice
				}
				if body.RentPerDayPrice != nil {
					updates["rent_per_day_price"] = *body.RentPerDayPrice
				}
				if body.MinimalRentalPeriodInDays != nil {
					updates["minimal_rental_period_in_days"] = *body.MinimalRentalPeriodInDays
				}
				if body.CleaningPrice != nil {
					updates["cleaning_price"] = *body.CleaningPrice
				}
				if body.Postage != nil {
					updates["postage"] = *body.Postage
				}
				if body.Status != nil {
					updates["status"] = *body.Status
				}
				if len(updates) == 0 {
					return nil
				}
				return tx.
					Model(&models.Product{}).
					Where(&models.Product{ID: params.ID}).
					Updates(updates).
					Error
			})
			if err != nil {
				var derr *types.DomainError
				if errors.As(err, &derr) {
					ctx.JSON(derr.Status(), gin.H{"error": derr.Message})
					return
				}
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Could not find any product."})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			go lib.GetProductCountCache().Invalidate(context.Background())

			var updated models.Product
			if err := db.
				Model(&models.Product{}).
				Where(&models.Product{ID: params.ID}).
				Preload("Owner").
				First(&updated).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": updated})
		}).
		DELETE("/products/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var product models.Product
				if err := tx.
					Model(&models.Product{}).
					Where(&models.Product{ID: params.ID}).
					First(&product).
					Error; err != nil {
					return err
				}
				if product.OwnerID != userId {
					return types.NewDomainError(types.ErrForbidden, "Only the owner can delete this product")
				}
				return tx.Delete(&models.Product{}, params.ID).Error
			})
			if err != nil {
				var derr *types.DomainError
				if errors.As(err, &derr) {
					ctx.JSON(derr.Status(), gin.H{"error": derr.Message})
					return
				}
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Could not find any product."})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			go lib.GetProductCountCache().Invalidate(context.Background())
			ctx.Status(http.StatusNoContent)
		})
	return g
}
