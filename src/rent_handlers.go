package main

import (
	"context"
	"daily/src/common"
	"daily/src/config"
	"daily/src/db"
	"daily/src/lib"
	"daily/src/models"
	"daily/src/types"
	"daily/src/utils"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

func rentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/rents", func(ctx *gin.Context) {
			var body types.CreateRentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			rent, err := utils.CreateRent(&body, userId)
			if err != nil {
				var derr *types.DomainError
				if errors.As(err, &derr) {
					ctx.JSON(derr.Status(), gin.H{"error": derr.Message, "code": derr.ErrCode})
					return
				}
				log.Printf("Error creating rent: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}

			rentId := rent.ID
			productId := rent.ProductID
			common.PublishActivity(&common.ActivityEvent{
				ActivityName: types.ACTIVITY_RENT_REQUEST,
				ActivityType: types.ACTIVITY_SEND,
				Sender:       userId,
				Receiver:     rent.OwnerID,
				Rent:         &rentId,
				Product:      &productId,
			})
			if rent.Owner != nil && rent.Owner.Email != "" && rent.Product != nil {
				go lib.KafkaProduceMessage("emailsProducer", config.EmailsTopic, map[string]any{
					"to":      rent.Owner.Email,
					"subject": "New rental request",
					"body":    fmt.Sprintf("You have a new rental request for %s", rent.Product.Title),
				})
			}

			ctx.JSON(http.StatusCreated, gin.H{"data": rent})
		}).
		GET("/rents", func(ctx *gin.Context) {
			var params types.SearchQueryParams
			if err := ctx.ShouldBindQuery(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var filters types.RentQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			applyFilters := func(tx *gorm.DB) *gorm.DB {
				if filters.Product > 0 {
					tx = tx.Where("product_id = ?", filters.Product)
				}
				if filters.Owner > 0 {
					tx = tx.Where("owner_id = ?", filters.Owner)
				}
				if filters.Customer > 0 {
					tx = tx.Where("customer_id = ?", filters.Customer)
				}
				if filters.Status != "" {
					tx = tx.Where("status = ?", filters.Status)
				}
				if filters.Payment != "" {
					tx = tx.Where("payment_status = ?", filters.Payment)
				}
				// Without an explicit party filter only your own rents show up.
				if filters.Owner == 0 && filters.Customer == 0 {
					tx = tx.Where("owner_id = ? OR customer_id = ?", userId, userId)
				}
				return tx
			}

			var rents []models.Rent
			query := applyFilters(db.Model(&models.Rent{})).
				Preload("Customer").
				Preload("Owner").
				Preload("Product")
			if err := utils.ApplySearchQuery(query, &params).Find(&rents).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if !params.Pagination {
				ctx.JSON(http.StatusOK, gin.H{"data": rents})
				return
			}
			var total int64
			if err := applyFilters(db.Model(&models.Rent{})).Count(&total).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":       rents,
				"pagination": types.Pagination{Total: total, Limit: params.Limit, Skip: params.Skip},
			})
		}).
		GET("/rents/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			rent, err := utils.GetRent(params.ID)
			if err != nil {
				var derr *types.DomainError
				if errors.As(err, &derr) {
					ctx.JSON(derr.Status(), gin.H{"error": derr.Message})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			if rent.CustomerID != userId && rent.OwnerID != userId {
				ctx.Status(http.StatusForbidden)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rent})
		}).
		PATCH("/rents/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateRentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var rent models.Rent
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.Rent{}).
					Where(&models.Rent{ID: params.ID}).
					First(&rent).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewDomainError(types.ErrRecordNotFound, "Could not find record.")
					}
					return err
				}
				updates := map[string]any{}
				if body.Status != nil {
					// Approving or denying is the owner's call.
					if rent.OwnerID != userId {
						return types.NewDomainError(types.ErrForbidden, "Only the product owner can change the rent status")
					}
					updates["status"] = *body.Status
				}
				if body.PaymentStatus != nil {
					if rent.OwnerID != userId {
						return types.NewDomainError(types.ErrForbidden, "Only the product owner can change the payment status")
					}
					updates["payment_status"] = *body.PaymentStatus
				}
				if body.NotesForOwner != nil {
					if rent.CustomerID != userId {
						return types.NewDomainError(types.ErrForbidden, "Only the customer can edit the notes")
					}
					updates["notes_for_owner"] = *body.NotesForOwner
				}
				if len(updates) == 0 {
					return nil
				}
				return tx.
					Model(&models.Rent{}).
					Where(&models.Rent{ID: params.ID}).
					Updates(updates).
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

			updated, err := utils.GetRent(params.ID)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if body.Status != nil {
				activityType := types.ACTIVITY_APPROVED
				if *body.Status == types.RENT_DENIED {
					activityType = types.ACTIVITY_DENIED
					if rent.CheckoutSessionId != nil {
						go cancelCheckoutSession(*rent.CheckoutSessionId)
					}
				}
				rentId := updated.ID
				productId := updated.ProductID
				common.PublishActivity(&common.ActivityEvent{
					ActivityName: types.ACTIVITY_RENT_REQUEST,
					ActivityType: activityType,
					Sender:       userId,
					Receiver:     updated.CustomerID,
					Rent:         &rentId,
					Product:      &productId,
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"data": updated})
		}).
		POST("/rents/:id/checkout", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			rent, err := utils.GetRent(params.ID)
			if err != nil {
				var derr *types.DomainError
				if errors.As(err, &derr) {
					ctx.JSON(derr.Status(), gin.H{"error": derr.Message})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if rent.CustomerID != userId {
				ctx.Status(http.StatusForbidden)
				return
			}
			if rent.Status != types.RENT_APPROVED || rent.PaymentStatus == types.PAYMENT_PAID {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "This rent cannot be checked out"})
				return
			}
			url, err := utils.CreateRentCheckout(rent)
			if err != nil {
				log.Printf("Error creating checkout session: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"url": url})
		})
	return g
}

func cancelCheckoutSession(sessionId string) {
	sc := lib.GetStripeClient()
	_, err := sc.V1CheckoutSessions.Expire(context.Background(), sessionId, &stripe.CheckoutSessionExpireParams{})
	if err != nil {
		log.Printf("Error expiring checkout session %s: %s\n", sessionId, err.Error())
	}
}
