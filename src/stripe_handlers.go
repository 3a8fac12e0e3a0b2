package main

import (
	"daily/src/common"
	"daily/src/db"
	"daily/src/models"
	"daily/src/types"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "checkout.session.completed":
			var cs stripe.CheckoutSession
			err := json.Unmarshal(event.Data.Raw, &cs)
			if err != nil {
				log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
				break
			}
			log.Printf("[CheckoutSession] ID: %s %s\n", cs.ID, cs.Status)
			rentIdParam := cs.Metadata["rentId"]
			atoi, err := strconv.Atoi(rentIdParam)
			if err != nil {
				log.Printf("Could not retrieve rent id for session %s: %s\n", cs.ID, err.Error())
				break
			}
			rentId := uint(atoi)
			go func() {
				db := db.GetDb()
				var rent models.Rent
				err := db.Transaction(func(tx *gorm.DB) error {
					if err := tx.
						Model(&models.Rent{}).
						Where(&models.Rent{ID: rentId, CheckoutSessionId: &cs.ID}).
						First(&rent).
						Error; err != nil {
						return err
					}
					return tx.
						Model(&models.Rent{}).
						Where(&models.Rent{ID: rentId}).
						Update("payment_status", types.PAYMENT_PAID).
						Error
				})
				if err != nil {
					log.Printf("Error processing payment for rent %d: %s\n", rentId, err.Error())
					return
				}
				productId := rent.ProductID
				common.PublishActivity(&common.ActivityEvent{
					ActivityName: types.ACTIVITY_PAYMENT,
					ActivityType: types.ACTIVITY_PAID,
					Sender:       rent.CustomerID,
					Receiver:     rent.OwnerID,
					Rent:         &rentId,
					Product:      &productId,
				})
			}()
		default:
			log.Printf("Unhandled event type: %s\n", event.Type)
		}
		ctx.Status(http.StatusOK)
	})
	return apiv1
}
