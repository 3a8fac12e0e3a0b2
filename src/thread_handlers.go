package main

import (
	"daily/src/common"
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
	"gorm.io/gorm"
)

func threadHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/threads", func(ctx *gin.Context) {
			var body types.CreateThreadRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			if body.UserTwo == userId {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "You cannot start a conversation with yourself"})
				return
			}
			thread, err := utils.FindOrCreateThread(userId, body.UserTwo, body.Product)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			chat, err := utils.CreateChat(&types.CreateChatRequestBody{
				Thread:   thread.ID,
				Receiver: body.UserTwo,
				Message:  body.Message,
			}, userId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			go emitChatMessage(thread.ID, chat)
			common.PublishActivity(&common.ActivityEvent{
				ActivityName: types.ACTIVITY_THREAD,
				ActivityType: types.ACTIVITY_CREATED,
				Sender:       userId,
				Receiver:     body.UserTwo,
				Product:      body.Product,
			})
			ctx.JSON(http.StatusCreated, gin.H{"data": thread, "chat": chat})
		}).
		GET("/threads", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var threads []models.Thread
			if err := db.
				Model(&models.Thread{}).
				Where("user_one_id = ? OR user_two_id = ?", userId, userId).
				Preload("UserOne").
				Preload("UserTwo").
				Preload("Product").
				Order("updated_at DESC").
				Find(&threads).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			unread, err := utils.UnreadChatsCount(userId, nil)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": threads, "unread_count": unread})
		}).
		GET("/threads/:id/chats", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var thread models.Thread
			if err := db.
				Model(&models.Thread{}).
				Where(&models.Thread{ID: params.ID}).
				First(&thread).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Could not find record."})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if thread.UserOneID != userId && thread.UserTwoID != userId {
				ctx.Status(http.StatusForbidden)
				return
			}
			var chats []models.Chat
			if err := db.
				Model(&models.Chat{}).
				Where(&models.Chat{ThreadID: params.ID}).
				Order("created_at ASC").
				Find(&chats).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			key, err := utils.GetChatKey()
			if err != nil {
				log.Printf("Error loading chat key: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			for i := range chats {
				plain, err := utils.DecryptMessage(key, chats[i].Message)
				if err != nil {
					log.Printf("Error decrypting chat %d: %s\n", chats[i].ID, err.Error())
					continue
				}
				chats[i].Message = *plain
			}
			ctx.JSON(http.StatusOK, gin.H{"data": chats, "count": len(chats)})
		}).
		POST("/chats", func(ctx *gin.Context) {
			var body types.CreateChatRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			chat, err := utils.CreateChat(&body, userId)
			if err != nil {
				var derr *types.DomainError
				if errors.As(err, &derr) {
					ctx.JSON(derr.Status(), gin.H{"error": derr.Message})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			go emitChatMessage(body.Thread, chat)
			ctx.JSON(http.StatusCreated, gin.H{"data": chat})
		}).
		PATCH("/threads/:id/read", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var thread models.Thread
				if err := tx.
					Model(&models.Thread{}).
					Where(&models.Thread{ID: params.ID}).
					First(&thread).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewDomainError(types.ErrRecordNotFound, "Could not find record.")
					}
					return err
				}
				var flag string
				switch userId {
				case thread.UserOneID:
					flag = "is_user_one_read"
				case thread.UserTwoID:
					flag = "is_user_two_read"
				default:
					return types.NewDomainError(types.ErrForbidden, "You are not part of this conversation")
				}
				if err := tx.
					Model(&models.Thread{}).
					Where(&models.Thread{ID: params.ID}).
					Update(flag, true).
					Error; err != nil {
					return err
				}
				return tx.
					Model(&models.Chat{}).
					Where(&models.Chat{ThreadID: params.ID, ReceiverID: userId}).
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
		})
	return g
}

func emitChatMessage(threadId uint, chat *models.Chat) {
	unread, err := utils.UnreadThreadsCount(chat.ReceiverID)
	if err != nil {
		log.Printf("Error counting unread threads for user %d: %s\n", chat.ReceiverID, err.Error())
	}
	lib.SocketEmit(fmt.Sprintf("thread-message-%d", threadId), map[string]any{
		"id":                    chat.ID,
		"thread":                chat.ThreadID,
		"sender":                chat.SenderID,
		"receiver":              chat.ReceiverID,
		"message":               chat.Message,
		"receiver_unread_count": unread,
	})
}
