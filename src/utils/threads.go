package utils

import (
	"daily/src/db"
	"daily/src/models"
	"daily/src/types"
	"errors"

	"gorm.io/gorm"
)

// FindOrCreateThread returns the conversation between two users,
// creating it when none exists yet. The pair is unordered: either side
// may have started it.
func FindOrCreateThread(userOne, userTwo uint, productId *uint) (*models.Thread, error) {
	db := db.GetDb()
	var thread models.Thread
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&models.Thread{}).
			Where("(user_one_id = ? AND user_two_id = ?) OR (user_one_id = ? AND user_two_id = ?)", userOne, userTwo, userTwo, userOne).
			First(&thread).
			Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		thread = models.Thread{
			UserOneID:     userOne,
			UserTwoID:     userTwo,
			ProductID:     productId,
			IsUserOneRead: true,
			IsUserTwoRead: false,
		}
		return tx.Create(&thread).Error
	})
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// CreateChat encrypts and stores a message, flips the receiver's read
// flag on the thread and returns the stored row with the plaintext
// restored for the response. The receiver is always the thread member
// opposite the sender; the body cannot name anyone else.
func CreateChat(params *types.CreateChatRequestBody, senderId uint) (*models.Chat, error) {
	key, err := GetChatKey()
	if err != nil {
		return nil, err
	}
	encrypted, err := EncryptMessage(key, params.Message)
	if err != nil {
		return nil, err
	}

	db := db.GetDb()
	var chat models.Chat
	err = db.Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.
			Model(&models.Thread{}).
			Where(&models.Thread{ID: params.Thread}).
			First(&thread).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewDomainError(types.ErrRecordNotFound, "Could not find record.")
			}
			return err
		}
		if thread.UserOneID != senderId && thread.UserTwoID != senderId {
			return types.NewDomainError(types.ErrForbidden, "You are not part of this conversation")
		}
		receiverId := thread.UserOneID
		if thread.UserOneID == senderId {
			receiverId = thread.UserTwoID
		}

		chat = models.Chat{
			ThreadID:   params.Thread,
			SenderID:   senderId,
			ReceiverID: receiverId,
			Message:    encrypted,
			IsRead:     false,
		}
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if thread.UserOneID == senderId {
			updates["is_user_one_read"] = true
			updates["is_user_two_read"] = false
		} else {
			updates["is_user_one_read"] = false
			updates["is_user_two_read"] = true
		}
		return tx.
			Model(&models.Thread{}).
			Where(&models.Thread{ID: thread.ID}).
			Updates(updates).
			Error
	})
	if err != nil {
		return nil, err
	}

	chat.Message = params.Message
	return &chat, nil
}

// UnreadThreadsCount counts conversations the user has not opened
// since the last message arrived, going by the per-side read flags.
func UnreadThreadsCount(userId uint) (int64, error) {
	db := db.GetDb()
	var count int64
	err := db.
		Model(&models.Thread{}).
		Where("(user_one_id = ? AND is_user_one_read = ?) OR (user_two_id = ? AND is_user_two_read = ?)", userId, false, userId, false).
		Count(&count).
		Error
	return count, err
}

// UnreadChatsCount counts messages addressed to the user that are
// still unread, optionally scoped to one thread.
func UnreadChatsCount(userId uint, threadId *uint) (int64, error) {
	db := db.GetDb()
	var count int64
	tx := db.
		Model(&models.Chat{}).
		Where(&models.Chat{ReceiverID: userId}).
		Where("is_read = ?", false)
	if threadId != nil {
		tx = tx.Where(&models.Chat{ThreadID: *threadId})
	}
	err := tx.Count(&count).Error
	return count, err
}
