package common

import (
	"context"
	"daily/src/config"
	"daily/src/db"
	"daily/src/lib"
	"daily/src/models"
	"encoding/json"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// ActivitiesConsumer drains the activities topic. Every event becomes
// a persisted notification plus realtime pushes: a socket.io emit on
// notification-<receiver>, a pusher trigger, and an FCM message when
// the receiver registered a device token.
func ActivitiesConsumer() {
	lib.KafkaSubscribe("activitiesConsumer", []string{config.ActivitiesTopic}, func(topic string, value []byte) {
		if !gjson.ValidBytes(value) {
			log.Printf("[%s]: Received invalid json body. Aborting", topic)
			return
		}
		var event ActivityEvent
		if err := json.Unmarshal(value, &event); err != nil {
			log.Printf("Error deserializing JSON: %s\n", err.Error())
			return
		}

		notification := models.Notification{
			SenderID:     event.Sender,
			ReceiverID:   event.Receiver,
			ActivityName: event.ActivityName,
			ActivityType: event.ActivityType,
			RentID:       event.Rent,
			ProductID:    event.Product,
		}
		if event.Payload != nil {
			notification.Payload = &event.Payload
		}

		db := db.GetDb()
		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&notification).Error
		})
		if err != nil {
			log.Printf("Error persisting notification: %s\n", err.Error())
			return
		}

		var unread int64
		db.
			Model(&models.Notification{}).
			Where(&models.Notification{ReceiverID: event.Receiver}).
			Where("is_read = ?", false).
			Count(&unread)

		go emitNotification(&notification, unread)
		go pushNotification(&notification)
	})
}

func emitNotification(n *models.Notification, unread int64) {
	channel := fmt.Sprintf("notification-%d", n.ReceiverID)
	data := map[string]any{
		"id":            n.ID,
		"activity_name": n.ActivityName,
		"activity_type": n.ActivityType,
		"unread_count":  unread,
	}
	lib.SocketEmit(channel, data)

	pc := lib.GetPusherClient()
	if err := pc.Trigger(channel, "notification", data); err != nil {
		log.Printf("Error triggering pusher event: %s\n", err.Error())
	}
}

func pushNotification(n *models.Notification) {
	rd := lib.GetRedisClient()
	token := rd.Get(context.Background(), fmt.Sprintf("fcm:%d", n.ReceiverID)).Val()
	if token == "" {
		return
	}
	fcm, err := lib.GetFirebaseMessaging()
	if err != nil {
		log.Printf("Could not retrieve FCM instance: %v\n", err)
		return
	}
	res, err := fcm.Send(context.Background(), &messaging.Message{
		Data: map[string]string{
			"activity_name": string(n.ActivityName),
			"activity_type": string(n.ActivityType),
		},
		Token: token,
	})
	if err != nil {
		log.Printf("Error sending FCM message: %s\n", err.Error())
		return
	}
	log.Println("successfully sent message:", res)
}
