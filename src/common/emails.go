package common

import (
	"daily/src/config"
	"daily/src/lib"
	"daily/src/utils"
	"log"
	"os"

	"github.com/tidwall/gjson"
)

// EmailsConsumer drains the emails topic and relays each message over
// SMTP. Payload shape: {"to": ..., "subject": ..., "body": ..., "html": bool}.
func EmailsConsumer() {
	lib.KafkaSubscribe("emailsConsumer", []string{config.EmailsTopic}, func(topic string, value []byte) {
		if !gjson.ValidBytes(value) {
			log.Printf("[%s]: Received invalid json body. Aborting", topic)
			return
		}
		to := gjson.GetBytes(value, "to").String()
		subject := gjson.GetBytes(value, "subject").String()
		body := gjson.GetBytes(value, "body").String()
		html := gjson.GetBytes(value, "html").Bool()
		if to == "" || subject == "" {
			log.Printf("[%s]: Missing recipient or subject. Aborting", topic)
			return
		}
		err := lib.SendMail(&lib.SendMailInput{
			From:     os.Getenv("MAIL_FROM"),
			FromName: os.Getenv("MAIL_FROM_NAME"),
			To:       []string{to},
			Subject:  subject,
			Body:     body,
			Html:     html,
		})
		if err != nil {
			log.Printf("Error sending mail to %s: %s\n", utils.ObfuscateEmail(to), err.Error())
			return
		}
		log.Printf("Mail sent to %s\n", utils.ObfuscateEmail(to))
	})
}
