package models

import "daily/src/types"

// Chat stores the message AES-GCM encrypted. Plaintext only exists in
// API responses after an explicit decrypt.
type Chat struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	ThreadID   uint   `gorm:"index" json:"thread_id,omitempty"`
	SenderID   uint   `json:"sender_id,omitempty"`
	ReceiverID uint   `json:"receiver_id,omitempty"`
	Message    string `json:"message,omitempty"`
	IsRead     bool   `gorm:"default:false" json:"is_read"`

	Thread   *Thread `gorm:"foreignKey:ThreadID" json:"thread,omitempty"`
	Sender   *User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User   `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`

	types.Timestamps
}
