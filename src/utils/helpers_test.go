package utils

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptDecryptMessage(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	assert.NoError(t, err)

	message := "see you at the pickup point at 9"
	encrypted, err := EncryptMessage(key, message)
	assert.NoError(t, err)
	assert.NotEqual(t, message, encrypted)

	decrypted, err := DecryptMessage(key, encrypted)
	assert.NoError(t, err)
	assert.Equal(t, message, *decrypted)
}

func TestDecryptMessageWrongKey(t *testing.T) {
	key := make([]byte, 32)
	rand.Read(key)
	encrypted, err := EncryptMessage(key, "secret")
	assert.NoError(t, err)

	other := make([]byte, 32)
	rand.Read(other)
	_, err = DecryptMessage(other, encrypted)
	assert.Error(t, err)
}

func TestDecryptMessageTruncated(t *testing.T) {
	key := make([]byte, 32)
	rand.Read(key)
	_, err := DecryptMessage(key, "abcd")
	assert.Error(t, err)
}

func TestGetChatKey(t *testing.T) {
	raw := make([]byte, 32)
	rand.Read(raw)
	t.Setenv("CHAT_SECRET_KEY", hex.EncodeToString(raw))

	key, err := GetChatKey()
	assert.NoError(t, err)
	assert.Equal(t, raw, key)
}

func TestGetChatKeyRejectsBadLength(t *testing.T) {
	t.Setenv("CHAT_SECRET_KEY", "abcdef")
	_, err := GetChatKey()
	assert.Error(t, err)
}

func TestGetChatKeyMissing(t *testing.T) {
	t.Setenv("CHAT_SECRET_KEY", "")
	_, err := GetChatKey()
	assert.Error(t, err)
}

func TestParseSortParam(t *testing.T) {
	assert.Equal(t, []string{"created_at DESC"}, ParseSortParam(""))
	assert.Equal(t, []string{"price ASC"}, ParseSortParam(`{"price":1}`))
	assert.Equal(t, []string{"created_at DESC"}, ParseSortParam(`{"created_at":-1}`))
	assert.Equal(t, []string{"created_at DESC"}, ParseSortParam("not-json"))
	// column names with anything but [a-z_] are dropped
	assert.Equal(t, []string{"created_at DESC"}, ParseSortParam(`{"price;drop table":1}`))
}

func TestParseSortParamMultiKeyOrder(t *testing.T) {
	// clause order is stable across calls regardless of map iteration
	want := []string{"price DESC", "title ASC"}
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, ParseSortParam(`{"title":1,"price":-1}`))
	}
}

func TestObfuscateEmail(t *testing.T) {
	assert.Equal(t, "j**e@example.com", ObfuscateEmail("jane@example.com"))
	assert.Equal(t, "ab@example.com", ObfuscateEmail("ab@example.com"))
}
