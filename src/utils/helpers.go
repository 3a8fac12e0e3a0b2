package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"daily/src/config"
	"daily/src/models"
	"daily/src/types"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	stdsort "sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

func IsProd() bool {
	return config.API_ENV == string(types.Production)
}

// GetChatKey loads the chat encryption key from the environment. The
// key is hex-encoded and must decode to 16, 24 or 32 bytes.
func GetChatKey() ([]byte, error) {
	encoded := config.GetChatSecretKey()
	if encoded == "" {
		return nil, errors.New("CHAT_SECRET_KEY is not set")
	}
	key, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	}
	return nil, fmt.Errorf("invalid chat key length: %d", len(key))
}

func EncryptMessage(key []byte, message string) (string, error) {
	plaintext := []byte(message)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	cipherText := gcm.Seal(nonce, nonce, plaintext, nil)
	encodedString := hex.EncodeToString(cipherText)

	return encodedString, nil
}

func DecryptMessage(key []byte, message string) (*string, error) {
	cipherText, err := hex.DecodeString(message)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(cipherText) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	decryptedData, err := gcm.Open(nil, cipherText[:gcm.NonceSize()], cipherText[gcm.NonceSize():], nil)
	if err != nil {
		return nil, err
	}
	decodedString := string(decryptedData)

	return &decodedString, nil
}

// ParseSortParam turns a JSON sort object like {"created_at":-1} into
// ORDER BY clauses. Unknown shapes fall back to created_at DESC.
func ParseSortParam(sort string) []string {
	if sort == "" {
		return []string{"created_at DESC"}
	}
	var m map[string]int
	if err := json.Unmarshal([]byte(sort), &m); err != nil {
		return []string{"created_at DESC"}
	}
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	stdsort.Strings(fields)
	orders := []string{}
	for _, field := range fields {
		if !isSafeColumn(field) {
			continue
		}
		direction := "ASC"
		if m[field] < 0 {
			direction = "DESC"
		}
		orders = append(orders, fmt.Sprintf("%s %s", field, direction))
	}
	if len(orders) == 0 {
		return []string{"created_at DESC"}
	}
	return orders
}

func isSafeColumn(name string) bool {
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r == '_' {
			continue
		}
		return false
	}
	return name != ""
}

// ApplySearchQuery applies sort, limit and skip to a list query.
// get_all_record bypasses paging entirely.
func ApplySearchQuery(tx *gorm.DB, params *types.SearchQueryParams) *gorm.DB {
	for _, order := range ParseSortParam(params.Sort) {
		tx = tx.Order(order)
	}
	if params.GetAll {
		return tx
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}
	return tx.Limit(limit).Offset(params.Skip)
}

// CreateAccessToken signs a JWT for the given user. Subject carries
// the numeric user id.
func CreateAccessToken(user *models.User, ttl time.Duration) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	claims := &types.Claims{
		Username: user.Name,
		Role:     user.Role,
		UID:      user.UID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ObfuscateEmail keeps the first and last rune of the local part.
func ObfuscateEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 3 {
		return email
	}
	local := email[:at]
	return fmt.Sprintf("%c%s%c%s", local[0], strings.Repeat("*", len(local)-2), local[len(local)-1], email[at:])
}
