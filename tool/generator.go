package tool

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRandomUUID() string {
	return uuid.New().String()
}

// GenerateStoredName builds a collision-resistant stored filename for an
// uploaded file: unix millis plus a random UUID, keeping the original
// extension (lowercased). Unique across concurrent writers without
// coordination.
func GenerateStoredName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
}

// GenerateAccessCode returns a random 6-digit numeric access code.
// Used when the config file has no accessCode set.
func GenerateAccessCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// fall back to UUID-derived digits, crypto/rand failing is effectively fatal anyway
		return GenerateRandomUUID()[:6]
	}
	return fmt.Sprintf("%06d", n.Int64())
}
