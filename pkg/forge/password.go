package forge

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// passwordBytes is the entropy of a generated one-time credential.
const passwordBytes = 24

// GeneratePassword returns a random one-time credential for a newly created
// account. The forge forces rotation on first login, so the credential only
// has to survive until then.
func GeneratePassword() (string, error) {
	buf := make([]byte, passwordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read randomness: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
