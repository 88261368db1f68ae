package auth

import "encoding/base64"

// DecodeSecrets base64-decodes a raw-secret-per-audience map. Secrets are
// base64-encoded before signing; raw values are the base64 text as
// configured (e.g. loaded from the environment), and the returned map
// holds the decoded signing key bytes ready for NewRegistry.
func DecodeSecrets(raw map[Audience]string) (map[Audience][]byte, error) {
	decoded := make(map[Audience][]byte, len(raw))
	for aud, encoded := range raw {
		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, err
		}
		decoded[aud] = key
	}
	return decoded, nil
}
