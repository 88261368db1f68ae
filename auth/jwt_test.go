package auth

import (
	"testing"
	"time"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	secrets, err := DecodeSecrets(map[Audience]string{
		AudienceSEP10:    "c2VwMTAtc2VjcmV0",
		AudienceCallback: "Y2FsbGJhY2stc2VjcmV0",
	})
	require.NoError(t, err)
	return NewRegistry("dispatcher.example.com", time.Hour, secrets)
}

func testAccountAddress(t *testing.T) string {
	t.Helper()
	kp, err := keypair.Random()
	require.NoError(t, err)
	return kp.Address()
}

func TestRegistry_IssueAndVerifyRoundTrips(t *testing.T) {
	r := testRegistry(t)
	subject := testAccountAddress(t)

	token, err := r.Issue(AudienceSEP10, subject)
	require.NoError(t, err)

	claims, err := r.Verify(AudienceSEP10, token)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.Subject)
	assert.Equal(t, AudienceSEP10, claims.Audience)
}

func TestRegistry_VerifyRejectsWrongAudienceSecret(t *testing.T) {
	r := testRegistry(t)

	token, err := r.Issue(AudienceSEP10, testAccountAddress(t))
	require.NoError(t, err)

	_, err = r.Verify(AudienceCallback, token)
	assert.Error(t, err)
}

func TestRegistry_IssueUnknownAudience(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Issue(Audience("unknown"), testAccountAddress(t))
	assert.Error(t, err)
}

func TestRegistry_IssueRejectsNonStellarSep10Subject(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Issue(AudienceSEP10, "not-a-stellar-address")
	assert.Error(t, err)
}

func TestRegistry_IssueAllowsNonStellarSubjectForNonSep10Audience(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Issue(AudienceCallback, "operator-123")
	assert.NoError(t, err)
}

func TestRegistry_VerifyRejectsExpiredToken(t *testing.T) {
	secrets, err := DecodeSecrets(map[Audience]string{AudienceSEP10: "c2VwMTAtc2VjcmV0"})
	require.NoError(t, err)
	r := NewRegistry("dispatcher.example.com", -time.Minute, secrets)

	token, err := r.Issue(AudienceSEP10, testAccountAddress(t))
	require.NoError(t, err)

	_, err = r.Verify(AudienceSEP10, token)
	assert.Error(t, err)
}

func TestDecodeSecrets_RejectsInvalidBase64(t *testing.T) {
	_, err := DecodeSecrets(map[Audience]string{AudienceSEP10: "not-valid-base64!!"})
	assert.Error(t, err)
}
