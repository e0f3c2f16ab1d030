package auth_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallerium/marketplace-v2/internal/api/auth"
)

func signMessage(t *testing.T, message string) (address, signature string) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	// Wallets report V as 27/28
	sig[64] += 27

	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(sig)
}

func TestVerify(t *testing.T) {
	message := auth.ChallengeMessage("0xAdminAccount", 1700000000)
	address, signature := signMessage(t, message)

	verifier := &auth.EthereumVerifier{}
	assert.NoError(t, verifier.Verify(address, message, signature))
}

func TestVerifyWrongSigner(t *testing.T) {
	message := auth.ChallengeMessage("0xAdminAccount", 1700000000)
	_, signature := signMessage(t, message)
	otherAddress, _ := signMessage(t, message)

	verifier := &auth.EthereumVerifier{}
	assert.Error(t, verifier.Verify(otherAddress, message, signature))
}

func TestVerifyTamperedMessage(t *testing.T) {
	message := auth.ChallengeMessage("0xAdminAccount", 1700000000)
	address, signature := signMessage(t, message)

	verifier := &auth.EthereumVerifier{}
	tampered := auth.ChallengeMessage("0xAdminAccount", 1700000001)
	assert.Error(t, verifier.Verify(address, tampered, signature))
}

func TestVerifyMalformedSignature(t *testing.T) {
	verifier := &auth.EthereumVerifier{}
	assert.Error(t, verifier.Verify("0xAdminAccount", "message", "not-hex"))
	assert.Error(t, verifier.Verify("0xAdminAccount", "message", "0x1234"))
}
