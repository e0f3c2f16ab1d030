package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// EthereumVerifier verifies personal_sign signatures by key recovery
type EthereumVerifier struct{}

// NewEthereumVerifier creates a signature verifier for EVM-style addresses
func NewEthereumVerifier() *EthereumVerifier {
	return &EthereumVerifier{}
}

// Verify recovers the signing key from signature and compares the derived
// address against address
func (v *EthereumVerifier) Verify(address, message, signature string) error {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != 65 {
		return errors.New("signature must be 65 bytes")
	}

	// eth_sign produces V in {27, 28}, SigToPub wants {0, 1}
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	hash := accounts.TextHash([]byte(message))
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return fmt.Errorf("failed to recover public key: %w", err)
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if !strings.EqualFold(recovered.Hex(), address) {
		return errors.New("signature does not match address")
	}
	return nil
}
