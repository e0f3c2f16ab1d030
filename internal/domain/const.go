package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY = "https://ipfs.io/ipfs/"

	// FIAT_CENTS_FACTOR is the scaling factor between decimal fiat prices and
	// the integer cents stored/charged. Hard external contract with the
	// payment gateway.
	FIAT_CENTS_FACTOR = 100
)
