package evm

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/logger"
)

// uniqueCollectionAddressPrefix is the fixed 16-byte prefix of the ERC-721
// facade every Unique-family collection exposes; the last 4 bytes are the
// collection id in big-endian hex.
const uniqueCollectionAddressPrefix = "0x17c4e6453cc49aaaaeaca894e6d9683e"

// marketEventsABIJSON declares only the marketplace contract events we ingest.
// Function entries are omitted on purpose: this ABI is used exclusively to
// derive event ids and unpack non-indexed log fields.
const marketEventsABIJSON = `[
	{"anonymous":false,"inputs":[{"indexed":true,"name":"seller","type":"address"},{"indexed":true,"name":"collectionId","type":"uint256"},{"indexed":false,"name":"tokenId","type":"uint256"},{"indexed":false,"name":"price","type":"uint256"},{"indexed":false,"name":"currency","type":"string"}],"name":"TokenListed","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"seller","type":"address"},{"indexed":true,"name":"collectionId","type":"uint256"},{"indexed":false,"name":"tokenId","type":"uint256"}],"name":"ListingCancelled","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"buyer","type":"address"},{"indexed":true,"name":"collectionId","type":"uint256"},{"indexed":false,"name":"tokenId","type":"uint256"},{"indexed":false,"name":"price","type":"uint256"}],"name":"TokenSold","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"name":"bidder","type":"address"},{"indexed":true,"name":"collectionId","type":"uint256"},{"indexed":false,"name":"tokenId","type":"uint256"},{"indexed":false,"name":"amount","type":"uint256"}],"name":"BidPlaced","type":"event"}
]`

// erc721TransferEventSignature is Transfer(address,address,uint256)
var erc721TransferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// Config describes one EVM-reachable network.
//
// Unique-family networks (quartz, opal) expose every collection as an ERC-721
// contract at a derived address, so CollectionContracts stays empty there.
// Plain Ethereum deployments list their collection contracts explicitly.
type Config struct {
	Network        domain.Network
	Currency       string
	MarketContract string
	// CollectionContracts maps collection ids to ERC-721 contract addresses
	// on networks without derived facade addresses
	CollectionContracts map[uint64]string
	// WatchCollections are the collection ids whose raw Transfer events are
	// folded into the market event feed
	WatchCollections []uint64
	// MarketAccountKey is the hex private key of the market custody account
	// used to sign outgoing token transfers
	MarketAccountKey string
	ConfirmTimeout   time.Duration
	ConfirmInterval  time.Duration
}

type evmChainClient struct {
	cfg    Config
	client adapter.EthClient
	meta   adapter.MetadataSource
	clock  adapter.Clock

	marketAddr      common.Address
	marketABI       abi.ABI
	marketKey       *ecdsa.PrivateKey
	marketFrom      common.Address
	watchAddrs      []common.Address
	collectionByAdr map[common.Address]uint64
}

// NewClient builds a ChainClient over a dialed EVM connection. meta may be
// nil; when present it overrides contract calls for collection and token
// metadata (Unique-family networks answer those over native RPC).
func NewClient(cfg Config, client adapter.EthClient, meta adapter.MetadataSource, clock adapter.Clock) (adapter.ChainClient, error) {
	parsedABI, err := abi.JSON(strings.NewReader(marketEventsABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse market events ABI: %w", err)
	}

	if cfg.ConfirmTimeout == 0 {
		cfg.ConfirmTimeout = 2 * time.Minute
	}
	if cfg.ConfirmInterval == 0 {
		cfg.ConfirmInterval = 3 * time.Second
	}

	c := &evmChainClient{
		cfg:             cfg,
		client:          client,
		meta:            meta,
		clock:           clock,
		marketAddr:      common.HexToAddress(cfg.MarketContract),
		marketABI:       parsedABI,
		collectionByAdr: make(map[common.Address]uint64, len(cfg.WatchCollections)),
	}

	if cfg.MarketAccountKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.MarketAccountKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse market account key: %w", err)
		}
		c.marketKey = key
		c.marketFrom = crypto.PubkeyToAddress(key.PublicKey)
	}

	for _, collectionID := range cfg.WatchCollections {
		addr, err := c.collectionAddress(collectionID)
		if err != nil {
			return nil, err
		}
		c.watchAddrs = append(c.watchAddrs, addr)
		c.collectionByAdr[addr] = collectionID
	}

	return c, nil
}

// Network reports which network this client talks to
func (c *evmChainClient) Network() domain.Network {
	return c.cfg.Network
}

// collectionAddress resolves the ERC-721 contract address of a collection
func (c *evmChainClient) collectionAddress(collectionID uint64) (common.Address, error) {
	if raw, ok := c.cfg.CollectionContracts[collectionID]; ok {
		return common.HexToAddress(raw), nil
	}

	switch c.cfg.Network {
	case domain.NetworkQuartz, domain.NetworkOpal:
		if collectionID > 0xffffffff {
			return common.Address{}, fmt.Errorf("collection id %d exceeds facade address space", collectionID)
		}
		return common.HexToAddress(fmt.Sprintf("%s%08x", uniqueCollectionAddressPrefix, collectionID)), nil
	default:
		return common.Address{}, fmt.Errorf("no contract registered for collection %d on %s", collectionID, c.cfg.Network)
	}
}

// OwnerOf fetches the current owner of a token
func (c *evmChainClient) OwnerOf(ctx context.Context, collectionID, tokenID uint64) (string, error) {
	// ERC721 ownerOf function signature: ownerOf(uint256) returns (address)
	ownerOfABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := ownerOfABI.Pack("ownerOf", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr, err := c.collectionAddress(collectionID)
	if err != nil {
		return "", err
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to call contract: %w", err)
	}

	var owner common.Address
	if err := ownerOfABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return owner.Hex(), nil
}

// AccountTokens lists the token ids an address owns within a collection.
// It relies on the ERC721Enumerable extension, which both the Unique facade
// and our Ethereum collections implement.
func (c *evmChainClient) AccountTokens(ctx context.Context, collectionID uint64, owner string) ([]uint64, error) {
	enumerableABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"name":"tokenOfOwnerByIndex","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	contractAddr, err := c.collectionAddress(collectionID)
	if err != nil {
		return nil, err
	}

	ownerAddr := common.HexToAddress(owner)
	data, err := enumerableABI.Pack("balanceOf", ownerAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}

	var balance *big.Int
	if err := enumerableABI.UnpackIntoInterface(&balance, "balanceOf", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	count := balance.Uint64()
	tokens := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		data, err := enumerableABI.Pack("tokenOfOwnerByIndex", ownerAddr, new(big.Int).SetUint64(i))
		if err != nil {
			return nil, fmt.Errorf("failed to pack data: %w", err)
		}

		result, err := c.client.CallContract(ctx, ethereum.CallMsg{
			To:   &contractAddr,
			Data: data,
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to call contract: %w", err)
		}

		var tokenID *big.Int
		if err := enumerableABI.UnpackIntoInterface(&tokenID, "tokenOfOwnerByIndex", result); err != nil {
			return nil, fmt.Errorf("failed to unpack result: %w", err)
		}
		tokens = append(tokens, tokenID.Uint64())
	}

	return tokens, nil
}

// TransferToken submits a transferFrom signed by the market custody account
// and waits for the receipt. The returned block number is where the transfer
// was included. A context timeout leaves the submission outcome unknown.
func (c *evmChainClient) TransferToken(ctx context.Context, collectionID, tokenID uint64, to string) (uint64, error) {
	if c.marketKey == nil {
		return 0, errors.New("market account key not configured")
	}

	transferABI, err := abi.JSON(strings.NewReader(`[{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"transferFrom","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"}]`))
	if err != nil {
		return 0, fmt.Errorf("failed to parse ABI: %w", err)
	}

	contractAddr, err := c.collectionAddress(collectionID)
	if err != nil {
		return 0, err
	}

	data, err := transferABI.Pack("transferFrom", c.marketFrom, common.HexToAddress(to), new(big.Int).SetUint64(tokenID))
	if err != nil {
		return 0, fmt.Errorf("failed to pack data: %w", err)
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.marketFrom)
	if err != nil {
		return 0, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get gas price: %w", err)
	}

	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain id: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &contractAddr,
		Gas:      250000,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), c.marketKey)
	if err != nil {
		return 0, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return 0, fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.InfoCtx(ctx, "Submitted token transfer",
		zap.String("network", string(c.cfg.Network)),
		zap.Uint64("collectionID", collectionID),
		zap.Uint64("tokenID", tokenID),
		zap.String("to", to),
		zap.String("txHash", signedTx.Hash().Hex()))

	return c.waitReceipt(ctx, signedTx.Hash())
}

// waitReceipt polls for the transaction receipt until ConfirmTimeout
func (c *evmChainClient) waitReceipt(ctx context.Context, txHash common.Hash) (uint64, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
	defer cancel()

	for {
		receipt, err := c.client.TransactionReceipt(waitCtx, txHash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return 0, fmt.Errorf("transaction %s reverted", txHash.Hex())
			}
			return receipt.BlockNumber.Uint64(), nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return 0, fmt.Errorf("failed to get receipt: %w", err)
		}

		select {
		case <-waitCtx.Done():
			return 0, fmt.Errorf("timed out waiting for transaction %s: %w", txHash.Hex(), waitCtx.Err())
		case <-c.clock.After(c.cfg.ConfirmInterval):
		}
	}
}

// BlockNumber returns the latest block height
func (c *evmChainClient) BlockNumber(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest header: %w", err)
	}
	return header.Number.Uint64(), nil
}

// MarketEvents returns the normalized marketplace events in [fromBlock, toBlock].
// It merges two log streams: the marketplace contract's listing lifecycle
// events and raw ERC-721 Transfer events from the watched collections.
func (c *evmChainClient) MarketEvents(ctx context.Context, fromBlock, toBlock uint64) ([]domain.MarketEvent, error) {
	eventIDs := []common.Hash{
		c.marketABI.Events["TokenListed"].ID,
		c.marketABI.Events["ListingCancelled"].ID,
		c.marketABI.Events["TokenSold"].ID,
		c.marketABI.Events["BidPlaced"].ID,
	}

	logs, err := c.client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{c.marketAddr},
		Topics:    [][]common.Hash{eventIDs},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter market logs: %w", err)
	}

	if len(c.watchAddrs) > 0 {
		transferLogs, err := c.client.FilterLogs(ctx, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(fromBlock),
			ToBlock:   new(big.Int).SetUint64(toBlock),
			Addresses: c.watchAddrs,
			Topics:    [][]common.Hash{{erc721TransferEventSignature}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to filter transfer logs: %w", err)
		}
		logs = append(logs, transferLogs...)
	}

	headerTimes := make(map[uint64]time.Time)
	events := make([]domain.MarketEvent, 0, len(logs))
	for _, vLog := range logs {
		event, err := c.parseEventLog(ctx, vLog, headerTimes)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to parse event log",
				zap.String("txHash", vLog.TxHash.Hex()),
				zap.Error(err))
			continue
		}
		if event != nil {
			events = append(events, *event)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].BlockNumber < events[j].BlockNumber
	})

	return events, nil
}

// parseEventLog converts a single log into a normalized market event
func (c *evmChainClient) parseEventLog(ctx context.Context, vLog types.Log, headerTimes map[uint64]time.Time) (*domain.MarketEvent, error) {
	if len(vLog.Topics) == 0 {
		return nil, errors.New("log has no topics")
	}

	timestamp, ok := headerTimes[vLog.BlockNumber]
	if !ok {
		header, err := c.client.HeaderByNumber(ctx, new(big.Int).SetUint64(vLog.BlockNumber))
		if err != nil {
			return nil, fmt.Errorf("failed to get header: %w", err)
		}
		timestamp = c.clock.Unix(int64(header.Time), 0).UTC() //nolint:gosec,G115 // header.Time is a uint64 from geth which is safe to cast
		headerTimes[vLog.BlockNumber] = timestamp
	}

	txHash := vLog.TxHash.Hex()
	event := &domain.MarketEvent{
		Network:     c.cfg.Network,
		Currency:    c.cfg.Currency,
		BlockNumber: vLog.BlockNumber,
		TxHash:      &txHash,
		Timestamp:   timestamp,
	}

	if vLog.Topics[0] == erc721TransferEventSignature {
		// ERC721 Transfer(address indexed from, address indexed to, uint256 indexed tokenId)
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid Transfer event: expected 4 topics, got %d", len(vLog.Topics))
		}
		collectionID, ok := c.collectionByAdr[vLog.Address]
		if !ok {
			return nil, nil // transfer on an unwatched contract
		}
		from := common.BytesToAddress(vLog.Topics[1].Bytes()).Hex()
		to := common.BytesToAddress(vLog.Topics[2].Bytes()).Hex()
		event.EventType = domain.MarketEventTypeTransfer
		event.CollectionID = collectionID
		event.TokenID = new(big.Int).SetBytes(vLog.Topics[3].Bytes()).Uint64()
		event.AddressFrom = &from
		event.AddressTo = &to
		event.Currency = ""
		return event, nil
	}

	name, err := c.marketEventName(vLog.Topics[0])
	if err != nil {
		return nil, err
	}
	if len(vLog.Topics) != 3 {
		return nil, fmt.Errorf("invalid %s event: expected 3 topics, got %d", name, len(vLog.Topics))
	}

	actor := common.BytesToAddress(vLog.Topics[1].Bytes()).Hex()
	event.CollectionID = new(big.Int).SetBytes(vLog.Topics[2].Bytes()).Uint64()

	fields := map[string]interface{}{}
	if err := c.marketABI.UnpackIntoMap(fields, name, vLog.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack %s event: %w", name, err)
	}

	tokenID, ok := fields["tokenId"].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("invalid %s event: missing tokenId", name)
	}
	event.TokenID = tokenID.Uint64()

	switch name {
	case "TokenListed":
		event.EventType = domain.MarketEventTypeAsk
		event.Seller = &actor
		price, ok := fields["price"].(*big.Int)
		if !ok {
			return nil, errors.New("invalid TokenListed event: missing price")
		}
		event.Price = price.String()
		if currency, ok := fields["currency"].(string); ok && currency != "" {
			event.Currency = currency
		}
	case "ListingCancelled":
		event.EventType = domain.MarketEventTypeCancel
		event.Seller = &actor
		event.Currency = ""
	case "TokenSold":
		event.EventType = domain.MarketEventTypeBuy
		event.Buyer = &actor
		price, ok := fields["price"].(*big.Int)
		if !ok {
			return nil, errors.New("invalid TokenSold event: missing price")
		}
		event.Price = price.String()
	case "BidPlaced":
		event.EventType = domain.MarketEventTypeBid
		event.Bidder = &actor
		amount, ok := fields["amount"].(*big.Int)
		if !ok {
			return nil, errors.New("invalid BidPlaced event: missing amount")
		}
		event.Price = amount.String()
	}

	return event, nil
}

// marketEventName maps a topic hash back to the ABI event name
func (c *evmChainClient) marketEventName(topic common.Hash) (string, error) {
	for name, ev := range c.marketABI.Events {
		if ev.ID == topic {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown event signature: %s", topic.Hex())
}

// CollectionInfo fetches the on-chain collection description. Networks with a
// metadata source answer over native RPC; plain EVM networks fall back to the
// ERC-721 name/symbol calls.
func (c *evmChainClient) CollectionInfo(ctx context.Context, collectionID uint64) (*adapter.ChainCollection, error) {
	if c.meta != nil {
		return c.meta.CollectionByID(ctx, collectionID)
	}

	metadataABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"},{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"},{"constant":true,"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	contractAddr, err := c.collectionAddress(collectionID)
	if err != nil {
		return nil, err
	}

	info := &adapter.ChainCollection{}

	var name string
	if err := c.callString(ctx, metadataABI, contractAddr, "name", &name); err != nil {
		return nil, err
	}
	info.Name = name

	var symbol string
	if err := c.callString(ctx, metadataABI, contractAddr, "symbol", &symbol); err == nil {
		info.TokenPrefix = symbol
	}

	// owner() is Ownable, not ERC-721; absence is fine
	data, err := metadataABI.Pack("owner")
	if err == nil {
		if result, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &contractAddr, Data: data}, nil); err == nil {
			var owner common.Address
			if err := metadataABI.UnpackIntoInterface(&owner, "owner", result); err == nil {
				info.Owner = owner.Hex()
			}
		}
	}

	raw, err := json.Marshal(map[string]string{
		"contract": contractAddr.Hex(),
		"name":     info.Name,
		"symbol":   info.TokenPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal collection data: %w", err)
	}
	info.Raw = raw

	return info, nil
}

// TokenInfo fetches the on-chain token owner and metadata
func (c *evmChainClient) TokenInfo(ctx context.Context, collectionID, tokenID uint64) (*adapter.ChainToken, error) {
	if c.meta != nil {
		return c.meta.TokenData(ctx, collectionID, tokenID)
	}

	owner, err := c.OwnerOf(ctx, collectionID, tokenID)
	if err != nil {
		return nil, err
	}

	token := &adapter.ChainToken{Owner: owner}

	// ERC721 tokenURI function signature: tokenURI(uint256) returns (string)
	tokenURIABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	contractAddr, err := c.collectionAddress(collectionID)
	if err != nil {
		return nil, err
	}

	data, err := tokenURIABI.Pack("tokenURI", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &contractAddr, Data: data}, nil)
	if err != nil {
		// tokenURI is optional metadata; ownership alone is still useful
		return token, nil
	}

	var uri string
	if err := tokenURIABI.UnpackIntoInterface(&uri, "tokenURI", result); err != nil {
		return token, nil
	}

	metadata, err := json.Marshal([]map[string]string{{"key": "tokenURI", "value": uri}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token metadata: %w", err)
	}
	token.Metadata = metadata

	return token, nil
}

// callString performs a no-argument view call returning a single string
func (c *evmChainClient) callString(ctx context.Context, parsedABI abi.ABI, contractAddr common.Address, method string, out *string) error {
	data, err := parsedABI.Pack(method)
	if err != nil {
		return fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to call contract: %w", err)
	}

	if err := parsedABI.UnpackIntoInterface(out, method, result); err != nil {
		return fmt.Errorf("failed to unpack result: %w", err)
	}

	return nil
}

// Close releases the underlying connection
func (c *evmChainClient) Close() {
	c.client.Close()
}
