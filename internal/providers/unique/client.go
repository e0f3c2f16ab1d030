package unique

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/gallerium/marketplace-v2/internal/adapter"
)

// Client answers collection and token metadata queries over the native
// JSON-RPC surface of Unique-family nodes (unique_* methods). The EVM facade
// those networks expose does not carry collection properties, so metadata is
// read here and ownership stays on the EVM side.
type Client struct {
	endpoint string
	http     adapter.HTTPClient
}

// NewClient builds a metadata source against a node RPC endpoint
func NewClient(endpoint string, httpClient adapter.HTTPClient) *Client {
	return &Client{endpoint: endpoint, http: httpClient}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// collectionResult mirrors the unique_collectionById response. Name and
// description arrive as UTF-16 code unit arrays, tokenPrefix as hex bytes.
type collectionResult struct {
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	TokenPrefix json.RawMessage `json:"tokenPrefix"`
	Owner       string          `json:"owner"`
}

type tokenProperty struct {
	Key   json.RawMessage `json:"key"`
	Value json.RawMessage `json:"value"`
}

// tokenResult mirrors the unique_tokenData response
type tokenResult struct {
	Owner      json.RawMessage `json:"owner"`
	Properties []tokenProperty `json:"properties"`
}

// CollectionByID fetches a collection description via unique_collectionById
func (c *Client) CollectionByID(ctx context.Context, collectionID uint64) (*adapter.ChainCollection, error) {
	var result collectionResult
	raw, err := c.call(ctx, "unique_collectionById", []interface{}{collectionID}, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collection %d: %w", collectionID, err)
	}
	if raw == nil {
		return nil, nil // collection does not exist
	}

	return &adapter.ChainCollection{
		Name:        decodeChainString(result.Name),
		Description: decodeChainString(result.Description),
		TokenPrefix: decodeChainString(result.TokenPrefix),
		Owner:       result.Owner,
		Raw:         raw,
	}, nil
}

// TokenData fetches token owner and properties via unique_tokenData
func (c *Client) TokenData(ctx context.Context, collectionID, tokenID uint64) (*adapter.ChainToken, error) {
	var result tokenResult
	raw, err := c.call(ctx, "unique_tokenData", []interface{}{collectionID, tokenID}, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token %d/%d: %w", collectionID, tokenID, err)
	}
	if raw == nil {
		return nil, nil // token does not exist
	}

	rows := make([]map[string]interface{}, 0, len(result.Properties))
	for _, prop := range result.Properties {
		key := decodeChainString(prop.Key)
		if key == "" {
			continue
		}
		rows = append(rows, map[string]interface{}{
			"key":   key,
			"value": decodeChainString(prop.Value),
		})
	}

	metadata, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token metadata: %w", err)
	}

	return &adapter.ChainToken{
		Owner:    decodeOwner(result.Owner),
		Metadata: metadata,
	}, nil
}

// call performs a JSON-RPC request and decodes the result into out.
// A null result returns (nil, nil) so callers can map it to not-found.
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.http.Post(ctx, c.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to perform rpc request: %w", err)
	}

	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return nil, nil
	}

	if err := json.Unmarshal(resp.Result, out); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", method, err)
	}

	return resp.Result, nil
}

// decodeOwner normalizes the cross-account owner union the node returns:
// either a plain address string or {"Substrate": "..."} / {"Ethereum": "0x..."}
func decodeOwner(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var union map[string]string
	if err := json.Unmarshal(raw, &union); err == nil {
		for _, key := range []string{"Substrate", "substrate", "Ethereum", "ethereum"} {
			if v, ok := union[key]; ok && v != "" {
				return v
			}
		}
	}

	return ""
}

// decodeChainString normalizes the string encodings Unique nodes use:
// plain strings, 0x-prefixed hex bytes, and arrays of UTF-16 code units.
func decodeChainString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		if strings.HasPrefix(plain, "0x") {
			if decoded, err := hex.DecodeString(plain[2:]); err == nil {
				return string(decoded)
			}
		}
		return plain
	}

	var codeUnits []uint16
	if err := json.Unmarshal(raw, &codeUnits); err == nil {
		return string(utf16.Decode(codeUnits))
	}

	return ""
}
