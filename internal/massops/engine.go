package massops

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// ListRequest describes one mass listing call. TokenIDs optionally narrows
// the run to a subset; an empty slice means every token the seller owns in
// the collection.
//
// Exactly one of Price (smallest currency unit, chain sales) or FiatPrice
// (decimal fiat, scaled to cents) is set, matching Type.
type ListRequest struct {
	Network      domain.Network
	CollectionID uint64
	TokenIDs     []uint64
	Seller       string
	Type         domain.OfferType
	Price        string
	FiatPrice    string
	Currency     string
	BlockNumber  *uint64
}

// AuctionTerms carries the auction-only listing parameters
type AuctionTerms struct {
	StartPrice string
	PriceStep  string
	StopAt     time.Time
}

// Result reports the partition outcome of a mass listing run. Failed maps
// token ids to the chain error that excluded them; a non-empty Failed does
// not fail the batch.
type Result struct {
	Created     []uint64
	Reactivated []uint64
	Skipped     []uint64
	Failed      map[uint64]string
}

// NoOp reports whether the run wrote nothing
func (r Result) NoOp() bool {
	return len(r.Created) == 0 && len(r.Reactivated) == 0
}

// Engine orchestrates bulk listing and cancellation for the administrative
// sale flows. It computes what the seller actually owns on chain, diffs
// against existing offers, and applies the whole outcome in one store write.
type Engine struct {
	store      store.Store
	chains     map[domain.Network]adapter.ChainClient
	workerPool int
}

// New creates a mass operation engine. workerPool bounds concurrent
// per-token ownership queries.
func New(s store.Store, chains map[domain.Network]adapter.ChainClient, workerPool int) *Engine {
	if workerPool <= 0 {
		workerPool = 8
	}
	return &Engine{store: s, chains: chains, workerPool: workerPool}
}

// MassList lists tokens at a fixed price, chain-native or fiat.
// Re-running with the same input is a no-op for tokens already Active.
func (e *Engine) MassList(ctx context.Context, req ListRequest) (Result, error) {
	if req.Type != domain.OfferTypeFixedPrice && req.Type != domain.OfferTypeFiat {
		return Result{}, fmt.Errorf("%w: mass list supports fixed_price and fiat, got %q", domain.ErrInvalidInput, req.Type)
	}

	price, err := e.resolvePrice(req)
	if err != nil {
		return Result{}, err
	}

	terms := store.OfferTerms{
		Type:           req.Type,
		Price:          price,
		Currency:       req.Currency,
		BlockNumberAsk: req.BlockNumber,
	}
	return e.massList(ctx, req, terms)
}

// MassListAuction lists tokens for auction with the given terms
func (e *Engine) MassListAuction(ctx context.Context, req ListRequest, auction AuctionTerms) (Result, error) {
	if req.Type != domain.OfferTypeAuction {
		return Result{}, fmt.Errorf("%w: auction listing requires type auction, got %q", domain.ErrInvalidInput, req.Type)
	}
	if auction.StartPrice == "" || auction.PriceStep == "" || auction.StopAt.IsZero() {
		return Result{}, fmt.Errorf("%w: auction terms require startPrice, priceStep and stopAt", domain.ErrInvalidInput)
	}

	auctionStatus := domain.AuctionStatusActive
	terms := store.OfferTerms{
		Type:           domain.OfferTypeAuction,
		Price:          auction.StartPrice,
		Currency:       req.Currency,
		BlockNumberAsk: req.BlockNumber,
		StartPrice:     &auction.StartPrice,
		PriceStep:      &auction.PriceStep,
		AuctionStatus:  &auctionStatus,
		StopAt:         &auction.StopAt,
	}
	return e.massList(ctx, req, terms)
}

// MassCancel cancels every Active offer of the seller and sale type in one
// set-based statement, returning the count affected
func (e *Engine) MassCancel(ctx context.Context, network domain.Network, seller string, saleType domain.OfferType) (int64, error) {
	if !domain.IsValidNetwork(network) {
		return 0, fmt.Errorf("%w: unknown network %q", domain.ErrInvalidInput, network)
	}
	sellerAddr, err := domain.ParseAddress(seller)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	seller = sellerAddr.Value
	if !domain.IsValidOfferType(saleType) {
		return 0, fmt.Errorf("%w: unknown offer type %q", domain.ErrInvalidInput, saleType)
	}

	affected, err := e.store.TerminateOffersBySeller(ctx, network, seller, saleType, domain.OfferStatusCancelled)
	if err != nil {
		return 0, fmt.Errorf("failed to mass cancel offers: %w", err)
	}

	logger.InfoCtx(ctx, "Mass cancel applied",
		zap.String("network", string(network)),
		zap.String("seller", seller),
		zap.String("type", string(saleType)),
		zap.Int64("affected", affected))

	return affected, nil
}

func (e *Engine) massList(ctx context.Context, req ListRequest, terms store.OfferTerms) (Result, error) {
	result := Result{Failed: map[uint64]string{}}

	if !domain.IsValidNetwork(req.Network) {
		return result, fmt.Errorf("%w: unknown network %q", domain.ErrInvalidInput, req.Network)
	}
	sellerAddr, err := domain.ParseAddress(req.Seller)
	if err != nil {
		return result, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	// Chain clients report owners in canonical (EIP-55) form, so the seller
	// has to be canonical before any ownership comparison.
	req.Seller = sellerAddr.Value

	collection, err := e.store.GetCollection(ctx, req.Network, req.CollectionID)
	if err != nil {
		return result, fmt.Errorf("failed to load collection: %w", err)
	}
	if collection == nil {
		return result, domain.ErrCollectionNotFound
	}
	if !collection.Enabled {
		return result, fmt.Errorf("%w: collection %d is not enabled for trading", domain.ErrInvalidInput, req.CollectionID)
	}

	allowed, err := parseAllowedTokens(collection.AllowedTokens)
	if err != nil {
		return result, fmt.Errorf("failed to parse allowed tokens for collection %d: %w", req.CollectionID, err)
	}

	owned, err := e.ownedCandidates(ctx, req, allowed, &result)
	if err != nil {
		return result, err
	}
	if len(owned) == 0 {
		return result, nil // nothing owned is a no-op, not an error
	}

	existing, err := e.store.GetOffersBySellerTokens(ctx, req.Network, req.CollectionID, req.Seller, owned, terms.Type)
	if err != nil {
		return result, fmt.Errorf("failed to load existing offers: %w", err)
	}

	// Latest offer wins per token: an Active row skips the token, a
	// Cancelled row is reactivated in place, anything else gets a new row.
	activeByToken := map[uint64]bool{}
	cancelledByToken := map[uint64]string{}
	for _, offer := range existing {
		switch offer.Status {
		case domain.OfferStatusActive:
			activeByToken[offer.TokenID] = true
		case domain.OfferStatusCancelled:
			if _, seen := cancelledByToken[offer.TokenID]; !seen {
				// offers are listed newest first, keep the most recent
				cancelledByToken[offer.TokenID] = offer.ID
			}
		}
	}

	var creates []*schema.Offer
	reactivate := store.ReactivateBatch{Terms: terms}

	for _, tokenID := range owned {
		switch {
		case activeByToken[tokenID]:
			result.Skipped = append(result.Skipped, tokenID)
		case cancelledByToken[tokenID] != "":
			reactivate.IDs = append(reactivate.IDs, cancelledByToken[tokenID])
			result.Reactivated = append(result.Reactivated, tokenID)
		default:
			creates = append(creates, newOffer(req, tokenID, terms))
			result.Created = append(result.Created, tokenID)
		}
	}

	if len(creates) == 0 && len(reactivate.IDs) == 0 {
		return result, nil
	}

	if err := e.store.ApplyMassListing(ctx, creates, reactivate); err != nil {
		return result, fmt.Errorf("failed to apply mass listing: %w", err)
	}

	logger.InfoCtx(ctx, "Mass listing applied",
		zap.String("network", string(req.Network)),
		zap.Uint64("collectionID", req.CollectionID),
		zap.String("seller", req.Seller),
		zap.String("type", string(terms.Type)),
		zap.Int("created", len(result.Created)),
		zap.Int("reactivated", len(result.Reactivated)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

// ownedCandidates resolves the token set the seller actually owns.
// Without an explicit subset the chain's account enumeration is used; with
// one, each requested token's owner is verified concurrently and per-token
// chain failures are reported instead of aborting the batch.
func (e *Engine) ownedCandidates(ctx context.Context, req ListRequest, allowed *tokenSet, result *Result) ([]uint64, error) {
	chain, ok := e.chains[req.Network]
	if !ok {
		return nil, fmt.Errorf("%w: no chain client for network %q", domain.ErrChainUnavailable, req.Network)
	}

	if len(req.TokenIDs) == 0 {
		tokens, err := chain.AccountTokens(ctx, req.CollectionID, req.Seller)
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate owned tokens: %w", err)
		}
		return filterAllowed(tokens, allowed), nil
	}

	candidates := filterAllowed(dedupe(req.TokenIDs), allowed)

	var mu sync.Mutex
	var owned []uint64

	pool := pond.NewPool(e.workerPool, pond.WithContext(ctx))
	for _, tokenID := range candidates {
		pool.Submit(func() {
			owner, err := chain.OwnerOf(ctx, req.CollectionID, tokenID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed[tokenID] = err.Error()
			case !domain.SameAddress(owner, req.Seller):
				result.Skipped = append(result.Skipped, tokenID)
			default:
				owned = append(owned, tokenID)
			}
		})
	}
	pool.StopAndWait()

	sort.Slice(owned, func(i, j int) bool { return owned[i] < owned[j] })
	return owned, nil
}

// resolvePrice yields the integer price in the smallest currency unit.
// Fiat decimal prices are multiplied by exactly 100 into cents; the factor is
// a hard external contract with the payment gateway.
func (e *Engine) resolvePrice(req ListRequest) (string, error) {
	if req.Type == domain.OfferTypeFiat {
		if req.FiatPrice == "" {
			return "", fmt.Errorf("%w: fiat listing requires a decimal price", domain.ErrInvalidInput)
		}
		d, err := decimal.NewFromString(req.FiatPrice)
		if err != nil {
			return "", fmt.Errorf("%w: invalid fiat price %q", domain.ErrInvalidInput, req.FiatPrice)
		}
		if d.IsNegative() || d.IsZero() {
			return "", fmt.Errorf("%w: fiat price must be positive", domain.ErrInvalidInput)
		}
		cents := d.Mul(decimal.NewFromInt(domain.FIAT_CENTS_FACTOR))
		if !cents.IsInteger() {
			return "", fmt.Errorf("%w: fiat price %q has sub-cent precision", domain.ErrInvalidInput, req.FiatPrice)
		}
		return cents.String(), nil
	}

	if req.Price == "" {
		return "", fmt.Errorf("%w: price is required", domain.ErrInvalidInput)
	}
	return req.Price, nil
}

func newOffer(req ListRequest, tokenID uint64, terms store.OfferTerms) *schema.Offer {
	return &schema.Offer{
		ID:             schema.NewID(),
		Network:        req.Network,
		CollectionID:   req.CollectionID,
		TokenID:        tokenID,
		Type:           terms.Type,
		Status:         domain.OfferStatusActive,
		Price:          terms.Price,
		Currency:       terms.Currency,
		AddressFrom:    req.Seller,
		StartPrice:     terms.StartPrice,
		PriceStep:      terms.PriceStep,
		AuctionStatus:  terms.AuctionStatus,
		StopAt:         terms.StopAt,
		BlockNumberAsk: terms.BlockNumberAsk,
	}
}

func dedupe(tokens []uint64) []uint64 {
	seen := make(map[uint64]bool, len(tokens))
	out := make([]uint64, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func filterAllowed(tokens []uint64, allowed *tokenSet) []uint64 {
	if allowed == nil {
		return tokens
	}
	out := make([]uint64, 0, len(tokens))
	for _, t := range tokens {
		if allowed.contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// tokenSet is a parsed allowed-tokens expression: ranges and single ids
type tokenSet struct {
	ranges [][2]uint64
}

func (s *tokenSet) contains(tokenID uint64) bool {
	for _, r := range s.ranges {
		if tokenID >= r[0] && tokenID <= r[1] {
			return true
		}
	}
	return false
}

// parseAllowedTokens parses an expression like "1-300,500,700-720".
// An empty expression means no restriction and returns nil.
func parseAllowedTokens(expr string) (*tokenSet, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	set := &tokenSet{}
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if from, to, found := strings.Cut(part, "-"); found {
			lo, err := strconv.ParseUint(strings.TrimSpace(from), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid range start %q", from)
			}
			hi, err := strconv.ParseUint(strings.TrimSpace(to), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid range end %q", to)
			}
			if hi < lo {
				return nil, fmt.Errorf("inverted range %q", part)
			}
			set.ranges = append(set.ranges, [2]uint64{lo, hi})
			continue
		}

		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q", part)
		}
		set.ranges = append(set.ranges, [2]uint64{id, id})
	}

	return set, nil
}
