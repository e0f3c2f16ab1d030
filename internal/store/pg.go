package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance.
// The gorm connection must be opened with TranslateError enabled so unique
// violations surface as gorm.ErrDuplicatedKey.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetOfferByID retrieves an offer by its ID
func (s *pgStore) GetOfferByID(ctx context.Context, offerID string) (*schema.Offer, error) {
	var offer schema.Offer
	err := s.db.WithContext(ctx).Where("id = ?", offerID).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return &offer, nil
}

// GetActiveOffer retrieves the Active offer for a token
func (s *pgStore) GetActiveOffer(ctx context.Context, network domain.Network, collectionID, tokenID uint64) (*schema.Offer, error) {
	var offer schema.Offer
	err := s.db.WithContext(ctx).
		Where("network = ? AND collection_id = ? AND token_id = ? AND status = ?",
			network, collectionID, tokenID, domain.OfferStatusActive).
		First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active offer: %w", err)
	}
	return &offer, nil
}

// GetActiveOfferForSeller retrieves the Active offer for a token constrained
// to a seller and offer type
func (s *pgStore) GetActiveOfferForSeller(ctx context.Context, network domain.Network, collectionID, tokenID uint64, seller string, offerType domain.OfferType) (*schema.Offer, error) {
	var offer schema.Offer
	err := s.db.WithContext(ctx).
		Where("network = ? AND collection_id = ? AND token_id = ? AND address_from = ? AND type = ? AND status = ?",
			network, collectionID, tokenID, seller, offerType, domain.OfferStatusActive).
		First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active offer for seller: %w", err)
	}
	return &offer, nil
}

// ListOffers retrieves offers matching the filter with the total count
func (s *pgStore) ListOffers(ctx context.Context, filter OfferFilter) ([]schema.Offer, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Offer{})

	if filter.Network != "" {
		query = query.Where("offers.network = ?", filter.Network)
	}
	if filter.CollectionID != nil {
		query = query.Where("offers.collection_id = ?", *filter.CollectionID)
	}
	if filter.TokenID != nil {
		query = query.Where("offers.token_id = ?", *filter.TokenID)
	}
	if filter.Seller != "" {
		query = query.Where("offers.address_from = ?", domain.NormalizeAddress(filter.Seller))
	}
	if len(filter.Types) > 0 {
		query = query.Where("offers.type IN ?", filter.Types)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("offers.status IN ?", filter.Statuses)
	}
	if filter.MinPrice != "" {
		query = query.Where("offers.price >= ?::numeric", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query = query.Where("offers.price <= ?::numeric", filter.MaxPrice)
	}

	// Trait filters join through the regenerated search index
	if filter.TraitKey != "" {
		query = query.Joins(`JOIN search_index ON search_index.network = offers.network
			AND search_index.collection_id = offers.collection_id
			AND search_index.token_id = offers.token_id`).
			Where("search_index.key = ?", filter.TraitKey)
		if filter.TraitValue != "" {
			query = query.Where("search_index.items @> ?::jsonb", fmt.Sprintf("[%q]", filter.TraitValue))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count offers: %w", err)
	}

	query = query.Order("offers.created_at DESC").Order("offers.id DESC").
		Limit(filter.Limit).Offset(int(filter.Offset)) //nolint:gosec,G115

	var offers []schema.Offer
	if err := query.Find(&offers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list offers: %w", err)
	}

	return offers, uint64(total), nil //nolint:gosec,G115
}

// CreateOffer inserts a new offer. The partial unique index on
// (network, collection_id, token_id) WHERE status = 'active' rejects a second
// Active offer inside the same statement, so concurrent opens cannot both
// succeed.
func (s *pgStore) CreateOffer(ctx context.Context, offer *schema.Offer) error {
	err := s.db.WithContext(ctx).Create(offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrOfferConflict
		}
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// TerminateOffer moves an Active offer to the given terminal status
func (s *pgStore) TerminateOffer(ctx context.Context, offerID string, status domain.OfferStatus, blockNumber *uint64) (bool, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == domain.OfferStatusCancelled || status == domain.OfferStatusRemovedByAdmin {
		updates["block_number_cancel"] = blockNumber
	}

	tx := s.db.WithContext(ctx).Model(&schema.Offer{}).
		Where("id = ? AND status = ?", offerID, domain.OfferStatusActive).
		Updates(updates)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to terminate offer: %w", tx.Error)
	}

	return tx.RowsAffected > 0, nil
}

// TerminateOffersBySeller moves every matching Active offer to the given
// terminal status in one UPDATE; atomicity under concurrent listing relies on
// this being a single set-based statement
func (s *pgStore) TerminateOffersBySeller(ctx context.Context, network domain.Network, seller string, offerType domain.OfferType, status domain.OfferStatus) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&schema.Offer{}).
		Where("network = ? AND address_from = ? AND type = ? AND status = ?",
			network, seller, offerType, domain.OfferStatusActive).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to terminate offers: %w", tx.Error)
	}

	return tx.RowsAffected, nil
}

// SettleOffer transitions an Active offer to bought and creates the trade row
// in one transaction. A repeated settle with the same buyer returns the
// existing trade instead of an error, so chain event re-delivery is harmless.
func (s *pgStore) SettleOffer(ctx context.Context, input SettleOfferInput) (*schema.Trade, error) {
	var trade *schema.Trade

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the offer row so concurrent settles serialize
		var offer schema.Offer
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.OfferID).
			First(&offer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOfferNotFound
			}
			return fmt.Errorf("failed to lock offer: %w", err)
		}

		switch offer.Status {
		case domain.OfferStatusActive:
			// proceed
		case domain.OfferStatusBought:
			if offer.AddressTo != nil && domain.SameAddress(*offer.AddressTo, input.Buyer) {
				var existing schema.Trade
				if err := tx.Where("offer_id = ?", offer.ID).First(&existing).Error; err != nil {
					return fmt.Errorf("failed to load existing trade: %w", err)
				}
				trade = &existing
				return nil
			}
			return domain.ErrOfferConflict
		default:
			return domain.ErrOfferConflict
		}

		offer.Status = domain.OfferStatusBought
		offer.AddressTo = &input.Buyer
		offer.BlockNumberBuy = input.BlockNumber
		if err := tx.Save(&offer).Error; err != nil {
			return fmt.Errorf("failed to update offer: %w", err)
		}

		newTrade := schema.Trade{
			ID:           schema.NewID(),
			OfferID:      offer.ID,
			Network:      offer.Network,
			CollectionID: offer.CollectionID,
			TokenID:      offer.TokenID,
			Seller:       offer.AddressFrom,
			Buyer:        input.Buyer,
			Price:        offer.Price,
			Currency:     offer.Currency,
			Commission:   input.Commission,
			Method:       input.Method,
			BlockNumber:  input.BlockNumber,
			TradeDate:    input.TradeDate,
		}
		if err := tx.Create(&newTrade).Error; err != nil {
			return fmt.Errorf("failed to create trade: %w", err)
		}

		trade = &newTrade
		return nil
	})
	if err != nil {
		return nil, err
	}

	return trade, nil
}

// GetOffersBySellerTokens retrieves a seller's offers of one type for the
// given token subset, any status
func (s *pgStore) GetOffersBySellerTokens(ctx context.Context, network domain.Network, collectionID uint64, seller string, tokenIDs []uint64, offerType domain.OfferType) ([]schema.Offer, error) {
	if len(tokenIDs) == 0 {
		return []schema.Offer{}, nil
	}

	var offers []schema.Offer
	err := s.db.WithContext(ctx).
		Where("network = ? AND collection_id = ? AND address_from = ? AND type = ? AND token_id IN ?",
			network, collectionID, seller, offerType, tokenIDs).
		Order("token_id ASC, created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get offers by seller tokens: %w", err)
	}

	return offers, nil
}

// ApplyMassListing persists mass-listing creates and reactivations in one
// transaction. Reactivation is a single UPDATE over the named cancelled rows;
// re-running with offers already Active touches nothing.
func (s *pgStore) ApplyMassListing(ctx context.Context, creates []*schema.Offer, reactivate ReactivateBatch) error {
	if len(creates) == 0 && len(reactivate.IDs) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(creates) > 0 {
			if err := tx.Create(creates).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return domain.ErrOfferConflict
				}
				return fmt.Errorf("failed to create offers: %w", err)
			}
		}

		if len(reactivate.IDs) > 0 {
			terms := reactivate.Terms
			updates := map[string]interface{}{
				"status":              domain.OfferStatusActive,
				"price":               terms.Price,
				"currency":            terms.Currency,
				"address_to":          nil,
				"block_number_ask":    terms.BlockNumberAsk,
				"block_number_cancel": nil,
				"block_number_buy":    nil,
				"start_price":         terms.StartPrice,
				"price_step":          terms.PriceStep,
				"auction_status":      terms.AuctionStatus,
				"stop_at":             terms.StopAt,
				"updated_at":          time.Now(),
			}

			result := tx.Model(&schema.Offer{}).
				Where("id IN ? AND status = ?", reactivate.IDs, domain.OfferStatusCancelled).
				Updates(updates)
			if result.Error != nil {
				if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
					return domain.ErrOfferConflict
				}
				return fmt.Errorf("failed to reactivate offers: %w", result.Error)
			}
		}

		return nil
	})
}

// ListActiveChainOffers pages through Active non-fiat offers for
// reconciliation. ULID ordering makes id a stable keyset cursor even while
// the sweep terminates offers mid-scan.
func (s *pgStore) ListActiveChainOffers(ctx context.Context, limit int, afterID string) ([]schema.Offer, error) {
	var offers []schema.Offer
	err := s.db.WithContext(ctx).
		Where("status = ? AND type IN ?", domain.OfferStatusActive,
			[]domain.OfferType{domain.OfferTypeFixedPrice, domain.OfferTypeAuction}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active chain offers: %w", err)
	}
	return offers, nil
}

// ListExpiredAuctions retrieves Active auction offers whose stop_at has passed
func (s *pgStore) ListExpiredAuctions(ctx context.Context, now time.Time) ([]schema.Offer, error) {
	var offers []schema.Offer
	err := s.db.WithContext(ctx).
		Where("status = ? AND type = ? AND stop_at IS NOT NULL AND stop_at <= ?",
			domain.OfferStatusActive, domain.OfferTypeAuction, now).
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expired auctions: %w", err)
	}
	return offers, nil
}

// CreateBid appends an auction bid
func (s *pgStore) CreateBid(ctx context.Context, bid *schema.Bid) error {
	if err := s.db.WithContext(ctx).Create(bid).Error; err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}
	return nil
}

// GetHighestBid retrieves the highest bid for an offer.
// Highest-amount-wins is derived here, it is never stored on the offer.
func (s *pgStore) GetHighestBid(ctx context.Context, offerID string) (*schema.Bid, error) {
	var bid schema.Bid
	err := s.db.WithContext(ctx).
		Where("offer_id = ?", offerID).
		Order("amount DESC").Order("created_at ASC").
		First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get highest bid: %w", err)
	}
	return &bid, nil
}

// ListTrades retrieves settled trades matching the filter with the total count
func (s *pgStore) ListTrades(ctx context.Context, filter TradeFilter) ([]schema.Trade, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Trade{})

	if filter.Network != "" {
		query = query.Where("network = ?", filter.Network)
	}
	if filter.CollectionID != nil {
		query = query.Where("collection_id = ?", *filter.CollectionID)
	}
	if filter.TokenID != nil {
		query = query.Where("token_id = ?", *filter.TokenID)
	}
	if filter.Seller != "" {
		query = query.Where("seller = ?", domain.NormalizeAddress(filter.Seller))
	}
	if filter.Buyer != "" {
		query = query.Where("buyer = ?", domain.NormalizeAddress(filter.Buyer))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count trades: %w", err)
	}

	query = query.Order("trade_date DESC").Limit(filter.Limit).Offset(int(filter.Offset)) //nolint:gosec,G115

	var trades []schema.Trade
	if err := query.Find(&trades).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list trades: %w", err)
	}

	return trades, uint64(total), nil //nolint:gosec,G115
}

// UpsertCollection creates or refreshes a cached collection projection.
// Enabled and allowed_tokens are admin-owned and deliberately not overwritten
// by metadata refreshes.
func (s *pgStore) UpsertCollection(ctx context.Context, collection *schema.Collection) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "network"}, {Name: "collection_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "token_prefix", "owner", "data", "updated_at",
		}),
	}).Create(collection).Error
	if err != nil {
		return fmt.Errorf("failed to upsert collection: %w", err)
	}
	return nil
}

// GetCollection retrieves a collection by chain identity
func (s *pgStore) GetCollection(ctx context.Context, network domain.Network, collectionID uint64) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).
		Where("network = ? AND collection_id = ?", network, collectionID).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

// SetCollectionEnabled toggles marketplace trading for a collection
func (s *pgStore) SetCollectionEnabled(ctx context.Context, network domain.Network, collectionID uint64, enabled bool) (bool, error) {
	tx := s.db.WithContext(ctx).Model(&schema.Collection{}).
		Where("network = ? AND collection_id = ?", network, collectionID).
		Updates(map[string]interface{}{"enabled": enabled, "updated_at": time.Now()})
	if tx.Error != nil {
		return false, fmt.Errorf("failed to set collection enabled: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// SetAllowedTokens replaces the allowed-tokens expression for a collection
func (s *pgStore) SetAllowedTokens(ctx context.Context, network domain.Network, collectionID uint64, allowedTokens string) (bool, error) {
	tx := s.db.WithContext(ctx).Model(&schema.Collection{}).
		Where("network = ? AND collection_id = ?", network, collectionID).
		Updates(map[string]interface{}{"allowed_tokens": allowedTokens, "updated_at": time.Now()})
	if tx.Error != nil {
		return false, fmt.Errorf("failed to set allowed tokens: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// ListCollections retrieves cached collections
func (s *pgStore) ListCollections(ctx context.Context, network domain.Network, enabledOnly bool) ([]schema.Collection, error) {
	query := s.db.WithContext(ctx).Model(&schema.Collection{})
	if network != "" {
		query = query.Where("network = ?", network)
	}
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var collections []schema.Collection
	if err := query.Order("collection_id ASC").Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

// UpsertToken creates or refreshes a cached token projection
func (s *pgStore) UpsertToken(ctx context.Context, token *schema.Token) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "network"}, {Name: "collection_id"}, {Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "data", "updated_at"}),
	}).Create(token).Error
	if err != nil {
		return fmt.Errorf("failed to upsert token: %w", err)
	}
	return nil
}

// GetToken retrieves a token by chain identity
func (s *pgStore) GetToken(ctx context.Context, network domain.Network, collectionID, tokenID uint64) (*schema.Token, error) {
	var token schema.Token
	err := s.db.WithContext(ctx).
		Where("network = ? AND collection_id = ? AND token_id = ?", network, collectionID, tokenID).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// ReplaceSearchIndex regenerates the search rows for one token: delete then
// insert in a single transaction, matching the regenerate-not-merge contract
func (s *pgStore) ReplaceSearchIndex(ctx context.Context, network domain.Network, collectionID, tokenID uint64, entries []schema.SearchIndexEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("network = ? AND collection_id = ? AND token_id = ?",
			network, collectionID, tokenID).
			Delete(&schema.SearchIndexEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete search entries: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}

		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("failed to create search entries: %w", err)
		}
		return nil
	})
}

// CreateAdminSession records an issued admin session token
func (s *pgStore) CreateAdminSession(ctx context.Context, session *schema.AdminSession) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create admin session: %w", err)
	}
	return nil
}

// GetSetting retrieves a settings value
func (s *pgStore) GetSetting(ctx context.Context, key string) (string, error) {
	var setting schema.Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return setting.Value, nil
}

// SetSetting stores a settings value
func (s *pgStore) SetSetting(ctx context.Context, key, value string) error {
	setting := schema.Setting{Key: key, Value: value}
	if err := s.db.WithContext(ctx).Save(&setting).Error; err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// CreateNFTTransfer records an observed token transfer; re-delivered chain
// events hit the dedup index and are skipped
func (s *pgStore) CreateNFTTransfer(ctx context.Context, transfer *schema.NFTTransfer) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "network"}, {Name: "collection_id"}, {Name: "token_id"},
			{Name: "address_from"}, {Name: "address_to"}, {Name: "block_number"},
		},
		DoNothing: true,
	}).Create(transfer).Error
	if err != nil {
		return fmt.Errorf("failed to create nft transfer: %w", err)
	}
	return nil
}

// CreateMoneyTransfer records a fiat money movement
func (s *pgStore) CreateMoneyTransfer(ctx context.Context, transfer *schema.MoneyTransfer) error {
	if err := s.db.WithContext(ctx).Create(transfer).Error; err != nil {
		return fmt.Errorf("failed to create money transfer: %w", err)
	}
	return nil
}

// UpdateMoneyTransferStatus promotes a money transfer's lifecycle status
func (s *pgStore) UpdateMoneyTransferStatus(ctx context.Context, id string, status schema.MoneyTransferStatus, blockNumber *uint64) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if blockNumber != nil {
		updates["block_number"] = blockNumber
	}

	tx := s.db.WithContext(ctx).Model(&schema.MoneyTransfer{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return fmt.Errorf("failed to update money transfer: %w", tx.Error)
	}
	return nil
}

// ListPendingMoneyTransfers retrieves fiat transfers stuck in pending
func (s *pgStore) ListPendingMoneyTransfers(ctx context.Context, olderThan time.Time) ([]schema.MoneyTransfer, error) {
	var transfers []schema.MoneyTransfer
	err := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", schema.MoneyTransferStatusPending, olderThan).
		Order("created_at ASC").
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending money transfers: %w", err)
	}
	return transfers, nil
}
