package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fleet/backend/internal/domain/integration"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PullSyncService orchestrates one full pull-sync run against an
// integration's external API and records the outcome as telemetry.
//
// Entity kinds run sequentially in a fixed order (riders, orders,
// customers) so the order-to-customer dependency resolves within one
// pass, and so a single misbehaving upstream cannot open more than one
// connection at a time.
type PullSyncService struct {
	integrations integration.IntegrationRepository
	syncLogs     integration.SyncLogRepository
	feed         integration.FeedClient
	resolver     *IdentityResolver
	observer     SyncObserver
	logger       *zap.Logger
}

// NewPullSyncService creates a new PullSyncService. observer may be nil
// when no metrics backend is wired.
func NewPullSyncService(
	integrations integration.IntegrationRepository,
	syncLogs integration.SyncLogRepository,
	feed integration.FeedClient,
	resolver *IdentityResolver,
	observer SyncObserver,
	logger *zap.Logger,
) *PullSyncService {
	return &PullSyncService{
		integrations: integrations,
		syncLogs:     syncLogs,
		feed:         feed,
		resolver:     resolver,
		observer:     observer,
		logger:       logger,
	}
}

// RunSync executes one pull-sync run for the integration.
//
// Precondition failures (unknown or inactive integration) return an error
// and write no telemetry. Past the precondition the run always produces a
// SyncResult and one SyncLog row: upstream failures and bad records are
// counted and reported, never raised.
func (s *PullSyncService) RunSync(ctx context.Context, integrationID uuid.UUID) (*SyncResult, error) {
	integ, err := s.integrations.FindByID(ctx, integrationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, integration.ErrIntegrationNotFound
		}
		return nil, fmt.Errorf("load integration: %w", err)
	}
	if !integ.IsActive {
		return nil, integration.ErrIntegrationInactive
	}

	started := time.Now()
	result := &SyncResult{}

	for _, kind := range integration.AllSyncEntityKinds() {
		if !integ.SyncEnabledFor(kind) {
			continue
		}
		s.syncKind(ctx, integ, kind, result)
	}
	result.Duration = time.Since(started)

	s.record(ctx, integ, result)

	s.logger.Info("pull sync finished",
		zap.String("integration_id", integ.ID.String()),
		zap.String("status", result.Status().String()),
		zap.Int64("fetched", result.Totals().Fetched),
		zap.Int64("created", result.Totals().Created),
		zap.Int64("updated", result.Totals().Updated),
		zap.Int64("failed", result.Totals().Failed),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// syncKind fetches one entity collection and upserts every record.
// Fetch failure records a single error string and leaves the other kinds
// untouched; record failures are counted and the batch continues.
func (s *PullSyncService) syncKind(ctx context.Context, integ *integration.Integration, kind integration.SyncEntityKind, result *SyncResult) {
	counts := result.countsFor(kind)

	records, err := s.feed.FetchCollection(ctx, integ, kind)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", kind, err))
		s.logger.Warn("collection fetch failed",
			zap.String("integration_id", integ.ID.String()),
			zap.String("kind", kind.String()),
			zap.Error(err))
		return
	}
	counts.Fetched = int64(len(records))

	for _, rec := range records {
		created, err := s.syncRecord(ctx, integ, kind, rec)
		if err != nil {
			counts.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", kind, err))
			continue
		}
		if created {
			counts.Created++
		} else {
			counts.Updated++
		}
	}
}

// syncRecord transforms and resolves one feed record
func (s *PullSyncService) syncRecord(ctx context.Context, integ *integration.Integration, kind integration.SyncEntityKind, rec integration.FeedRecord) (bool, error) {
	source := integ.Type.String()

	switch kind {
	case integration.SyncEntityRiders:
		_, created, err := s.resolver.ResolveRider(ctx, integ.CompanyID, source, riderFromFeed(rec))
		return created, err

	case integration.SyncEntityCustomers:
		cand := customerFromFeed(rec)
		if cand.ExternalID == "" {
			return false, fmt.Errorf("%w: customer record has no id", integration.ErrRecordShape)
		}
		_, created, err := s.resolver.ResolveCustomer(ctx, integ.CompanyID, source, cand)
		return created, err

	default:
		orderCand, customerCand := orderFromFeed(integ.Type, rec)
		// Pull feeds rarely expose customers separately, so the customer
		// embedded on the order is resolved first and linked. Failure to
		// resolve the customer does not fail the order.
		if customerCand.Phone != "" || customerCand.Email != "" {
			customer, _, err := s.resolver.ResolveCustomer(ctx, integ.CompanyID, source, customerCand)
			if err == nil {
				orderCand.CustomerID = &customer.ID
			} else {
				s.logger.Warn("embedded customer resolution failed",
					zap.String("integration_id", integ.ID.String()),
					zap.String("external_order_id", orderCand.ExternalID),
					zap.Error(err))
			}
		}
		_, created, err := s.resolver.ResolveOrder(ctx, integ.CompanyID, source, orderCand)
		return created, err
	}
}

// record persists the run's telemetry: one append-only SyncLog row plus
// the integration rollups. Telemetry failure is logged, not raised; the
// sync itself already happened.
func (s *PullSyncService) record(ctx context.Context, integ *integration.Integration, result *SyncResult) {
	status := result.Status()
	totals := result.Totals()
	errMessage := strings.Join(result.Errors, "; ")

	log := integration.NewSyncLog(integ.ID, status, totals.Fetched, totals.Created, totals.Updated, totals.Failed, errMessage, result.Duration)
	if err := s.syncLogs.Save(ctx, log); err != nil {
		s.logger.Error("sync log write failed",
			zap.String("integration_id", integ.ID.String()),
			zap.Error(err))
	}

	integ.RecordSyncOutcome(status, errMessage, result.Riders.Created, result.Orders.Created, result.Customers.Created)
	if err := s.integrations.Save(ctx, integ); err != nil {
		s.logger.Error("integration rollup update failed",
			zap.String("integration_id", integ.ID.String()),
			zap.Error(err))
	}

	if s.observer != nil {
		s.observer.ObserveRun(ctx, integ.Type.String(), status.String(),
			totals.Fetched, totals.Created, totals.Updated, totals.Failed, result.Duration)
	}
}
