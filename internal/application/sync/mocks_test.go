package sync

import (
	"context"
	"strings"
	"time"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/fleet/backend/internal/domain/identity"
	"github.com/fleet/backend/internal/domain/integration"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// In-memory fakes shared across the sync service tests.

type memCustomerRepo struct {
	customers map[uuid.UUID]*delivery.Customer
	saveErr   error
	saves     int
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[uuid.UUID]*delivery.Customer)}
}

func (m *memCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*delivery.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memCustomerRepo) FindByExternalID(_ context.Context, companyID uuid.UUID, externalID string) (*delivery.Customer, error) {
	for _, c := range m.customers {
		if c.CompanyID == companyID && c.ExternalID == externalID && externalID != "" {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memCustomerRepo) FindByPhone(_ context.Context, companyID uuid.UUID, phone string) (*delivery.Customer, error) {
	for _, c := range m.customers {
		if c.CompanyID == companyID && c.Phone == phone {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memCustomerRepo) FindByEmail(_ context.Context, companyID uuid.UUID, email string) (*delivery.Customer, error) {
	for _, c := range m.customers {
		if c.CompanyID == companyID && c.Email == strings.ToLower(email) {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memCustomerRepo) FindAllForCompany(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]delivery.Customer, error) {
	var out []delivery.Customer
	for _, c := range m.customers {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCustomerRepo) Save(_ context.Context, customer *delivery.Customer) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.customers[customer.ID] = customer
	return nil
}

func (m *memCustomerRepo) CountForCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range m.customers {
		if c.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type memRiderRepo struct {
	riders  map[uuid.UUID]*delivery.Rider
	saveErr error
}

func newMemRiderRepo() *memRiderRepo {
	return &memRiderRepo{riders: make(map[uuid.UUID]*delivery.Rider)}
}

func (m *memRiderRepo) FindByID(_ context.Context, id uuid.UUID) (*delivery.Rider, error) {
	if r, ok := m.riders[id]; ok {
		return r, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memRiderRepo) FindByExternalID(_ context.Context, companyID uuid.UUID, externalID string) (*delivery.Rider, error) {
	for _, r := range m.riders {
		if r.CompanyID == companyID && r.ExternalID == externalID && externalID != "" {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memRiderRepo) FindAllForCompany(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]delivery.Rider, error) {
	var out []delivery.Rider
	for _, r := range m.riders {
		if r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRiderRepo) Save(_ context.Context, rider *delivery.Rider) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.riders[rider.ID] = rider
	return nil
}

func (m *memRiderRepo) CountForCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range m.riders {
		if r.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type memOrderRepo struct {
	orders  map[uuid.UUID]*delivery.Order
	saveErr error
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*delivery.Order)}
}

func (m *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*delivery.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memOrderRepo) FindByExternalID(_ context.Context, companyID uuid.UUID, externalID string) (*delivery.Order, error) {
	for _, o := range m.orders {
		if o.CompanyID == companyID && o.ExternalID == externalID && externalID != "" {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memOrderRepo) FindAllForCompany(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]delivery.Order, error) {
	var out []delivery.Order
	for _, o := range m.orders {
		if o.CompanyID == companyID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) FindByStatus(_ context.Context, companyID uuid.UUID, status delivery.OrderStatus, _ shared.Filter) ([]delivery.Order, error) {
	var out []delivery.Order
	for _, o := range m.orders {
		if o.CompanyID == companyID && o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) Save(_ context.Context, order *delivery.Order) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.orders[order.ID] = order
	return nil
}

func (m *memOrderRepo) CountForCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, o := range m.orders {
		if o.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type fakeCompanyLookup struct {
	companies map[string]*identity.Company
}

func newFakeCompanyLookup(companies ...*identity.Company) *fakeCompanyLookup {
	m := &fakeCompanyLookup{companies: make(map[string]*identity.Company)}
	for _, c := range companies {
		m.companies[c.APIKey] = c
	}
	return m
}

func (m *fakeCompanyLookup) FindByAPIKey(_ context.Context, apiKey string) (*identity.Company, error) {
	if c, ok := m.companies[apiKey]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

type memIntegrationRepo struct {
	integrations map[uuid.UUID]*integration.Integration
}

func newMemIntegrationRepo(integrations ...*integration.Integration) *memIntegrationRepo {
	m := &memIntegrationRepo{integrations: make(map[uuid.UUID]*integration.Integration)}
	for _, i := range integrations {
		m.integrations[i.ID] = i
	}
	return m
}

func (m *memIntegrationRepo) FindByID(_ context.Context, id uuid.UUID) (*integration.Integration, error) {
	if i, ok := m.integrations[id]; ok {
		return i, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memIntegrationRepo) FindByIDForCompany(_ context.Context, companyID, id uuid.UUID) (*integration.Integration, error) {
	if i, ok := m.integrations[id]; ok && i.CompanyID == companyID {
		return i, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memIntegrationRepo) FindAllForCompany(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]integration.Integration, error) {
	var out []integration.Integration
	for _, i := range m.integrations {
		if i.CompanyID == companyID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *memIntegrationRepo) FindActiveForCompany(_ context.Context, companyID uuid.UUID) ([]integration.Integration, error) {
	var out []integration.Integration
	for _, i := range m.integrations {
		if i.CompanyID == companyID && i.IsActive {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *memIntegrationRepo) Save(_ context.Context, integ *integration.Integration) error {
	m.integrations[integ.ID] = integ
	return nil
}

func (m *memIntegrationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.integrations, id)
	return nil
}

type memSyncLogRepo struct {
	logs []*integration.SyncLog
}

func (m *memSyncLogRepo) Save(_ context.Context, log *integration.SyncLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *memSyncLogRepo) FindByIntegration(_ context.Context, integrationID uuid.UUID, _ shared.Filter) ([]integration.SyncLog, error) {
	var out []integration.SyncLog
	for _, l := range m.logs {
		if l.IntegrationID == integrationID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memSyncLogRepo) CountByIntegration(_ context.Context, integrationID uuid.UUID) (int64, error) {
	var n int64
	for _, l := range m.logs {
		if l.IntegrationID == integrationID {
			n++
		}
	}
	return n, nil
}

// stubFeedClient serves canned records or errors per entity kind
type stubFeedClient struct {
	records map[integration.SyncEntityKind][]integration.FeedRecord
	errs    map[integration.SyncEntityKind]error
}

func (s *stubFeedClient) FetchCollection(_ context.Context, _ *integration.Integration, kind integration.SyncEntityKind) ([]integration.FeedRecord, error) {
	if err, ok := s.errs[kind]; ok {
		return nil, err
	}
	return s.records[kind], nil
}

// stubObserver captures reported run and webhook outcomes
type stubObserver struct {
	runs     []observedRun
	webhooks []observedWebhook
}

type observedRun struct {
	platform string
	status   string
	fetched  int64
	created  int64
	updated  int64
	failed   int64
	duration time.Duration
}

type observedWebhook struct {
	platform  string
	topic     string
	processed bool
}

func (s *stubObserver) ObserveRun(_ context.Context, platform, status string, fetched, created, updated, failed int64, duration time.Duration) {
	s.runs = append(s.runs, observedRun{platform, status, fetched, created, updated, failed, duration})
}

func (s *stubObserver) ObserveWebhook(_ context.Context, platform, topic string, processed bool) {
	s.webhooks = append(s.webhooks, observedWebhook{platform, topic, processed})
}
