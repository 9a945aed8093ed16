package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/core/reporting"
	"github.com/SscSPs/drycleaner_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock StoreService ---
type MockStoreService struct {
	mock.Mock
}

var _ portssvc.StoreSvcFacade = (*MockStoreService)(nil)

func (m *MockStoreService) State() domain.StoreState {
	return m.Called().Get(0).(domain.StoreState)
}

func (m *MockStoreService) Clients() []domain.Client {
	return m.Called().Get(0).([]domain.Client)
}

func (m *MockStoreService) Invoices() []domain.Invoice {
	return m.Called().Get(0).([]domain.Invoice)
}

func (m *MockStoreService) GetPickupNotifications() []domain.Invoice {
	return m.Called().Get(0).([]domain.Invoice)
}

func (m *MockStoreService) LoadClients(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStoreService) LoadInvoices(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStoreService) LoadMoreInvoices(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStoreService) LoadData(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func invoicesArg(args mock.Arguments) []domain.Invoice {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Invoice)
}

func (m *MockStoreService) SearchInvoicesDB(ctx context.Context, query string) ([]domain.Invoice, error) {
	args := m.Called(ctx, query)
	return invoicesArg(args), args.Error(1)
}

func (m *MockStoreService) FetchInvoicesForDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, from, to)
	return invoicesArg(args), args.Error(1)
}

func (m *MockStoreService) GetClientHistory(ctx context.Context, clientID string) (*domain.Client, []domain.Invoice, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Client), args.Get(1).([]domain.Invoice), args.Error(2)
}

func (m *MockStoreService) AddClient(ctx context.Context, client domain.NewClient) (*domain.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockStoreService) UpdateClient(ctx context.Context, clientID string, update domain.ClientUpdate) error {
	return m.Called(ctx, clientID, update).Error(0)
}

func (m *MockStoreService) DeleteClient(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}

func (m *MockStoreService) AddInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockStoreService) UpdateInvoice(ctx context.Context, invoiceID string, update domain.InvoiceUpdate) error {
	return m.Called(ctx, invoiceID, update).Error(0)
}

func (m *MockStoreService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}

func (m *MockStoreService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error {
	return m.Called(ctx, invoiceID, status).Error(0)
}

func (m *MockStoreService) UpdateInvoicePaid(ctx context.Context, invoiceID string, paid bool) error {
	return m.Called(ctx, invoiceID, paid).Error(0)
}

func (m *MockStoreService) UpdateInvoicePaymentMethod(ctx context.Context, invoiceID string, method domain.PaymentMethod) error {
	return m.Called(ctx, invoiceID, method).Error(0)
}

func (m *MockStoreService) CheckDatabaseSetup(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockStoreService) InitializeDatabase(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStoreService) SubscribeToRealTimeUpdates(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStoreService) UnsubscribeFromRealTimeUpdates() { m.Called() }

func (m *MockStoreService) StartPeriodicRefresh(ctx context.Context, interval time.Duration) {
	m.Called(ctx, interval)
}

func (m *MockStoreService) ClearError() { m.Called() }

func (m *MockStoreService) Reset() { m.Called() }

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

func (m *MockReportingService) Summary(ctx context.Context, query dto.ReportQuery) (*dto.ReportSummaryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReportSummaryResponse), args.Error(1)
}

func (m *MockReportingService) ClientInsights(ctx context.Context, clientID string, rangeKey reporting.RangeKey) (*reporting.ClientInsights, error) {
	args := m.Called(ctx, clientID, rangeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.ClientInsights), args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByPhone(ctx context.Context, phone string) (*domain.UserAccount, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAccount), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.UserAccount, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

func (m *MockAuthService) LoginWithPhone(ctx context.Context, phone string) (*domain.Actor, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *MockAuthService) AdminLogin(ctx context.Context, passcode string) (*domain.Actor, error) {
	args := m.Called(ctx, passcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

// --- Mock ActivityService ---
type MockActivityService struct {
	mock.Mock
}

var _ portssvc.ActivitySvc = (*MockActivityService)(nil)

func (m *MockActivityService) ListActivity(ctx context.Context, limit int, nextToken string) ([]domain.AuditLogEntry, string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.String(1), args.Error(2)
}
