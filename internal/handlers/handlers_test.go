package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/core/services"
	"github.com/SscSPs/drycleaner_app/internal/dto"
	"github.com/SscSPs/drycleaner_app/internal/handlers"
	"github.com/SscSPs/drycleaner_app/internal/platform/config"
	"github.com/SscSPs/drycleaner_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "handler-test-secret"

var kigali = time.FixedZone("CAT", 2*60*60)

type HandlersTestSuite struct {
	suite.Suite
	router    *gin.Engine
	store     *MockStoreService
	reporting *MockReportingService
	users     *MockUserService
	auth      *MockAuthService
	activity  *MockActivityService
}

func (s *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(handlers.RegisterValidators())
}

func (s *HandlersTestSuite) SetupTest() {
	s.store = new(MockStoreService)
	s.reporting = new(MockReportingService)
	s.users = new(MockUserService)
	s.auth = new(MockAuthService)
	s.activity = new(MockActivityService)

	cfg := &config.Config{
		JWTSecret:         testJWTSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "test",
		IsProduction:      true,
		Location:          kigali,
	}
	container := &portssvc.ServiceContainer{
		Store:     s.store,
		Reporting: s.reporting,
		User:      s.users,
		Auth:      s.auth,
		Token:     services.NewTokenService(testJWTSecret, time.Hour, "test"),
		Activity:  s.activity,
	}

	s.router = gin.New()
	noLimit := func(c *gin.Context) { c.Next() }
	handlers.RegisterRoutes(s.router, cfg, container, nil, noLimit)
}

func (s *HandlersTestSuite) token(role domain.UserRole) string {
	tok, err := utils.GenerateJWT("u1", "Clerk", "0788000111", string(role), testJWTSecret, time.Hour, "test")
	s.Require().NoError(err)
	return tok
}

func (s *HandlersTestSuite) do(method, path string, body any, role domain.UserRole) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(role))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestRequiresToken() {
	w := s.do(http.MethodGet, "/api/v1/clients", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.store.AssertNotCalled(s.T(), "Clients")
}

// --- Auth ---

func (s *HandlersTestSuite) TestLogin_IssuesToken() {
	actor := &domain.Actor{UserID: "u1", Name: "Aline", Phone: "0788000111", Role: domain.RoleUser}
	s.auth.On("LoginWithPhone", mock.Anything, "0788000111").Return(actor, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Phone: "0788000111"}, "")
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(*actor, resp.User)
	claims, err := utils.ParseAndValidateJWT(resp.Token, testJWTSecret)
	s.Require().NoError(err)
	s.Equal("u1", claims.Subject)
}

func (s *HandlersTestSuite) TestLogin_UnknownPhone() {
	s.auth.On("LoginWithPhone", mock.Anything, "0788").Return(nil, apperrors.ErrUnauthorized).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Phone: "0788"}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestLogin_MissingPhone() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.auth.AssertNotCalled(s.T(), "LoginWithPhone", mock.Anything, mock.Anything)
}

// --- Clients ---

func (s *HandlersTestSuite) TestListClients() {
	s.store.On("Clients").Return([]domain.Client{{ID: "c1", Name: "Jean"}}).Once()

	w := s.do(http.MethodGet, "/api/v1/clients", nil, domain.RoleUser)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ListClientsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Clients, 1)
}

func (s *HandlersTestSuite) TestCreateClient_Duplicate() {
	s.store.On("AddClient", mock.Anything, mock.AnythingOfType("domain.NewClient")).Return(nil, apperrors.ErrDuplicate).Once()

	w := s.do(http.MethodPost, "/api/v1/clients", dto.CreateClientRequest{Name: "Jean", Phone: "0788"}, domain.RoleUser)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestDeleteClient_NotFound() {
	s.store.On("DeleteClient", mock.Anything, "missing").Return(apperrors.ErrNotFound).Once()

	w := s.do(http.MethodDelete, "/api/v1/clients/missing", nil, domain.RoleUser)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestClientInsights_Timeout() {
	s.reporting.On("ClientInsights", mock.Anything, "c1", mock.Anything).Return(nil, context.DeadlineExceeded).Once()

	w := s.do(http.MethodGet, "/api/v1/clients/c1/insights?range=30d", nil, domain.RoleUser)
	s.Equal(http.StatusGatewayTimeout, w.Code)
	s.reporting.AssertCalled(s.T(), "ClientInsights", mock.Anything, "c1", mock.Anything)
}

// --- Invoices ---

var invoiceIDPattern = regexp.MustCompile(`^INV\d{9}$`)

func (s *HandlersTestSuite) TestCreateInvoice_GeneratesID() {
	s.store.On("AddInvoice", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return invoiceIDPattern.MatchString(inv.ID) && inv.Client.ID == "c1" && inv.PaymentMethod == domain.PaymentCash
	})).Return(&domain.Invoice{ID: "INV240520001"}, nil).Once()

	req := dto.CreateInvoiceRequest{
		ClientID:      "c1",
		PaymentMethod: "CASH",
		Items:         []dto.InvoiceItemRequest{{Description: "Shirt", Quantity: 2}},
	}
	w := s.do(http.MethodPost, "/api/v1/invoices", req, domain.RoleUser)
	s.Equal(http.StatusCreated, w.Code)
	s.store.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) TestCreateInvoice_RetriesGeneratedIDCollision() {
	s.store.On("AddInvoice", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()
	s.store.On("AddInvoice", mock.Anything, mock.Anything).Return(&domain.Invoice{ID: "INV240520002"}, nil).Once()

	req := dto.CreateInvoiceRequest{ClientID: "c1", Items: []dto.InvoiceItemRequest{{Description: "Shirt", Quantity: 1}}}
	w := s.do(http.MethodPost, "/api/v1/invoices", req, domain.RoleUser)
	s.Equal(http.StatusCreated, w.Code)
	s.store.AssertNumberOfCalls(s.T(), "AddInvoice", 2)
}

func (s *HandlersTestSuite) TestCreateInvoice_ExplicitIDIsNotRetried() {
	s.store.On("AddInvoice", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	req := dto.CreateInvoiceRequest{ID: "INV1", ClientID: "c1", Items: []dto.InvoiceItemRequest{{Description: "Shirt", Quantity: 1}}}
	w := s.do(http.MethodPost, "/api/v1/invoices", req, domain.RoleUser)
	s.Equal(http.StatusConflict, w.Code)
	s.store.AssertNumberOfCalls(s.T(), "AddInvoice", 1)
}

func (s *HandlersTestSuite) TestCreateInvoice_RejectsUnknownPaymentMethod() {
	req := dto.CreateInvoiceRequest{
		ClientID:      "c1",
		PaymentMethod: "CHEQUE",
		Items:         []dto.InvoiceItemRequest{{Description: "Shirt", Quantity: 1}},
	}
	w := s.do(http.MethodPost, "/api/v1/invoices", req, domain.RoleUser)
	s.Equal(http.StatusBadRequest, w.Code)
	s.store.AssertNotCalled(s.T(), "AddInvoice", mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestUpdatePaymentMethod() {
	s.store.On("UpdateInvoicePaymentMethod", mock.Anything, "INV1", domain.PaymentMomo).Return(nil).Once()

	w := s.do(http.MethodPatch, "/api/v1/invoices/INV1/payment-method", dto.UpdateInvoicePaymentMethodRequest{PaymentMethod: "MOMO"}, domain.RoleUser)
	s.Equal(http.StatusNoContent, w.Code)
	s.store.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) TestUpdatePaid_RequiresField() {
	w := s.do(http.MethodPatch, "/api/v1/invoices/INV1/paid", map[string]any{}, domain.RoleUser)
	s.Equal(http.StatusBadRequest, w.Code)

	s.store.On("UpdateInvoicePaid", mock.Anything, "INV1", false).Return(nil).Once()
	paid := false
	w = s.do(http.MethodPatch, "/api/v1/invoices/INV1/paid", dto.UpdateInvoicePaidRequest{Paid: &paid}, domain.RoleUser)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlersTestSuite) TestUpdateStatus_Invalid() {
	w := s.do(http.MethodPatch, "/api/v1/invoices/INV1/status", dto.UpdateInvoiceStatusRequest{Status: "lost"}, domain.RoleUser)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestInvoicesInRange_WholeDaysInBusinessTimezone() {
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, kigali)
	to := time.Date(2024, time.May, 2, 0, 0, 0, 0, kigali).Add(-time.Nanosecond)
	s.store.On("FetchInvoicesForDateRange", mock.Anything, from, to).Return([]domain.Invoice{{ID: "INV1"}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/invoices/range?from=2024-05-01&to=2024-05-01", nil, domain.RoleUser)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.SearchInvoicesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Count)
	s.store.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) TestInvoicesInRange_BadDate() {
	w := s.do(http.MethodGet, "/api/v1/invoices/range?from=yesterday&to=2024-05-01", nil, domain.RoleUser)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestSearchInvoices_EmptyResultIsArray() {
	s.store.On("SearchInvoicesDB", mock.Anything, "nobody").Return(nil, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/invoices/search?q=nobody", nil, domain.RoleUser)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"invoices":[],"count":0}`, w.Body.String())
}

func (s *HandlersTestSuite) TestLoadMore() {
	s.store.On("LoadMoreInvoices", mock.Anything).Return(nil).Once()
	s.store.On("State").Return(domain.StoreState{Page: 2, AllInvoicesLoaded: true})
	s.store.On("Invoices").Return([]domain.Invoice{{ID: "INV1"}, {ID: "INV2"}})

	w := s.do(http.MethodPost, "/api/v1/invoices/load-more", nil, domain.RoleUser)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ListInvoicesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(2, resp.Page)
	s.True(resp.AllInvoicesLoaded)
	s.Len(resp.Invoices, 2)
}

// --- System ---

func (s *HandlersTestSuite) TestInitialize_DatabaseNotReady() {
	s.store.On("InitializeDatabase", mock.Anything).Return(apperrors.ErrSchemaMissing).Once()
	s.store.On("State").Return(domain.StoreState{DatabaseReady: false, Error: "Database tables are missing. Run the migrations, then retry."})

	w := s.do(http.MethodPost, "/api/v1/system/initialize", nil, domain.RoleUser)
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Contains(w.Body.String(), "Run the migrations")
}

func (s *HandlersTestSuite) TestReset_AdminOnly() {
	w := s.do(http.MethodPost, "/api/v1/system/reset", nil, domain.RoleUser)
	s.Equal(http.StatusForbidden, w.Code)

	s.store.On("Reset").Return().Once()
	w = s.do(http.MethodPost, "/api/v1/system/reset", nil, domain.RoleAdmin)
	s.Equal(http.StatusNoContent, w.Code)
}

// --- Reports ---

func (s *HandlersTestSuite) TestSummary() {
	s.reporting.On("Summary", mock.Anything, dto.ReportQuery{Period: "weekly", Top: 5}).
		Return(&dto.ReportSummaryResponse{Period: "weekly", From: "2024-05-13", To: "2024-05-20"}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/summary?period=weekly", nil, domain.RoleUser)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"from":"2024-05-13"`)
	s.reporting.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) TestSummary_ValidationError() {
	s.reporting.On("Summary", mock.Anything, mock.Anything).Return(nil, apperrors.Validation("unknown period")).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/summary?period=hourly", nil, domain.RoleUser)
	s.Equal(http.StatusBadRequest, w.Code)
}

// --- Admin ---

func (s *HandlersTestSuite) TestAdminRoutes_RequireAdmin() {
	w := s.do(http.MethodGet, "/api/v1/admin/users", nil, domain.RoleUser)
	s.Equal(http.StatusForbidden, w.Code)
	s.users.AssertNotCalled(s.T(), "ListUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestCreateUser() {
	s.users.On("CreateUser", mock.Anything, dto.CreateUserRequest{Name: "Aline", Phone: "0788"}).
		Return(&domain.UserAccount{ID: "u2", Name: "Aline", Phone: "0788", Role: domain.RoleUser}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/users", dto.CreateUserRequest{Name: "Aline", Phone: "0788"}, domain.RoleAdmin)
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp dto.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("u2", resp.ID)
}

func (s *HandlersTestSuite) TestListActivity() {
	entries := []domain.AuditLogEntry{{ID: "a1", Action: domain.AuditDelete}}
	s.activity.On("ListActivity", mock.Anything, 100, "tok").Return(entries, "next", nil).Once()

	w := s.do(http.MethodGet, "/api/v1/admin/activity?limit=100&nextToken=tok", nil, domain.RoleAdmin)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ListActivityResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("next", resp.NextToken)
	s.Len(resp.Entries, 1)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestErrorResponseShape(t *testing.T) {
	b, err := json.Marshal(handlers.ErrorResponse{Error: "boom"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, string(b))
}
