package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/core/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, companyID string, filter portsrepo.ListInvoicesFilter) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedToken, args.Error(2)
}

func (m *MockInvoiceRepository) ListOpenInvoices(ctx context.Context, companyID string, contactTypes []domain.ContactType) ([]domain.OpenInvoice, error) {
	args := m.Called(ctx, companyID, contactTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpenInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountOpenInvoices(ctx context.Context, companyID string) (int, error) {
	args := m.Called(ctx, companyID)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepository) SumPaidInvoiceTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) MonthlyPaidInvoiceTotals(ctx context.Context, companyID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	args := m.Called(ctx, invoice, lines)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Mock ContactSvc (as used by the invoice service) ---
type MockContactSvc struct {
	mock.Mock
}

var _ portssvc.ContactSvcFacade = (*MockContactSvc)(nil)

func (m *MockContactSvc) CreateContact(ctx context.Context, userID string, companyID string, req dto.CreateContactRequest) (*domain.Contact, error) {
	args := m.Called(ctx, userID, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactSvc) GetContactByID(ctx context.Context, userID string, companyID string, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, userID, companyID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactSvc) ListContacts(ctx context.Context, userID string, companyID string, params dto.ListContactsParams) ([]domain.Contact, error) {
	args := m.Called(ctx, userID, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockContactSvc) UpdateContact(ctx context.Context, userID string, companyID string, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error) {
	args := m.Called(ctx, userID, companyID, contactID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

// --- Test Suite Setup ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockContactSvc  *MockContactSvc
	mockAuthorizer  *MockCompanyAuthorizer
	service         portssvc.InvoiceSvcFacade
	companyID       string
	userID          string
	customer        domain.Contact
	vendor          domain.Contact
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockContactSvc = new(MockContactSvc)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockContactSvc,
		services.WithInvoiceCompanyAuthorizer(suite.mockAuthorizer))

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.customer = domain.Contact{
		ContactID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Name:        "Acme Corp",
		ContactType: domain.ContactCustomer,
		IsActive:    true,
	}
	suite.vendor = domain.Contact{
		ContactID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Name:        "Paper Supplies Ltd",
		ContactType: domain.ContactVendor,
		IsActive:    true,
	}
}

func (suite *InvoiceServiceTestSuite) authorizeMember() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ComputesTotals() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ContactID: suite.customer.ContactID,
		Date:      "2026-03-01",
		DueDate:   "2026-03-31",
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000),
				Discount: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(6)},
		},
	}

	suite.authorizeMember()
	suite.mockContactSvc.On("GetContactByID", mock.Anything, suite.userID, suite.companyID, suite.customer.ContactID).
		Return(&suite.customer, nil).Once()

	savedInvoice := &domain.Invoice{}
	suite.mockInvoiceRepo.On("SaveInvoice", mock.Anything, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine")).
		Run(func(args mock.Arguments) {
			invoice := args.Get(1).(domain.Invoice)
			invoice.InvoiceNo = "INV-2026-001"
			*savedInvoice = invoice
		}).Return(savedInvoice, nil).Once()

	created, err := suite.service.CreateInvoice(ctx, suite.userID, suite.companyID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("INV-2026-001", created.InvoiceNo)
	suite.Equal(domain.InvoiceDraft, created.Status)
	suite.True(created.Subtotal.Equal(decimal.NewFromInt(900)), "subtotal was %s", created.Subtotal)
	suite.True(created.TaxTotal.Equal(decimal.NewFromInt(54)), "tax total was %s", created.TaxTotal)
	suite.True(created.Total.Equal(decimal.NewFromInt(954)), "total was %s", created.Total)
	suite.Require().Len(created.Lines, 1)
	suite.True(created.Lines[0].Amount.Equal(decimal.NewFromInt(954)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NoItemName() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ContactID: suite.customer.ContactID,
		Date:      "2026-03-01",
		DueDate:   "2026-03-31",
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "   ", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}

	suite.authorizeMember()

	_, err := suite.service.CreateInvoice(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrEmptyInvoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveQuantity() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ContactID: suite.customer.ContactID,
		Date:      "2026-03-01",
		DueDate:   "2026-03-31",
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "Widget", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(50)},
		},
	}

	suite.authorizeMember()

	_, err := suite.service.CreateInvoice(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "quantity")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_VendorNotBillable() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ContactID: suite.vendor.ContactID,
		Date:      "2026-03-01",
		DueDate:   "2026-03-31",
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}

	suite.authorizeMember()
	suite.mockContactSvc.On("GetContactByID", mock.Anything, suite.userID, suite.companyID, suite.vendor.ContactID).
		Return(&suite.vendor, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrContactNotBillable)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DueDateBeforeDate() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ContactID: suite.customer.ContactID,
		Date:      "2026-03-31",
		DueDate:   "2026-03-01",
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}

	suite.authorizeMember()

	_, err := suite.service.CreateInvoice(ctx, suite.userID, suite.companyID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "due date")
}

func (suite *InvoiceServiceTestSuite) TestTransitionStatus_AllowedAndRejectedEdges() {
	tests := []struct {
		from    domain.InvoiceStatus
		to      domain.InvoiceStatus
		allowed bool
	}{
		{domain.InvoiceDraft, domain.InvoiceSent, true},
		{domain.InvoiceDraft, domain.InvoicePaid, true},
		{domain.InvoiceSent, domain.InvoicePaid, true},
		{domain.InvoiceSent, domain.InvoiceCancelled, true},
		{domain.InvoicePaid, domain.InvoiceCancelled, false},
		{domain.InvoiceCancelled, domain.InvoiceSent, false},
		{domain.InvoiceSent, domain.InvoiceDraft, false},
	}

	for _, tt := range tests {
		suite.Run(string(tt.from)+"_to_"+string(tt.to), func() {
			suite.SetupTest()
			ctx := context.Background()
			invoiceID := uuid.NewString()
			invoice := &domain.Invoice{InvoiceID: invoiceID, CompanyID: suite.companyID, Status: tt.from}

			suite.authorizeMember()
			suite.mockInvoiceRepo.On("FindInvoiceByID", mock.Anything, invoiceID).Return(invoice, nil).Once()
			if tt.allowed {
				suite.mockInvoiceRepo.On("UpdateInvoiceStatus", mock.Anything, invoiceID, tt.to, suite.userID, mock.AnythingOfType("time.Time")).
					Return(nil).Once()
			}

			updated, err := suite.service.TransitionStatus(ctx, suite.userID, suite.companyID, invoiceID, tt.to)

			if tt.allowed {
				suite.Require().NoError(err)
				suite.Equal(tt.to, updated.Status)
			} else {
				suite.Require().Error(err)
				suite.ErrorIs(err, services.ErrInvalidTransition)
				suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_SentIsImmutable() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, CompanyID: suite.companyID, Status: domain.InvoiceSent}
	notes := "updated"

	suite.authorizeMember()
	suite.mockInvoiceRepo.On("FindInvoiceByID", mock.Anything, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, suite.userID, suite.companyID, invoiceID, dto.UpdateInvoiceRequest{Notes: &notes})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutable)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ReplacesLinesAndRecomputes() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:   invoiceID,
		CompanyID:   suite.companyID,
		ContactID:   suite.customer.ContactID,
		InvoiceDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:      domain.InvoiceDraft,
	}

	suite.authorizeMember()
	suite.mockInvoiceRepo.On("FindInvoiceByID", mock.Anything, invoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Total.Equal(decimal.NewFromInt(120))
	}), mock.AnythingOfType("[]domain.InvoiceLine")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, suite.userID, suite.companyID, invoiceID, dto.UpdateInvoiceRequest{
		Lines: []dto.InvoiceLineRequest{
			{ItemName: "Paper", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(25), TaxRate: decimal.NewFromInt(20)},
		},
	})

	suite.Require().NoError(err)
	suite.True(updated.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal was %s", updated.Subtotal)
	suite.True(updated.TaxTotal.Equal(decimal.NewFromInt(20)), "tax total was %s", updated.TaxTotal)
	suite.True(updated.Total.Equal(decimal.NewFromInt(120)), "total was %s", updated.Total)
	suite.Require().Len(updated.Lines, 1)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_SentIsImmutable() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, CompanyID: suite.companyID, Status: domain.InvoiceSent}

	suite.authorizeMember()
	suite.mockInvoiceRepo.On("FindInvoiceByID", mock.Anything, invoiceID).Return(invoice, nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.userID, suite.companyID, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutable)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_CancelledIsDeletable() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, CompanyID: suite.companyID, Status: domain.InvoiceCancelled}

	suite.authorizeMember()
	suite.mockInvoiceRepo.On("FindInvoiceByID", mock.Anything, invoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("DeleteInvoice", mock.Anything, invoiceID).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.userID, suite.companyID, invoiceID)

	suite.NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_CrossCompanyIsNotFound() {
	ctx := context.Background()
	invoice := &domain.Invoice{InvoiceID: "i1", CompanyID: uuid.NewString()}

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", mock.Anything, "i1").Return(invoice, nil).Once()

	got, err := suite.service.GetInvoiceByID(ctx, suite.userID, suite.companyID, "i1")

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_UnknownStatus() {
	ctx := context.Background()
	bad := "SHIPPED"

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()

	_, _, err := suite.service.ListInvoices(ctx, suite.userID, suite.companyID, dto.ListInvoicesParams{Status: &bad})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ListInvoices", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
