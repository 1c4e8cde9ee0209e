package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/core/services"
	"github.com/nairabooks/ledger_backend/internal/dto"
)

// --- Mock PayrollRepository ---
type MockPayrollRepository struct {
	mock.Mock
}

var _ portsrepo.PayrollRepository = (*MockPayrollRepository)(nil)

func (m *MockPayrollRepository) FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, tenantID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockPayrollRepository) ListActiveEmployees(ctx context.Context, tenantID, branchID string, employeeIDs []string) ([]domain.Employee, error) {
	args := m.Called(ctx, tenantID, branchID, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockPayrollRepository) FindPayrollConfigByEmployeeID(ctx context.Context, tenantID, employeeID string) (*domain.PayrollConfig, error) {
	args := m.Called(ctx, tenantID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollConfig), args.Error(1)
}

func (m *MockPayrollRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockPayrollRepository) SavePayrollConfig(ctx context.Context, config domain.PayrollConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockPayrollRepository) SavePayslip(ctx context.Context, payslip domain.Payslip) error {
	args := m.Called(ctx, payslip)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindPayslipByID(ctx context.Context, tenantID, payslipID string) (*domain.Payslip, error) {
	args := m.Called(ctx, tenantID, payslipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payslip), args.Error(1)
}

func (m *MockPayrollRepository) FindPayslipForPeriod(ctx context.Context, tenantID, employeeID string, periodStart, periodEnd time.Time) (*domain.Payslip, error) {
	args := m.Called(ctx, tenantID, employeeID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payslip), args.Error(1)
}

func (m *MockPayrollRepository) MarkPayslipPosted(ctx context.Context, tenantID, payslipID string, postedAt time.Time) error {
	args := m.Called(ctx, tenantID, payslipID, postedAt)
	return args.Error(0)
}

func (m *MockPayrollRepository) SummarizePayslips(ctx context.Context, tenantID string, start, end time.Time) (*domain.PayrollSummary, error) {
	args := m.Called(ctx, tenantID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollSummary), args.Error(1)
}

// --- Mock TenantRepository ---
type MockTenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantRepository = (*MockTenantRepository)(nil)

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) DeactivateTenant(ctx context.Context, tenantID, updatedBy string) error {
	args := m.Called(ctx, tenantID, updatedBy)
	return args.Error(0)
}

func (m *MockTenantRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockTenantRepository) FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockTenantRepository) ListBranches(ctx context.Context, tenantID string) ([]domain.Branch, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

// --- Mock AccountReaderSvc ---
type MockAccountReaderSvc struct {
	mock.Mock
}

var _ portssvc.AccountReaderSvc = (*MockAccountReaderSvc)(nil)

func (m *MockAccountReaderSvc) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountsGroupedByType(ctx context.Context, tenantID string, branchID *string) (map[domain.AccountType][]dto.AccountWithBalance, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountType][]dto.AccountWithBalance), args.Error(1)
}

// --- Mock PostingWriterSvc ---
type MockPostingWriterSvc struct {
	mock.Mock
}

var _ portssvc.PostingWriterSvc = (*MockPostingWriterSvc)(nil)

func (m *MockPostingWriterSvc) PostJournalEntry(ctx context.Context, tenantID string, req dto.CreatePostingRequest, creatorUserID string) (*domain.JournalVoucher, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalVoucher), args.Error(1)
}

func (m *MockPostingWriterSvc) ReverseVoucher(ctx context.Context, tenantID string, voucherID string, requestingUserID string) (*domain.JournalVoucher, error) {
	args := m.Called(ctx, tenantID, voucherID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalVoucher), args.Error(1)
}

// --- Test Suite ---
type PayrollServiceTestSuite struct {
	suite.Suite
	mockPayrollRepo *MockPayrollRepository
	mockTenantRepo  *MockTenantRepository
	mockAccountSvc  *MockAccountReaderSvc
	mockPostingSvc  *MockPostingWriterSvc
	service         portssvc.PayrollSvcFacade
	tenantID        string
	branchID        string
	userID          string
	employee        domain.Employee
	config          domain.PayrollConfig
	tenant          domain.Tenant
	periodStart     time.Time
	periodEnd       time.Time
	payDate         time.Time
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPayrollRepo = new(MockPayrollRepository)
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockAccountSvc = new(MockAccountReaderSvc)
	suite.mockPostingSvc = new(MockPostingWriterSvc)
	suite.service = services.NewPayrollService(suite.mockPayrollRepo, suite.mockTenantRepo, suite.mockAccountSvc, suite.mockPostingSvc)

	suite.tenantID = uuid.NewString()
	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.employee = domain.Employee{
		EmployeeID:     uuid.NewString(),
		TenantID:       suite.tenantID,
		BranchID:       suite.branchID,
		EmployeeNumber: "EMP-001",
		FullName:       "Adaeze Okafor",
		IsActive:       true,
	}
	suite.config = domain.PayrollConfig{
		ConfigID:     uuid.NewString(),
		EmployeeID:   suite.employee.EmployeeID,
		GrossSalary:  decimal.NewFromInt(200000),
		PayFrequency: domain.Monthly,
	}
	suite.tenant = domain.Tenant{
		TenantID:            suite.tenantID,
		Name:                "Naira Books Ltd",
		IsActive:            true,
		VATRate:             decimal.RequireFromString("0.075"),
		PensionEmployeeRate: decimal.RequireFromString("0.08"),
		PensionEmployerRate: decimal.RequireFromString("0.10"),
	}

	suite.periodStart = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	suite.periodEnd = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	suite.payDate = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
}

func (suite *PayrollServiceTestSuite) expectComputeFixtures() {
	suite.mockPayrollRepo.On("FindEmployeeByID", mock.Anything, suite.tenantID, suite.employee.EmployeeID).
		Return(&suite.employee, nil)
	suite.mockPayrollRepo.On("FindPayrollConfigByEmployeeID", mock.Anything, suite.tenantID, suite.employee.EmployeeID).
		Return(&suite.config, nil)
	suite.mockTenantRepo.On("FindTenantByID", mock.Anything, suite.tenantID).
		Return(&suite.tenant, nil)
}

// Worked example on a 200,000/month salary: annual gross 2,400,000, pension
// 16,000/month, CRA 224,000, taxable 1,984,000, annual PAYE 304,640.
func (suite *PayrollServiceTestSuite) TestComputePayslip_WorkedExample() {
	suite.expectComputeFixtures()

	payslip, err := suite.service.ComputePayslip(context.Background(), suite.tenantID, suite.employee.EmployeeID, suite.periodStart, suite.periodEnd, suite.payDate)

	suite.NoError(err)
	suite.Require().NotNil(payslip)
	suite.True(payslip.GrossPay.Equal(decimal.NewFromInt(200000)), "gross %s", payslip.GrossPay)
	suite.True(payslip.PensionEmployee.Equal(decimal.NewFromInt(16000)), "pension %s", payslip.PensionEmployee)
	suite.True(payslip.PensionEmployer.Equal(decimal.NewFromInt(20000)), "employer pension %s", payslip.PensionEmployer)
	suite.True(payslip.PAYEDeduction.Equal(decimal.RequireFromString("25386.67")), "paye %s", payslip.PAYEDeduction)
	suite.True(payslip.TotalDeductions.Equal(decimal.RequireFromString("41386.67")), "deductions %s", payslip.TotalDeductions)
	suite.True(payslip.NetPay.Equal(decimal.RequireFromString("158613.33")), "net %s", payslip.NetPay)
	suite.False(payslip.IsPosted)
}

func (suite *PayrollServiceTestSuite) TestComputePayslip_GrossNetIdentity() {
	suite.expectComputeFixtures()

	payslip, err := suite.service.ComputePayslip(context.Background(), suite.tenantID, suite.employee.EmployeeID, suite.periodStart, suite.periodEnd, suite.payDate)

	suite.NoError(err)
	sum := payslip.NetPay.Add(payslip.TotalDeductions)
	suite.True(sum.Equal(payslip.GrossPay), "net+deductions %s != gross %s", sum, payslip.GrossPay)
}

func (suite *PayrollServiceTestSuite) TestComputePayslip_AllowancesAndDeductions() {
	suite.config.Allowances = []domain.PayItem{{Description: "Transport", Amount: decimal.NewFromInt(30000)}}
	suite.config.Deductions = []domain.PayItem{{Description: "Staff loan", Amount: decimal.NewFromInt(10000)}}
	suite.expectComputeFixtures()

	payslip, err := suite.service.ComputePayslip(context.Background(), suite.tenantID, suite.employee.EmployeeID, suite.periodStart, suite.periodEnd, suite.payDate)

	suite.NoError(err)
	suite.True(payslip.GrossPay.Equal(decimal.NewFromInt(230000)))
	suite.True(payslip.TotalAllowances.Equal(decimal.NewFromInt(30000)))
	suite.True(payslip.OtherDeductions.Equal(decimal.NewFromInt(10000)))
	// pension follows the full gross
	suite.True(payslip.PensionEmployee.Equal(decimal.NewFromInt(18400)))
	sum := payslip.NetPay.Add(payslip.TotalDeductions)
	suite.True(sum.Equal(payslip.GrossPay))
}

func (suite *PayrollServiceTestSuite) TestComputePayslip_InactiveEmployee() {
	inactive := suite.employee
	inactive.IsActive = false
	suite.mockPayrollRepo.On("FindEmployeeByID", mock.Anything, suite.tenantID, suite.employee.EmployeeID).
		Return(&inactive, nil).Once()

	_, err := suite.service.ComputePayslip(context.Background(), suite.tenantID, suite.employee.EmployeeID, suite.periodStart, suite.periodEnd, suite.payDate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) TestRunPayroll_SkipsExistingPeriod() {
	existing := &domain.Payslip{PayslipID: uuid.NewString(), EmployeeID: suite.employee.EmployeeID}

	suite.mockPayrollRepo.On("ListActiveEmployees", mock.Anything, suite.tenantID, suite.branchID, []string(nil)).
		Return([]domain.Employee{suite.employee}, nil).Once()
	suite.mockPayrollRepo.On("FindPayslipForPeriod", mock.Anything, suite.tenantID, suite.employee.EmployeeID, suite.periodStart, suite.periodEnd).
		Return(existing, nil).Once()

	req := dto.RunPayrollRequest{
		BranchID:       suite.branchID,
		PayPeriodStart: suite.periodStart,
		PayPeriodEnd:   suite.periodEnd,
		PayDate:        suite.payDate,
	}
	payslips, err := suite.service.RunPayroll(context.Background(), suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.Empty(payslips)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "SavePayslip", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestRunPayroll_ComputesAndSaves() {
	suite.mockPayrollRepo.On("ListActiveEmployees", mock.Anything, suite.tenantID, suite.branchID, []string(nil)).
		Return([]domain.Employee{suite.employee}, nil).Once()
	suite.mockPayrollRepo.On("FindPayslipForPeriod", mock.Anything, suite.tenantID, suite.employee.EmployeeID, suite.periodStart, suite.periodEnd).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.expectComputeFixtures()
	suite.mockPayrollRepo.On("SavePayslip", mock.Anything, mock.MatchedBy(func(p domain.Payslip) bool {
		return p.EmployeeID == suite.employee.EmployeeID && p.NetPay.Equal(decimal.RequireFromString("158613.33"))
	})).Return(nil).Once()

	req := dto.RunPayrollRequest{
		BranchID:       suite.branchID,
		PayPeriodStart: suite.periodStart,
		PayPeriodEnd:   suite.periodEnd,
		PayDate:        suite.payDate,
	}
	payslips, err := suite.service.RunPayroll(context.Background(), suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.Len(payslips, 1)
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) systemAccount(code string) *domain.Account {
	return &domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        suite.tenantID,
		Code:            code,
		IsSystemAccount: true,
		IsActive:        true,
	}
}

func (suite *PayrollServiceTestSuite) TestPostPayroll_BalancedBridge() {
	payslip := &domain.Payslip{
		PayslipID:       uuid.NewString(),
		TenantID:        suite.tenantID,
		EmployeeID:      suite.employee.EmployeeID,
		PayPeriodStart:  suite.periodStart,
		PayPeriodEnd:    suite.periodEnd,
		PayDate:         suite.payDate,
		GrossPay:        decimal.NewFromInt(200000),
		PAYEDeduction:   decimal.RequireFromString("25386.67"),
		PensionEmployee: decimal.NewFromInt(16000),
		NetPay:          decimal.RequireFromString("158613.33"),
	}

	suite.mockPayrollRepo.On("FindPayslipByID", mock.Anything, suite.tenantID, payslip.PayslipID).
		Return(payslip, nil).Once()
	suite.mockPayrollRepo.On("FindEmployeeByID", mock.Anything, suite.tenantID, suite.employee.EmployeeID).
		Return(&suite.employee, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", mock.Anything, suite.tenantID, "5100").Return(suite.systemAccount("5100"), nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", mock.Anything, suite.tenantID, "1100").Return(suite.systemAccount("1100"), nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", mock.Anything, suite.tenantID, "2200").Return(suite.systemAccount("2200"), nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", mock.Anything, suite.tenantID, "2210").Return(suite.systemAccount("2210"), nil).Once()

	voucher := &domain.JournalVoucher{VoucherID: uuid.NewString(), VoucherNumber: "JV-2026-08-00042"}
	suite.mockPostingSvc.On("PostJournalEntry", mock.Anything, suite.tenantID, mock.MatchedBy(func(req dto.CreatePostingRequest) bool {
		if req.SourceType != string(domain.SourcePayslip) || req.SourceID != payslip.PayslipID {
			return false
		}
		debits := decimal.Zero
		credits := decimal.Zero
		for _, line := range req.Lines {
			debits = debits.Add(line.Debit)
			credits = credits.Add(line.Credit)
		}
		return debits.Equal(credits) && debits.Equal(payslip.GrossPay)
	}), suite.userID).Return(voucher, nil).Once()
	suite.mockPayrollRepo.On("MarkPayslipPosted", mock.Anything, suite.tenantID, payslip.PayslipID, mock.Anything).
		Return(nil).Once()

	got, err := suite.service.PostPayroll(context.Background(), suite.tenantID, dto.PostPayrollRequest{PayslipID: payslip.PayslipID, BranchID: suite.branchID}, suite.userID)

	suite.NoError(err)
	suite.Equal(voucher.VoucherNumber, got.VoucherNumber)
	suite.mockPostingSvc.AssertExpectations(suite.T())
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestPostPayroll_AlreadyPosted() {
	posted := &domain.Payslip{
		PayslipID: uuid.NewString(),
		TenantID:  suite.tenantID,
		IsPosted:  true,
	}
	suite.mockPayrollRepo.On("FindPayslipByID", mock.Anything, suite.tenantID, posted.PayslipID).
		Return(posted, nil).Once()

	_, err := suite.service.PostPayroll(context.Background(), suite.tenantID, dto.PostPayrollRequest{PayslipID: posted.PayslipID, BranchID: suite.branchID}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestPostPayroll_PostingFailureLeavesPayslipUnposted() {
	payslip := &domain.Payslip{
		PayslipID:       uuid.NewString(),
		TenantID:        suite.tenantID,
		EmployeeID:      suite.employee.EmployeeID,
		PayDate:         suite.payDate,
		GrossPay:        decimal.NewFromInt(200000),
		PAYEDeduction:   decimal.RequireFromString("25386.67"),
		PensionEmployee: decimal.NewFromInt(16000),
		NetPay:          decimal.RequireFromString("158613.33"),
	}

	suite.mockPayrollRepo.On("FindPayslipByID", mock.Anything, suite.tenantID, payslip.PayslipID).
		Return(payslip, nil).Once()
	suite.mockPayrollRepo.On("FindEmployeeByID", mock.Anything, suite.tenantID, suite.employee.EmployeeID).
		Return(&suite.employee, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", mock.Anything, suite.tenantID, mock.Anything).
		Return(suite.systemAccount("5100"), nil)
	suite.mockPostingSvc.On("PostJournalEntry", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrInternal).Once()

	_, err := suite.service.PostPayroll(context.Background(), suite.tenantID, dto.PostPayrollRequest{PayslipID: payslip.PayslipID, BranchID: suite.branchID}, suite.userID)

	suite.Error(err)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "MarkPayslipPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestGetPayrollSummary() {
	summary := &domain.PayrollSummary{
		PeriodStart:  suite.periodStart,
		PeriodEnd:    suite.periodEnd,
		PayslipCount: 3,
		TotalGross:   decimal.NewFromInt(600000),
		TotalNet:     decimal.NewFromInt(475840),
	}
	suite.mockPayrollRepo.On("SummarizePayslips", mock.Anything, suite.tenantID, suite.periodStart, suite.periodEnd).
		Return(summary, nil).Once()

	got, err := suite.service.GetPayrollSummary(context.Background(), suite.tenantID, dto.PayrollSummaryParams{From: suite.periodStart, To: suite.periodEnd})
	suite.NoError(err)
	suite.Equal(3, got.PayslipCount)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
