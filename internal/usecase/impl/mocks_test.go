package impl

import (
	"context"
	"encoding/json"

	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/repository"
	"seopulse/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Repository mocks ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockCredentialRepo struct {
	mock.Mock
}

func (m *mockCredentialRepo) FindByUserAndService(ctx context.Context, userID uuid.UUID, svc entity.ServiceType) (*entity.Credential, error) {
	args := m.Called(ctx, userID, svc)
	if credential, ok := args.Get(0).(*entity.Credential); ok {
		return credential, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCredentialRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Credential, error) {
	args := m.Called(ctx, userID)
	if credentials, ok := args.Get(0).([]*entity.Credential); ok {
		return credentials, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCredentialRepo) Upsert(ctx context.Context, credential *entity.Credential) error {
	return m.Called(ctx, credential).Error(0)
}

func (m *mockCredentialRepo) Update(ctx context.Context, credential *entity.Credential) error {
	return m.Called(ctx, credential).Error(0)
}

func (m *mockCredentialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockMetricRepo struct {
	mock.Mock
}

func (m *mockMetricRepo) FindByType(ctx context.Context, userID uuid.UUID, metricType entity.MetricType) ([]*entity.CachedMetric, error) {
	args := m.Called(ctx, userID, metricType)
	if metrics, ok := args.Get(0).([]*entity.CachedMetric); ok {
		return metrics, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMetricRepo) Create(ctx context.Context, metric *entity.CachedMetric) error {
	return m.Called(ctx, metric).Error(0)
}

func (m *mockMetricRepo) Update(ctx context.Context, metric *entity.CachedMetric) error {
	return m.Called(ctx, metric).Error(0)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Create(ctx context.Context, audit *entity.AuditRecord) error {
	return m.Called(ctx, audit).Error(0)
}

func (m *mockAuditRepo) FindByURL(ctx context.Context, userID uuid.UUID, url string) ([]*entity.AuditRecord, error) {
	args := m.Called(ctx, userID, url)
	if audits, ok := args.Get(0).([]*entity.AuditRecord); ok {
		return audits, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuditRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AuditRecord, error) {
	args := m.Called(ctx, userID)
	if audits, ok := args.Get(0).([]*entity.AuditRecord); ok {
		return audits, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- Transaction stubs ---

// stubRepoFactory hands back the test's mocks as if they were bound to a
// transaction.
type stubRepoFactory struct {
	userRepo       repository.UserRepository
	credentialRepo repository.CredentialRepository
	metricRepo     repository.MetricRepository
	auditRepo      repository.AuditRepository
}

func (f *stubRepoFactory) UserRepo() repository.UserRepository             { return f.userRepo }
func (f *stubRepoFactory) CredentialRepo() repository.CredentialRepository { return f.credentialRepo }
func (f *stubRepoFactory) MetricRepo() repository.MetricRepository         { return f.metricRepo }
func (f *stubRepoFactory) AuditRepo() repository.AuditRepository           { return f.auditRepo }

// stubTxManager runs the unit of work directly against the stub factory.
type stubTxManager struct {
	factory *stubRepoFactory
}

func (m *stubTxManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- Service mocks ---

type mockConnector struct {
	mock.Mock
}

func (m *mockConnector) AuthorizationURL(svc entity.ServiceType, state string) (string, error) {
	args := m.Called(svc, state)
	return args.String(0), args.Error(1)
}

func (m *mockConnector) Exchange(ctx context.Context, svc entity.ServiceType, code string) (*entity.OAuthToken, error) {
	args := m.Called(ctx, svc, code)
	if token, ok := args.Get(0).(*entity.OAuthToken); ok {
		return token, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStateSigner struct {
	mock.Mock
}

func (m *mockStateSigner) Issue(userID uuid.UUID, svc entity.ServiceType) (string, error) {
	args := m.Called(userID, svc)
	return args.String(0), args.Error(1)
}

func (m *mockStateSigner) Verify(state string, svc entity.ServiceType) (uuid.UUID, error) {
	args := m.Called(state, svc)
	if userID, ok := args.Get(0).(uuid.UUID); ok {
		return userID, args.Error(1)
	}
	return uuid.Nil, args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Fetch(ctx context.Context, credential *entity.Credential, metricType entity.MetricType, dateRange string) (json.RawMessage, error) {
	args := m.Called(ctx, credential, metricType, dateRange)
	if payload, ok := args.Get(0).(json.RawMessage); ok {
		return payload, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPageSpeed struct {
	mock.Mock
}

func (m *mockPageSpeed) Run(ctx context.Context, url string, device entity.Device) (*service.PageSpeedResult, error) {
	args := m.Called(ctx, url, device)
	if result, ok := args.Get(0).(*service.PageSpeedResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

// stubSamples returns a fixed payload per type.
type stubSamples struct{}

func (stubSamples) Sample(metricType entity.MetricType) json.RawMessage {
	return json.RawMessage(`{"sample":"` + string(metricType) + `"}`)
}

// stubUsage counts recorder calls so tests can assert hit/miss accounting.
type stubUsage struct {
	hits, misses, fetches, audits int
	lastFetchOK                   bool
	lastAuditOK                   bool
}

func (u *stubUsage) RecordCacheHit(entity.MetricType)  { u.hits++ }
func (u *stubUsage) RecordCacheMiss(entity.MetricType) { u.misses++ }
func (u *stubUsage) RecordProviderFetch(_ entity.ServiceType, success bool) {
	u.fetches++
	u.lastFetchOK = success
}
func (u *stubUsage) RecordAudit(success bool) {
	u.audits++
	u.lastAuditOK = success
}
