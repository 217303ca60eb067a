package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/ellavondegurechaff/questline/questline/database/models"
	repositories "github.com/ellavondegurechaff/questline/questline/database/repositories"
	gomock "go.uber.org/mock/gomock"
)

// MockUserRepository is a mock of UserRepository interface.
type MockUserRepository struct {
	ctrl     *gomock.Controller
	recorder *MockUserRepositoryMockRecorder
	isgomock struct{}
}

// MockUserRepositoryMockRecorder is the mock recorder for MockUserRepository.
type MockUserRepositoryMockRecorder struct {
	mock *MockUserRepository
}

// NewMockUserRepository creates a new mock instance.
func NewMockUserRepository(ctrl *gomock.Controller) *MockUserRepository {
	mock := &MockUserRepository{ctrl: ctrl}
	mock.recorder = &MockUserRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserRepository) EXPECT() *MockUserRepositoryMockRecorder {
	return m.recorder
}

// AddPoints mocks base method.
func (m *MockUserRepository) AddPoints(ctx context.Context, userID, points int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddPoints", ctx, userID, points)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddPoints indicates an expected call of AddPoints.
func (mr *MockUserRepositoryMockRecorder) AddPoints(ctx, userID, points any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddPoints", reflect.TypeOf((*MockUserRepository)(nil).AddPoints), ctx, userID, points)
}

// Create mocks base method.
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, user)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockUserRepositoryMockRecorder) Create(ctx, user any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockUserRepository)(nil).Create), ctx, user)
}

// GetByDiscordID mocks base method.
func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByDiscordID", ctx, discordID)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByDiscordID indicates an expected call of GetByDiscordID.
func (mr *MockUserRepositoryMockRecorder) GetByDiscordID(ctx, discordID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByDiscordID", reflect.TypeOf((*MockUserRepository)(nil).GetByDiscordID), ctx, discordID)
}

// GetByID mocks base method.
func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockUserRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockUserRepository)(nil).GetByID), ctx, id)
}

// GetByIDs mocks base method.
func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByIDs", ctx, ids)
	ret0, _ := ret[0].([]*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByIDs indicates an expected call of GetByIDs.
func (mr *MockUserRepositoryMockRecorder) GetByIDs(ctx, ids any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByIDs", reflect.TypeOf((*MockUserRepository)(nil).GetByIDs), ctx, ids)
}

// ListLinked mocks base method.
func (m *MockUserRepository) ListLinked(ctx context.Context) ([]*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListLinked", ctx)
	ret0, _ := ret[0].([]*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListLinked indicates an expected call of ListLinked.
func (mr *MockUserRepositoryMockRecorder) ListLinked(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListLinked", reflect.TypeOf((*MockUserRepository)(nil).ListLinked), ctx)
}

// SetPartner mocks base method.
func (m *MockUserRepository) SetPartner(ctx context.Context, userID, partnerID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetPartner", ctx, userID, partnerID)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetPartner indicates an expected call of SetPartner.
func (mr *MockUserRepositoryMockRecorder) SetPartner(ctx, userID, partnerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetPartner", reflect.TypeOf((*MockUserRepository)(nil).SetPartner), ctx, userID, partnerID)
}

// MockQuestRepository is a mock of QuestRepository interface.
type MockQuestRepository struct {
	ctrl     *gomock.Controller
	recorder *MockQuestRepositoryMockRecorder
	isgomock struct{}
}

// MockQuestRepositoryMockRecorder is the mock recorder for MockQuestRepository.
type MockQuestRepositoryMockRecorder struct {
	mock *MockQuestRepository
}

// NewMockQuestRepository creates a new mock instance.
func NewMockQuestRepository(ctrl *gomock.Controller) *MockQuestRepository {
	mock := &MockQuestRepository{ctrl: ctrl}
	mock.recorder = &MockQuestRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockQuestRepository) EXPECT() *MockQuestRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockQuestRepository) Create(ctx context.Context, quest *models.Quest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, quest)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockQuestRepositoryMockRecorder) Create(ctx, quest any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockQuestRepository)(nil).Create), ctx, quest)
}

// GetAll mocks base method.
func (m *MockQuestRepository) GetAll(ctx context.Context) ([]*models.Quest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAll", ctx)
	ret0, _ := ret[0].([]*models.Quest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAll indicates an expected call of GetAll.
func (mr *MockQuestRepositoryMockRecorder) GetAll(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAll", reflect.TypeOf((*MockQuestRepository)(nil).GetAll), ctx)
}

// GetByID mocks base method.
func (m *MockQuestRepository) GetByID(ctx context.Context, id int64) (*models.Quest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*models.Quest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockQuestRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockQuestRepository)(nil).GetByID), ctx, id)
}

// SetStatus mocks base method.
func (m *MockQuestRepository) SetStatus(ctx context.Context, id int64, status models.QuestStatus) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetStatus", ctx, id, status)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetStatus indicates an expected call of SetStatus.
func (mr *MockQuestRepositoryMockRecorder) SetStatus(ctx, id, status any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetStatus", reflect.TypeOf((*MockQuestRepository)(nil).SetStatus), ctx, id, status)
}

// MockPartnerGroupRepository is a mock of PartnerGroupRepository interface.
type MockPartnerGroupRepository struct {
	ctrl     *gomock.Controller
	recorder *MockPartnerGroupRepositoryMockRecorder
	isgomock struct{}
}

// MockPartnerGroupRepositoryMockRecorder is the mock recorder for MockPartnerGroupRepository.
type MockPartnerGroupRepositoryMockRecorder struct {
	mock *MockPartnerGroupRepository
}

// NewMockPartnerGroupRepository creates a new mock instance.
func NewMockPartnerGroupRepository(ctrl *gomock.Controller) *MockPartnerGroupRepository {
	mock := &MockPartnerGroupRepository{ctrl: ctrl}
	mock.recorder = &MockPartnerGroupRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPartnerGroupRepository) EXPECT() *MockPartnerGroupRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockPartnerGroupRepository) Create(ctx context.Context, group *models.PartnerGroup) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, group)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockPartnerGroupRepositoryMockRecorder) Create(ctx, group any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockPartnerGroupRepository)(nil).Create), ctx, group)
}

// Deactivate mocks base method.
func (m *MockPartnerGroupRepository) Deactivate(ctx context.Context, code string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deactivate", ctx, code)
	ret0, _ := ret[0].(error)
	return ret0
}

// Deactivate indicates an expected call of Deactivate.
func (mr *MockPartnerGroupRepositoryMockRecorder) Deactivate(ctx, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deactivate", reflect.TypeOf((*MockPartnerGroupRepository)(nil).Deactivate), ctx, code)
}

// GetActiveByCode mocks base method.
func (m *MockPartnerGroupRepository) GetActiveByCode(ctx context.Context, code string) (*models.PartnerGroup, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveByCode", ctx, code)
	ret0, _ := ret[0].(*models.PartnerGroup)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveByCode indicates an expected call of GetActiveByCode.
func (mr *MockPartnerGroupRepositoryMockRecorder) GetActiveByCode(ctx, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveByCode", reflect.TypeOf((*MockPartnerGroupRepository)(nil).GetActiveByCode), ctx, code)
}

// GetActiveByCodes mocks base method.
func (m *MockPartnerGroupRepository) GetActiveByCodes(ctx context.Context, codes []string) ([]*models.PartnerGroup, []string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveByCodes", ctx, codes)
	ret0, _ := ret[0].([]*models.PartnerGroup)
	ret1, _ := ret[1].([]string)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetActiveByCodes indicates an expected call of GetActiveByCodes.
func (mr *MockPartnerGroupRepositoryMockRecorder) GetActiveByCodes(ctx, codes any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveByCodes", reflect.TypeOf((*MockPartnerGroupRepository)(nil).GetActiveByCodes), ctx, codes)
}

// GetActiveByUserID mocks base method.
func (m *MockPartnerGroupRepository) GetActiveByUserID(ctx context.Context, userID int64) (*models.PartnerGroup, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveByUserID", ctx, userID)
	ret0, _ := ret[0].(*models.PartnerGroup)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveByUserID indicates an expected call of GetActiveByUserID.
func (mr *MockPartnerGroupRepositoryMockRecorder) GetActiveByUserID(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveByUserID", reflect.TypeOf((*MockPartnerGroupRepository)(nil).GetActiveByUserID), ctx, userID)
}

// MockSubmissionRepository is a mock of SubmissionRepository interface.
type MockSubmissionRepository struct {
	ctrl     *gomock.Controller
	recorder *MockSubmissionRepositoryMockRecorder
	isgomock struct{}
}

// MockSubmissionRepositoryMockRecorder is the mock recorder for MockSubmissionRepository.
type MockSubmissionRepositoryMockRecorder struct {
	mock *MockSubmissionRepository
}

// NewMockSubmissionRepository creates a new mock instance.
func NewMockSubmissionRepository(ctrl *gomock.Controller) *MockSubmissionRepository {
	mock := &MockSubmissionRepository{ctrl: ctrl}
	mock.recorder = &MockSubmissionRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSubmissionRepository) EXPECT() *MockSubmissionRepositoryMockRecorder {
	return m.recorder
}

// ActiveGroupConflicts mocks base method.
func (m *MockSubmissionRepository) ActiveGroupConflicts(ctx context.Context, questID int64, codes []string) ([]repositories.GroupConflict, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ActiveGroupConflicts", ctx, questID, codes)
	ret0, _ := ret[0].([]repositories.GroupConflict)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ActiveGroupConflicts indicates an expected call of ActiveGroupConflicts.
func (mr *MockSubmissionRepositoryMockRecorder) ActiveGroupConflicts(ctx, questID, codes any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ActiveGroupConflicts", reflect.TypeOf((*MockSubmissionRepository)(nil).ActiveGroupConflicts), ctx, questID, codes)
}

// CreateGroup mocks base method.
func (m *MockSubmissionRepository) CreateGroup(ctx context.Context, params repositories.GroupCreateParams) (*repositories.GroupCreateResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateGroup", ctx, params)
	ret0, _ := ret[0].(*repositories.GroupCreateResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateGroup indicates an expected call of CreateGroup.
func (mr *MockSubmissionRepositoryMockRecorder) CreateGroup(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateGroup", reflect.TypeOf((*MockSubmissionRepository)(nil).CreateGroup), ctx, params)
}

// CreateIndividual mocks base method.
func (m *MockSubmissionRepository) CreateIndividual(ctx context.Context, sub *models.Submission) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateIndividual", ctx, sub)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateIndividual indicates an expected call of CreateIndividual.
func (mr *MockSubmissionRepositoryMockRecorder) CreateIndividual(ctx, sub any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateIndividual", reflect.TypeOf((*MockSubmissionRepository)(nil).CreateIndividual), ctx, sub)
}

// GetByID mocks base method.
func (m *MockSubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*models.Submission)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockSubmissionRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockSubmissionRepository)(nil).GetByID), ctx, id)
}

// GetLatestByUserAndQuest mocks base method.
func (m *MockSubmissionRepository) GetLatestByUserAndQuest(ctx context.Context, userID, questID int64) (*models.Submission, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLatestByUserAndQuest", ctx, userID, questID)
	ret0, _ := ret[0].(*models.Submission)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLatestByUserAndQuest indicates an expected call of GetLatestByUserAndQuest.
func (mr *MockSubmissionRepositoryMockRecorder) GetLatestByUserAndQuest(ctx, userID, questID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLatestByUserAndQuest", reflect.TypeOf((*MockSubmissionRepository)(nil).GetLatestByUserAndQuest), ctx, userID, questID)
}

// ListByUser mocks base method.
func (m *MockSubmissionRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Submission, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByUser", ctx, userID, limit, offset)
	ret0, _ := ret[0].([]*models.Submission)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByUser indicates an expected call of ListByUser.
func (mr *MockSubmissionRepositoryMockRecorder) ListByUser(ctx, userID, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByUser", reflect.TypeOf((*MockSubmissionRepository)(nil).ListByUser), ctx, userID, limit, offset)
}

// OptOut mocks base method.
func (m *MockSubmissionRepository) OptOut(ctx context.Context, groupSubmissionID, userID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OptOut", ctx, groupSubmissionID, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// OptOut indicates an expected call of OptOut.
func (mr *MockSubmissionRepositoryMockRecorder) OptOut(ctx, groupSubmissionID, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OptOut", reflect.TypeOf((*MockSubmissionRepository)(nil).OptOut), ctx, groupSubmissionID, userID)
}

// ParticipantsByGroupSubmission mocks base method.
func (m *MockSubmissionRepository) ParticipantsByGroupSubmission(ctx context.Context, groupSubmissionID int64) ([]*models.GroupParticipant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ParticipantsByGroupSubmission", ctx, groupSubmissionID)
	ret0, _ := ret[0].([]*models.GroupParticipant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ParticipantsByGroupSubmission indicates an expected call of ParticipantsByGroupSubmission.
func (mr *MockSubmissionRepositoryMockRecorder) ParticipantsByGroupSubmission(ctx, groupSubmissionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ParticipantsByGroupSubmission", reflect.TypeOf((*MockSubmissionRepository)(nil).ParticipantsByGroupSubmission), ctx, groupSubmissionID)
}

// SoftDelete mocks base method.
func (m *MockSubmissionRepository) SoftDelete(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SoftDelete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// SoftDelete indicates an expected call of SoftDelete.
func (mr *MockSubmissionRepositoryMockRecorder) SoftDelete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SoftDelete", reflect.TypeOf((*MockSubmissionRepository)(nil).SoftDelete), ctx, id)
}

// TransitionStatus mocks base method.
func (m *MockSubmissionRepository) TransitionStatus(ctx context.Context, sub *models.Submission, from models.SubmissionStatus) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TransitionStatus", ctx, sub, from)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TransitionStatus indicates an expected call of TransitionStatus.
func (mr *MockSubmissionRepositoryMockRecorder) TransitionStatus(ctx, sub, from any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TransitionStatus", reflect.TypeOf((*MockSubmissionRepository)(nil).TransitionStatus), ctx, sub, from)
}
