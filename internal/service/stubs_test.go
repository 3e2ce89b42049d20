package service

import (
	"context"

	"skillcircle/internal/models"
	"skillcircle/internal/repository"
)

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getPublicProfileFn func(context.Context, uint) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	listFn             func(context.Context, repository.UserFilter, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetPublicProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.getPublicProfileFn(ctx, id)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, filter repository.UserFilter, limit int) ([]models.User, error) {
	return s.listFn(ctx, filter, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		getPublicProfileFn: func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
		listFn: func(context.Context, repository.UserFilter, int) ([]models.User, error) {
			return nil, nil
		},
	}
}

type courseRepoStub struct {
	createFn       func(context.Context, *models.Course) error
	getByIDFn      func(context.Context, uint) (*models.Course, error)
	listFn         func(context.Context, repository.CourseFilter) ([]models.Course, error)
	listByOwnerFn  func(context.Context, uint, int) ([]models.Course, error)
	countByOwnerFn func(context.Context, uint) (int64, error)
	updateFn       func(context.Context, *models.Course) error
	deleteFn       func(context.Context, uint) error
}

func (s *courseRepoStub) Create(ctx context.Context, course *models.Course) error {
	return s.createFn(ctx, course)
}
func (s *courseRepoStub) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	return s.getByIDFn(ctx, id)
}
func (s *courseRepoStub) List(ctx context.Context, filter repository.CourseFilter) ([]models.Course, error) {
	return s.listFn(ctx, filter)
}
func (s *courseRepoStub) ListByOwner(ctx context.Context, ownerID uint, limit int) ([]models.Course, error) {
	return s.listByOwnerFn(ctx, ownerID, limit)
}
func (s *courseRepoStub) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	return s.countByOwnerFn(ctx, ownerID)
}
func (s *courseRepoStub) Update(ctx context.Context, course *models.Course) error {
	return s.updateFn(ctx, course)
}
func (s *courseRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type requestRepoStub struct {
	createFn           func(context.Context, *models.CourseRequest) error
	getByIDFn          func(context.Context, uint) (*models.CourseRequest, error)
	hasActiveFn        func(context.Context, uint, uint) (bool, error)
	listByRequesterFn  func(context.Context, uint) ([]models.CourseRequest, error)
	listByOwnerFn      func(context.Context, uint) ([]models.CourseRequest, error)
	updateStatusFn     func(context.Context, uint, models.RequestStatus, string) error
	countByRequesterFn func(context.Context, uint) (int64, error)
	countByOwnerFn     func(context.Context, uint, bool) (int64, error)
}

func (s *requestRepoStub) Create(ctx context.Context, request *models.CourseRequest) error {
	return s.createFn(ctx, request)
}
func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.CourseRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) HasActive(ctx context.Context, courseID, requesterID uint) (bool, error) {
	return s.hasActiveFn(ctx, courseID, requesterID)
}
func (s *requestRepoStub) ListByRequester(ctx context.Context, requesterID uint) ([]models.CourseRequest, error) {
	return s.listByRequesterFn(ctx, requesterID)
}
func (s *requestRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.CourseRequest, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *requestRepoStub) UpdateStatus(ctx context.Context, id uint, status models.RequestStatus, message string) error {
	return s.updateStatusFn(ctx, id, status, message)
}
func (s *requestRepoStub) CountByRequester(ctx context.Context, requesterID uint) (int64, error) {
	return s.countByRequesterFn(ctx, requesterID)
}
func (s *requestRepoStub) CountByOwner(ctx context.Context, ownerID uint, onlyPending bool) (int64, error) {
	return s.countByOwnerFn(ctx, ownerID, onlyPending)
}

type circleRepoStub struct {
	createFn        func(context.Context, *models.StudyCircle) error
	getByIDFn       func(context.Context, uint) (*models.StudyCircle, error)
	listFn          func(context.Context, repository.CircleFilter) ([]models.StudyCircle, error)
	listByMemberFn  func(context.Context, uint, int) ([]models.StudyCircle, error)
	countByMemberFn func(context.Context, uint) (int64, error)
	isMemberFn      func(context.Context, uint, uint) (bool, error)
	addMemberFn     func(context.Context, uint, uint) error
	removeMemberFn  func(context.Context, uint, uint) error
	updateFn        func(context.Context, *models.StudyCircle) error
	deleteFn        func(context.Context, uint) error
}

func (s *circleRepoStub) Create(ctx context.Context, circle *models.StudyCircle) error {
	return s.createFn(ctx, circle)
}
func (s *circleRepoStub) GetByID(ctx context.Context, id uint) (*models.StudyCircle, error) {
	return s.getByIDFn(ctx, id)
}
func (s *circleRepoStub) List(ctx context.Context, filter repository.CircleFilter) ([]models.StudyCircle, error) {
	return s.listFn(ctx, filter)
}
func (s *circleRepoStub) ListByMember(ctx context.Context, userID uint, limit int) ([]models.StudyCircle, error) {
	return s.listByMemberFn(ctx, userID, limit)
}
func (s *circleRepoStub) CountByMember(ctx context.Context, userID uint) (int64, error) {
	return s.countByMemberFn(ctx, userID)
}
func (s *circleRepoStub) IsMember(ctx context.Context, circleID, userID uint) (bool, error) {
	return s.isMemberFn(ctx, circleID, userID)
}
func (s *circleRepoStub) AddMember(ctx context.Context, circleID, userID uint) error {
	return s.addMemberFn(ctx, circleID, userID)
}
func (s *circleRepoStub) RemoveMember(ctx context.Context, circleID, userID uint) error {
	return s.removeMemberFn(ctx, circleID, userID)
}
func (s *circleRepoStub) Update(ctx context.Context, circle *models.StudyCircle) error {
	return s.updateFn(ctx, circle)
}
func (s *circleRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type messageRepoStub struct {
	createFn            func(context.Context, *models.Message) error
	getByIDFn           func(context.Context, uint) (*models.Message, error)
	getDirectThreadFn   func(context.Context, uint, uint) ([]models.Message, error)
	getGroupThreadFn    func(context.Context, uint) ([]models.Message, error)
	listConversationsFn func(context.Context, uint) ([]models.Conversation, error)
	markReadFn          func(context.Context, uint, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) GetDirectThread(ctx context.Context, userID, peerID uint) ([]models.Message, error) {
	return s.getDirectThreadFn(ctx, userID, peerID)
}
func (s *messageRepoStub) GetGroupThread(ctx context.Context, circleID uint) ([]models.Message, error) {
	return s.getGroupThreadFn(ctx, circleID)
}
func (s *messageRepoStub) ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	return s.listConversationsFn(ctx, userID)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, userID, peerID uint) error {
	return s.markReadFn(ctx, userID, peerID)
}

type chatbotRepoStub struct {
	createFn         func(context.Context, *models.ChatbotHistory) error
	getByIDFn        func(context.Context, uint) (*models.ChatbotHistory, error)
	listByUserFn     func(context.Context, uint, string, int, int) ([]models.ChatbotHistory, int64, error)
	deleteFn         func(context.Context, uint) error
	distinctTopicsFn func(context.Context, uint) ([]string, error)
	countByUserFn    func(context.Context, uint) (int64, error)
}

func (s *chatbotRepoStub) Create(ctx context.Context, entry *models.ChatbotHistory) error {
	return s.createFn(ctx, entry)
}
func (s *chatbotRepoStub) GetByID(ctx context.Context, id uint) (*models.ChatbotHistory, error) {
	return s.getByIDFn(ctx, id)
}
func (s *chatbotRepoStub) ListByUser(ctx context.Context, userID uint, topic string, limit, offset int) ([]models.ChatbotHistory, int64, error) {
	return s.listByUserFn(ctx, userID, topic, limit, offset)
}
func (s *chatbotRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *chatbotRepoStub) DistinctTopics(ctx context.Context, userID uint) ([]string, error) {
	return s.distinctTopicsFn(ctx, userID)
}
func (s *chatbotRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}
