package leveling

import (
	"context"
	"time"

	"guardbot/internal/core/domain"
)

// mockRepository keeps user rows in memory so consecutive grants observe
// each other, and lets tests override individual calls.
type mockRepository struct {
	levelingConfig *domain.LevelingConfig
	levelRoles     []domain.LevelRole
	userLevels     map[string]*domain.UserLevel

	getLevelingConfigFunc func(ctx context.Context, guildID string) (*domain.LevelingConfig, error)
	getUserLevelFunc      func(ctx context.Context, guildID, userID string) (*domain.UserLevel, error)
	upsertUserLevelFunc   func(ctx context.Context, ul *domain.UserLevel) error
}

func newMockRepository() *mockRepository {
	cfg := domain.DefaultLevelingConfig("guild-1")
	return &mockRepository{
		levelingConfig: &cfg,
		userLevels:     make(map[string]*domain.UserLevel),
	}
}

func (m *mockRepository) GetOrCreateLevelingConfig(ctx context.Context, guildID string) (*domain.LevelingConfig, error) {
	if m.getLevelingConfigFunc != nil {
		return m.getLevelingConfigFunc(ctx, guildID)
	}
	return m.levelingConfig, nil
}

func (m *mockRepository) GetUserLevel(ctx context.Context, guildID, userID string) (*domain.UserLevel, error) {
	if m.getUserLevelFunc != nil {
		return m.getUserLevelFunc(ctx, guildID, userID)
	}
	if ul, ok := m.userLevels[guildID+":"+userID]; ok {
		copied := *ul
		return &copied, nil
	}
	return nil, nil
}

func (m *mockRepository) UpsertUserLevel(ctx context.Context, ul *domain.UserLevel) error {
	if m.upsertUserLevelFunc != nil {
		return m.upsertUserLevelFunc(ctx, ul)
	}
	copied := *ul
	m.userLevels[ul.GuildID+":"+ul.UserID] = &copied
	return nil
}

func (m *mockRepository) GetLevelRoles(ctx context.Context, guildID string) ([]domain.LevelRole, error) {
	return m.levelRoles, nil
}

func (m *mockRepository) GetOrCreateModerationConfig(ctx context.Context, guildID string) (*domain.ModerationConfig, error) {
	return nil, nil
}
func (m *mockRepository) GetLeaderboard(ctx context.Context, guildID string, limit int) ([]domain.UserLevel, error) {
	return nil, nil
}
func (m *mockRepository) GetUserRank(ctx context.Context, guildID, userID string) (int, error) {
	return 0, nil
}
func (m *mockRepository) ResetUserLevel(ctx context.Context, guildID, userID string) error {
	return nil
}
func (m *mockRepository) AddLevelRole(ctx context.Context, guildID, roleID string, levelRequired int) error {
	return nil
}
func (m *mockRepository) RemoveLevelRole(ctx context.Context, guildID, roleID string) error {
	return nil
}
func (m *mockRepository) InsertModerationLog(ctx context.Context, entry domain.ModerationLog) error {
	return nil
}
func (m *mockRepository) Close() {}

type sentMessage struct {
	ChannelID string
	Content   string
}

type mockEnforcer struct {
	granted []string
	revoked []string
	sent    []sentMessage
}

func (m *mockEnforcer) DeleteMessage(channelID, messageID string) {}
func (m *mockEnforcer) TimeoutMember(guildID, userID string, duration time.Duration, reason string) {
}
func (m *mockEnforcer) KickMember(guildID, userID, reason string) {}
func (m *mockEnforcer) BanMember(guildID, userID, reason string)  {}
func (m *mockEnforcer) GrantRole(guildID, userID, roleID string) {
	m.granted = append(m.granted, roleID)
}
func (m *mockEnforcer) RevokeRole(guildID, userID, roleID string) {
	m.revoked = append(m.revoked, roleID)
}
func (m *mockEnforcer) SendMessage(channelID, content string) {
	m.sent = append(m.sent, sentMessage{ChannelID: channelID, Content: content})
}

type mockDirectory struct {
	roles []string
}

func (m *mockDirectory) MemberRoles(guildID, userID string) ([]string, error) {
	return m.roles, nil
}

func (m *mockDirectory) IsAdministrator(guildID, userID string) (bool, error) {
	return false, nil
}
