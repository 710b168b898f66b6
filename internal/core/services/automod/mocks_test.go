package automod

import (
	"context"
	"time"

	"guardbot/internal/core/domain"
)

type mockRepository struct {
	getModerationConfigFunc func(ctx context.Context, guildID string) (*domain.ModerationConfig, error)
	insertModerationLogFunc func(ctx context.Context, entry domain.ModerationLog) error
}

func (m *mockRepository) GetOrCreateModerationConfig(ctx context.Context, guildID string) (*domain.ModerationConfig, error) {
	if m.getModerationConfigFunc != nil {
		return m.getModerationConfigFunc(ctx, guildID)
	}
	cfg := domain.DefaultModerationConfig(guildID)
	return &cfg, nil
}

func (m *mockRepository) InsertModerationLog(ctx context.Context, entry domain.ModerationLog) error {
	if m.insertModerationLogFunc != nil {
		return m.insertModerationLogFunc(ctx, entry)
	}
	return nil
}

func (m *mockRepository) GetOrCreateLevelingConfig(ctx context.Context, guildID string) (*domain.LevelingConfig, error) {
	return nil, nil
}
func (m *mockRepository) GetUserLevel(ctx context.Context, guildID, userID string) (*domain.UserLevel, error) {
	return nil, nil
}
func (m *mockRepository) UpsertUserLevel(ctx context.Context, ul *domain.UserLevel) error { return nil }
func (m *mockRepository) GetLeaderboard(ctx context.Context, guildID string, limit int) ([]domain.UserLevel, error) {
	return nil, nil
}
func (m *mockRepository) GetUserRank(ctx context.Context, guildID, userID string) (int, error) {
	return 0, nil
}
func (m *mockRepository) ResetUserLevel(ctx context.Context, guildID, userID string) error {
	return nil
}
func (m *mockRepository) GetLevelRoles(ctx context.Context, guildID string) ([]domain.LevelRole, error) {
	return nil, nil
}
func (m *mockRepository) AddLevelRole(ctx context.Context, guildID, roleID string, levelRequired int) error {
	return nil
}
func (m *mockRepository) RemoveLevelRole(ctx context.Context, guildID, roleID string) error {
	return nil
}
func (m *mockRepository) Close() {}

type mockEnforcer struct {
	deletedMessages []string
	timeouts        []string
	kicks           []string
	bans            []string
	granted         []string
	revoked         []string
	sent            []string
}

func (m *mockEnforcer) DeleteMessage(channelID, messageID string) {
	m.deletedMessages = append(m.deletedMessages, messageID)
}
func (m *mockEnforcer) TimeoutMember(guildID, userID string, duration time.Duration, reason string) {
	m.timeouts = append(m.timeouts, userID)
}
func (m *mockEnforcer) KickMember(guildID, userID, reason string) {
	m.kicks = append(m.kicks, userID)
}
func (m *mockEnforcer) BanMember(guildID, userID, reason string) {
	m.bans = append(m.bans, userID)
}
func (m *mockEnforcer) GrantRole(guildID, userID, roleID string) {
	m.granted = append(m.granted, roleID)
}
func (m *mockEnforcer) RevokeRole(guildID, userID, roleID string) {
	m.revoked = append(m.revoked, roleID)
}
func (m *mockEnforcer) SendMessage(channelID, content string) {
	m.sent = append(m.sent, content)
}

type mockDirectory struct {
	memberRolesFunc     func(guildID, userID string) ([]string, error)
	isAdministratorFunc func(guildID, userID string) (bool, error)
}

func (m *mockDirectory) MemberRoles(guildID, userID string) ([]string, error) {
	if m.memberRolesFunc != nil {
		return m.memberRolesFunc(guildID, userID)
	}
	return nil, nil
}

func (m *mockDirectory) IsAdministrator(guildID, userID string) (bool, error) {
	if m.isAdministratorFunc != nil {
		return m.isAdministratorFunc(guildID, userID)
	}
	return false, nil
}
