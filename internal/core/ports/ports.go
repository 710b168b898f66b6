package ports

import (
	"context"
	"time"

	"guardbot/internal/core/domain"
)

type Repository interface {
	GetOrCreateModerationConfig(ctx context.Context, guildID string) (*domain.ModerationConfig, error)
	GetOrCreateLevelingConfig(ctx context.Context, guildID string) (*domain.LevelingConfig, error)

	GetUserLevel(ctx context.Context, guildID, userID string) (*domain.UserLevel, error)
	UpsertUserLevel(ctx context.Context, ul *domain.UserLevel) error
	GetLeaderboard(ctx context.Context, guildID string, limit int) ([]domain.UserLevel, error)
	GetUserRank(ctx context.Context, guildID, userID string) (int, error)
	ResetUserLevel(ctx context.Context, guildID, userID string) error

	GetLevelRoles(ctx context.Context, guildID string) ([]domain.LevelRole, error)
	AddLevelRole(ctx context.Context, guildID, roleID string, levelRequired int) error
	RemoveLevelRole(ctx context.Context, guildID, roleID string) error

	InsertModerationLog(ctx context.Context, entry domain.ModerationLog) error
	Close()
}

// Enforcer covers the platform actions the engines request. Every call is
// best-effort: implementations swallow forbidden and not-found responses
// and report only unexpected failures.
type Enforcer interface {
	DeleteMessage(channelID, messageID string)
	TimeoutMember(guildID, userID string, duration time.Duration, reason string)
	KickMember(guildID, userID, reason string)
	BanMember(guildID, userID, reason string)
	GrantRole(guildID, userID, roleID string)
	RevokeRole(guildID, userID, roleID string)
	SendMessage(channelID, content string)
}

// MemberDirectory answers role and permission questions about guild members.
type MemberDirectory interface {
	MemberRoles(guildID, userID string) ([]string, error)
	IsAdministrator(guildID, userID string) (bool, error)
}
