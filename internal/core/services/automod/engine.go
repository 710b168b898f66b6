package automod

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"guardbot/internal/core/domain"
	"guardbot/internal/core/ports"
	"guardbot/internal/metrics"
)

// Violation labels in the order classifiers run.
const (
	ViolationSpam     = "spam"
	ViolationCaps     = "excessive capital letters"
	ViolationRepeated = "repeated text"
	ViolationLinks    = "forbidden links"
	ViolationInvites  = "discord invites"
	ViolationWords    = "filtered words"
	ViolationMentions = "too many mentions"
	ViolationEmojis   = "too many emojis"
)

// Engine decides, per inbound message, whether the message violates the
// guild's moderation rules and enforces the configured punishment.
type Engine struct {
	storage   ports.Repository
	enforcer  ports.Enforcer
	directory ports.MemberDirectory
	rates     *RateTracker
	history   *TextHistory
}

func NewEngine(store ports.Repository, enforcer ports.Enforcer, directory ports.MemberDirectory) *Engine {
	return &Engine{
		storage:   store,
		enforcer:  enforcer,
		directory: directory,
		rates:     NewRateTracker(),
		history:   NewTextHistory(),
	}
}

// ProcessMessage evaluates one message. It returns the composite reason
// string when the message was removed, or "" when the message passed.
// Enforcement failures are swallowed; only persistence failures surface.
func (e *Engine) ProcessMessage(ctx context.Context, msg *domain.Message) (string, error) {
	if msg.AuthorIsBot || msg.GuildID == "" {
		return "", nil
	}

	cfg, err := e.storage.GetOrCreateModerationConfig(ctx, msg.GuildID)
	if err != nil {
		return "", fmt.Errorf("load moderation config: %w", err)
	}

	exempt, err := e.isWhitelisted(msg, cfg)
	if err != nil {
		slog.Error("Failed to resolve whitelist, treating member as non-exempt", "guild_id", msg.GuildID, "user_id", msg.AuthorID, "error", err)
	}
	if exempt {
		return "", nil
	}

	violations := e.collectViolations(msg, cfg)
	if len(violations) == 0 {
		return "", nil
	}

	e.enforcer.DeleteMessage(msg.ChannelID, msg.ID)

	reason := "AutoMod: " + strings.Join(violations, ", ")
	e.applyPunishment(ctx, msg, cfg, reason)

	for _, v := range violations {
		metrics.ModeratedMessages.WithLabelValues(v).Inc()
	}
	slog.Info("Message moderated", "guild_id", msg.GuildID, "user_id", msg.AuthorID, "reason", reason)

	return reason, nil
}

func (e *Engine) isWhitelisted(msg *domain.Message, cfg *domain.ModerationConfig) (bool, error) {
	admin, err := e.directory.IsAdministrator(msg.GuildID, msg.AuthorID)
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}

	if slices.Contains(cfg.WhitelistedChannels, msg.ChannelID) {
		return true, nil
	}

	if len(cfg.WhitelistedRoles) == 0 {
		return false, nil
	}

	roles, err := e.directory.MemberRoles(msg.GuildID, msg.AuthorID)
	if err != nil {
		return false, err
	}
	for _, roleID := range roles {
		if slices.Contains(cfg.WhitelistedRoles, roleID) {
			return true, nil
		}
	}
	return false, nil
}

func (e *Engine) collectViolations(msg *domain.Message, cfg *domain.ModerationConfig) []string {
	key := trackerKey(msg.GuildID, msg.AuthorID)
	var violations []string

	if cfg.SpamEnabled && e.rates.RecordAndCheck(key, msg.Timestamp, cfg.SpamInterval, cfg.SpamThreshold) {
		violations = append(violations, ViolationSpam)
	}

	if cfg.CapsEnabled && checkCaps(msg.Content, cfg) {
		violations = append(violations, ViolationCaps)
	}

	if cfg.RepeatedEnabled && e.history.RecordAndCheck(key, msg.Content, cfg.RepeatedThreshold) {
		violations = append(violations, ViolationRepeated)
	}

	if cfg.LinkFilterEnabled && checkLinks(msg.Content) {
		violations = append(violations, ViolationLinks)
	}

	if cfg.InviteFilterEnabled && checkInvites(msg.Content) {
		violations = append(violations, ViolationInvites)
	}

	if cfg.WordFilterEnabled && checkFilteredWords(msg.Content, cfg.FilteredWords) {
		violations = append(violations, ViolationWords)
	}

	if checkMentions(len(msg.MentionUserIDs), cfg) {
		violations = append(violations, ViolationMentions)
	}

	if checkEmojis(msg.Content, cfg) {
		violations = append(violations, ViolationEmojis)
	}

	return violations
}

func (e *Engine) applyPunishment(ctx context.Context, msg *domain.Message, cfg *domain.ModerationConfig, reason string) {
	switch cfg.PunishmentType {
	case domain.PunishMute:
		e.enforcer.TimeoutMember(msg.GuildID, msg.AuthorID, cfg.PunishmentDuration, reason)
	case domain.PunishKick:
		e.enforcer.KickMember(msg.GuildID, msg.AuthorID, reason)
	case domain.PunishBan:
		e.enforcer.BanMember(msg.GuildID, msg.AuthorID, reason)
	}

	entry := domain.ModerationLog{
		GuildID:   msg.GuildID,
		UserID:    msg.AuthorID,
		Action:    cfg.PunishmentType.String(),
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	}
	if err := e.storage.InsertModerationLog(ctx, entry); err != nil {
		slog.Error("Failed to record moderation log", "guild_id", msg.GuildID, "user_id", msg.AuthorID, "error", err)
	}

	metrics.PunishmentsApplied.WithLabelValues(cfg.PunishmentType.String()).Inc()
}

func trackerKey(guildID, userID string) string {
	return guildID + ":" + userID
}
