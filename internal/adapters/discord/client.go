package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"guardbot/internal/metrics"
)

// Adapter implements the enforcement and member-directory ports over a
// Discord session. Every enforcement call is fire-and-forget: forbidden
// and not-found responses are logged and swallowed, never escalated.
type Adapter struct {
	session Session
	cache   *guildCache
}

func NewAdapter(session Session) *Adapter {
	return &Adapter{
		session: session,
		cache:   newGuildCache(),
	}
}

// -- Enforcement actions --

func (a *Adapter) DeleteMessage(channelID, messageID string) {
	a.bestEffort("delete_message", a.session.ChannelMessageDelete(channelID, messageID))
}

func (a *Adapter) TimeoutMember(guildID, userID string, duration time.Duration, reason string) {
	var until *time.Time
	if duration > 0 {
		t := time.Now().Add(duration)
		until = &t
	}
	a.bestEffort("timeout_member", a.session.GuildMemberTimeout(guildID, userID, until))
}

func (a *Adapter) KickMember(guildID, userID, reason string) {
	a.bestEffort("kick_member", a.session.GuildMemberDeleteWithReason(guildID, userID, reason))
}

func (a *Adapter) BanMember(guildID, userID, reason string) {
	a.bestEffort("ban_member", a.session.GuildBanCreateWithReason(guildID, userID, reason, 0))
}

func (a *Adapter) GrantRole(guildID, userID, roleID string) {
	a.bestEffort("grant_role", a.session.GuildMemberRoleAdd(guildID, userID, roleID))
}

func (a *Adapter) RevokeRole(guildID, userID, roleID string) {
	a.bestEffort("revoke_role", a.session.GuildMemberRoleRemove(guildID, userID, roleID))
}

func (a *Adapter) SendMessage(channelID, content string) {
	_, err := a.session.ChannelMessageSend(channelID, content)
	a.bestEffort("send_message", err)
}

// bestEffort is the single funnel for enforcement results. The bot's own
// actions can be surprised by concurrent admin changes, so expected
// failures become logged no-ops.
func (a *Adapter) bestEffort(action string, err error) {
	if err == nil {
		metrics.DiscordCalls.WithLabelValues(action, "success").Inc()
		return
	}

	if isForbidden(err) || isNotFound(err) {
		slog.Warn("Discord action not applied", "action", action, "error", err)
		metrics.DiscordCalls.WithLabelValues(action, "denied").Inc()
		return
	}

	slog.Error("Discord action failed", "action", action, "error", err)
	metrics.DiscordCalls.WithLabelValues(action, "failure").Inc()
}

// -- Member directory --

func (a *Adapter) MemberRoles(guildID, userID string) ([]string, error) {
	member, err := a.session.GuildMember(guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch guild member: %w", err)
	}
	return member.Roles, nil
}

func (a *Adapter) IsAdministrator(guildID, userID string) (bool, error) {
	info, err := a.guildInfo(guildID)
	if err != nil {
		return false, err
	}

	if info.OwnerID == userID {
		return true, nil
	}
	if len(info.AdminRoles) == 0 {
		return false, nil
	}

	roles, err := a.MemberRoles(guildID, userID)
	if err != nil {
		return false, err
	}
	for _, roleID := range roles {
		if info.AdminRoles[roleID] {
			return true, nil
		}
	}
	return false, nil
}

func (a *Adapter) guildInfo(guildID string) (*guildInfo, error) {
	if info, ok := a.cache.Get(guildID); ok {
		return info, nil
	}

	guild, err := a.session.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("fetch guild: %w", err)
	}

	info := &guildInfo{
		OwnerID:    guild.OwnerID,
		AdminRoles: make(map[string]bool),
	}
	for _, role := range guild.Roles {
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			info.AdminRoles[role.ID] = true
		}
	}

	a.cache.Set(guildID, info)
	return info, nil
}

// InvalidateGuild drops cached guild data, typically after a role update
// event.
func (a *Adapter) InvalidateGuild(guildID string) {
	a.cache.Invalidate(guildID)
}

func isForbidden(err error) bool {
	return isRESTStatus(err, http.StatusForbidden)
}

func isNotFound(err error) bool {
	return isRESTStatus(err, http.StatusNotFound)
}

func isRESTStatus(err error, status int) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == status
	}
	return false
}
