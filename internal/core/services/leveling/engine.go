package leveling

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"guardbot/internal/core/domain"
	"guardbot/internal/core/ports"
	"guardbot/internal/metrics"
)

// Engine applies XP gains for message and voice activity and handles the
// resulting level-ups: role changes and announcements.
type Engine struct {
	storage   ports.Repository
	enforcer  ports.Enforcer
	directory ports.MemberDirectory
	cooldowns *CooldownTracker

	// draw and now are swapped out in tests for determinism.
	draw func(min, max int) int
	now  func() time.Time
}

func NewEngine(store ports.Repository, enforcer ports.Enforcer, directory ports.MemberDirectory) *Engine {
	return &Engine{
		storage:   store,
		enforcer:  enforcer,
		directory: directory,
		cooldowns: NewCooldownTracker(),
		draw:      drawUniform,
		now:       time.Now,
	}
}

func drawUniform(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}

// Award is the outcome of one XP grant.
type Award struct {
	Granted   bool
	XPGained  int
	LeveledUp bool
	NewLevel  int
}

// AwardMessageXP grants message XP to a user, subject to the guild config
// and the per-user cooldown. The announcement, if any, goes to channelID.
func (e *Engine) AwardMessageXP(ctx context.Context, guildID, userID, channelID string) (Award, error) {
	cfg, err := e.storage.GetOrCreateLevelingConfig(ctx, guildID)
	if err != nil {
		return Award{}, fmt.Errorf("load leveling config: %w", err)
	}

	if !cfg.Enabled || slices.Contains(cfg.BlacklistedChannels, channelID) {
		return Award{}, nil
	}

	roles := e.memberRoles(guildID, userID)
	if holdsAny(roles, cfg.BlacklistedRoles) {
		return Award{}, nil
	}

	if !e.cooldowns.Allow(cooldownKey(guildID, userID), e.now(), cfg.XPCooldown) {
		return Award{}, nil
	}

	amount := applyMultiplier(e.draw(cfg.XPMin, cfg.XPMax), cfg, roles)
	award, err := e.grant(ctx, cfg, guildID, userID, channelID, amount, 0)
	if err != nil {
		return Award{}, err
	}

	metrics.XPAwards.WithLabelValues("message").Inc()
	return award, nil
}

// AwardVoiceXP grants XP for whole minutes spent connected to voice. The
// elapsed-minutes granularity already throttles frequency, so there is no
// cooldown gate.
func (e *Engine) AwardVoiceXP(ctx context.Context, guildID, userID string, minutes int) (Award, error) {
	if minutes <= 0 {
		return Award{}, nil
	}

	cfg, err := e.storage.GetOrCreateLevelingConfig(ctx, guildID)
	if err != nil {
		return Award{}, fmt.Errorf("load leveling config: %w", err)
	}

	if !cfg.Enabled || !cfg.VoiceXPEnabled {
		return Award{}, nil
	}

	roles := e.memberRoles(guildID, userID)
	if holdsAny(roles, cfg.BlacklistedRoles) {
		return Award{}, nil
	}

	perMinute := applyMultiplier(e.draw(cfg.VoiceXPMin, cfg.VoiceXPMax), cfg, roles)
	// Voice grants have no triggering channel; only the configured
	// override channel can carry the announcement.
	award, err := e.grant(ctx, cfg, guildID, userID, "", perMinute*minutes, minutes)
	if err != nil {
		return Award{}, err
	}

	metrics.XPAwards.WithLabelValues("voice").Inc()
	return award, nil
}

// grant adds XP to the user's row and processes any resulting level-ups.
// minutes > 0 marks a voice grant, which increments the voice counter
// instead of the message counter.
func (e *Engine) grant(ctx context.Context, cfg *domain.LevelingConfig, guildID, userID, channelID string, amount, minutes int) (Award, error) {
	ul, err := e.storage.GetUserLevel(ctx, guildID, userID)
	if err != nil {
		return Award{}, fmt.Errorf("load user level: %w", err)
	}
	if ul == nil {
		ul = &domain.UserLevel{GuildID: guildID, UserID: userID}
	}

	oldLevel := ul.Level
	ul.TotalXP += amount
	ul.XP += amount

	// A single large award can cross several level boundaries at once.
	for ul.XP >= XPRequired(ul.Level+1) {
		ul.XP -= XPRequired(ul.Level + 1)
		ul.Level++
	}

	if minutes > 0 {
		ul.VoiceMinutes += minutes
	} else {
		ul.MessagesSent++
	}
	ul.LastXPTime = e.now().UTC()

	if err := e.storage.UpsertUserLevel(ctx, ul); err != nil {
		return Award{}, fmt.Errorf("persist user level: %w", err)
	}

	award := Award{Granted: true, XPGained: amount, LeveledUp: ul.Level > oldLevel, NewLevel: ul.Level}
	if award.LeveledUp {
		e.handleLevelUp(ctx, cfg, guildID, userID, channelID, oldLevel, ul.Level)
	}
	return award, nil
}

func (e *Engine) handleLevelUp(ctx context.Context, cfg *domain.LevelingConfig, guildID, userID, channelID string, oldLevel, newLevel int) {
	slog.Info("Level up", "guild_id", guildID, "user_id", userID, "old_level", oldLevel, "new_level", newLevel)
	metrics.LevelUps.Inc()

	e.applyLevelRoles(ctx, cfg, guildID, userID, newLevel)

	if !cfg.AnnouncementEnabled {
		return
	}

	target := channelID
	if cfg.LevelUpChannelID != "" {
		target = cfg.LevelUpChannelID
	}
	if target == "" {
		return
	}

	e.enforcer.SendMessage(target, RenderLevelUp(cfg.LevelUpMessage, userID, newLevel))
}

// applyLevelRoles grants (and with stacking off, revokes) level-reward
// roles for the reached level. Role calls are best-effort.
func (e *Engine) applyLevelRoles(ctx context.Context, cfg *domain.LevelingConfig, guildID, userID string, level int) {
	configured, err := e.storage.GetLevelRoles(ctx, guildID)
	if err != nil {
		slog.Error("Failed to load level roles", "guild_id", guildID, "error", err)
		return
	}

	qualifying := make([]domain.LevelRole, 0, len(configured))
	for _, lr := range configured {
		if lr.LevelRequired <= level {
			qualifying = append(qualifying, lr)
		}
	}
	if len(qualifying) == 0 {
		return
	}

	slices.SortFunc(qualifying, func(a, b domain.LevelRole) int {
		return b.LevelRequired - a.LevelRequired
	})

	held := e.memberRoles(guildID, userID)

	if cfg.StackRoles {
		for _, lr := range qualifying {
			if !slices.Contains(held, lr.RoleID) {
				e.enforcer.GrantRole(guildID, userID, lr.RoleID)
			}
		}
		return
	}

	highest := qualifying[0]
	if !slices.Contains(held, highest.RoleID) {
		e.enforcer.GrantRole(guildID, userID, highest.RoleID)
	}
	for _, lr := range qualifying[1:] {
		if slices.Contains(held, lr.RoleID) {
			e.enforcer.RevokeRole(guildID, userID, lr.RoleID)
		}
	}
}

// SetTotalXP rewrites a user's progression from a lifetime total, deriving
// level and in-level progress from the shared curve.
func (e *Engine) SetTotalXP(ctx context.Context, guildID, userID string, totalXP int) error {
	ul, err := e.storage.GetUserLevel(ctx, guildID, userID)
	if err != nil {
		return fmt.Errorf("load user level: %w", err)
	}
	if ul == nil {
		ul = &domain.UserLevel{GuildID: guildID, UserID: userID}
	}

	ul.Level = LevelForTotalXP(totalXP)
	ul.TotalXP = totalXP
	ul.XP = totalXP - TotalXPForLevel(ul.Level)
	ul.LastXPTime = e.now().UTC()

	if err := e.storage.UpsertUserLevel(ctx, ul); err != nil {
		return fmt.Errorf("persist user level: %w", err)
	}
	return nil
}

// SetLevel places a user exactly at the start of the given level.
func (e *Engine) SetLevel(ctx context.Context, guildID, userID string, level int) error {
	return e.SetTotalXP(ctx, guildID, userID, TotalXPForLevel(level))
}

func (e *Engine) memberRoles(guildID, userID string) []string {
	roles, err := e.directory.MemberRoles(guildID, userID)
	if err != nil {
		slog.Error("Failed to fetch member roles", "guild_id", guildID, "user_id", userID, "error", err)
		return nil
	}
	return roles
}

func applyMultiplier(base int, cfg *domain.LevelingConfig, roles []string) int {
	multiplier := cfg.XPMultiplier
	for _, roleID := range roles {
		if bonus, ok := cfg.BonusRoles[roleID]; ok {
			multiplier += bonus
		}
	}
	return int(float64(base) * multiplier)
}

func holdsAny(held, wanted []string) bool {
	for _, roleID := range held {
		if slices.Contains(wanted, roleID) {
			return true
		}
	}
	return false
}

// RenderLevelUp fills the {user} and {level} placeholders of an
// announcement template.
func RenderLevelUp(template, userID string, level int) string {
	r := strings.NewReplacer(
		"{user}", "<@"+userID+">",
		"{level}", strconv.Itoa(level),
	)
	return r.Replace(template)
}

func cooldownKey(guildID, userID string) string {
	return guildID + ":" + userID
}
