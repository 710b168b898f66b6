package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"guardbot/internal/core/domain"
)

// dbtx is the pgx surface the store uses; pgxpool.Pool satisfies it and
// tests substitute a mock.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

type PostgresStore struct {
	pool *pgxpool.Pool
	db   dbtx
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{
		pool: pool,
		db:   pool,
	}, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema applies the bootstrap DDL.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// -- Moderation configuration --

func (s *PostgresStore) GetOrCreateModerationConfig(ctx context.Context, guildID string) (*domain.ModerationConfig, error) {
	cfg, err := s.getModerationConfig(ctx, guildID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get moderation config: %w", err)
	}

	def := domain.DefaultModerationConfig(guildID)
	if err := s.insertModerationConfig(ctx, &def); err != nil {
		return nil, fmt.Errorf("create default moderation config: %w", err)
	}
	return &def, nil
}

func (s *PostgresStore) getModerationConfig(ctx context.Context, guildID string) (*domain.ModerationConfig, error) {
	row := s.db.QueryRow(ctx, `
		SELECT guild_id, spam_enabled, spam_threshold, spam_interval_seconds,
		       caps_enabled, caps_threshold, caps_min_length,
		       repeated_enabled, repeated_threshold,
		       link_filter_enabled, invite_filter_enabled, word_filter_enabled,
		       filtered_words, whitelisted_channels, whitelisted_roles,
		       max_mentions, max_emojis, punishment_type, punishment_duration_minutes
		FROM moderation_configs WHERE guild_id = $1`, guildID)

	var cfg domain.ModerationConfig
	var spamSeconds, durationMinutes int
	var punishment string
	if err := row.Scan(
		&cfg.GuildID, &cfg.SpamEnabled, &cfg.SpamThreshold, &spamSeconds,
		&cfg.CapsEnabled, &cfg.CapsThreshold, &cfg.CapsMinLength,
		&cfg.RepeatedEnabled, &cfg.RepeatedThreshold,
		&cfg.LinkFilterEnabled, &cfg.InviteFilterEnabled, &cfg.WordFilterEnabled,
		&cfg.FilteredWords, &cfg.WhitelistedChannels, &cfg.WhitelistedRoles,
		&cfg.MaxMentions, &cfg.MaxEmojis, &punishment, &durationMinutes,
	); err != nil {
		return nil, err
	}

	cfg.SpamInterval = time.Duration(spamSeconds) * time.Second
	cfg.PunishmentType = domain.ParsePunishment(punishment)
	cfg.PunishmentDuration = time.Duration(durationMinutes) * time.Minute
	return &cfg, nil
}

func (s *PostgresStore) insertModerationConfig(ctx context.Context, cfg *domain.ModerationConfig) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO moderation_configs (
			guild_id, spam_enabled, spam_threshold, spam_interval_seconds,
			caps_enabled, caps_threshold, caps_min_length,
			repeated_enabled, repeated_threshold,
			link_filter_enabled, invite_filter_enabled, word_filter_enabled,
			filtered_words, whitelisted_channels, whitelisted_roles,
			max_mentions, max_emojis, punishment_type, punishment_duration_minutes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (guild_id) DO NOTHING`,
		cfg.GuildID, cfg.SpamEnabled, cfg.SpamThreshold, int(cfg.SpamInterval.Seconds()),
		cfg.CapsEnabled, cfg.CapsThreshold, cfg.CapsMinLength,
		cfg.RepeatedEnabled, cfg.RepeatedThreshold,
		cfg.LinkFilterEnabled, cfg.InviteFilterEnabled, cfg.WordFilterEnabled,
		stringArray(cfg.FilteredWords), stringArray(cfg.WhitelistedChannels), stringArray(cfg.WhitelistedRoles),
		cfg.MaxMentions, cfg.MaxEmojis, cfg.PunishmentType.String(), int(cfg.PunishmentDuration.Minutes()),
	)
	return err
}

// -- Leveling configuration --

func (s *PostgresStore) GetOrCreateLevelingConfig(ctx context.Context, guildID string) (*domain.LevelingConfig, error) {
	cfg, err := s.getLevelingConfig(ctx, guildID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get leveling config: %w", err)
	}

	def := domain.DefaultLevelingConfig(guildID)
	if err := s.insertLevelingConfig(ctx, &def); err != nil {
		return nil, fmt.Errorf("create default leveling config: %w", err)
	}
	return &def, nil
}

func (s *PostgresStore) getLevelingConfig(ctx context.Context, guildID string) (*domain.LevelingConfig, error) {
	row := s.db.QueryRow(ctx, `
		SELECT guild_id, enabled, xp_min, xp_max, xp_cooldown_seconds,
		       level_up_message, level_up_channel_id, announcement_enabled,
		       stack_roles, xp_multiplier,
		       voice_xp_enabled, voice_xp_min, voice_xp_max, voice_xp_interval_seconds,
		       blacklisted_channels, blacklisted_roles, bonus_roles
		FROM leveling_configs WHERE guild_id = $1`, guildID)

	var cfg domain.LevelingConfig
	var cooldownSeconds, voiceIntervalSeconds int
	var bonusRaw []byte
	if err := row.Scan(
		&cfg.GuildID, &cfg.Enabled, &cfg.XPMin, &cfg.XPMax, &cooldownSeconds,
		&cfg.LevelUpMessage, &cfg.LevelUpChannelID, &cfg.AnnouncementEnabled,
		&cfg.StackRoles, &cfg.XPMultiplier,
		&cfg.VoiceXPEnabled, &cfg.VoiceXPMin, &cfg.VoiceXPMax, &voiceIntervalSeconds,
		&cfg.BlacklistedChannels, &cfg.BlacklistedRoles, &bonusRaw,
	); err != nil {
		return nil, err
	}

	cfg.XPCooldown = time.Duration(cooldownSeconds) * time.Second
	cfg.VoiceXPInterval = time.Duration(voiceIntervalSeconds) * time.Second
	cfg.BonusRoles = map[string]float64{}
	if len(bonusRaw) > 0 {
		if err := json.Unmarshal(bonusRaw, &cfg.BonusRoles); err != nil {
			return nil, fmt.Errorf("decode bonus roles: %w", err)
		}
	}
	return &cfg, nil
}

func (s *PostgresStore) insertLevelingConfig(ctx context.Context, cfg *domain.LevelingConfig) error {
	bonusRaw, err := json.Marshal(cfg.BonusRoles)
	if err != nil {
		return fmt.Errorf("encode bonus roles: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO leveling_configs (
			guild_id, enabled, xp_min, xp_max, xp_cooldown_seconds,
			level_up_message, level_up_channel_id, announcement_enabled,
			stack_roles, xp_multiplier,
			voice_xp_enabled, voice_xp_min, voice_xp_max, voice_xp_interval_seconds,
			blacklisted_channels, blacklisted_roles, bonus_roles
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (guild_id) DO NOTHING`,
		cfg.GuildID, cfg.Enabled, cfg.XPMin, cfg.XPMax, int(cfg.XPCooldown.Seconds()),
		cfg.LevelUpMessage, cfg.LevelUpChannelID, cfg.AnnouncementEnabled,
		cfg.StackRoles, cfg.XPMultiplier,
		cfg.VoiceXPEnabled, cfg.VoiceXPMin, cfg.VoiceXPMax, int(cfg.VoiceXPInterval.Seconds()),
		stringArray(cfg.BlacklistedChannels), stringArray(cfg.BlacklistedRoles), bonusRaw,
	)
	return err
}

// -- User levels --

func (s *PostgresStore) GetUserLevel(ctx context.Context, guildID, userID string) (*domain.UserLevel, error) {
	row := s.db.QueryRow(ctx, `
		SELECT guild_id, user_id, xp, level, total_xp, messages_sent, voice_minutes, last_xp_time
		FROM user_levels WHERE guild_id = $1 AND user_id = $2`, guildID, userID)

	var ul domain.UserLevel
	if err := row.Scan(&ul.GuildID, &ul.UserID, &ul.XP, &ul.Level, &ul.TotalXP, &ul.MessagesSent, &ul.VoiceMinutes, &ul.LastXPTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user level: %w", err)
	}
	return &ul, nil
}

// UpsertUserLevel writes the progression row. The GREATEST guards keep
// level and total_xp monotonic when two awards for the same user race.
func (s *PostgresStore) UpsertUserLevel(ctx context.Context, ul *domain.UserLevel) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_levels (guild_id, user_id, xp, level, total_xp, messages_sent, voice_minutes, last_xp_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET
			xp = EXCLUDED.xp,
			level = GREATEST(user_levels.level, EXCLUDED.level),
			total_xp = GREATEST(user_levels.total_xp, EXCLUDED.total_xp),
			messages_sent = GREATEST(user_levels.messages_sent, EXCLUDED.messages_sent),
			voice_minutes = GREATEST(user_levels.voice_minutes, EXCLUDED.voice_minutes),
			last_xp_time = EXCLUDED.last_xp_time`,
		ul.GuildID, ul.UserID, ul.XP, ul.Level, ul.TotalXP, ul.MessagesSent, ul.VoiceMinutes, ul.LastXPTime,
	)
	if err != nil {
		return fmt.Errorf("upsert user level: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetLeaderboard(ctx context.Context, guildID string, limit int) ([]domain.UserLevel, error) {
	rows, err := s.db.Query(ctx, `
		SELECT guild_id, user_id, xp, level, total_xp, messages_sent, voice_minutes, last_xp_time
		FROM user_levels WHERE guild_id = $1
		ORDER BY total_xp DESC LIMIT $2`, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	var result []domain.UserLevel
	for rows.Next() {
		var ul domain.UserLevel
		if err := rows.Scan(&ul.GuildID, &ul.UserID, &ul.XP, &ul.Level, &ul.TotalXP, &ul.MessagesSent, &ul.VoiceMinutes, &ul.LastXPTime); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		result = append(result, ul)
	}
	return result, rows.Err()
}

// GetUserRank returns the 1-based rank by total XP, or 0 when the user has
// no row yet.
func (s *PostgresStore) GetUserRank(ctx context.Context, guildID, userID string) (int, error) {
	row := s.db.QueryRow(ctx, `
		SELECT (
			SELECT COUNT(*) + 1 FROM user_levels r
			WHERE r.guild_id = u.guild_id AND r.total_xp > u.total_xp
		)
		FROM user_levels u
		WHERE u.guild_id = $1 AND u.user_id = $2`, guildID, userID)

	var rank int
	if err := row.Scan(&rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get user rank: %w", err)
	}
	return rank, nil
}

func (s *PostgresStore) ResetUserLevel(ctx context.Context, guildID, userID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE user_levels
		SET xp = 0, level = 0, total_xp = 0, messages_sent = 0, voice_minutes = 0
		WHERE guild_id = $1 AND user_id = $2`, guildID, userID)
	if err != nil {
		return fmt.Errorf("reset user level: %w", err)
	}
	return nil
}

// -- Level roles --

func (s *PostgresStore) GetLevelRoles(ctx context.Context, guildID string) ([]domain.LevelRole, error) {
	rows, err := s.db.Query(ctx, `
		SELECT guild_id, role_id, level_required
		FROM level_roles WHERE guild_id = $1
		ORDER BY level_required DESC`, guildID)
	if err != nil {
		return nil, fmt.Errorf("get level roles: %w", err)
	}
	defer rows.Close()

	var result []domain.LevelRole
	for rows.Next() {
		var lr domain.LevelRole
		if err := rows.Scan(&lr.GuildID, &lr.RoleID, &lr.LevelRequired); err != nil {
			return nil, fmt.Errorf("scan level role row: %w", err)
		}
		result = append(result, lr)
	}
	return result, rows.Err()
}

func (s *PostgresStore) AddLevelRole(ctx context.Context, guildID, roleID string, levelRequired int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO level_roles (guild_id, role_id, level_required)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, role_id) DO UPDATE SET level_required = EXCLUDED.level_required`,
		guildID, roleID, levelRequired,
	)
	if err != nil {
		return fmt.Errorf("add level role: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveLevelRole(ctx context.Context, guildID, roleID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM level_roles WHERE guild_id = $1 AND role_id = $2`, guildID, roleID)
	if err != nil {
		return fmt.Errorf("remove level role: %w", err)
	}
	return nil
}

// -- Moderation log --

func (s *PostgresStore) InsertModerationLog(ctx context.Context, entry domain.ModerationLog) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO moderation_logs (guild_id, user_id, action, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.GuildID, entry.UserID, entry.Action, entry.Reason, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert moderation log: %w", err)
	}
	return nil
}

// stringArray normalizes nil slices so postgres always sees an array value.
func stringArray(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
