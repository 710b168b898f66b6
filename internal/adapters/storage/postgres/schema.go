package postgres

// Schema holds the bootstrap DDL. Statements are idempotent; evolving an
// existing deployment is handled out of band.
var Schema = []string{`
CREATE TABLE IF NOT EXISTS moderation_configs (
	guild_id TEXT PRIMARY KEY,
	spam_enabled BOOLEAN NOT NULL,
	spam_threshold INT NOT NULL,
	spam_interval_seconds INT NOT NULL,
	caps_enabled BOOLEAN NOT NULL,
	caps_threshold INT NOT NULL,
	caps_min_length INT NOT NULL,
	repeated_enabled BOOLEAN NOT NULL,
	repeated_threshold INT NOT NULL,
	link_filter_enabled BOOLEAN NOT NULL,
	invite_filter_enabled BOOLEAN NOT NULL,
	word_filter_enabled BOOLEAN NOT NULL,
	filtered_words TEXT[] NOT NULL DEFAULT '{}',
	whitelisted_channels TEXT[] NOT NULL DEFAULT '{}',
	whitelisted_roles TEXT[] NOT NULL DEFAULT '{}',
	max_mentions INT NOT NULL,
	max_emojis INT NOT NULL,
	punishment_type TEXT NOT NULL,
	punishment_duration_minutes INT NOT NULL DEFAULT 0
);
`, `
CREATE TABLE IF NOT EXISTS leveling_configs (
	guild_id TEXT PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	xp_min INT NOT NULL,
	xp_max INT NOT NULL,
	xp_cooldown_seconds INT NOT NULL,
	level_up_message TEXT NOT NULL,
	level_up_channel_id TEXT NOT NULL DEFAULT '',
	announcement_enabled BOOLEAN NOT NULL,
	stack_roles BOOLEAN NOT NULL,
	xp_multiplier DOUBLE PRECISION NOT NULL,
	voice_xp_enabled BOOLEAN NOT NULL,
	voice_xp_min INT NOT NULL,
	voice_xp_max INT NOT NULL,
	voice_xp_interval_seconds INT NOT NULL,
	blacklisted_channels TEXT[] NOT NULL DEFAULT '{}',
	blacklisted_roles TEXT[] NOT NULL DEFAULT '{}',
	bonus_roles JSONB NOT NULL DEFAULT '{}'
);
`, `
CREATE TABLE IF NOT EXISTS user_levels (
	guild_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	xp INT NOT NULL DEFAULT 0,
	level INT NOT NULL DEFAULT 0,
	total_xp BIGINT NOT NULL DEFAULT 0,
	messages_sent INT NOT NULL DEFAULT 0,
	voice_minutes INT NOT NULL DEFAULT 0,
	last_xp_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (guild_id, user_id)
);
`, `
CREATE INDEX IF NOT EXISTS user_levels_leaderboard_idx ON user_levels (guild_id, total_xp DESC);
`, `
CREATE TABLE IF NOT EXISTS level_roles (
	guild_id TEXT NOT NULL,
	role_id TEXT NOT NULL,
	level_required INT NOT NULL,
	PRIMARY KEY (guild_id, role_id)
);
`, `
CREATE TABLE IF NOT EXISTS moderation_logs (
	id BIGSERIAL PRIMARY KEY,
	guild_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	action TEXT NOT NULL,
	reason TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`, `
CREATE INDEX IF NOT EXISTS moderation_logs_guild_idx ON moderation_logs (guild_id);
`}
