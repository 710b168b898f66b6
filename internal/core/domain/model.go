package domain

import "time"

// Message is the slice of a gateway message-create event the engines care about.
type Message struct {
	ID             string
	GuildID        string
	ChannelID      string
	AuthorID       string
	AuthorIsBot    bool
	Content        string
	MentionUserIDs []string
	Timestamp      time.Time
}

// VoiceUpdate is the slice of a voice-state-update event the engines care about.
type VoiceUpdate struct {
	GuildID         string
	UserID          string
	IsBot           bool
	BeforeChannelID string
	AfterChannelID  string
	SelfDeaf        bool
	Deaf            bool
}

type Punishment int

const (
	PunishWarn Punishment = iota
	PunishMute
	PunishKick
	PunishBan
)

func (p Punishment) String() string {
	switch p {
	case PunishMute:
		return "mute"
	case PunishKick:
		return "kick"
	case PunishBan:
		return "ban"
	default:
		return "warn"
	}
}

// ParsePunishment maps a stored punishment tag to its enum value.
// Unknown tags fall back to warn, the mildest action.
func ParsePunishment(s string) Punishment {
	switch s {
	case "mute":
		return PunishMute
	case "kick":
		return PunishKick
	case "ban":
		return PunishBan
	default:
		return PunishWarn
	}
}

type ModerationConfig struct {
	GuildID             string
	SpamEnabled         bool
	SpamThreshold       int
	SpamInterval        time.Duration
	CapsEnabled         bool
	CapsThreshold       int
	CapsMinLength       int
	RepeatedEnabled     bool
	RepeatedThreshold   int
	LinkFilterEnabled   bool
	InviteFilterEnabled bool
	WordFilterEnabled   bool
	FilteredWords       []string
	WhitelistedChannels []string
	WhitelistedRoles    []string
	MaxMentions         int
	MaxEmojis           int
	PunishmentType      Punishment
	PunishmentDuration  time.Duration
}

// DefaultModerationConfig returns the config synthesized the first time a
// guild's messages are moderated.
func DefaultModerationConfig(guildID string) ModerationConfig {
	return ModerationConfig{
		GuildID:             guildID,
		SpamEnabled:         true,
		SpamThreshold:       5,
		SpamInterval:        5 * time.Second,
		CapsEnabled:         true,
		CapsThreshold:       70,
		CapsMinLength:       10,
		RepeatedEnabled:     true,
		RepeatedThreshold:   3,
		LinkFilterEnabled:   false,
		InviteFilterEnabled: true,
		WordFilterEnabled:   true,
		MaxMentions:         5,
		MaxEmojis:           10,
		PunishmentType:      PunishWarn,
	}
}

type LevelingConfig struct {
	GuildID             string
	Enabled             bool
	XPMin               int
	XPMax               int
	XPCooldown          time.Duration
	LevelUpMessage      string
	LevelUpChannelID    string
	AnnouncementEnabled bool
	StackRoles          bool
	XPMultiplier        float64
	VoiceXPEnabled      bool
	VoiceXPMin          int
	VoiceXPMax          int
	VoiceXPInterval     time.Duration
	BlacklistedChannels []string
	BlacklistedRoles    []string
	BonusRoles          map[string]float64
}

func DefaultLevelingConfig(guildID string) LevelingConfig {
	return LevelingConfig{
		GuildID:             guildID,
		Enabled:             true,
		XPMin:               15,
		XPMax:               25,
		XPCooldown:          60 * time.Second,
		LevelUpMessage:      "Congratulations {user}! You reached level {level}!",
		AnnouncementEnabled: true,
		StackRoles:          false,
		XPMultiplier:        1.0,
		VoiceXPEnabled:      true,
		VoiceXPMin:          5,
		VoiceXPMax:          10,
		VoiceXPInterval:     5 * time.Minute,
		BonusRoles:          map[string]float64{},
	}
}

// UserLevel is the per-(guild,user) progression row. XP holds progress
// within the current level; TotalXP is the lifetime total and never
// decreases.
type UserLevel struct {
	GuildID      string
	UserID       string
	XP           int
	Level        int
	TotalXP      int
	MessagesSent int
	VoiceMinutes int
	LastXPTime   time.Time
}

type LevelRole struct {
	GuildID       string
	RoleID        string
	LevelRequired int
}

// ModerationLog records a punishment applied by the bot.
type ModerationLog struct {
	GuildID   string
	UserID    string
	Action    string
	Reason    string
	Timestamp time.Time
}
