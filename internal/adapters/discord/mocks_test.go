package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

type mockSession struct {
	deleteErr  error
	timeoutErr error
	sendErr    error

	deleted     []string
	timeoutArgs []*time.Time
	kicked      []string
	banned      []string
	rolesAdded  []string
	sent        []string

	member     *discordgo.Member
	memberErr  error
	guild      *discordgo.Guild
	guildErr   error
	guildCalls int
}

func (m *mockSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	m.deleted = append(m.deleted, messageID)
	return m.deleteErr
}

func (m *mockSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.sent = append(m.sent, content)
	return &discordgo.Message{}, m.sendErr
}

func (m *mockSession) GuildMemberTimeout(guildID, userID string, until *time.Time, options ...discordgo.RequestOption) error {
	m.timeoutArgs = append(m.timeoutArgs, until)
	return m.timeoutErr
}

func (m *mockSession) GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error {
	m.kicked = append(m.kicked, userID)
	return nil
}

func (m *mockSession) GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error {
	m.banned = append(m.banned, userID)
	return nil
}

func (m *mockSession) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	m.rolesAdded = append(m.rolesAdded, roleID)
	return nil
}

func (m *mockSession) GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	return nil
}

func (m *mockSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	if m.memberErr != nil {
		return nil, m.memberErr
	}
	if m.member != nil {
		return m.member, nil
	}
	return &discordgo.Member{}, nil
}

func (m *mockSession) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	m.guildCalls++
	if m.guildErr != nil {
		return nil, m.guildErr
	}
	if m.guild != nil {
		return m.guild, nil
	}
	return &discordgo.Guild{}, nil
}
