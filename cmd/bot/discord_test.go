package main

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"guardbot/internal/config"
)

func TestNewDiscordSession_Intents(t *testing.T) {
	cfg := &config.Config{Token: "test-token"}

	session, err := NewDiscordSession(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if session == nil {
		t.Fatal("Expected session to be created")
	}

	expected := discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent
	if session.Identify.Intents != expected {
		t.Errorf("Expected intents %d, got %d", expected, session.Identify.Intents)
	}
}

func TestNewDiscordSession_TokenPrefixing(t *testing.T) {
	cfg := &config.Config{Token: "my-token-123"}

	session, err := NewDiscordSession(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expectedToken := "Bot my-token-123"
	if session.Token != expectedToken {
		t.Errorf("Expected token '%s', got '%s'", expectedToken, session.Token)
	}
}
