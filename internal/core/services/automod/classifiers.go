package automod

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"guardbot/internal/core/domain"
)

var (
	linkPattern        = regexp.MustCompile(`https?://(?:www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_\+.~#?&/=]*`)
	invitePattern      = regexp.MustCompile(`(?:discord\.gg|discord\.com/invite)/[a-zA-Z0-9]+`)
	customEmojiPattern = regexp.MustCompile(`<a?:[a-zA-Z0-9_]+:[0-9]+>`)
)

// checkCaps reports whether the share of uppercase letters among all
// letters reaches the configured percentage. Short messages and messages
// without letters never trigger.
func checkCaps(content string, cfg *domain.ModerationConfig) bool {
	if utf8.RuneCountInString(content) < cfg.CapsMinLength {
		return false
	}

	var upper, letters int
	for _, r := range content {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}

	if letters == 0 {
		return false
	}

	return float64(upper)/float64(letters)*100 >= float64(cfg.CapsThreshold)
}

func checkLinks(content string) bool {
	return linkPattern.MatchString(content)
}

func checkInvites(content string) bool {
	return invitePattern.MatchString(content)
}

func checkFilteredWords(content string, words []string) bool {
	if len(words) == 0 {
		return false
	}

	lowered := strings.ToLower(content)
	for _, word := range words {
		if strings.Contains(lowered, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// checkMentions treats a limit of 0 as unlimited.
func checkMentions(mentionCount int, cfg *domain.ModerationConfig) bool {
	if cfg.MaxMentions == 0 {
		return false
	}
	return mentionCount > cfg.MaxMentions
}

// checkEmojis counts custom emoji tokens plus Unicode emoji and treats a
// limit of 0 as unlimited.
func checkEmojis(content string, cfg *domain.ModerationConfig) bool {
	if cfg.MaxEmojis == 0 {
		return false
	}
	return countEmojis(content) > cfg.MaxEmojis
}

func countEmojis(content string) int {
	count := len(customEmojiPattern.FindAllString(content, -1))
	stripped := customEmojiPattern.ReplaceAllString(content, "")

	g := uniseg.NewGraphemes(stripped)
	for g.Next() {
		runes := g.Runes()
		if len(runes) > 0 && isEmojiRune(runes[0]) {
			count++
		}
	}
	return count
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols and pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport
		return true
	case r >= 0x1F1E0 && r <= 0x1F1FF: // regional indicators
		return true
	default:
		return false
	}
}
