package discord

import (
	"context"
	"sld/internal/providers"
	"sld/internal/services"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// onMessageCreate feeds every human guild message through the detection
// pipeline. This handler is the single place that decides visibility:
// only a Replied outcome produces output, everything else stays silent,
// and no failure may crash the bot or leak an error to the channel.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	b.processMessage(s, m.Message)
}

// onMessageUpdate re-runs detection on edits. The guard remembers the
// message ID, so an already-answered message stays answered once.
func (b *Bot) onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	b.processMessage(s, m.Message)
}

func (b *Bot) processMessage(s *discordgo.Session, m *discordgo.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf(providers.TypeMessage, "Detection panicked on message %s: %v", m.ID, r)
		}
	}()

	result := b.detection.HandleMessage(context.Background(), m.GuildID, m.ID, m.Author.ID, m.Content)
	if result.Outcome != services.DetectionReplied {
		return
	}

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:         strings.Join(result.Links, "\n"),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
		Reference:       m.Reference(),
	})
	if err != nil {
		b.logger.Warnf(providers.TypeMessage, "Failed to send detection reply for message %s: %s", m.ID, err)
	}
}
