package discord

import (
	"fmt"
	"sld/internal/providers"
	"sld/internal/services"
	"sld/internal/structures"

	"github.com/bwmarrin/discordgo"
)

// Bot is the gateway binding: it owns the discordgo session and wires
// inbound events into the detection and directory services. discordgo
// dispatches handlers on goroutines, so everything the handlers touch
// is mutex-guarded further down.
type Bot struct {
	conf      *structures.Config
	session   *discordgo.Session
	logger    providers.Logger
	detection services.DetectionServiceInterface
	directory services.DirectoryServiceInterface
	importer  *AttachmentFetcher

	registered []*discordgo.ApplicationCommand
}

func NewBot(conf *structures.Config, logger providers.Logger, detection services.DetectionServiceInterface, directory services.DirectoryServiceInterface, importer *AttachmentFetcher) (*Bot, error) {
	session, err := discordgo.New("Bot " + conf.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{
		conf:      conf,
		session:   session,
		logger:    logger,
		detection: detection,
		directory: directory,
		importer:  importer,
	}

	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onMessageUpdate)
	session.AddHandler(b.onInteraction)

	return b, nil
}

func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		b.session.Close()
		return err
	}

	b.logger.Infof(providers.TypeApp, "Discord gateway connected as %s", b.session.State.User.Username)
	return nil
}

func (b *Bot) Close() {
	if err := b.session.Close(); err != nil {
		b.logger.Warnf(providers.TypeApp, "Error closing discord session: %s", err)
	}
}

func (b *Bot) registerCommands() error {
	appID := b.session.State.User.ID
	for _, cmd := range commandDefinitions() {
		created, err := b.session.ApplicationCommandCreate(appID, b.conf.Discord.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		b.registered = append(b.registered, created)
	}
	b.logger.Infof(providers.TypeApp, "Registered %d slash commands", len(b.registered))
	return nil
}
