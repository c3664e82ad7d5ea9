package discord

import (
	"context"
	"errors"
	"fmt"
	"sld/internal/models"
	"sld/internal/providers"
	"sld/internal/steam"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const genericFailure = "Something went wrong, please try again."

// onInteraction routes slash commands. Unlike automatic detection, the
// invoking user is waiting, so any unexpected failure answers with a
// generic message instead of silence.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf(providers.TypeCommand, "Command handler panicked: %v", r)
			b.respondText(s, i, genericFailure)
		}
	}()

	data := i.ApplicationCommandData()
	b.logger.Debugf(providers.TypeCommand, "Command /%s from guild %s", data.Name, i.GuildID)

	switch data.Name {
	case "steamwatch":
		b.handleToggle(s, i, data)
	case "profiles":
		b.handleProfiles(s, i, data)
	case "groups":
		b.handleGroups(s, i, data)
	default:
		b.respondText(s, i, genericFailure)
	}
}

func (b *Bot) handleToggle(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if len(data.Options) == 0 {
		b.respondText(s, i, genericFailure)
		return
	}

	enabled := data.Options[0].Name == "on"
	b.directory.ToggleDetection(i.GuildID, enabled)
	if enabled {
		b.respondText(s, i, "Automatic Steam link detection is now on.")
	} else {
		b.respondText(s, i, "Automatic Steam link detection is now off.")
	}
}

func (b *Bot) handleProfiles(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if len(data.Options) == 0 {
		b.respondText(s, i, genericFailure)
		return
	}
	sub := data.Options[0]
	opts := optionMap(sub.Options)
	ctx := context.Background()

	switch sub.Name {
	case "add":
		rec, result, err := b.directory.AddProfile(ctx, stringOption(opts, "target"), stringOption(opts, "note"))
		if err != nil {
			b.respondText(s, i, "Could not resolve that profile.")
			return
		}
		link := steam.ProfilePermalink(rec.ID)
		switch result {
		case models.UpsertAdded:
			b.respondText(s, i, "Saved "+link)
		case models.UpsertUpdated:
			b.respondText(s, i, "Note updated for "+link)
		default:
			b.respondText(s, i, "Already saved: "+link)
		}

	case "remove":
		removed, err := b.directory.RemoveProfile(ctx, stringOption(opts, "target"))
		if err != nil {
			b.respondText(s, i, "Could not resolve that profile.")
			return
		}
		if removed {
			b.respondText(s, i, "Profile removed.")
		} else {
			b.respondText(s, i, "That profile is not saved.")
		}

	case "list":
		records, page, pages := b.directory.ProfilesPage(intOption(opts, "page"))
		if len(records) == 0 {
			b.respondText(s, i, "No profiles saved yet.")
			return
		}
		fields := make([]*discordgo.MessageEmbedField, 0, len(records))
		for _, rec := range records {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  steam.ProfilePermalink(rec.ID),
				Value: recordDetail(rec.Note, rec.AddedAt.Format("2006-01-02")),
			})
		}
		b.respondEmbed(s, i, listEmbed("Saved profiles", fields, page, pages))

	case "clear":
		n := b.directory.ClearProfiles()
		b.respondText(s, i, fmt.Sprintf("Cleared %d profile(s).", n))

	case "import":
		b.handleImport(s, i, data, opts, func(lines []string) string {
			return b.directory.ImportProfiles(ctx, lines).String()
		})

	default:
		b.respondText(s, i, genericFailure)
	}
}

func (b *Bot) handleGroups(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if len(data.Options) == 0 {
		b.respondText(s, i, genericFailure)
		return
	}
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "add":
		rec, result, ok := b.directory.AddGroup(stringOption(opts, "target"), stringOption(opts, "note"))
		if !ok {
			b.respondText(s, i, "Could not resolve that group.")
			return
		}
		switch result {
		case models.UpsertAdded:
			b.respondText(s, i, "Saved "+rec.URL)
		case models.UpsertUpdated:
			b.respondText(s, i, "Note updated for "+rec.URL)
		default:
			b.respondText(s, i, "Already saved: "+rec.URL)
		}

	case "remove":
		if b.directory.RemoveGroup(stringOption(opts, "target")) {
			b.respondText(s, i, "Group removed.")
		} else {
			b.respondText(s, i, "That group is not saved.")
		}

	case "list":
		records, page, pages := b.directory.GroupsPage(intOption(opts, "page"))
		if len(records) == 0 {
			b.respondText(s, i, "No groups saved yet.")
			return
		}
		fields := make([]*discordgo.MessageEmbedField, 0, len(records))
		for _, rec := range records {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  rec.URL,
				Value: recordDetail(rec.Note, rec.AddedAt.Format("2006-01-02")),
			})
		}
		b.respondEmbed(s, i, listEmbed("Saved groups", fields, page, pages))

	case "clear":
		n := b.directory.ClearGroups()
		b.respondText(s, i, fmt.Sprintf("Cleared %d group(s).", n))

	case "import":
		b.handleImport(s, i, data, opts, func(lines []string) string {
			return b.directory.ImportGroups(lines).String()
		})

	default:
		b.respondText(s, i, genericFailure)
	}
}

// handleImport defers the response first: resolving a long import can
// outlive the three-second interaction window.
func (b *Bot) handleImport(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, run func(lines []string) string) {
	if err := b.deferResponse(s, i); err != nil {
		b.logger.Warnf(providers.TypeCommand, "Failed to defer import response: %s", err)
		return
	}

	content := stringOption(opts, "text")
	if att := resolvedAttachment(data, opts); att != nil {
		fetched, err := b.importer.Fetch(att.URL)
		if err != nil {
			if errors.Is(err, ErrAttachmentTooLarge) {
				b.followUp(s, i, "That file is too large to import.")
			} else {
				b.followUp(s, i, genericFailure)
			}
			return
		}
		content = fetched
	}

	if strings.TrimSpace(content) == "" {
		b.followUp(s, i, "Attach a file or paste some text to import.")
		return
	}

	b.followUp(s, i, run(steam.ExtractBulk(content)))
}

func recordDetail(note, added string) string {
	if note == "" {
		return "added " + added
	}
	return note + " (added " + added + ")"
}

func listEmbed(title string, fields []*discordgo.MessageEmbedField, page, pages int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:  title,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d", page, pages),
		},
	}
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		out[opt.Name] = opt
	}
	return out
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return 0
}

func resolvedAttachment(data discordgo.ApplicationCommandInteractionData, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) *discordgo.MessageAttachment {
	opt, ok := opts["file"]
	if !ok || data.Resolved == nil {
		return nil
	}
	id, ok := opt.Value.(string)
	if !ok {
		return nil
	}
	return data.Resolved.Attachments[id]
}

func (b *Bot) respondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		b.logger.Warnf(providers.TypeCommand, "Failed to respond to interaction: %s", err)
	}
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:          []*discordgo.MessageEmbed{embed},
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		b.logger.Warnf(providers.TypeCommand, "Failed to respond to interaction: %s", err)
	}
}

func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content:         content,
		Flags:           discordgo.MessageFlagsEphemeral,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	if err != nil {
		b.logger.Warnf(providers.TypeCommand, "Failed to send follow-up: %s", err)
	}
}
