package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandDefinitions_TopLevelNames(t *testing.T) {
	defs := commandDefinitions()
	require.Len(t, defs, 3)

	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"steamwatch", "profiles", "groups"}, names)
}

func TestCommandDefinitions_DirectorySubcommands(t *testing.T) {
	for _, name := range []string{"profiles", "groups"} {
		t.Run(name, func(t *testing.T) {
			def := findCommand(t, name)

			subs := make(map[string]*discordgo.ApplicationCommandOption)
			for _, opt := range def.Options {
				require.Equal(t, discordgo.ApplicationCommandOptionSubCommand, opt.Type)
				subs[opt.Name] = opt
			}

			for _, want := range []string{"add", "remove", "list", "clear", "import"} {
				assert.Contains(t, subs, want)
			}

			// add takes a required target and an optional note
			add := subs["add"]
			require.Len(t, add.Options, 2)
			assert.Equal(t, "target", add.Options[0].Name)
			assert.True(t, add.Options[0].Required)
			assert.Equal(t, "note", add.Options[1].Name)
			assert.False(t, add.Options[1].Required)

			// import accepts either a file or pasted text, neither required
			imp := subs["import"]
			require.Len(t, imp.Options, 2)
			assert.Equal(t, discordgo.ApplicationCommandOptionAttachment, imp.Options[0].Type)
			assert.False(t, imp.Options[0].Required)
			assert.False(t, imp.Options[1].Required)
		})
	}
}

func TestCommandDefinitions_ToggleSubcommands(t *testing.T) {
	def := findCommand(t, "steamwatch")
	require.Len(t, def.Options, 2)
	assert.Equal(t, "on", def.Options[0].Name)
	assert.Equal(t, "off", def.Options[1].Name)
}

func findCommand(t *testing.T, name string) *discordgo.ApplicationCommand {
	t.Helper()
	for _, d := range commandDefinitions() {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("command %s not defined", name)
	return nil
}
