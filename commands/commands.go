package commands

import (
	"github.com/bwmarrin/discordgo"
)

// GenerateCommands returns the slash command definitions registered with
// Discord at startup.
func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "executionsetup",
			Description: "Set the execution channel (requires Manage Server permission)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "The channel where executions will be posted",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
		{
			Name:        "executionadd",
			Description: "Add an execution to the execution channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user who was executed",
					Required:    true,
				},
			},
		},
		{
			Name:        "executionremove",
			Description: "Remove your own execution",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message-id",
					Description: "The message ID of the execution to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "executionremovestaff",
			Description: "Remove any execution (requires Manage Messages permission)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message-id",
					Description: "The message ID of the execution to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "executioncommands",
			Description: "Show all execution commands",
		},
	}
}
