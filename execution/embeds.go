package execution

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const footerText = "discord.gg/locx"

func executionEmbed(executorID, executedUserID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⚔️ Execution",
		Color:       0xFF0000,
		Description: fmt.Sprintf("**Executed:** <@%s>\n**Executor:** <@%s>", executedUserID, executorID),
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

func helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⚔️ Execution Commands",
		Color:       0x0099FF,
		Description: "Here are all available execution commands:",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "/executionsetup <channel>", Value: "Set the execution channel (requires Manage Server permission)"},
			{Name: "/executionadd <user>", Value: "Add an execution to the execution channel (with ⬆️ and ⬇️ reactions)"},
			{Name: "/executionremove <message-id>", Value: "Remove your own execution"},
			{Name: "/executionremovestaff <message-id>", Value: "Remove any execution (requires Manage Messages permission)"},
			{Name: "/executioncommands", Value: "Show this help message"},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: footerText},
	}
}
