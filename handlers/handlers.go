package handlers

import (
	"execution-bot/bot"
	"execution-bot/execution"
	"execution-bot/logging"
	"execution-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"executionsetup": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			channel := i.ApplicationCommandData().Options[0].ChannelValue(nil)
			reply, err := b.Service.Setup(i.GuildID, invokerFrom(i), channel.ID)
			sendReply(s, i, reply, err)
		},
		"executionadd": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			target := i.ApplicationCommandData().Options[0].UserValue(nil)
			reply, err := b.Service.Add(i.GuildID, invokerFrom(i), target.ID)
			sendReply(s, i, reply, err)
		},
		"executionremove": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			messageID := i.ApplicationCommandData().Options[0].StringValue()
			reply, err := b.Service.Remove(i.GuildID, invokerFrom(i), messageID)
			sendReply(s, i, reply, err)
		},
		"executionremovestaff": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			messageID := i.ApplicationCommandData().Options[0].StringValue()
			reply, err := b.Service.RemoveStaff(i.GuildID, invokerFrom(i), messageID)
			sendReply(s, i, reply, err)
		},
		"executioncommands": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			sendReply(s, i, b.Service.Help(), nil)
		},
	}
}

func invokerFrom(i *discordgo.InteractionCreate) execution.Invoker {
	inv := execution.Invoker{ID: i.Member.User.ID}
	inv.ManageGuild = i.Member.Permissions&discordgo.PermissionManageServer != 0
	inv.ManageMessages = i.Member.Permissions&discordgo.PermissionManageMessages != 0
	return inv
}

// sendReply terminates every command path with exactly one reply: the
// service's reply on success, a generic failure message on an unexpected
// error.
func sendReply(s *discordgo.Session, i *discordgo.InteractionCreate, reply execution.Reply, err error) {
	if err != nil {
		logging.GetLogger().Errorf("Error handling /%s: %v", i.ApplicationCommandData().Name, err)
		utils.SendEphemeralResponse(s, i, "❌ An error occurred while executing the command.")
		return
	}
	if reply.Embed != nil {
		utils.SendEphemeralEmbed(s, i, reply.Embed)
		return
	}
	utils.SendEphemeralResponse(s, i, reply.Content)
}

func addHandlers(b *bot.Bot) {
	log := logging.GetLogger()

	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Infof("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
		if err := s.UpdateWatchStatus(0, "discord.gg/locx"); err != nil {
			log.Warnf("Could not set presence: %v", err)
		}
	})

	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]
		if !ok {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("Panic handling /%s: %v", i.ApplicationCommandData().Name, r)
				// Best effort: Discord rejects this if a reply already went
				// out, and the helper logs that rejection.
				utils.SendEphemeralResponse(s, i, "❌ An error occurred while executing the command.")
			}
		}()
		h(s, i)
	})
}
