package bot

import (
	"execution-bot/execution"
	"execution-bot/logging"
	"execution-bot/model"
	"execution-bot/store"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	Session            *discordgo.Session
	Service            *execution.Service
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	RegisteredCommands []*discordgo.ApplicationCommand
	log                *logrus.Logger
}

func New(cfg *model.Config, st *store.Store) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	log := logging.GetLogger()
	b := &Bot{
		Session: dg,
		log:     log,
	}
	b.Service = execution.NewService(st, &sessionMessenger{session: dg}, log)
	return b, nil
}

func (b *Bot) Close() {
	b.log.Info("Gracefully shutting down.")
	if err := b.Session.Close(); err != nil {
		b.log.Errorf("Error closing session: %v", err)
	}
}

// sessionMessenger adapts the discordgo session to the slice of the API the
// execution service uses.
type sessionMessenger struct {
	session *discordgo.Session
}

func (m *sessionMessenger) PostEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	msg, err := m.session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (m *sessionMessenger) React(channelID, messageID, emoji string) error {
	return m.session.MessageReactionAdd(channelID, messageID, emoji)
}

func (m *sessionMessenger) DeleteMessage(channelID, messageID string) error {
	return m.session.ChannelMessageDelete(channelID, messageID)
}
