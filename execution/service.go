package execution

import (
	"fmt"
	"time"

	"execution-bot/model"
	"execution-bot/store"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// Messenger is the slice of the Discord API the service needs. The bot
// package provides a session-backed implementation; tests provide fakes.
type Messenger interface {
	PostEmbed(channelID string, embed *discordgo.MessageEmbed) (messageID string, err error)
	React(channelID, messageID, emoji string) error
	DeleteMessage(channelID, messageID string) error
}

// Invoker identifies the command invoker and the permission bits that matter
// to this service, extracted from the interaction member.
type Invoker struct {
	ID             string
	ManageGuild    bool
	ManageMessages bool
}

// Reply is what gets sent back to the invoker, always ephemeral. Exactly one
// of Content or Embed is set.
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// Service implements the execution commands over the store and the Discord
// messenger. A non-nil error from any operation means an unexpected failure
// before any reply was determined; the caller reports a generic failure.
type Service struct {
	store     *store.Store
	messenger Messenger
	log       *logrus.Logger
}

func NewService(st *store.Store, m Messenger, log *logrus.Logger) *Service {
	return &Service{store: st, messenger: m, log: log}
}

// Setup designates the execution channel for a guild. Requires the Manage
// Server permission.
func (s *Service) Setup(guildID string, invoker Invoker, channelID string) (Reply, error) {
	if !invoker.ManageGuild {
		return Reply{Content: "You need the Manage Server permission to use this command!"}, nil
	}
	if err := s.store.SetExecutionChannel(guildID, channelID); err != nil {
		return Reply{}, err
	}
	return Reply{Content: fmt.Sprintf("✅ Execution channel set to <#%s>!", channelID)}, nil
}

// Add posts an execution embed to the configured channel, attaches the vote
// reactions and records it. The reactions are decorative; failures attaching
// them are logged, not surfaced.
func (s *Service) Add(guildID string, invoker Invoker, targetUserID string) (Reply, error) {
	channelID, ok := s.store.ExecutionChannel(guildID)
	if !ok {
		return Reply{Content: "Execution channel not set! Please ask an admin to use `/executionsetup` first."}, nil
	}

	messageID, err := s.messenger.PostEmbed(channelID, executionEmbed(invoker.ID, targetUserID))
	if err != nil {
		return Reply{}, fmt.Errorf("error posting execution to channel %s: %w", channelID, err)
	}

	for _, emoji := range []string{"⬆️", "⬇️"} {
		if err := s.messenger.React(channelID, messageID, emoji); err != nil {
			s.log.Warnf("Could not add %s reaction to message %s: %v", emoji, messageID, err)
		}
	}

	rec := model.ExecutionRecord{
		ExecutorID:     invoker.ID,
		ExecutedUserID: targetUserID,
		ChannelID:      channelID,
		Timestamp:      time.Now().UnixMilli(),
	}
	if err := s.store.AddExecution(guildID, messageID, rec); err != nil {
		return Reply{}, err
	}

	return Reply{Content: fmt.Sprintf("✅ Execution added in <#%s>!", channelID)}, nil
}

// Remove deletes an execution post. Self-service only: the invoker must be
// the original executor.
func (s *Service) Remove(guildID string, invoker Invoker, messageID string) (Reply, error) {
	rec, ok := s.store.Execution(guildID, messageID)
	if !ok {
		return Reply{Content: "❌ Execution not found!"}, nil
	}
	if rec.ExecutorID != invoker.ID {
		return Reply{Content: "You can only remove your own executions!"}, nil
	}
	return s.deleteExecution(guildID, messageID, rec)
}

// RemoveStaff deletes any execution post. Requires the Manage Messages
// permission; ownership does not matter.
func (s *Service) RemoveStaff(guildID string, invoker Invoker, messageID string) (Reply, error) {
	if !invoker.ManageMessages {
		return Reply{Content: "You need the Manage Messages permission to use this command!"}, nil
	}
	rec, ok := s.store.Execution(guildID, messageID)
	if !ok {
		return Reply{Content: "❌ Execution not found!"}, nil
	}
	return s.deleteExecution(guildID, messageID, rec)
}

// deleteExecution deletes the live message first and only then the record, so
// a failed Discord call never orphans a deletion.
func (s *Service) deleteExecution(guildID, messageID string, rec model.ExecutionRecord) (Reply, error) {
	if err := s.messenger.DeleteMessage(rec.ChannelID, messageID); err != nil {
		s.log.Warnf("Could not delete execution message %s in channel %s: %v", messageID, rec.ChannelID, err)
		return Reply{Content: "❌ Could not find or delete the execution message!"}, nil
	}
	if err := s.store.DeleteExecution(guildID, messageID); err != nil {
		return Reply{}, err
	}
	return Reply{Content: "✅ Execution removed successfully!"}, nil
}

// Help lists the execution commands. Stateless.
func (s *Service) Help() Reply {
	return Reply{Embed: helpEmbed()}
}
