package bot

import (
	"os"
	"os/signal"
	"syscall"

	"execution-bot/commands"
)

// Run opens the gateway session, registers the slash commands globally and
// blocks until the process receives an interrupt signal.
func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		b.log.Fatalf("Error opening connection: %v", err)
	}

	cmds := commands.GenerateCommands()
	b.log.Infof("Registering %d slash commands...", len(cmds))
	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", cmds)
	if err != nil {
		b.log.Errorf("Cannot register commands: %v", err)
	} else {
		b.RegisteredCommands = registered
		b.log.Info("Slash commands registered!")
	}

	b.log.Info("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
