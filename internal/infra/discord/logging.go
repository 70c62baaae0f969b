package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// bridgeLogger routes discordgo's internal logging through logger.
func bridgeLogger(logger logrus.FieldLogger) {
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		entry := logger.WithField("component", "discordgo")
		message := fmt.Sprintf(format, a...)

		switch msgL {
		case discordgo.LogError:
			entry.Error(message)
		case discordgo.LogWarning:
			entry.Warn(message)
		case discordgo.LogInformational:
			entry.Info(message)
		default:
			entry.Debug(message)
		}
	}
}
