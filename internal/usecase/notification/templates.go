package notification

import "fmt"

// Message templates receive denormalised actor/entity snapshots so the
// consumer never re-queries either.

func StreamStartedMessage(actorName, entityTitle string) string {
	if entityTitle == "" {
		return fmt.Sprintf("%s is live now!", actorName)
	}
	return fmt.Sprintf("%s is live now: %s", actorName, entityTitle)
}

func NewVODMessage(actorName, entityTitle string) string {
	if entityTitle == "" {
		return fmt.Sprintf("%s published a new video", actorName)
	}
	return fmt.Sprintf("%s published a new video: %s", actorName, entityTitle)
}

func NewFollowerMessage(actorName, entityTitle string) string {
	return fmt.Sprintf("%s started following you", actorName)
}
