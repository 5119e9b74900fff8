// Package assistant maps user messages to canned replies by keyword
// matching. There is no external knowledge source and no state.
package assistant

import (
	"strings"
	"time"
)

const defaultReply = "I'm your AI assistant. How can I help you?"

// rule pairs a keyword group with its reply. Rules are checked in order and
// the first match wins, so "hello, what's the weather" gets the weather
// reply.
type rule struct {
	keywords []string
	reply    func(now time.Time) string
}

func fixed(text string) func(time.Time) string {
	return func(time.Time) string { return text }
}

var rules = []rule{
	{[]string{"weather"}, fixed("It's sunny with a high of 75°F. Perfect for a walk!")},
	{[]string{"time"}, func(now time.Time) string {
		return "The current time is " + now.Format("3:04:05 PM")
	}},
	{[]string{"remind", "schedule"}, fixed("You have a meeting at 2 PM and a dentist appointment at 4 PM.")},
	{[]string{"music"}, fixed("Playing your 'Relaxing Vibes' playlist on Spotify.")},
	{[]string{"news"}, fixed("Here are the top headlines for today...")},
	{[]string{"hello", "hi"}, fixed("Hello! How can I assist you today?")},
	{[]string{"thank"}, fixed("You're welcome! Is there anything else I can help with?")},
}

// Respond returns the canned reply for a message. Matching is a
// case-insensitive substring check against each rule's keywords; the time
// reply embeds the given clock reading.
func Respond(message string, now time.Time) string {
	lowered := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.reply(now)
			}
		}
	}
	return defaultReply
}
