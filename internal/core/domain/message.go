package domain

import "strings"

// Draft is an email draft handed to the mail gateway. Ownership transfers
// to the gateway on submission; the core does not persist drafts.
type Draft struct {
	// To is the recipient address.
	To string

	// Subject is the optional message subject.
	Subject string

	// Body is the draft body, plain text or HTML.
	Body string

	// Attachments are optional attachment references.
	Attachments []string
}

// Message is a short text message handed to the messaging gateway.
type Message struct {
	// To is the recipient address (phone number or handle).
	To string

	// Body is the message text.
	Body string

	// Provider names the delivery provider (e.g. "twilio").
	Provider string
}

// DraftSeparator joins new draft content with the prior sent message.
// New content always precedes prior content.
const DraftSeparator = "<br><hr><br>"

// MergeDraftBody combines a new draft body with the most recent previously
// sent body. Line breaks in the prior body are converted to the
// channel-neutral <br> form; when there is no prior body the new body is
// returned unchanged.
func MergeDraftBody(newBody, priorBody string) string {
	if priorBody == "" {
		return newBody
	}
	prior := strings.ReplaceAll(priorBody, "\r\n", "<br>")
	prior = strings.ReplaceAll(prior, "\n", "<br>")
	return newBody + DraftSeparator + prior
}

// MediaOptions is the parsed option set for media rendering, e.g.
// "autoplay,loop,fullscreen". The default is no options.
type MediaOptions struct {
	Autoplay   bool
	Loop       bool
	Fullscreen bool
	Muted      bool
}

// ParseMediaOptions parses a comma-separated option string. Unknown
// options are ignored so scripts stay forward compatible with richer
// players.
func ParseMediaOptions(s string) MediaOptions {
	var opts MediaOptions
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "autoplay":
			opts.Autoplay = true
		case "loop":
			opts.Loop = true
		case "fullscreen":
			opts.Fullscreen = true
		case "muted":
			opts.Muted = true
		}
	}
	return opts
}
