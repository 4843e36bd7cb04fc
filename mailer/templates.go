// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import "fmt"

// Invitation is the email sent to each enrolled voter of a private poll.
// closingLabel may be empty when the poll has no closing datetime.
func Invitation(to, title, voteURL, closingLabel string) Message {
	body := fmt.Sprintf(
		"You are invited to participate in the poll: %s\n\nVote here: %s\n", title, voteURL)
	if closingLabel != "" {
		body += fmt.Sprintf("\nThe poll closes on %s.\n", closingLabel)
	}
	return Message{
		To:       to,
		Subject:  fmt.Sprintf("Participate in the poll: %s", title),
		TextBody: body,
		Tag:      "invitation",
	}
}

// PollCreatedNotice is sent to the configured admin address whenever a new
// poll appears.
func PollCreatedNotice(to, title, adminURL string) Message {
	return Message{
		To:      to,
		Subject: "New Poll Created",
		TextBody: fmt.Sprintf(
			"A new poll %q has been created.\n\nAdmin: %s\n", title, adminURL),
		Tag: "admin-poll-created",
	}
}

// RegeneratedLink is sent after a voter's voting link is rotated: the old
// link no longer works.
func RegeneratedLink(to, title, voteURL string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("New voting link for the poll: %s", title),
		TextBody: fmt.Sprintf(
			"Your voting link for the poll %q has been regenerated. Any previous link no longer works.\n\nVote here: %s\n",
			title, voteURL),
		Tag: "regenerated-link",
	}
}
