// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const postmarkURL = "https://api.postmarkapp.com/email"

// Postmark sends mail through the Postmark transactional API.
type Postmark struct {
	Token    string
	From     string
	FromName string
	Client   *http.Client
}

func NewPostmark(token, from, fromName string) *Postmark {
	return &Postmark{
		Token:    token,
		From:     from,
		FromName: fromName,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type postmarkRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody"`
	Tag      string `json:"Tag,omitempty"`
}

type postmarkResponse struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

func (m *Postmark) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(postmarkRequest{
		From:     fmt.Sprintf("%s <%s>", m.FromName, m.From),
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		Tag:      msg.Tag,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postmarkURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", m.Token)

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	defer resp.Body.Close()

	var pr postmarkResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return fmt.Errorf("failed to decode postmark response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || pr.ErrorCode != 0 {
		return fmt.Errorf("postmark rejected email to %s: %d %s", msg.To, pr.ErrorCode, pr.Message)
	}
	return nil
}
