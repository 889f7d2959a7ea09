package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/staykeep/staykeep/internal/domain"
)

// TelegramNotifier delivers messages through the Telegram Bot API. Users
// without a linked Telegram ID are skipped silently.
type TelegramNotifier struct {
	token  string
	client *http.Client
}

// NewTelegramNotifier creates a TelegramNotifier for the given bot token.
func NewTelegramNotifier(token string) *TelegramNotifier {
	return &TelegramNotifier{
		token:  token,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// NotifyUser sends a plain-text message to the user's Telegram chat.
func (n *TelegramNotifier) NotifyUser(ctx context.Context, user *domain.User, message string) error {
	if user.TelegramID == nil {
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID: *user.TelegramID,
		Text:   message,
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage request: %w", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}
