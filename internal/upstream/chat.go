package upstream

import (
	"context"
	"net/http"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (c *Client) Chat(ctx context.Context, message string) (*domain.ChatReply, error) {
	var reply domain.ChatReply
	if err := c.do(ctx, http.MethodPost, "/api/chat", nil, chatRequest{Message: message}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
