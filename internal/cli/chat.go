package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/medxscan/internal/models"
)

// Chat runs an interactive question/answer loop with the assistant. The
// transcript lives in memory for the session; failed exchanges are kept in
// it as error entries so the history stays complete.
func (a *App) Chat(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	fmt.Fprintln(a.out, "Chat with the assistant (empty question to finish)")

	for {
		question, err := getSimpleText(a.reader, "Your question", a.out)
		if err != nil {
			return err
		}
		if question == "" {
			return nil
		}

		msg, err := a.chat.Ask(ctx, question, a.chatContext(ctx))
		if err != nil {
			msg = &models.ChatMessage{Question: question, Err: err.Error()}
			fmt.Fprintf(a.out, "Assistant unavailable: %v\n", err)
		} else {
			fmt.Fprintf(a.out, "Assistant: %s\n", msg.Answer)
		}
		a.transcript = append(a.transcript, *msg)
	}
}

// chatContext summarizes the user's latest analysis so the assistant can
// answer in context. Empty when there is no history yet.
func (a *App) chatContext(ctx context.Context) string {
	rows, err := a.source.List(ctx, a.user.ID)
	if err != nil || len(rows) == 0 {
		return ""
	}
	latest := rows[0]
	return fmt.Sprintf("latest %s x-ray: %s",
		latest.XRayType, strings.Join(latest.DetectedConditions, ", "))
}
