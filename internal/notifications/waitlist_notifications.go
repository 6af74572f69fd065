package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/9ssi7/exponent"
	"go.uber.org/zap"

	"squeedr/internal/domain/pushtokens"
	"squeedr/internal/domain/waitlist"
	"squeedr/internal/mailer"
)

// WaitlistNotifier implements waitlist.Notifier over push + email. Both
// channels are best effort; an error here never blocks a transition.
type WaitlistNotifier struct {
	push   PushSender
	tokens pushtokens.Store
	mailer mailer.Client
	logger *zap.SugaredLogger
}

func NewWaitlistNotifier(push PushSender, tokens pushtokens.Store, mailClient mailer.Client, logger *zap.SugaredLogger) *WaitlistNotifier {
	return &WaitlistNotifier{push: push, tokens: tokens, mailer: mailClient, logger: logger}
}

var _ waitlist.Notifier = (*WaitlistNotifier)(nil)

func (n *WaitlistNotifier) OfferCreated(ctx context.Context, req *waitlist.Request) error {
	title := "Your workspace slot is available"
	body := fmt.Sprintf("%s is free on %s from %s to %s. Claim it before %s.",
		req.WorkspaceName,
		req.Start.Format("Jan 2"),
		req.Start.Format("15:04"),
		req.End.Format("15:04"),
		req.ExpiresAt.Format("15:04"),
	)

	pushErr := n.sendPush(ctx, req, "offer", title, body)

	var mailErr error
	if n.mailer != nil {
		vars := struct {
			Username      string
			WorkspaceName string
			Start         string
			End           string
			ExpiresAt     string
		}{
			Username:      req.UserName,
			WorkspaceName: req.WorkspaceName,
			Start:         req.Start.Format(time.RFC1123),
			End:           req.End.Format("15:04"),
			ExpiresAt:     req.ExpiresAt.Format(time.RFC1123),
		}
		if _, err := n.mailer.Send(mailer.WaitlistOfferTemplate, req.UserName, req.UserEmail, vars); err != nil {
			mailErr = err
			n.logger.Warnw("waitlist offer email failed", "request_id", req.ID, "email", req.UserEmail, "error", err)
		}
	}

	if pushErr != nil && mailErr != nil {
		return fmt.Errorf("all notification channels failed: push: %v, mail: %v", pushErr, mailErr)
	}
	return nil
}

func (n *WaitlistNotifier) OfferExpired(ctx context.Context, req *waitlist.Request) error {
	title := "Your workspace offer expired"
	body := fmt.Sprintf("The held slot at %s (%s–%s) was released because it wasn't claimed in time.",
		req.WorkspaceName,
		req.Start.Format("15:04"),
		req.End.Format("15:04"),
	)
	return n.sendPush(ctx, req, "expired", title, body)
}

func (n *WaitlistNotifier) sendPush(ctx context.Context, req *waitlist.Request, event, title, body string) error {
	if n.push == nil || n.tokens == nil {
		return nil
	}

	tokensMap, err := n.tokens.GetTokensByUserIDs(ctx, []int64{req.UserID})
	if err != nil {
		return err
	}
	tokens := tokensMap[req.UserID]
	if len(tokens) == 0 {
		return fmt.Errorf("no push tokens for user %d", req.UserID)
	}

	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":      "waitlist",
				"event":     event,
				"requestId": req.ID,
				"screen":    "waitlist-screen",
			},
		})
	}

	if _, err := n.push.Publish(ctx, msgs); err != nil {
		return err
	}
	return nil
}
