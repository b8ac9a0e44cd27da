package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/gildedrose/internal/config"
	"github.com/mamadbah2/gildedrose/internal/domain/models"
	"github.com/mamadbah2/gildedrose/internal/service/commands"
	"github.com/mamadbah2/gildedrose/pkg/clients/anthropic"
	client "github.com/mamadbah2/gildedrose/pkg/clients/whatsapp"
)

// MessagingService describes the operations the HTTP layer and scheduler can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// recentMessageLimit bounds how many inbound message IDs are kept for de-duplication.
const recentMessageLimit = 256

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg        config.WhatsAppConfig
	client     client.Client
	ai         anthropic.Client
	dispatcher commands.Dispatcher
	seen       *recentMessages
	logger     *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. ai may be nil.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, ai anthropic.Client, dispatcher commands.Dispatcher, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:        cfg,
		client:     client,
		ai:         ai,
		dispatcher: dispatcher,
		seen:       newRecentMessages(recentMessageLimit),
		logger:     logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	if s.cfg.ManagerID == "" || msg.From != s.cfg.ManagerID {
		s.logger.Warn("ignoring message from unknown sender", zap.String("from", msg.From))
		return nil
	}

	// Meta delivers at least once; a replayed /advance must not age the stock twice.
	if s.seen.markSeen(msg.ID) {
		s.logger.Info("skipping redelivered message", zap.String("message_id", msg.ID))
		return nil
	}

	text := extractMessageText(msg)
	if text == "" {
		return errors.New("empty message body")
	}

	cmd := s.resolveCommand(ctx, text)

	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Any("args", cmd.Args))

	reply, err := s.dispatcher.HandleCommand(ctx, cmd, msg.From)
	if err != nil {
		s.logger.Warn("command failed", zap.String("command", string(cmd.Type)), zap.Error(err))
		reply = replyForError(err)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:   msg.From,
		Body: reply,
	})
	return err
}

// resolveCommand parses the text and falls back to the AI translator for free text.
// Translated text may only run read-only commands; anything else stays unknown.
func (s *MetaWhatsAppService) resolveCommand(ctx context.Context, text string) models.Command {
	cmd := models.ParseCommand(text)
	if cmd.Type != models.CommandUnknown || s.ai == nil {
		return cmd
	}

	translated, err := s.ai.TranslateToCommand(ctx, text)
	if err != nil {
		s.logger.Debug("ai translation failed", zap.Error(err))
		return cmd
	}

	s.logger.Debug("free text translated", zap.String("input", text), zap.String("command", translated))

	parsed := models.ParseCommand(translated)
	switch parsed.Type {
	case models.CommandStock, models.CommandHelp:
		return parsed
	default:
		s.logger.Info("refusing translated command", zap.String("command", string(parsed.Type)))
		return cmd
	}
}

// SendOutbound lets internal operators and the scheduler push notifications.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}

func replyForError(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidQuality):
		return fmt.Sprintf("Quality must be between %d and %d.", models.MinQuality, models.MaxQuality)
	case errors.Is(err, commands.ErrInvalidArguments):
		return "Usage: /add <sell_in> <quality> <name>"
	case errors.Is(err, commands.ErrUnsupportedCommand):
		return "Unknown command. " + commands.HelpMessage
	default:
		return "Something went wrong, please try again later."
	}
}

func extractMessageText(msg models.InboundMessage) string {
	if msg.Text != nil {
		return msg.Text.Body
	}

	if msg.Interactive != nil {
		if msg.Interactive.ButtonReply != nil {
			return msg.Interactive.ButtonReply.ID
		}
		if msg.Interactive.ListReply != nil {
			return msg.Interactive.ListReply.ID
		}
	}

	return ""
}
