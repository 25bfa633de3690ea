package handler

import (
	"errors"
	"fmt"
	"strconv"

	"shopbot/internal/domain"
	"shopbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleFeedbackMenu enters the feedback state. A user with an
// unanswered item is asked to wait; this guard exists only here,
// not inside the active feedback state.
func (h *Handler) handleFeedbackMenu(c tele.Context) error {
	userID := c.Sender().ID

	if h.feedback.HasPending(userID) {
		return c.Send("Вы уже отправили сообщение. Пожалуйста, дождитесь ответа администрации.")
	}

	h.states.Set(userID, domain.StateFeedback)
	return c.Send("Отправьте ваше сообщение (текст, фото, голосовое, видео или файл):")
}

// submitFeedback records the message and fans out one notification
// per admin-tier user, each with its own reply button. Delivery is
// fire-and-forget: a failed send to one admin never blocks the rest.
func (h *Handler) submitFeedback(c tele.Context) error {
	sender := c.Sender()
	msg := c.Message()

	id := h.feedback.Submit(sender.ID, sender.Username, msg.Chat.ID, msg.ID)
	fb, err := h.feedback.Get(id)
	if err != nil {
		return err
	}

	h.logger.Info("Feedback submitted",
		zap.Int64("user_id", sender.ID),
		zap.Int("feedback_id", id),
	)

	header := fmt.Sprintf(
		"📨 Новое сообщение:\n👤 Пользователь: %s\n🕒 Время: %s\n\nСообщение:",
		senderHandle(sender),
		fb.CreatedAt.Format("02.01.2006 15:04:05"),
	)

	for _, admin := range h.roles.AdminTier() {
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(
			markup.Data(btnReply.Text, btnReply.Unique, strconv.Itoa(id)),
		))

		if _, err := h.api.Send(tele.ChatID(admin.ID), header, markup); err != nil {
			h.logger.Warn("Failed to notify admin",
				zap.Error(err),
				zap.Int64("admin_id", admin.ID),
			)
			continue
		}

		stored := tele.StoredMessage{
			MessageID: strconv.Itoa(fb.MessageID),
			ChatID:    fb.ChatID,
		}
		if _, err := h.api.Copy(tele.ChatID(admin.ID), stored); err != nil {
			h.logger.Warn("Failed to copy feedback message",
				zap.Error(err),
				zap.Int64("admin_id", admin.ID),
			)
		}
	}

	h.states.Reset(sender.ID)
	return c.Send("Ваше сообщение отправлено администрации.")
}

// onReply starts the reply flow from a feedback notification button
func (h *Handler) onReply(c tele.Context) error {
	userID := c.Sender().ID
	if !h.roles.Resolve(userID).AdminTier() {
		return c.Respond()
	}

	id, err := strconv.Atoi(c.Data())
	if err != nil {
		h.logger.Warn("Malformed reply callback data", zap.String("data", c.Data()))
		return c.Respond()
	}

	if _, err := h.feedback.Get(id); err != nil {
		if respErr := c.Respond(); respErr != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(respErr))
		}
		return c.Send("Обращение не найдено.")
	}

	h.states.SetBuffer(userID, domain.InputBuffer{Index: id})
	h.states.Set(userID, domain.StateReplying)

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return c.Send("Введите ответ пользователю:")
}

// handleReplyText delivers the typed reply to the feedback sender.
// The answered flag is not re-checked before delivery: a second
// admin finishing a reply to the same item is still delivered.
func (h *Handler) handleReplyText(c tele.Context) error {
	userID := c.Sender().ID
	buf := h.states.Buffer(userID)

	fb, err := h.feedback.Get(buf.Index)
	if errors.Is(err, service.ErrFeedbackNotFound) {
		h.states.Reset(userID)
		return c.Send("Обращение не найдено.")
	}
	if err != nil {
		return err
	}

	reply := fmt.Sprintf("📬 Ответ администрации:\n\n%s", c.Text())
	if _, err := h.api.Send(tele.ChatID(fb.From), reply); err != nil {
		h.logger.Error("Failed to deliver reply",
			zap.Error(err),
			zap.Int64("recipient_id", fb.From),
			zap.Int("feedback_id", buf.Index),
		)
		h.states.Reset(userID)
		return c.Send("Не удалось доставить ответ.")
	}

	if err := h.feedback.MarkAnswered(buf.Index); err != nil {
		h.logger.Warn("Failed to mark feedback answered", zap.Error(err))
	}

	h.logger.Info("Feedback answered",
		zap.Int64("admin_id", userID),
		zap.Int("feedback_id", buf.Index),
	)

	h.states.Reset(userID)
	return c.Send("Ответ отправлен.")
}

// senderHandle formats a sender as @username or a numeric ID
func senderHandle(u *tele.User) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return strconv.FormatInt(u.ID, 10)
}
