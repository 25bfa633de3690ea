package handler

import (
	"errors"
	"fmt"
	"strings"

	"shopbot/internal/domain"
	"shopbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleAdminPanel shows the admin panel to admin-tier users.
// Everyone else is silently ignored, like any unknown text.
func (h *Handler) handleAdminPanel(c tele.Context) error {
	userID := c.Sender().ID
	if !h.roles.Resolve(userID).AdminTier() {
		return nil
	}

	h.states.Set(userID, domain.StateAdminPanel)
	return c.Send("Админ панель:", h.adminPanelMarkup(userID))
}

// Entry callbacks: each one forces a transition from wherever the
// admin was into the first state of the corresponding flow.

func (h *Handler) onAddProduct(c tele.Context) error {
	return h.enterState(c, domain.StateAddProductName, "Введите название товара:")
}

func (h *Handler) onDeleteProduct(c tele.Context) error {
	return h.enterState(c, domain.StateDeleteProductIndex, "Введите номер товара для удаления:")
}

func (h *Handler) onAddContact(c tele.Context) error {
	return h.enterState(c, domain.StateAddContactName, "Введите имя контакта:")
}

func (h *Handler) onEditContact(c tele.Context) error {
	return h.enterState(c, domain.StateEditContactSelect, "Введите номер контакта для изменения:")
}

func (h *Handler) onDeleteContact(c tele.Context) error {
	return h.enterState(c, domain.StateDeleteContactIndex, "Введите номер контакта для удаления:")
}

// onManageMods shows the moderator list (owner only)
func (h *Handler) onManageMods(c tele.Context) error {
	userID := c.Sender().ID
	if !h.roles.Resolve(userID).IsOwner() {
		return c.Respond()
	}

	var b strings.Builder
	b.WriteString("👥 Список модераторов:\n")
	for i, m := range h.roles.Moderators() {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, m.Handle()))
	}

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return c.Send(b.String(), manageModsMarkup())
}

func (h *Handler) onAddMod(c tele.Context) error {
	if !h.roles.Resolve(c.Sender().ID).IsOwner() {
		return c.Respond()
	}
	return h.enterState(c, domain.StateAddMod, "Введите ID пользователя для назначения модератором:")
}

func (h *Handler) onRemoveMod(c tele.Context) error {
	if !h.roles.Resolve(c.Sender().ID).IsOwner() {
		return c.Respond()
	}
	return h.enterState(c, domain.StateRemoveMod, "Введите ID модератора для удаления:")
}

// handleAddMod promotes the typed identity to moderator.
// Unknown identity keeps the owner in the same state for a retry.
func (h *Handler) handleAddMod(c tele.Context) error {
	userID := c.Sender().ID

	promoted, err := h.roles.Promote(c.Text())
	if errors.Is(err, service.ErrUserNotFound) {
		return c.Send("Пользователь не найден.")
	}
	if err != nil {
		h.logger.Error("Failed to promote moderator", zap.Error(err), zap.Int64("user_id", userID))
		h.states.Reset(userID)
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.logger.Info("Moderator assigned",
		zap.Int64("owner_id", userID),
		zap.Int64("moderator_id", promoted.ID),
	)

	h.states.Reset(userID)
	return c.Send("Модератор назначен.")
}

// handleRemoveMod demotes the typed identity back to member
func (h *Handler) handleRemoveMod(c tele.Context) error {
	userID := c.Sender().ID

	demoted, err := h.roles.Demote(c.Text())
	if errors.Is(err, service.ErrModeratorNotFound) {
		return c.Send("Модератор не найден.")
	}
	if err != nil {
		h.logger.Error("Failed to demote moderator", zap.Error(err), zap.Int64("user_id", userID))
		h.states.Reset(userID)
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.logger.Info("Moderator removed",
		zap.Int64("owner_id", userID),
		zap.Int64("moderator_id", demoted.ID),
	)

	h.states.Reset(userID)
	return c.Send("Модератор удалён.")
}

// enterState moves an admin-tier user into an entry state and prompts
func (h *Handler) enterState(c tele.Context, tag domain.StateTag, prompt string) error {
	userID := c.Sender().ID
	if !h.roles.Resolve(userID).AdminTier() {
		return c.Respond()
	}

	h.states.ClearBuffer(userID)
	h.states.Set(userID, tag)

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return c.Send(prompt)
}

// handleUnknownCallback acknowledges callbacks nothing else matched
func (h *Handler) handleUnknownCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}
	h.logger.Warn("Unhandled callback",
		zap.String("data", callback.Data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)
	return c.Respond()
}
