package handler

import (
	"errors"
	"fmt"

	"shopbot/internal/domain"
	"shopbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleProducts shows the product list, one message per item
func (h *Handler) handleProducts(c tele.Context) error {
	h.states.Reset(c.Sender().ID)

	products := h.catalog.Products()
	if len(products) == 0 {
		return c.Send("Товары пока не добавлены.")
	}

	for i, p := range products {
		if err := c.Send(fmt.Sprintf("%d. %s — %s", i+1, p.Name, p.Description)); err != nil {
			h.logger.Warn("Failed to send product entry", zap.Error(err))
		}
	}
	return nil
}

// handleContacts shows the contact list, one message per item
func (h *Handler) handleContacts(c tele.Context) error {
	h.states.Reset(c.Sender().ID)

	contacts := h.catalog.Contacts()
	if len(contacts) == 0 {
		return c.Send("Контакты пока не добавлены.")
	}

	for i, ct := range contacts {
		if err := c.Send(fmt.Sprintf("%d. %s: %s", i+1, ct.Name, ct.Value)); err != nil {
			h.logger.Warn("Failed to send contact entry", zap.Error(err))
		}
	}
	return nil
}

// handleAddProductName buffers the typed name and asks for a description
func (h *Handler) handleAddProductName(c tele.Context) error {
	userID := c.Sender().ID

	h.states.SetBuffer(userID, domain.InputBuffer{Name: c.Text()})
	h.states.Set(userID, domain.StateAddProductDesc)
	return c.Send("Введите описание товара:")
}

// handleAddProductDesc completes the two-step product entry
func (h *Handler) handleAddProductDesc(c tele.Context) error {
	userID := c.Sender().ID
	buf := h.states.Buffer(userID)

	if err := h.catalog.AddProduct(buf.Name, c.Text()); err != nil {
		h.logger.Error("Failed to add product", zap.Error(err), zap.Int64("user_id", userID))
		h.states.Reset(userID)
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.logger.Info("Product added",
		zap.Int64("user_id", userID),
		zap.String("name", buf.Name),
	)

	h.states.Reset(userID)
	return c.Send("Товар добавлен.")
}

// handleDeleteProductIndex removes the product at the typed position.
// Invalid input keeps the user in the same state for another attempt.
func (h *Handler) handleDeleteProductIndex(c tele.Context) error {
	userID := c.Sender().ID

	removed, err := h.catalog.DeleteProduct(c.Text())
	if errors.Is(err, service.ErrInvalidIndex) {
		return c.Send("Неверный номер товара.")
	}
	if err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err), zap.Int64("user_id", userID))
		h.states.Reset(userID)
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.states.Reset(userID)
	return c.Send(fmt.Sprintf("Товар %q удалён.", removed.Name))
}

// handleAddContactName buffers the typed name and asks for a value
func (h *Handler) handleAddContactName(c tele.Context) error {
	userID := c.Sender().ID

	h.states.SetBuffer(userID, domain.InputBuffer{Name: c.Text()})
	h.states.Set(userID, domain.StateAddContactValue)
	return c.Send("Введите значение контакта:")
}

// handleAddContactValue completes the two-step contact entry
func (h *Handler) handleAddContactValue(c tele.Context) error {
	userID := c.Sender().ID
	buf := h.states.Buffer(userID)

	if err := h.catalog.AddContact(buf.Name, c.Text()); err != nil {
		h.logger.Error("Failed to add contact", zap.Error(err), zap.Int64("user_id", userID))
		h.states.Reset(userID)
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.states.Reset(userID)
	return c.Send("Контакт добавлен.")
}

// handleDeleteContactIndex removes the contact at the typed position
func (h *Handler) handleDeleteContactIndex(c tele.Context) error {
	userID := c.Sender().ID

	removed, err := h.catalog.DeleteContact(c.Text())
	if errors.Is(err, service.ErrInvalidIndex) {
		return c.Send("Неверный номер контакта.")
	}
	if err != nil {
		h.logger.Error("Failed to delete contact", zap.Error(err), zap.Int64("user_id", userID))
		h.states.Reset(userID)
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.states.Reset(userID)
	return c.Send(fmt.Sprintf("Контакт %q удалён.", removed.Name))
}

// handleEditContactSelect validates the typed contact position and
// asks which field to change
func (h *Handler) handleEditContactSelect(c tele.Context) error {
	userID := c.Sender().ID

	index, err := h.catalog.ResolveContactIndex(c.Text())
	if err != nil {
		return c.Send("Неверный номер контакта.")
	}

	h.states.SetBuffer(userID, domain.InputBuffer{Index: index})
	h.states.Set(userID, domain.StateEditContactField)
	return c.Send("Что изменить?", editFieldMarkup())
}

// handleEditContactField maps the pressed label to a contact field
func (h *Handler) handleEditContactField(c tele.Context) error {
	userID := c.Sender().ID

	var field string
	switch c.Text() {
	case labelEditName:
		field = domain.ContactFieldName
	case labelEditValue:
		field = domain.ContactFieldValue
	default:
		return c.Send("Выберите: Название или Значение.")
	}

	buf := h.states.Buffer(userID)
	buf.Field = field
	h.states.SetBuffer(userID, buf)
	h.states.Set(userID, domain.StateEditContactValue)
	return c.Send("Введите новое значение:")
}

// handleEditContactValue writes the new field value
func (h *Handler) handleEditContactValue(c tele.Context) error {
	userID := c.Sender().ID
	buf := h.states.Buffer(userID)

	err := h.catalog.UpdateContact(buf.Index, buf.Field, c.Text())
	h.states.Reset(userID)

	if errors.Is(err, service.ErrInvalidIndex) {
		// The contact was deleted while the edit was in progress
		return c.Send("Неверный номер контакта.", h.mainMenuMarkup(userID))
	}
	if err != nil {
		h.logger.Error("Failed to update contact", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Произошла ошибка. Попробуйте позже.", h.mainMenuMarkup(userID))
	}

	return c.Send("Контакт обновлён.", h.mainMenuMarkup(userID))
}
