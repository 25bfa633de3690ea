package handler

import (
	tele "gopkg.in/telebot.v3"
)

// Main menu reply-keyboard buttons
var (
	btnProducts     = tele.Btn{Text: "📦 Товары"}
	btnContacts     = tele.Btn{Text: "📞 Контакты"}
	btnFeedbackMenu = tele.Btn{Text: "✉️ Обратная связь"}
	btnAdminPanel   = tele.Btn{Text: "🛠 Админ панель"}
)

// Admin panel inline buttons
var (
	btnAddProduct    = tele.Btn{Unique: "add_product", Text: "➕ Добавить товар"}
	btnDeleteProduct = tele.Btn{Unique: "delete_product", Text: "➖ Удалить товар"}
	btnAddContact    = tele.Btn{Unique: "add_contact", Text: "➕ Добавить контакт"}
	btnEditContact   = tele.Btn{Unique: "edit_contact", Text: "✏️ Изменить контакт"}
	btnDeleteContact = tele.Btn{Unique: "delete_contact", Text: "➖ Удалить контакт"}
	btnManageMods    = tele.Btn{Unique: "manage_mods", Text: "👤 Управление модераторами"}
	btnAddMod        = tele.Btn{Unique: "add_mod", Text: "➕ Назначить модератора"}
	btnRemoveMod     = tele.Btn{Unique: "remove_mod", Text: "➖ Удалить модератора"}
	btnReply         = tele.Btn{Unique: "reply", Text: "Ответить"}
)

// Contact edit field labels, sent as plain text from a reply keyboard
const (
	labelEditName  = "Название"
	labelEditValue = "Значение"
)

// mainMenuMarkup returns the role-aware main menu keyboard
func (h *Handler) mainMenuMarkup(userID int64) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	rows := []tele.Row{
		menu.Row(btnProducts, btnContacts),
		menu.Row(btnFeedbackMenu),
	}
	if h.roles.Resolve(userID).AdminTier() {
		rows = append(rows, menu.Row(btnAdminPanel))
	}

	menu.Reply(rows...)
	return menu
}

// adminPanelMarkup returns the admin panel inline keyboard
func (h *Handler) adminPanelMarkup(userID int64) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	rows := []tele.Row{
		markup.Row(btnAddProduct),
		markup.Row(btnDeleteProduct),
		markup.Row(btnAddContact),
		markup.Row(btnEditContact),
		markup.Row(btnDeleteContact),
	}
	if h.roles.Resolve(userID).IsOwner() {
		rows = append(rows, markup.Row(btnManageMods))
	}

	markup.Inline(rows...)
	return markup
}

// manageModsMarkup returns the moderator management inline keyboard
func manageModsMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnAddMod),
		markup.Row(btnRemoveMod),
	)
	return markup
}

// editFieldMarkup returns the two-label reply keyboard offered when
// an admin chooses which contact field to change
func editFieldMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(labelEditName), menu.Text(labelEditValue)),
	)
	return menu
}
