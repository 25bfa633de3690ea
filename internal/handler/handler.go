package handler

import (
	"shopbot/internal/domain"
	"shopbot/internal/service"
	"shopbot/internal/state"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// api is the outbound slice of *tele.Bot used for messages sent
// outside the current update (admin broadcasts, reply delivery)
type api interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Copy(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot      *tele.Bot
	api      api
	roles    *service.RoleService
	catalog  *service.CatalogService
	feedback *service.FeedbackService
	states   *state.Store
	logger   *zap.Logger

	// Dispatch table: conversation state tag -> text handler.
	// Exactly one entry fires per text message.
	textHandlers map[domain.StateTag]tele.HandlerFunc
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	roles *service.RoleService,
	catalog *service.CatalogService,
	feedback *service.FeedbackService,
	states *state.Store,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:      bot,
		roles:    roles,
		catalog:  catalog,
		feedback: feedback,
		states:   states,
		logger:   logger,
	}
	if bot != nil {
		h.api = bot
	}

	h.textHandlers = map[domain.StateTag]tele.HandlerFunc{
		domain.StateDefault:            h.routeDefault,
		domain.StateAdminPanel:         h.routeDefault,
		domain.StateFeedback:           h.submitFeedback,
		domain.StateAddProductName:     h.handleAddProductName,
		domain.StateAddProductDesc:     h.handleAddProductDesc,
		domain.StateDeleteProductIndex: h.handleDeleteProductIndex,
		domain.StateAddContactName:     h.handleAddContactName,
		domain.StateAddContactValue:    h.handleAddContactValue,
		domain.StateEditContactSelect:  h.handleEditContactSelect,
		domain.StateEditContactField:   h.handleEditContactField,
		domain.StateEditContactValue:   h.handleEditContactValue,
		domain.StateDeleteContactIndex: h.handleDeleteContactIndex,
		domain.StateAddMod:             h.handleAddMod,
		domain.StateRemoveMod:          h.handleRemoveMod,
		domain.StateReplying:           h.handleReplyText,
	}

	return h
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Main menu reply-keyboard buttons match before OnText,
	// so a menu press always resets an in-progress entry
	h.bot.Handle(&btnProducts, h.handleProducts)
	h.bot.Handle(&btnContacts, h.handleContacts)
	h.bot.Handle(&btnFeedbackMenu, h.handleFeedbackMenu)
	h.bot.Handle(&btnAdminPanel, h.handleAdminPanel)

	// Text messages are dispatched by conversation state
	h.bot.Handle(tele.OnText, h.handleText)

	// Non-text messages only matter for feedback submission
	for _, endpoint := range []string{
		tele.OnPhoto, tele.OnVoice, tele.OnVideo, tele.OnVideoNote,
		tele.OnAudio, tele.OnDocument, tele.OnSticker,
	} {
		h.bot.Handle(endpoint, h.handleMedia)
	}

	// Admin panel inline buttons
	h.bot.Handle(&btnAddProduct, h.onAddProduct)
	h.bot.Handle(&btnDeleteProduct, h.onDeleteProduct)
	h.bot.Handle(&btnAddContact, h.onAddContact)
	h.bot.Handle(&btnEditContact, h.onEditContact)
	h.bot.Handle(&btnDeleteContact, h.onDeleteContact)
	h.bot.Handle(&btnManageMods, h.onManageMods)
	h.bot.Handle(&btnAddMod, h.onAddMod)
	h.bot.Handle(&btnRemoveMod, h.onRemoveMod)
	h.bot.Handle(&btnReply, h.onReply)

	h.bot.Handle(tele.OnCallback, h.handleUnknownCallback)
}

// handleText dispatches a text message through the state table
func (h *Handler) handleText(c tele.Context) error {
	tag := h.states.Get(c.Sender().ID)

	handler, ok := h.textHandlers[tag]
	if !ok {
		h.logger.Warn("No handler for state tag, falling back to default routing",
			zap.String("tag", string(tag)),
			zap.Int64("user_id", c.Sender().ID),
		)
		handler = h.routeDefault
	}
	return handler(c)
}

// handleMedia routes non-text messages: they are only meaningful as
// feedback payloads, everything else expects typed text
func (h *Handler) handleMedia(c tele.Context) error {
	if h.states.Get(c.Sender().ID) == domain.StateFeedback {
		return h.submitFeedback(c)
	}
	return nil
}

// routeDefault handles text that is not part of any active entry
func (h *Handler) routeDefault(c tele.Context) error {
	switch c.Text() {
	case btnProducts.Text:
		return h.handleProducts(c)
	case btnContacts.Text:
		return h.handleContacts(c)
	case btnFeedbackMenu.Text:
		return h.handleFeedbackMenu(c)
	case btnAdminPanel.Text:
		return h.handleAdminPanel(c)
	}
	return nil
}

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.states.Reset(userID)
	return c.Send("Выберите действие:", h.mainMenuMarkup(userID))
}
