package handler

import (
	"testing"

	"shopbot/internal/domain"
	"shopbot/internal/service"
	"shopbot/internal/state"
	"shopbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID  int64 = 1000
	adminID  int64 = 2000
	modID    int64 = 3000
	memberID int64 = 111
)

type fixture struct {
	handler  *Handler
	api      *testutil.FakeAPI
	states   *state.Store
	catalog  *testutil.MemoryCatalogRepo
	users    *testutil.MemoryUserRepo
	roles    *service.RoleService
	feedback *service.FeedbackService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userRepo := &testutil.MemoryUserRepo{Users: []domain.User{
		testutil.NewTestUser(ownerID, "boss", domain.RoleOwner),
		testutil.NewTestUser(adminID, "alice", domain.RoleAdmin),
		testutil.NewTestUser(modID, "bob", domain.RoleModerator),
		testutil.NewTestUser(memberID, "carol", domain.RoleMember),
	}}

	roles, err := service.NewRoleService(userRepo, ownerID)
	require.NoError(t, err)

	catalogRepo := &testutil.MemoryCatalogRepo{}
	catalog, err := service.NewCatalogService(catalogRepo)
	require.NoError(t, err)

	feedback := service.NewFeedbackService()
	states := state.NewStore()

	h := NewHandler(nil, roles, catalog, feedback, states, testutil.NewTestLogger())
	api := &testutil.FakeAPI{}
	h.api = api

	return &fixture{
		handler:  h,
		api:      api,
		states:   states,
		catalog:  catalogRepo,
		users:    userRepo,
		roles:    roles,
		feedback: feedback,
	}
}

// Every conversation state must have a dispatch entry, so no text
// message can ever fall through the table unintentionally
func TestDispatchTableIsExhaustive(t *testing.T) {
	f := newFixture(t)

	for _, tag := range domain.AllStateTags {
		assert.Contains(t, f.handler.textHandlers, tag, "missing handler for state %q", tag)
	}
	assert.Len(t, f.handler.textHandlers, len(domain.AllStateTags))
}

func TestHandleStart_ResetsStateAndShowsMenu(t *testing.T) {
	f := newFixture(t)
	f.states.Set(memberID, domain.StateAddProductName)

	c := testutil.NewFakeContext(memberID, "carol", "/start")
	assert.NoError(t, f.handler.handleStart(c))

	assert.Equal(t, domain.StateDefault, f.states.Get(memberID))
	require.Len(t, c.Sent, 1)
	assert.Equal(t, "Выберите действие:", c.Sent[0])
}

func TestHandleProducts_EmptyList(t *testing.T) {
	f := newFixture(t)
	f.states.Set(memberID, domain.StateFeedback)

	c := testutil.NewFakeContext(memberID, "carol", "📦 Товары")
	assert.NoError(t, f.handler.handleProducts(c))

	assert.Equal(t, []string{"Товары пока не добавлены."}, c.Sent)
	// The menu action forces a state reset
	assert.Equal(t, domain.StateDefault, f.states.Get(memberID))
}

func TestHandleProducts_NumbersMatchPositions(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.handler.catalog.AddProduct("Widget", "A fine widget"))
	require.NoError(t, f.handler.catalog.AddProduct("Gadget", "A finer gadget"))

	c := testutil.NewFakeContext(memberID, "carol", "📦 Товары")
	assert.NoError(t, f.handler.handleProducts(c))

	assert.Equal(t, []string{
		"1. Widget — A fine widget",
		"2. Gadget — A finer gadget",
	}, c.Sent)
}

func TestHandleContacts_EmptyList(t *testing.T) {
	f := newFixture(t)

	c := testutil.NewFakeContext(memberID, "carol", "📞 Контакты")
	assert.NoError(t, f.handler.handleContacts(c))

	assert.Equal(t, []string{"Контакты пока не добавлены."}, c.Sent)
}

func TestRouteDefault_UnknownTextIsIgnored(t *testing.T) {
	f := newFixture(t)

	c := testutil.NewFakeContext(memberID, "carol", "hello there")
	assert.NoError(t, f.handler.handleText(c))

	assert.Empty(t, c.Sent)
	assert.Equal(t, domain.StateDefault, f.states.Get(memberID))
}

func TestAddProductFlow(t *testing.T) {
	f := newFixture(t)

	// Admin presses the add-product button
	press := testutil.NewFakeCallback(adminID, "alice", "")
	assert.NoError(t, f.handler.onAddProduct(press))
	assert.True(t, press.Responded)
	assert.Equal(t, []string{"Введите название товара:"}, press.Sent)
	assert.Equal(t, domain.StateAddProductName, f.states.Get(adminID))

	// Name arrives
	name := testutil.NewFakeContext(adminID, "alice", "Widget")
	assert.NoError(t, f.handler.handleText(name))
	assert.Equal(t, []string{"Введите описание товара:"}, name.Sent)
	assert.Equal(t, domain.StateAddProductDesc, f.states.Get(adminID))

	// Description completes the entry
	desc := testutil.NewFakeContext(adminID, "alice", "A fine widget")
	assert.NoError(t, f.handler.handleText(desc))
	assert.Equal(t, []string{"Товар добавлен."}, desc.Sent)
	assert.Equal(t, domain.StateDefault, f.states.Get(adminID))
	assert.Equal(t, domain.InputBuffer{}, f.states.Buffer(adminID))

	assert.Equal(t, []domain.Product{{Name: "Widget", Description: "A fine widget"}}, f.catalog.Products)
	assert.Equal(t, 1, f.catalog.ProductSaves)
}

func TestDeleteProductFlow_InvalidIndexRetries(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.handler.catalog.AddProduct("Widget", "a"))
	f.catalog.ProductSaves = 0

	press := testutil.NewFakeCallback(adminID, "alice", "")
	assert.NoError(t, f.handler.onDeleteProduct(press))
	assert.Equal(t, domain.StateDeleteProductIndex, f.states.Get(adminID))

	// Out-of-range input keeps the state and the collection untouched
	bad := testutil.NewFakeContext(adminID, "alice", "5")
	assert.NoError(t, f.handler.handleText(bad))
	assert.Equal(t, []string{"Неверный номер товара."}, bad.Sent)
	assert.Equal(t, domain.StateDeleteProductIndex, f.states.Get(adminID))
	assert.Equal(t, 0, f.catalog.ProductSaves)

	// Non-numeric input too
	garbage := testutil.NewFakeContext(adminID, "alice", "first")
	assert.NoError(t, f.handler.handleText(garbage))
	assert.Equal(t, []string{"Неверный номер товара."}, garbage.Sent)
	assert.Equal(t, domain.StateDeleteProductIndex, f.states.Get(adminID))

	// A valid retry completes the deletion
	good := testutil.NewFakeContext(adminID, "alice", "1")
	assert.NoError(t, f.handler.handleText(good))
	assert.Equal(t, []string{`Товар "Widget" удалён.`}, good.Sent)
	assert.Equal(t, domain.StateDefault, f.states.Get(adminID))
	assert.Empty(t, f.catalog.Products)
	assert.Equal(t, 1, f.catalog.ProductSaves)
}

func TestAddContactFlow(t *testing.T) {
	f := newFixture(t)

	press := testutil.NewFakeCallback(adminID, "alice", "")
	assert.NoError(t, f.handler.onAddContact(press))
	assert.Equal(t, domain.StateAddContactName, f.states.Get(adminID))

	name := testutil.NewFakeContext(adminID, "alice", "Support")
	assert.NoError(t, f.handler.handleText(name))
	assert.Equal(t, []string{"Введите значение контакта:"}, name.Sent)

	value := testutil.NewFakeContext(adminID, "alice", "support@x.com")
	assert.NoError(t, f.handler.handleText(value))
	assert.Equal(t, []string{"Контакт добавлен."}, value.Sent)

	assert.Equal(t, []domain.Contact{{Name: "Support", Value: "support@x.com"}}, f.catalog.Contacts)
	assert.Equal(t, 1, f.catalog.ContactSaves)
	assert.Equal(t, domain.StateDefault, f.states.Get(adminID))
	assert.Equal(t, domain.InputBuffer{}, f.states.Buffer(adminID))
}

func TestEditContactFlow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.handler.catalog.AddContact("Support", "support@x.com"))
	f.catalog.ContactSaves = 0

	press := testutil.NewFakeCallback(ownerID, "boss", "")
	assert.NoError(t, f.handler.onEditContact(press))
	assert.Equal(t, domain.StateEditContactSelect, f.states.Get(ownerID))

	// Invalid index keeps the selection state
	bad := testutil.NewFakeContext(ownerID, "boss", "7")
	assert.NoError(t, f.handler.handleText(bad))
	assert.Equal(t, []string{"Неверный номер контакта."}, bad.Sent)
	assert.Equal(t, domain.StateEditContactSelect, f.states.Get(ownerID))

	sel := testutil.NewFakeContext(ownerID, "boss", "1")
	assert.NoError(t, f.handler.handleText(sel))
	assert.Equal(t, []string{"Что изменить?"}, sel.Sent)
	assert.Equal(t, domain.StateEditContactField, f.states.Get(ownerID))

	// Unknown label re-prompts without changing state
	wrong := testutil.NewFakeContext(ownerID, "boss", "цвет")
	assert.NoError(t, f.handler.handleText(wrong))
	assert.Equal(t, []string{"Выберите: Название или Значение."}, wrong.Sent)
	assert.Equal(t, domain.StateEditContactField, f.states.Get(ownerID))

	field := testutil.NewFakeContext(ownerID, "boss", "Значение")
	assert.NoError(t, f.handler.handleText(field))
	assert.Equal(t, []string{"Введите новое значение:"}, field.Sent)
	assert.Equal(t, domain.StateEditContactValue, f.states.Get(ownerID))

	value := testutil.NewFakeContext(ownerID, "boss", "help@x.com")
	assert.NoError(t, f.handler.handleText(value))
	assert.Equal(t, []string{"Контакт обновлён."}, value.Sent)
	assert.Equal(t, domain.StateDefault, f.states.Get(ownerID))

	assert.Equal(t, []domain.Contact{{Name: "Support", Value: "help@x.com"}}, f.catalog.Contacts)
	assert.Equal(t, 1, f.catalog.ContactSaves)
}

func TestMemberCannotEnterAdminFlows(t *testing.T) {
	f := newFixture(t)

	press := testutil.NewFakeCallback(memberID, "carol", "")
	assert.NoError(t, f.handler.onAddProduct(press))

	assert.True(t, press.Responded)
	assert.Empty(t, press.Sent)
	assert.Equal(t, domain.StateDefault, f.states.Get(memberID))
}

func TestHandleAdminPanel_MemberIgnored(t *testing.T) {
	f := newFixture(t)

	c := testutil.NewFakeContext(memberID, "carol", "🛠 Админ панель")
	assert.NoError(t, f.handler.handleAdminPanel(c))

	assert.Empty(t, c.Sent)
	assert.Equal(t, domain.StateDefault, f.states.Get(memberID))
}

func TestHandleAdminPanel_AdminEnters(t *testing.T) {
	f := newFixture(t)

	c := testutil.NewFakeContext(adminID, "alice", "🛠 Админ панель")
	assert.NoError(t, f.handler.handleAdminPanel(c))

	assert.Equal(t, []string{"Админ панель:"}, c.Sent)
	assert.Equal(t, domain.StateAdminPanel, f.states.Get(adminID))

	// Plain text in the admin panel falls back to default routing
	stray := testutil.NewFakeContext(adminID, "alice", "hello")
	assert.NoError(t, f.handler.handleText(stray))
	assert.Empty(t, stray.Sent)
}
