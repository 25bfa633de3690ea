package domain

// StateTag identifies how the next text message from a user is
// interpreted. One active tag per user, overwritten on every
// transition; an absent entry means StateDefault.
type StateTag string

const (
	StateDefault            StateTag = "default"
	StateFeedback           StateTag = "feedback"
	StateAddProductName     StateTag = "add_product_name"
	StateAddProductDesc     StateTag = "add_product_desc"
	StateDeleteProductIndex StateTag = "delete_product_index"
	StateAddContactName     StateTag = "add_contact_name"
	StateAddContactValue    StateTag = "add_contact_value"
	StateEditContactSelect  StateTag = "edit_contact_select"
	StateEditContactField   StateTag = "edit_contact_field"
	StateEditContactValue   StateTag = "edit_contact_value"
	StateDeleteContactIndex StateTag = "delete_contact_index"
	StateAddMod             StateTag = "add_mod"
	StateRemoveMod          StateTag = "remove_mod"
	StateAdminPanel         StateTag = "admin_panel"
	StateReplying           StateTag = "replying"
)

// AllStateTags lists every conversation state the bot can be in.
// Used to check that the dispatch table is exhaustive.
var AllStateTags = []StateTag{
	StateDefault,
	StateFeedback,
	StateAddProductName,
	StateAddProductDesc,
	StateDeleteProductIndex,
	StateAddContactName,
	StateAddContactValue,
	StateEditContactSelect,
	StateEditContactField,
	StateEditContactValue,
	StateDeleteContactIndex,
	StateAddMod,
	StateRemoveMod,
	StateAdminPanel,
	StateReplying,
}

// InputBuffer holds partial input collected during a multi-step
// entry: a product/contact name awaiting its second half, the
// selected contact index and field during an edit, or the feedback
// position an admin is replying to.
type InputBuffer struct {
	Name  string
	Index int
	Field string
}
