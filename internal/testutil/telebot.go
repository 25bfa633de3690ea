package testutil

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// FakeContext implements the parts of tele.Context that handlers use
// and records everything sent through it. Calling any other method
// of the embedded interface panics, which is fine in tests.
type FakeContext struct {
	tele.Context

	User         *tele.User
	MessageText  string
	CallbackData *tele.Callback

	Sent      []string
	Responded bool
}

// NewFakeContext creates a context for a plain text message
func NewFakeContext(userID int64, username, text string) *FakeContext {
	return &FakeContext{
		User:        &tele.User{ID: userID, Username: username},
		MessageText: text,
	}
}

// NewFakeCallback creates a context for an inline button press
func NewFakeCallback(userID int64, username, data string) *FakeContext {
	return &FakeContext{
		User:         &tele.User{ID: userID, Username: username},
		CallbackData: &tele.Callback{Data: data},
	}
}

func (c *FakeContext) Sender() *tele.User { return c.User }

func (c *FakeContext) Text() string { return c.MessageText }

func (c *FakeContext) Message() *tele.Message {
	return &tele.Message{
		ID:     1,
		Sender: c.User,
		Text:   c.MessageText,
		Chat:   &tele.Chat{ID: c.User.ID},
	}
}

func (c *FakeContext) Callback() *tele.Callback { return c.CallbackData }

func (c *FakeContext) Data() string {
	if c.CallbackData != nil {
		return c.CallbackData.Data
	}
	return ""
}

func (c *FakeContext) Send(what interface{}, _ ...interface{}) error {
	c.Sent = append(c.Sent, fmt.Sprint(what))
	return nil
}

func (c *FakeContext) Respond(_ ...*tele.CallbackResponse) error {
	c.Responded = true
	return nil
}

// SentMessage records one outbound API send
type SentMessage struct {
	To   int64
	Text string
}

// FakeAPI records messages sent outside the current update
type FakeAPI struct {
	Messages []SentMessage
	Copies   []int64
	SendErr  error
}

func (a *FakeAPI) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	if a.SendErr != nil {
		return nil, a.SendErr
	}
	id, _ := strconv.ParseInt(to.Recipient(), 10, 64)
	a.Messages = append(a.Messages, SentMessage{To: id, Text: fmt.Sprint(what)})
	return &tele.Message{}, nil
}

func (a *FakeAPI) Copy(to tele.Recipient, _ tele.Editable, _ ...interface{}) (*tele.Message, error) {
	id, _ := strconv.ParseInt(to.Recipient(), 10, 64)
	a.Copies = append(a.Copies, id)
	return &tele.Message{}, nil
}
