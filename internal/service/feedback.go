package service

import (
	"fmt"
	"sync"
	"time"

	"shopbot/internal/domain"
)

// ErrFeedbackNotFound is returned when a feedback position does not exist
var ErrFeedbackNotFound = fmt.Errorf("feedback not found")

// FeedbackService keeps the append-only feedback log. Items are never
// reordered or removed, so a position captured at submission stays
// valid for the lifetime of the process. The log is not persisted.
type FeedbackService struct {
	mu    sync.Mutex
	items []domain.Feedback
}

// NewFeedbackService creates an empty feedback log
func NewFeedbackService() *FeedbackService {
	return &FeedbackService{}
}

// Submit appends a feedback item and returns its position
func (s *FeedbackService) Submit(from int64, username string, chatID int64, messageID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, domain.Feedback{
		From:      from,
		Username:  username,
		ChatID:    chatID,
		MessageID: messageID,
		CreatedAt: time.Now(),
	})
	return len(s.items) - 1
}

// Get returns the feedback item at a position
func (s *FeedbackService) Get(id int) (domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= len(s.items) {
		return domain.Feedback{}, ErrFeedbackNotFound
	}
	return s.items[id], nil
}

// HasPending reports whether the user has an unanswered feedback item.
// This guards the menu entry only: a user already in the feedback
// state is never blocked from submitting.
func (s *FeedbackService) HasPending(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.items {
		if f.From == userID && !f.Answered {
			return true
		}
	}
	return false
}

// MarkAnswered flips the answered flag. A second admin completing a
// reply to the same item is accepted; the flag simply stays true.
func (s *FeedbackService) MarkAnswered(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= len(s.items) {
		return ErrFeedbackNotFound
	}
	s.items[id].Answered = true
	return nil
}
