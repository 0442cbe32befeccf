// Package notify delivers fire-and-forget user notifications. Nothing a
// notifier does is observed by the caller.
package notify

import "github.com/rs/zerolog/log"

// Notifier receives success and failure messages meant for the user
type Notifier interface {
	NotifySuccess(message string)
	NotifyFailure(message string)
}

// Message kinds sent to clients
const (
	KindSuccess = "success"
	KindFailure = "failure"
)

// LogNotifier writes notifications to the application log
type LogNotifier struct{}

func (LogNotifier) NotifySuccess(message string) {
	log.Info().Str("kind", KindSuccess).Msg(message)
}

func (LogNotifier) NotifyFailure(message string) {
	log.Warn().Str("kind", KindFailure).Msg(message)
}

// Nop drops every notification
type Nop struct{}

func (Nop) NotifySuccess(string) {}
func (Nop) NotifyFailure(string) {}

// Multi fans a notification out to several notifiers
type Multi []Notifier

func (m Multi) NotifySuccess(message string) {
	for _, n := range m {
		n.NotifySuccess(message)
	}
}

func (m Multi) NotifyFailure(message string) {
	for _, n := range m {
		n.NotifyFailure(message)
	}
}
