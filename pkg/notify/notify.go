// Package notify surfaces user-facing notices (load failures, informational
// messages) raised by the tree.
package notify

import (
	"time"

	"go.uber.org/zap"

	"github.com/dbnav/object-browser/pkg/event"
)

const (
	EventSuccess = "notify:success"
	EventError   = "notify:error"
	EventInfo    = "notify:info"
)

type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string, timeout time.Duration)
}

// Notice is the payload published on the event bus for every notification.
type Notice struct {
	Level   string        `json:"level"`
	Message string        `json:"message"`
	Timeout time.Duration `json:"timeout,omitempty"`
}

// LogNotifier logs notices and, when a bus is set, republishes them so that
// clients subscribed to notify:* events can display them.
type LogNotifier struct {
	bus *event.Bus
}

func NewLogNotifier(bus *event.Bus) *LogNotifier {
	return &LogNotifier{bus: bus}
}

func (n *LogNotifier) Success(message string) {
	zap.S().Named("notify").Infow(message, "level", "success")
	n.publish(EventSuccess, Notice{Level: "success", Message: message})
}

func (n *LogNotifier) Error(message string) {
	zap.S().Named("notify").Errorw(message, "level", "error")
	n.publish(EventError, Notice{Level: "error", Message: message})
}

func (n *LogNotifier) Info(message string, timeout time.Duration) {
	zap.S().Named("notify").Infow(message, "level", "info", "timeout", timeout)
	n.publish(EventInfo, Notice{Level: "info", Message: message, Timeout: timeout})
}

func (n *LogNotifier) publish(name string, notice Notice) {
	if n.bus == nil {
		return
	}
	n.bus.Publish(event.Event{Name: name, Data: notice})
}
