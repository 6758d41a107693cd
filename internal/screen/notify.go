package screen

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient message shown once to the user.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives the success and failure messages of screen actions.
type Notifier interface {
	Notify(n Notice)
}

type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

// Collector keeps notices until they are drained, e.g. into a response body.
type Collector struct {
	mu    sync.Mutex
	items []Notice
}

func (c *Collector) Notify(n Notice) {
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}

// Drain returns the collected notices and empties the collector.
func (c *Collector) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

func success(n Notifier, msg string) { n.Notify(Notice{Level: LevelSuccess, Message: msg}) }
func failure(n Notifier, msg string) { n.Notify(Notice{Level: LevelError, Message: msg}) }

// Peek returns a copy of the collected notices without draining them.
func (c *Collector) Peek() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notice(nil), c.items...)
}
