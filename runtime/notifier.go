package runtime

import (
	"chat-poll/domain"
	"sync"
)

// Notifier keeps one wake channel per chat. Waiters receive the current
// channel, Broadcast closes it so that every waiter wakes at once, and the
// next Wait gets a fresh one. A chat holds a channel only while somebody
// waits on it.
type Notifier struct {
	mu       sync.Mutex
	channels map[domain.ChatID]*waiters
}

type waiters struct {
	ch    chan struct{}
	count int
}

func NewNotifier() *Notifier {
	return &Notifier{channels: make(map[domain.ChatID]*waiters)}
}

// Wait returns the channel closed by the next Broadcast for chatID and a
// leave func the caller runs once it stopped waiting. The channel is
// dropped when its last waiter leaves.
// Callers must obtain it before reading the state they wait on.
func (n *Notifier) Wait(chatID domain.ChatID) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	w, ok := n.channels[chatID]
	if !ok {
		w = &waiters{ch: make(chan struct{})}
		n.channels[chatID] = w
	}
	w.count++

	var once sync.Once
	return w.ch, func() {
		once.Do(func() { n.leave(chatID, w) })
	}
}

func (n *Notifier) leave(chatID domain.ChatID, w *waiters) {
	n.mu.Lock()
	defer n.mu.Unlock()

	w.count--
	if w.count == 0 && n.channels[chatID] == w {
		delete(n.channels, chatID)
	}
}

func (n *Notifier) Broadcast(chatID domain.ChatID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if w, ok := n.channels[chatID]; ok {
		close(w.ch)
		delete(n.channels, chatID)
	}
}

// Waiting reports how many chats currently hold a wake channel.
func (n *Notifier) Waiting() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.channels)
}
