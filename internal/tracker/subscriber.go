// internal/tracker/subscriber.go
package tracker

import "sync"

// Subscriber интерфейс подписчика на обновления состояния
type Subscriber interface {
	OnStateUpdate(state TrackerState)
}

// SubscriberFunc функциональный тип подписчика
type SubscriberFunc func(state TrackerState)

func (f SubscriberFunc) OnStateUpdate(state TrackerState) {
	f(state)
}

// SubscriptionManager управляет подписками на состояние трекера
type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewSubscriptionManager создает нового менеджера подписок
func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make([]Subscriber, 0),
	}
}

// Subscribe подписывает на обновления состояния
func (sm *SubscriptionManager) Subscribe(subscriber Subscriber) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.subscribers = append(sm.subscribers, subscriber)
}

// Unsubscribe отписывает от обновлений состояния.
// Подписчик должен быть сравнимого типа (например, указатель).
func (sm *SubscriptionManager) Unsubscribe(subscriber Subscriber) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for i, sub := range sm.subscribers {
		if sub == subscriber {
			sm.subscribers = append(sm.subscribers[:i], sm.subscribers[i+1:]...)
			break
		}
	}
}

// NotifyAll уведомляет всех подписчиков.
// Вызовы синхронные: подписчики получают состояния в порядке циклов.
func (sm *SubscriptionManager) NotifyAll(state TrackerState) {
	sm.mu.RLock()
	subscribers := make([]Subscriber, len(sm.subscribers))
	copy(subscribers, sm.subscribers)
	sm.mu.RUnlock()

	for _, subscriber := range subscribers {
		subscriber.OnStateUpdate(state)
	}
}

// GetSubscriberCount возвращает количество подписчиков
func (sm *SubscriptionManager) GetSubscriberCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}
