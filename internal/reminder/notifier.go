package reminder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"devnotes/internal/clock"
)

// Notifier - граница с сервисом локальных уведомлений ОС
type Notifier interface {
	// RequestPermission запрашивает разрешение; блокируется до ответа пользователя
	RequestPermission(ctx context.Context) (bool, error)

	// PermissionStatus возвращает текущий статус разрешения
	PermissionStatus(ctx context.Context) (Permission, error)

	// ScheduleAlert планирует уведомление; повторный вызов с тем же id заменяет прежнее
	ScheduleAlert(ctx context.Context, id, title, body string, at time.Time) error

	// CancelAlert снимает запланированное уведомление, если оно есть
	CancelAlert(ctx context.Context, id string) error

	// OpenSystemSettings открывает системные настройки уведомлений
	OpenSystemSettings(ctx context.Context) error
}

// Alert - доставленное или ожидающее уведомление
type Alert struct {
	ID    string
	Title string
	Body  string
	At    time.Time
}

// DeliverFunc вызывается, когда подошло время уведомления
type DeliverFunc func(a Alert)

// PermissionStore сохраняет решение о системном разрешении между запусками.
// repository.SettingsStore ему удовлетворяет.
type PermissionStore interface {
	NotificationPermission() (permission string, ok bool, err error)
	SetNotificationPermission(permission string) error
}

type scheduledAlert struct {
	alert Alert
	timer *time.Timer
}

// LocalNotifier - внутрипроцессная реализация Notifier на time.AfterFunc.
// Начальный статус разрешения берется из конфигурации, сохраненное решение
// (AttachStore) имеет приоритет. Извне статус меняется через SetPermission.
type LocalNotifier struct {
	mu             sync.RWMutex
	clock          clock.Clock
	alerts         map[string]*scheduledAlert
	permission     Permission
	grantOnRequest bool
	deliver        DeliverFunc
	store          PermissionStore
	settingsOpened int
}

var _ Notifier = (*LocalNotifier)(nil)

// NewLocalNotifier создает LocalNotifier.
// grantOnRequest определяет ответ на запрос разрешения из статуса not-determined.
func NewLocalNotifier(clk clock.Clock, permission Permission, grantOnRequest bool, deliver DeliverFunc) *LocalNotifier {
	if clk == nil {
		clk = clock.Real{}
	}
	if deliver == nil {
		deliver = func(a Alert) {
			log.Printf("[Notifier] Reminder %s: %s", a.ID, a.Title)
		}
	}
	return &LocalNotifier{
		clock:          clk,
		alerts:         make(map[string]*scheduledAlert),
		permission:     permission,
		grantOnRequest: grantOnRequest,
		deliver:        deliver,
	}
}

// RequestPermission спрашивает пользователя только из статуса not-determined,
// иначе возвращает уже принятое решение
func (n *LocalNotifier) RequestPermission(ctx context.Context) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.permission == PermissionNotDetermined {
		decided := PermissionDenied
		if n.grantOnRequest {
			decided = PermissionAuthorized
		}
		log.Printf("[Notifier] Permission request answered: %s", decided)
		if err := n.setPermissionLocked(decided); err != nil {
			return decided.Allows(), err
		}
	}
	return n.permission.Allows(), nil
}

// PermissionStatus возвращает текущий статус
func (n *LocalNotifier) PermissionStatus(ctx context.Context) (Permission, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.permission, nil
}

// SetPermission имитирует изменение разрешения в системных настройках
func (n *LocalNotifier) SetPermission(p Permission) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.setPermissionLocked(p)
}

// AttachStore подключает хранилище разрешения: сохраненный статус
// заменяет начальный, дальнейшие решения записываются в store
func (n *LocalNotifier) AttachStore(store PermissionStore) error {
	stored, ok, err := store.NotificationPermission()
	if err != nil {
		return fmt.Errorf("load notification permission: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.store = store
	if !ok {
		return nil
	}
	p, err := ParsePermission(stored)
	if err != nil {
		log.Printf("[Notifier] ⚠️  Warning: ignoring stored permission: %v", err)
		return nil
	}
	n.permission = p
	return nil
}

// setPermissionLocked меняет статус и сохраняет его; вызывается под n.mu
func (n *LocalNotifier) setPermissionLocked(p Permission) error {
	n.permission = p
	if n.store == nil {
		return nil
	}
	if err := n.store.SetNotificationPermission(p.String()); err != nil {
		log.Printf("[Notifier] Failed to save permission: %v", err)
		return err
	}
	return nil
}

// ScheduleAlert создает таймер для уведомления, заменяя прежний с тем же id
func (n *LocalNotifier) ScheduleAlert(ctx context.Context, id, title, body string, at time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if existing, ok := n.alerts[id]; ok {
		existing.timer.Stop()
		delete(n.alerts, id)
	}

	alert := Alert{ID: id, Title: title, Body: body, At: at}
	duration := at.Sub(n.clock.Now())

	if duration <= 0 {
		log.Printf("[Notifier] Alert %s is past due, delivering immediately", id)
		go n.deliver(alert)
		return nil
	}

	sa := &scheduledAlert{alert: alert}
	sa.timer = time.AfterFunc(duration, func() {
		if n.remove(id, sa) {
			n.deliver(alert)
		}
	})
	n.alerts[id] = sa

	log.Printf("[Notifier] Scheduled alert %s for %s (in %v)", id, at.Format(time.RFC3339), duration)
	return nil
}

// CancelAlert останавливает таймер уведомления
func (n *LocalNotifier) CancelAlert(ctx context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if sa, ok := n.alerts[id]; ok {
		sa.timer.Stop()
		delete(n.alerts, id)
		log.Printf("[Notifier] Cancelled alert %s", id)
	}
	return nil
}

// OpenSystemSettings в локальной реализации только фиксирует вызов
func (n *LocalNotifier) OpenSystemSettings(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.settingsOpened++
	log.Println("[Notifier] Open notification settings requested")
	return nil
}

// Pending возвращает ожидающие уведомления
func (n *LocalNotifier) Pending() []Alert {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Alert, 0, len(n.alerts))
	for _, sa := range n.alerts {
		out = append(out, sa.alert)
	}
	return out
}

// Has проверяет, запланировано ли уведомление с этим id
func (n *LocalNotifier) Has(id string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.alerts[id]
	return ok
}

// StopAll останавливает все таймеры (вызывается при остановке сервера)
func (n *LocalNotifier) StopAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, sa := range n.alerts {
		sa.timer.Stop()
		delete(n.alerts, id)
	}
	log.Println("[Notifier] All alerts stopped")
}

// remove удаляет сработавший таймер, если его еще не заменили
func (n *LocalNotifier) remove(id string, sa *scheduledAlert) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if current, ok := n.alerts[id]; ok && current == sa {
		delete(n.alerts, id)
		return true
	}
	return false
}
