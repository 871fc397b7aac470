package lock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// семафор на ключ, емкость 1
var semaphores sync.Map

// Key ключ блокировки из частей: Key("payslip_generate", tenantID) -> "payslip_generate:2"
func Key(parts ...any) string {
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, fmt.Sprint(part))
	}
	return strings.Join(items, ":")
}

// WithDelay выполняет safeCode под ключом key, ожидая освобождения ключа не дольше wait.
// success=false - ключ не освободился или ctx отменен, safeCode не вызывался
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	value, _ := semaphores.LoadOrStore(key, make(chan struct{}, 1))
	sem := value.(chan struct{})

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case sem <- struct{}{}:
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, nil
	}
	defer func() { <-sem }()
	return true, safeCode()
}
