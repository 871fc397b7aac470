package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Name() string
}

type providerImpl struct{}

func (p *providerImpl) Name() string { return "impl" }

func TestCheckInit(t *testing.T) {
	t.Run(`все зависимости заданы`, func(t *testing.T) {
		var p provider = &providerImpl{}
		require.NotPanics(t, func() { CheckInit("provider", p, "limit", 10) })
	})
	t.Run(`nil указатель в интерфейсе`, func(t *testing.T) {
		var impl *providerImpl
		var p provider = impl
		require.PanicsWithValue(t, "зависимость provider не инициализирована", func() { CheckInit("provider", p) })
	})
	t.Run(`пустой интерфейс`, func(t *testing.T) {
		var p provider
		require.Panics(t, func() { CheckInit("provider", p) })
	})
	t.Run(`нечетное число аргументов`, func(t *testing.T) {
		require.Panics(t, func() { CheckInit("provider") })
	})
}
