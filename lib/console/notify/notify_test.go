package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminal(t *testing.T) {
	buf := &bytes.Buffer{}
	terminal := NewTerminal(buf, true)
	terminal.Success("Created")
	terminal.Error("Ошибка")
	require.Equal(t, "✔ Created\n✖ Ошибка\n", buf.String())
}
