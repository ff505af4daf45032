package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntriesAreJSONLines(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Audit(nil, "cart.clear", map[string]any{"key": "cart:abc"})
	Error(nil, "cart.load", errors.New("disk gone"), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, "audit", first["level"])
	require.Equal(t, "cart.clear", first["action"])
	require.Equal(t, "cart:abc", first["fields"].(map[string]any)["key"])
	require.NotEmpty(t, first["ts"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.Equal(t, "error", second["level"])
	require.Equal(t, "disk gone", second["err"])
	require.NotContains(t, second, "fields")
}
