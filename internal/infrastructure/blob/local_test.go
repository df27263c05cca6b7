package blob

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-exchange-api/config"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "uploads")
	s, err := New(zap.NewNop(), config.Storage{UploadDir: root})
	require.NoError(t, err)
	return s, root
}

func TestStore_SaveAndOpen(t *testing.T) {
	s, root := newStore(t)

	n, err := s.Save("documents/2026/08/31/x/1/deck.pptx", strings.NewReader("pptx-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	rc, err := s.Open("documents/2026/08/31/x/1/deck.pptx")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pptx-bytes", string(data))

	p, err := s.Path("documents/2026/08/31/x/1/deck.pptx")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, root), p)
}

func TestStore_Save_Overwrite(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Save("documents/a/file.docx", strings.NewReader("v1"))
	require.NoError(t, err)
	_, err = s.Save("documents/a/file.docx", strings.NewReader("version-two"))
	require.NoError(t, err)

	rc, err := s.Open("documents/a/file.docx")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "version-two", string(data))
}

func TestStore_RejectsTraversalKeys(t *testing.T) {
	s, _ := newStore(t)

	for _, key := range []string{
		"../evil",
		"documents/../../evil",
		"a/../..//etc/passwd",
		"",
	} {
		t.Run(key, func(t *testing.T) {
			_, err := s.Save(key, strings.NewReader("x"))
			require.Error(t, err)

			_, err = s.Path(key)
			require.Error(t, err)
		})
	}
}

func TestStore_Open_Missing(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Open("documents/nope.docx")
	require.Error(t, err)
}
