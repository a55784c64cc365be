package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	begin = "# --- begin ---"
	end   = "# --- end ---"
)

func TestSplice_ReplacesRegionOnly(t *testing.T) {
	doc := "header\n" + begin + "\nold content\n" + end + "\nfooter\n"

	got, err := Splice(doc, begin, end, "new content")
	require.NoError(t, err)

	assert.Equal(t, "header\n"+begin+"\nnew content\n"+end+"\nfooter\n", got)
}

func TestSplice_EmptyContent(t *testing.T) {
	doc := "header\n" + begin + "\nold\n" + end + "\n"

	got, err := Splice(doc, begin, end, "")
	require.NoError(t, err)

	assert.Equal(t, "header\n"+begin+"\n"+end+"\n", got)
}

func TestSplice_Idempotent(t *testing.T) {
	doc := begin + "\n" + end + "\n"

	once, err := Splice(doc, begin, end, "a\nb")
	require.NoError(t, err)

	twice, err := Splice(once, begin, end, "a\nb")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestSplice_MissingMarkers(t *testing.T) {
	_, err := Splice("no markers here\n", begin, end, "x")
	require.ErrorIs(t, err, ErrNoRegion)

	_, err = Splice(begin+"\nunterminated\n", begin, end, "x")
	require.ErrorIs(t, err, ErrNoRegion)
}

func TestSplice_MarkerMustBeFullLine(t *testing.T) {
	doc := "prefix " + begin + " suffix\n"

	_, err := Splice(doc, begin, end, "x")
	require.ErrorIs(t, err, ErrNoRegion)
}

func TestExtract(t *testing.T) {
	doc := "h\n" + begin + "\nbody line\n" + end + "\nt\n"

	body, err := Extract(doc, begin, end)
	require.NoError(t, err)

	assert.Equal(t, "body line\n", body)
}

func TestExtract_EmptyRegion(t *testing.T) {
	doc := begin + "\n" + end + "\n"

	body, err := Extract(doc, begin, end)
	require.NoError(t, err)

	assert.Equal(t, "", body)
}
