package markup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainTextStripsMarkup(t *testing.T) {
	got, err := PlainText(`Bonjour <b>le</b> <i>monde</i>`)
	require.NoError(t, err)
	require.Equal(t, "Bonjour le monde", got)

	got, err = PlainText(`ligne 1<br/>ligne 2`)
	require.NoError(t, err)
	require.Equal(t, "ligne 1\nligne 2", got)
}

func TestToggleBoldAddsAndRemoves(t *testing.T) {
	out, err := Toggle("bonjour", 0, 3, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "<b>bon</b>jour", out)

	// A second toggle over the same range undoes the first.
	out, err = Toggle(out, 0, 3, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "bonjour", out)
}

func TestToggleMixedRangeStylesEverything(t *testing.T) {
	// "bon" is bold, "jour" is not; toggling the whole word bolds the rest.
	out, err := Toggle("<b>bon</b>jour", 0, 7, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "<b>bonjour</b>", out)
}

func TestToggleItalicInsideBold(t *testing.T) {
	out, err := Toggle("<b>bonjour</b>", 3, 7, StyleItalic)
	require.NoError(t, err)
	require.Equal(t, "<b>bon</b><b><i>jour</i></b>", out)

	plain, err := PlainText(out)
	require.NoError(t, err)
	require.Equal(t, "bonjour", plain)
}

func TestToggleCollapsedRangeIsNoOp(t *testing.T) {
	out, err := Toggle("<b>bon</b>jour", 2, 2, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "<b>bon</b>jour", out)

	out, err = Toggle("bonjour", -1, 3, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "bonjour", out)

	out, err = Toggle("bonjour", 0, 100, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "bonjour", out)
}

func TestToggleSpoilerWrap(t *testing.T) {
	out, err := Toggle("secret ici", 0, 6, StyleSpoiler)
	require.NoError(t, err)
	require.Equal(t, `<span class="spoiler">secret</span> ici`, out)

	out, err = Toggle(out, 0, 6, StyleSpoiler)
	require.NoError(t, err)
	require.Equal(t, "secret ici", out)
}

func TestToggleSpoilerCrossingBoundary(t *testing.T) {
	value := "<b>bon</b>jour"

	out, err := Toggle(value, 1, 5, StyleSpoiler)
	require.ErrorIs(t, err, ErrSelectionNotSimple)
	require.Equal(t, value, out, "document stays unchanged on a rejected wrap")
}

func TestToggleSpoilerUniformStyledRange(t *testing.T) {
	// A fully bold range is uniform, so spoiler is allowed on top of it.
	out, err := Toggle("<b>bon</b>jour", 0, 3, StyleSpoiler)
	require.NoError(t, err)
	require.Equal(t, `<span class="spoiler"><b>bon</b></span>jour`, out)
}

func TestSerializeFixedNesting(t *testing.T) {
	// Input nests italic outside bold; the stored form always nests
	// spoiler > bold > italic.
	out, err := Toggle("<i><b>mot</b></i>", 0, 3, StyleSpoiler)
	require.NoError(t, err)
	require.Equal(t, `<span class="spoiler"><b><i>mot</i></b></span>`, out)
}

func TestEscaping(t *testing.T) {
	out, err := Toggle("a < b", 0, 1, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "<b>a</b> &lt; b", out)

	plain, err := PlainText(out)
	require.NoError(t, err)
	require.Equal(t, "a < b", plain)
}

func TestOffsetsAreRuneBased(t *testing.T) {
	out, err := Toggle("héhé", 0, 2, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "<b>hé</b>hé", out)

	n, err := Length("héhé")
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestUnknownElementsTraversed(t *testing.T) {
	plain, err := PlainText(`<p>un <strong>deux</strong></p>`)
	require.NoError(t, err)
	require.Equal(t, "un deux", plain)

	// <strong> and <em> count as bold and italic on parse.
	out, err := Toggle("<strong>un</strong>", 0, 2, StyleBold)
	require.NoError(t, err)
	require.Equal(t, "un", out)
}
