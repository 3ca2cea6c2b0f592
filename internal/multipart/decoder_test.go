package multipart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const boundary = "XBOUNDARYX"

func buildBody(parts []string, terminated bool) []byte {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString(part)
		b.WriteString("\r\n")
	}
	if terminated {
		b.WriteString("--" + boundary + "--\r\n")
	}
	return []byte(b.String())
}

func TestParse_FieldAndFile(t *testing.T) {
	t.Parallel()

	body := buildBody([]string{
		"Content-Disposition: form-data; name=\"name\"\r\n\r\nvalue",
		"Content-Disposition: form-data; name=\"image\"; filename=\"photo.png\"\r\nContent-Type: image/png\r\n\r\nPNGBYTES",
	}, true)

	form, err := Parse(body, boundary)
	require.NoError(t, err)

	require.Equal(t, map[string]string{"name": "value"}, form.Fields)

	file, ok := form.Files["image"]
	require.True(t, ok)
	require.True(t, strings.HasSuffix(file.Filename, ".png"), "generated name keeps extension: %q", file.Filename)
	require.NotEqual(t, "photo.png", file.Filename, "original filename must be replaced")
	require.Equal(t, []byte("PNGBYTES"), file.Data)
}

func TestParse_EmptyBody(t *testing.T) {
	t.Parallel()

	form, err := Parse(nil, boundary)
	require.NoError(t, err)
	require.Empty(t, form.Fields)
	require.Empty(t, form.Files)
}

func TestParse_NamelessPartDropped(t *testing.T) {
	t.Parallel()

	body := buildBody([]string{
		"Content-Disposition: form-data\r\n\r\nignored",
		"Content-Disposition: form-data; name=\"kept\"\r\n\r\nyes",
	}, true)

	form, err := Parse(body, boundary)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"kept": "yes"}, form.Fields)
}

func TestParse_Unterminated(t *testing.T) {
	t.Parallel()

	body := buildBody([]string{
		"Content-Disposition: form-data; name=\"name\"\r\n\r\nvalue",
	}, false)

	_, err := Parse(body, boundary)
	require.ErrorIs(t, err, ErrMalformedBody)
}

func TestParse_PartWithoutHeaderSeparator(t *testing.T) {
	t.Parallel()

	body := []byte("--" + boundary + "\r\nno blank line here\r\n--" + boundary + "--\r\n")

	_, err := Parse(body, boundary)
	require.ErrorIs(t, err, ErrMalformedBody)
}

func TestParse_TrailingWhitespaceTrimmed(t *testing.T) {
	t.Parallel()

	body := buildBody([]string{
		"Content-Disposition: form-data; name=\"field\"\r\n\r\nvalue  \r\n",
	}, true)

	form, err := Parse(body, boundary)
	require.NoError(t, err)
	require.Equal(t, "value", form.Fields["field"])
}

func TestParse_UTF8FieldPreserved(t *testing.T) {
	t.Parallel()

	// Raw UTF-8 bytes travel through the transport untouched and are only
	// interpreted as text at decode time.
	body := buildBody([]string{
		"Content-Disposition: form-data; name=\"name\"\r\n\r\n龙井茶",
	}, true)

	form, err := Parse(body, boundary)
	require.NoError(t, err)
	require.Equal(t, "龙井茶", form.Fields["name"])
}
