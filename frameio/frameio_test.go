package frameio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/framelai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<!DOCTYPE html>
<html><body>
  <section data-frame-id="login" data-frame-name="Login">
    <h1 data-text-id="title">Sign   in</h1>
    <label data-text-id="">Email</label>
    <p data-text-id="legal" data-no-translate>ACME Inc.</p>
    <button data-text-id="go">Continue</button>
  </section>
  <section data-frame-id="empty">
    <h2>Empty Frame</h2>
  </section>
  <div data-no-translate>
    <section data-frame-id="hidden"><p data-text-id="h1">Hidden</p></section>
  </div>
</body></html>`

func TestParse_HTML(t *testing.T) {
	frames, err := Parse(strings.NewReader(sampleHTML), FormatHTML)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	login := frames[0]
	assert.Equal(t, "login", login.ID)
	assert.Equal(t, "Login", login.Name)
	require.Len(t, login.Texts, 3)
	assert.Equal(t, framelai.TextElement{ID: "title", Content: "Sign in"}, login.Texts[0])
	assert.NotEmpty(t, login.Texts[1].ID, "missing element IDs are generated")
	assert.Equal(t, "Email", login.Texts[1].Content)
	assert.Equal(t, "go", login.Texts[2].ID)

	assert.Equal(t, "Empty Frame", frames[1].Name)
	assert.Empty(t, frames[1].Texts)
}

func TestParse_HTMLNestedFrames(t *testing.T) {
	src := `<section data-frame-id="outer"><p data-text-id="a">A</p>
	<section data-frame-id="inner"><p data-text-id="b">B</p></section></section>`

	frames, err := Parse(strings.NewReader(src), FormatHTML)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, []framelai.TextElement{{ID: "a", Content: "A"}}, frames[0].Texts)
	assert.Equal(t, []framelai.TextElement{{ID: "b", Content: "B"}}, frames[1].Texts)
}

func TestRenderHTML_RoundTrip(t *testing.T) {
	frames := DemoFrames()
	frames[0].Texts[0].Content = `Fish & "Chips" <b>`

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, frames, "ar"))

	out := buf.String()
	assert.Contains(t, out, `lang="ar"`)
	assert.Contains(t, out, `dir="rtl"`)
	assert.Contains(t, out, "Fish &amp; &#34;Chips&#34; &lt;b&gt;")

	back, err := Parse(strings.NewReader(out), FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, frames, back)
}

func TestRenderHTML_FoldsLineBreaks(t *testing.T) {
	frames := framelai.Collection{{
		ID:    "f1",
		Name:  "One",
		Texts: []framelai.TextElement{{ID: "a", Content: "Line one\n  Line two"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, frames, ""))
	back, err := Parse(strings.NewReader(buf.String()), FormatHTML)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "Line one Line two", back[0].Texts[0].Content)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		buf.Reset()
		require.NoError(t, Write(&buf, frames, format, ""))
		back, err := Parse(strings.NewReader(buf.String()), format)
		require.NoError(t, err)
		assert.Equal(t, frames, back, "format %v keeps line breaks", format)
	}
}

func TestRenderHTML_LTR(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, DemoFrames(), "zh-TW"))

	assert.Contains(t, buf.String(), `lang="zh-TW"`)
	assert.Contains(t, buf.String(), `dir="ltr"`)
}

func TestParse_JSON(t *testing.T) {
	wrapped := `{"frames":[{"id":"f1","name":"One","texts":[{"id":"a","content":"Hello"}]}]}`
	bare := `  [{"id":"f1","name":"One","texts":[{"id":"a","content":"Hello"}]}]`

	for _, src := range []string{wrapped, bare} {
		frames, err := Parse(strings.NewReader(src), FormatJSON)
		require.NoError(t, err)
		require.Len(t, frames, 1)
		assert.Equal(t, "Hello", frames[0].Texts[0].Content)
	}
}

func TestParse_YAML(t *testing.T) {
	src := `
frames:
  - id: f1
    name: One
    texts:
      - id: a
        content: Hello
      - content: World
  - name: Two
`
	frames, err := Parse(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, "World", frames[0].Texts[1].Content)
	assert.NotEmpty(t, frames[0].Texts[1].ID)
	assert.NotEmpty(t, frames[1].ID)
	assert.Equal(t, "Two", frames[1].Name)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"frames": [`), FormatJSON)
	var procErr *framelai.ProcessorError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, "json", procErr.ContentType)

	_, err = Parse(strings.NewReader(`{"frames": [], "extra": 1}`), FormatJSON)
	require.Error(t, err, "unknown fields are rejected")

	dup := `frames:
  - {id: f1, texts: [{id: a, content: x}]}
  - {id: f2, texts: [{id: a, content: y}]}
`
	_, err = Parse(strings.NewReader(dup), FormatYAML)
	require.True(t, errors.As(err, &procErr))
	assert.Contains(t, err.Error(), "duplicate text element id")
}

func TestWriteAndLoad(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"frames.json", "frames.yaml", "frames.html"} {
		t.Run(name, func(t *testing.T) {
			format, err := FormatFromPath(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, DemoFrames(), format, ""))

			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

			frames, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, DemoFrames(), frames)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"json": FormatJSON, ".yml": FormatYAML, "HTM": FormatHTML} {
		got, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDemoFramesAreValid(t *testing.T) {
	require.NoError(t, DemoFrames().Validate())
}
