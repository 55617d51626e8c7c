package recfmt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/recfmt"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    recfmt.Style
		wantErr require.ErrorAssertionFunc
	}{
		"table":    {input: "table", want: recfmt.StyleTable, wantErr: require.NoError},
		"ascii":    {input: "ascii", want: recfmt.StyleASCII, wantErr: require.NoError},
		"plain":    {input: "plain", want: recfmt.StylePlain, wantErr: require.NoError},
		"markdown": {input: "Markdown", want: recfmt.StyleMarkdown, wantErr: require.NoError},
		"html":     {input: "HTML", want: recfmt.StyleHTML, wantErr: require.NoError},
		"list":     {input: "list", want: recfmt.StyleList, wantErr: require.NoError},
		"unknown":  {input: "fancy", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := recfmt.ParseStyle(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()
	got := recfmt.Styles()
	want := []recfmt.Style{
		recfmt.StyleTable, recfmt.StyleASCII, recfmt.StylePlain,
		recfmt.StyleMarkdown, recfmt.StyleHTML, recfmt.StyleList,
	}
	assert.Equal(t, want, got)
	got[0] = "modified"
	assert.Equal(t, recfmt.StyleTable, recfmt.Styles()[0])
}

func TestRender(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		style recfmt.Style
		want  string
	}{
		"table": {
			style: recfmt.StyleTable,
			want: "╭───────┬─────╮\n" +
				"│ name  │ age │\n" +
				"├───────┼─────┤\n" +
				"│ Alice │ 30  │\n" +
				"│ Bob   │ 25  │\n" +
				"╰───────┴─────╯\n",
		},
		"ascii": {
			style: recfmt.StyleASCII,
			want: "+-------+-----+\n" +
				"| name  | age |\n" +
				"+-------+-----+\n" +
				"| Alice | 30  |\n" +
				"| Bob   | 25  |\n" +
				"+-------+-----+\n",
		},
		"plain": {
			style: recfmt.StylePlain,
			want: "name   age\n" +
				"-----  ---\n" +
				"Alice  30\n" +
				"Bob    25\n",
		},
		"markdown": {
			style: recfmt.StyleMarkdown,
			want: "| name  | age |\n" +
				"| ----- | --- |\n" +
				"| Alice | 30  |\n" +
				"| Bob   | 25  |\n",
		},
		"html": {
			style: recfmt.StyleHTML,
			want: "<table>\n" +
				"  <thead>\n" +
				"    <tr>\n" +
				"      <th>name</th>\n" +
				"      <th>age</th>\n" +
				"    </tr>\n" +
				"  </thead>\n" +
				"  <tbody>\n" +
				"    <tr>\n" +
				"      <td>Alice</td>\n" +
				"      <td>30</td>\n" +
				"    </tr>\n" +
				"    <tr>\n" +
				"      <td>Bob</td>\n" +
				"      <td>25</td>\n" +
				"    </tr>\n" +
				"  </tbody>\n" +
				"</table>\n",
		},
		"list": {
			style: recfmt.StyleList,
			want: "name: Alice\n" +
				"age:  30\n" +
				"\n" +
				"name: Bob\n" +
				"age:  25\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, recfmt.Render(&buf, people(), tt.style))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderNumbersRightAligned(t *testing.T) {
	t.Parallel()
	rs := recfmt.RecordSet{
		{{Key: "name", Value: "Alice"}, {Key: "total", Value: int64(7)}},
		{{Key: "name", Value: "Bob"}, {Key: "total", Value: int64(1250)}},
	}
	var buf bytes.Buffer
	require.NoError(t, recfmt.Render(&buf, rs, recfmt.StyleMarkdown))
	assert.Equal(t,
		"| name  | total |\n"+
			"| ----- | ----: |\n"+
			"| Alice |     7 |\n"+
			"| Bob   |  1250 |\n",
		buf.String())
}

func TestRenderWideCharacters(t *testing.T) {
	t.Parallel()
	rs := recfmt.RecordSet{{{Key: "name", Value: "你好"}}, {{Key: "name", Value: "ab"}}}
	var buf bytes.Buffer
	require.NoError(t, recfmt.Render(&buf, rs, recfmt.StylePlain))
	assert.Equal(t, "name\n----\n你好\nab\n", buf.String())
}

func TestRenderMarkdownEscapesPipes(t *testing.T) {
	t.Parallel()
	rs := recfmt.RecordSet{{{Key: "expr", Value: "a|b"}}}
	var buf bytes.Buffer
	require.NoError(t, recfmt.Render(&buf, rs, recfmt.StyleMarkdown))
	assert.Contains(t, buf.String(), `a\|b`)
}

func TestRenderMissingAndExtraKeys(t *testing.T) {
	t.Parallel()
	rs := recfmt.RecordSet{
		{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		{{Key: "b", Value: "3"}, {Key: "c", Value: "4"}},
	}
	var buf bytes.Buffer
	require.NoError(t, recfmt.Render(&buf, rs, recfmt.StylePlain))
	assert.Equal(t, "a  b\n-  -\n1  2\n   3\n", buf.String())
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()
	for _, style := range recfmt.Styles() {
		var buf bytes.Buffer
		require.NoError(t, recfmt.Render(&buf, recfmt.RecordSet{}, style))
		assert.Empty(t, buf.String(), style)
	}
	err := recfmt.Render(&bytes.Buffer{}, recfmt.RecordSet{}, "fancy")
	require.ErrorIs(t, err, recfmt.ErrUnsupportedStyle)
}

func TestRenderHTMLEscapesAndAligns(t *testing.T) {
	t.Parallel()
	rs := recfmt.RecordSet{{{Key: "tag", Value: "<b>&</b>"}, {Key: "n", Value: int64(3)}}}
	var buf bytes.Buffer
	require.NoError(t, recfmt.Render(&buf, rs, recfmt.StyleHTML))
	assert.Contains(t, buf.String(), "<td>&lt;b&gt;&amp;&lt;/b&gt;</td>")
	assert.Contains(t, buf.String(), `<th style="text-align: right">n</th>`)
	assert.Contains(t, buf.String(), `<td style="text-align: right">3</td>`)
}

func TestRenderListShowsEveryField(t *testing.T) {
	t.Parallel()
	rs := recfmt.RecordSet{
		{{Key: "id", Value: int64(1)}},
		{{Key: "id", Value: int64(2)}, {Key: "note", Value: nil}, {Key: "extra", Value: true}},
	}
	var buf bytes.Buffer
	require.NoError(t, recfmt.Render(&buf, rs, recfmt.StyleList))
	assert.Equal(t, "id:    1\n\nid:    2\nnote:\nextra: true\n", buf.String())
}

func TestRenderUnknownStyle(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := recfmt.Render(&buf, people(), "fancy")
	require.ErrorIs(t, err, recfmt.ErrUnsupportedStyle)
}

func TestRenderWriterError(t *testing.T) {
	t.Parallel()
	for _, style := range recfmt.Styles() {
		t.Run(string(style), func(t *testing.T) {
			t.Parallel()
			err := recfmt.Render(&errWriter{}, people(), style)
			require.ErrorIs(t, err, errWriteFailed)
		})
	}
}
