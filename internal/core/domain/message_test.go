package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeDraftBody(t *testing.T) {
	tests := []struct {
		name  string
		new   string
		prior string
		want  string
	}{
		{
			name:  "no prior message",
			new:   "Update",
			prior: "",
			want:  "Update",
		},
		{
			name:  "prior message appended after separator",
			new:   "Update",
			prior: "Hi",
			want:  "Update<br><hr><br>Hi",
		},
		{
			name:  "prior line breaks become br",
			new:   "Update",
			prior: "Hi\nthere",
			want:  "Update<br><hr><br>Hi<br>there",
		},
		{
			name:  "prior CRLF becomes single br",
			new:   "Update",
			prior: "Hi\r\nthere",
			want:  "Update<br><hr><br>Hi<br>there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeDraftBody(tt.new, tt.prior))
		})
	}
}

func TestParseMediaOptions(t *testing.T) {
	opts := ParseMediaOptions("autoplay, LOOP ,fullscreen")
	assert.True(t, opts.Autoplay)
	assert.True(t, opts.Loop)
	assert.True(t, opts.Fullscreen)
	assert.False(t, opts.Muted)

	assert.Equal(t, MediaOptions{}, ParseMediaOptions(""))
	assert.Equal(t, MediaOptions{}, ParseMediaOptions("sepia"))
}

func TestKeyword_ResourceKeywordBasic(t *testing.T) {
	kind, ok := KeywordUseWebsite.ResourceKeyword()
	assert.True(t, ok)
	assert.Equal(t, ResourceWebsite, kind)

	kind, ok = KeywordUseKB.ResourceKeyword()
	assert.True(t, ok)
	assert.Equal(t, ResourceKB, kind)

	_, ok = KeywordSendSMS.ResourceKeyword()
	assert.False(t, ok)
}

func TestInvocation_Arg(t *testing.T) {
	inv := Invocation{Keyword: KeywordSendSMS, Args: []string{"+5511999999999", "hello"}}
	assert.Equal(t, "+5511999999999", inv.Arg(0))
	assert.Equal(t, "hello", inv.Arg(1))
	assert.Equal(t, "", inv.Arg(2))
	assert.Equal(t, "", inv.Arg(-1))
}
