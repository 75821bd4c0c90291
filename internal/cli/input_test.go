package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	require.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetWithDefault(t *testing.T) {
	var out bytes.Buffer

	got, err := GetWithDefault(rdr("\n"), "Phone", "123", &out)
	require.NoError(t, err)
	require.Equal(t, "123", got)
	require.Contains(t, out.String(), "Phone [123]")

	got, err = GetWithDefault(rdr("-\n"), "Phone", "123", &out)
	require.NoError(t, err)
	require.Equal(t, "", got)

	got, err = GetWithDefault(rdr(" 456 \n"), "Phone", "123", &out)
	require.NoError(t, err)
	require.Equal(t, "456", got)

	out.Reset()
	_, err = GetWithDefault(rdr("x\n"), "Name", "", &out)
	require.NoError(t, err)
	require.Equal(t, "Name\n> ", out.String())
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "sure\n": false} {
		got, err := Confirm(rdr(in), "Really?", &out)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
}
