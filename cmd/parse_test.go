package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMessage_Arg(t *testing.T) {
	msg, err := readMessage([]string{"DR SMITH FEVER"}, "", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "DR SMITH FEVER", msg)
}

func TestReadMessage_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte("DR SMITH FEVER"), 0644))

	msg, err := readMessage(nil, path, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "DR SMITH FEVER", msg)
}

func TestReadMessage_Stdin(t *testing.T) {
	msg, err := readMessage(nil, "", strings.NewReader("DR SMITH FEVER\n"))
	require.NoError(t, err)
	assert.Equal(t, "DR SMITH FEVER\n", msg)
}

func TestReadMessage_Empty(t *testing.T) {
	_, err := readMessage(nil, "", strings.NewReader("  \n"))
	assert.Error(t, err)
}

func TestReadMessage_MissingFile(t *testing.T) {
	_, err := readMessage(nil, filepath.Join(t.TempDir(), "absent.txt"), strings.NewReader(""))
	assert.Error(t, err)
}
