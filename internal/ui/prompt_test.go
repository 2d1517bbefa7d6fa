package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  AWS::S3::Bucket  \n READ\n"), &out)

	got, err := p.Ask(context.Background(), "Resource: ")
	require.NoError(t, err)
	assert.Equal(t, "AWS::S3::Bucket", got)

	got, err = p.Ask(context.Background(), "Operation: ")
	require.NoError(t, err)
	assert.Equal(t, "READ", got)

	assert.Equal(t, "Resource: Operation: ", out.String())
}

func TestPrompter_AskEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("AWS::SQS::Queue"), io.Discard)

	got, err := p.Ask(context.Background(), "? ")
	require.NoError(t, err)
	assert.Equal(t, "AWS::SQS::Queue", got)

	_, err = p.Ask(context.Background(), "? ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_AskCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrompter(pr, io.Discard).Ask(ctx, "? ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrompter_Input(t *testing.T) {
	t.Run("continues after buffered answer", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("AWS::S3::Bucket\n\r"), io.Discard)

		_, err := p.Ask(context.Background(), "? ")
		require.NoError(t, err)

		rest, err := io.ReadAll(p.Input())
		require.NoError(t, err)
		assert.Equal(t, "\r", string(rest))
	})

	t.Run("nothing buffered returns the source", func(t *testing.T) {
		src := strings.NewReader("AWS::S3::Bucket\n")
		p := NewPrompter(src, io.Discard)

		_, err := p.Ask(context.Background(), "? ")
		require.NoError(t, err)

		assert.Same(t, src, p.Input())
	})
}
