package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestCodec_EmptyPayload(t *testing.T) {
	var req RegisterRequest
	require.NoError(t, jsonCodec{}.Unmarshal(nil, &req))
	assert.Equal(t, RegisterRequest{}, req)
}

func TestCodec_Errors(t *testing.T) {
	_, err := jsonCodec{}.Marshal(make(chan int))
	require.Error(t, err)

	var req RegisterRequest
	require.Error(t, jsonCodec{}.Unmarshal([]byte("{"), &req))
}
