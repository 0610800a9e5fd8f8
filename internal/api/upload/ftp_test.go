package upload

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/config"
)

func TestNewFTPTransport(t *testing.T) {
	_, err := NewFTPTransport(config.FTPConfig{BaseURL: "https://shop.example.com"}, time.Second)
	assert.Error(t, err)

	tr, err := NewFTPTransport(config.FTPConfig{Host: "ftp.example.com", BaseURL: "https://shop.example.com"}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 21, tr.cfg.Port)
	assert.Equal(t, "ftp", tr.Name())
}

func TestFTPTransport_PutUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	tr, err := NewFTPTransport(config.FTPConfig{
		Host:    "127.0.0.1",
		Port:    port,
		BaseURL: "https://shop.example.com",
	}, time.Second)
	require.NoError(t, err)

	_, err = tr.Put(context.Background(), "a.png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp dial")
}
