package upload

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/FACorreiaa/storefront-api/config"
)

var _ Transport = (*FTPTransport)(nil)

// FTPTransport uploads to a web host over FTP. Files are then served by that host.
type FTPTransport struct {
	cfg     config.FTPConfig
	timeout time.Duration
}

func NewFTPTransport(cfg config.FTPConfig, timeout time.Duration) (*FTPTransport, error) {
	if cfg.Host == "" || cfg.BaseURL == "" {
		return nil, fmt.Errorf("ftp transport requires host and baseURL")
	}
	if cfg.Port == 0 {
		cfg.Port = 21
	}
	return &FTPTransport{cfg: cfg, timeout: timeout}, nil
}

func (t *FTPTransport) Name() string { return "ftp" }

func (t *FTPTransport) Put(ctx context.Context, key string, data []byte) (string, error) {
	conn, err := ftp.Dial(net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port)),
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(t.timeout),
	)
	if err != nil {
		return "", fmt.Errorf("ftp dial: %w", err)
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Login(t.cfg.Username, t.cfg.Password); err != nil {
		return "", fmt.Errorf("ftp login: %w", err)
	}
	if t.cfg.Dir != "" {
		if err := conn.ChangeDir(t.cfg.Dir); err != nil {
			return "", fmt.Errorf("ftp cwd %s: %w", t.cfg.Dir, err)
		}
	}

	// Nested keys need their folders; MakeDir fails harmlessly when they already exist.
	if dir := path.Dir(key); dir != "." {
		current := ""
		for _, seg := range strings.Split(dir, "/") {
			current = path.Join(current, seg)
			_ = conn.MakeDir(current)
		}
	}

	if err := conn.Stor(key, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("ftp stor %s: %w", key, err)
	}
	return joinURL(t.cfg.BaseURL, t.cfg.PublicPath, key), nil
}
