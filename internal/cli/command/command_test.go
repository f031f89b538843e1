package command

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/microspring-go/internal/infra/shutdown"
	"github.com/yndnr/microspring-go/internal/server/config"
	"github.com/yndnr/microspring-go/internal/telemetry/logger"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"microspring-server"}, args...))
	return out.String(), err
}

func TestApp_Commands(t *testing.T) {
	app := App()
	for _, name := range []string{"serve", "routes", "status", "version"} {
		if app.Command(name) == nil {
			t.Errorf("missing command %q", name)
		}
	}
	if app.Action == nil {
		t.Error("root action should serve")
	}
}

func TestRoutesCommand_JSON(t *testing.T) {
	out, err := runApp(t, "routes", "--output", "json")
	if err != nil {
		t.Fatalf("routes error = %v", err)
	}

	var routes []routeInfo
	if err := json.Unmarshal([]byte(out), &routes); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(routes) != 9 {
		t.Errorf("routes = %d, want 9", len(routes))
	}
	found := false
	for _, r := range routes {
		if r.Method == "GET" && r.Path == "/greeting" {
			found = true
			if len(r.Params) != 1 || r.Params[0].Default != "World" || !r.Dispatched {
				t.Errorf("/greeting = %+v", r)
			}
		}
		if r.Method == "POST" && r.Dispatched {
			t.Errorf("POST %s reported as dispatched", r.Path)
		}
	}
	if !found {
		t.Error("GET /greeting missing")
	}
}

func TestRoutesCommand_Table(t *testing.T) {
	out, err := runApp(t, "routes")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "METHOD") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(out, "name=World") {
		t.Errorf("params column missing default:\n%s", out)
	}
}

func TestRoutesCommand_BadFormat(t *testing.T) {
	if _, err := runApp(t, "routes", "-o", "xml"); err == nil {
		t.Error("unknown output format should fail")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version", "-o", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "version:") || !strings.Contains(out, "go_version:") {
		t.Errorf("unexpected yaml:\n%s", out)
	}
}

func TestLoadConfig(t *testing.T) {
	webRoot := t.TempDir()

	tests := []struct {
		name    string
		env     map[string]string
		file    string
		flags   map[string]any
		check   func(*testing.T, *config.ServerConfig)
		wantErr bool
	}{
		{
			name: "defaults",
			check: func(t *testing.T, c *config.ServerConfig) {
				if c.Server.Port != 35000 || c.Static.Dir != "" {
					t.Errorf("cfg = %+v", c)
				}
			},
		},
		{
			name: "PORT env",
			env:  map[string]string{"PORT": "8081"},
			check: func(t *testing.T, c *config.ServerConfig) {
				if c.Server.Port != 8081 {
					t.Errorf("Port = %d", c.Server.Port)
				}
			},
		},
		{
			name:    "PORT env not a number",
			env:     map[string]string{"PORT": "http"},
			wantErr: true,
		},
		{
			name:  "flag beats env and file",
			env:   map[string]string{"PORT": "8081"},
			file:  "server:\n  port: 7000\nlog:\n  level: warn\n",
			flags: map[string]any{"server.port": 9000},
			check: func(t *testing.T, c *config.ServerConfig) {
				if c.Server.Port != 9000 || c.Log.Level != "warn" {
					t.Errorf("cfg = %+v", c)
				}
			},
		},
		{
			name:  "web root flag",
			flags: map[string]any{"static.dir": webRoot},
			check: func(t *testing.T, c *config.ServerConfig) {
				if c.Static.Dir != webRoot {
					t.Errorf("Static.Dir = %q", c.Static.Dir)
				}
			},
		},
		{
			name:    "missing web root",
			flags:   map[string]any{"static.dir": filepath.Join(webRoot, "nope")},
			wantErr: true,
		},
		{
			name:    "port out of range",
			flags:   map[string]any{"server.port": 70000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			configFile := ""
			if tt.file != "" {
				configFile = filepath.Join(t.TempDir(), "microspring.yaml")
				if err := os.WriteFile(configFile, []byte(tt.file), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := loadConfig(configFile, tt.flags)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && cfg != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func testConfig(t *testing.T) *config.ServerConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Metrics.Addr = "127.0.0.1:0"
	return cfg
}

func get(t *testing.T, addr net.Addr, target string) (*http.Response, string) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr.String(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
	fmt.Fprintf(conn, "GET %s HTTP/1.1\r\nHost: localhost\r\n\r\n", target)

	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestStack_ServesAndShutsDown(t *testing.T) {
	st, err := newStack(testConfig(t), logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	sh := shutdown.NewHandler(5*time.Second, shutdown.WithSignals(), shutdown.WithLogger(logger.Discard()))
	if err := st.start(sh); err != nil {
		t.Fatalf("start() error = %v", err)
	}

	resp, _ := get(t, st.web.Addr(), "/api/weather")
	if ct := resp.Header.Get("Content-Type"); ct != "application/json; charset=UTF-8" {
		t.Errorf("/api/weather Content-Type = %q", ct)
	}
	resp, body := get(t, st.web.Addr(), "/greeting?name=Ana")
	if resp.StatusCode != 200 || body != "Hola Ana" {
		t.Errorf("/greeting = %d %q", resp.StatusCode, body)
	}
	resp, body = get(t, st.web.Addr(), "/")
	if resp.StatusCode != 200 || !strings.Contains(strings.ToLower(body), "<!doctype html") {
		t.Errorf("/ = %d", resp.StatusCode)
	}
	// Connections are served in order, so once this answer arrives every
	// earlier request has been observed.
	resp, _ = get(t, st.web.Addr(), "/missing.txt")
	if resp.StatusCode != 404 {
		t.Errorf("/missing.txt = %d, want 404", resp.StatusCode)
	}

	metrics, err := http.Get("http://" + st.side.Addr().String() + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	mbody, _ := io.ReadAll(metrics.Body)
	metrics.Body.Close()
	for _, want := range []string{
		`microspring_requests_total{kind="route",status="200"} 2`,
		`microspring_requests_total{kind="static",status="200"} 1`,
		"microspring_routes_registered 9",
	} {
		if !strings.Contains(string(mbody), want) {
			t.Errorf("metrics missing %s", want)
		}
	}

	out, err := runApp(t, "status", "--addr", st.side.Addr().String(), "-o", "json")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	var status statusInfo
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("invalid status JSON %q: %v", out, err)
	}
	if status.Status != "healthy" || status.Routes != 9 {
		t.Errorf("status = %+v", status)
	}

	sh.Trigger()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sh.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if c, err := net.DialTimeout("tcp", st.web.Addr().String(), 500*time.Millisecond); err == nil {
		c.Close()
		t.Error("web listener still open after shutdown")
	}
}

func TestStack_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	cfg := testConfig(t)
	cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port
	st, err := newStack(cfg, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	sh := shutdown.NewHandler(time.Second, shutdown.WithSignals(), shutdown.WithLogger(logger.Discard()))
	if err := st.start(sh); err == nil {
		t.Error("start() on a bound port should fail")
	}
}

func TestServeAction_StopsWithContext(t *testing.T) {
	prev := logger.Default()
	defer logger.SetDefault(prev)
	defer func() { _ = logger.SetLevel("info") }()

	app := App()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.RunContext(ctx, []string{"microspring-server", "serve", "--port", "0", "--log-level", "error"})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("serve error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after context cancel")
	}
}
