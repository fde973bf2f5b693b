package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fakePlayer answers IPC commands from an in-memory property table.
type fakePlayer struct {
	conn net.Conn

	writeMu sync.Mutex
	mu      sync.Mutex
	props   map[string]any
	history [][]any
}

func newFakePlayer(t *testing.T, props map[string]any) (*fakePlayer, *Client) {
	t.Helper()

	// unix socket paths are length limited, so stay out of t.TempDir()
	dir, err := os.MkdirTemp("", "subshift-mpv")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socket := filepath.Join(dir, "mpv.sock")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		if conn, err := ln.Accept(); err == nil {
			accepted <- conn
		}
	}()

	c, err := Dial(context.Background(), socket)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}

	var server net.Conn
	select {
	case server = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection")
	}

	if props == nil {
		props = map[string]any{}
	}
	p := &fakePlayer{conn: server, props: props}
	go p.serve()

	t.Cleanup(func() {
		_ = c.Close()
		_ = server.Close()
	})
	return p, c
}

func (p *fakePlayer) serve() {
	scanner := bufio.NewScanner(p.conn)
	for scanner.Scan() {
		var req struct {
			Command   []any `json:"command"`
			RequestID int64 `json:"request_id"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil || len(req.Command) == 0 {
			continue
		}

		p.mu.Lock()
		p.history = append(p.history, req.Command)
		resp := map[string]any{"request_id": req.RequestID, "error": "success"}
		switch req.Command[0] {
		case "get_property":
			name, _ := req.Command[1].(string)
			if v, ok := p.props[name]; ok {
				resp["data"] = v
			} else {
				resp["error"] = "property unavailable"
			}
		case "set_property":
			name, _ := req.Command[1].(string)
			p.props[name] = req.Command[2]
		case "sub-add":
			p.props["current-tracks/sub/external-filename"] = req.Command[1]
			p.props["sid"] = 99
		case "bogus":
			resp["error"] = "invalid parameter"
		}
		p.mu.Unlock()

		p.send(resp)
	}
}

func (p *fakePlayer) send(msg map[string]any) {
	data, _ := json.Marshal(msg)
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_, _ = p.conn.Write(append(data, '\n'))
}

// emit updates the property and announces the change.
func (p *fakePlayer) emit(id int64, name string, data any) {
	p.mu.Lock()
	p.props[name] = data
	p.mu.Unlock()
	p.send(map[string]any{"event": "property-change", "id": id, "name": name, "data": data})
}

func (p *fakePlayer) prop(name string) any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.props[name]
}

// count returns how many commands named name were received.
func (p *fakePlayer) count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, cmd := range p.history {
		if cmd[0] == name {
			n++
		}
	}
	return n
}

func (p *fakePlayer) waitFor(t *testing.T, name string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for p.count(name) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d %q commands, got %d", n, name, p.count(name))
		}
		time.Sleep(5 * time.Millisecond)
	}
}
