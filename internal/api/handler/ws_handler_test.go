package handler

import (
	"Harbor/internal/pkg/hub"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

type recordingTransport struct {
	mu     sync.Mutex
	frames [][]byte
}

func (t *recordingTransport) WriteMessage(messageType int, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	t.frames = append(t.frames, cp)
	return nil
}

func (t *recordingTransport) SetWriteDeadline(time.Time) error { return nil }
func (t *recordingTransport) Close() error                     { return nil }

func (t *recordingTransport) snapshot() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]byte(nil), t.frames...)
}

func waitForFrames(t *testing.T, rt *recordingTransport, want int) [][]byte {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if frames := rt.snapshot(); len(frames) >= want {
			return frames
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d frames, got %d", want, len(rt.snapshot()))
	return nil
}

func TestForwardMessageRelaysAsNewMessage(t *testing.T) {
	h := hub.NewHub()
	rt := &recordingTransport{}
	member := hub.NewConn(rt)
	h.Register(2, member, []hub.Room{hub.ConversationRoom(5)})
	go member.WritePump()
	defer member.Close()

	s := NewWsHandler(h, nil)
	s.handleForwardMessage(1, []byte(`{"conversationId":5,"message":{"content":"hi","senderId":1}}`))

	frames := waitForFrames(t, rt, 1)
	var relayed struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(frames[0], &relayed); err != nil {
		t.Fatalf("unmarshal relayed frame: %v", err)
	}
	// 房间成员按既有的下行事件名收到中继消息
	if relayed.Event != "newMessage" {
		t.Fatalf("relayed event = %q, want newMessage", relayed.Event)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(relayed.Data, &payload); err != nil {
		t.Fatalf("unmarshal relayed payload: %v", err)
	}
	if payload["content"] != "hi" {
		t.Fatalf("relayed payload = %v, want the original message verbatim", payload)
	}
}

func TestForwardMessageIgnoresInvalidUpstream(t *testing.T) {
	h := hub.NewHub()
	rt := &recordingTransport{}
	member := hub.NewConn(rt)
	h.Register(2, member, []hub.Room{hub.ConversationRoom(5)})
	go member.WritePump()
	defer member.Close()

	s := NewWsHandler(h, nil)
	s.handleForwardMessage(1, []byte(`not json`))
	s.handleForwardMessage(1, []byte(`{"conversationId":0,"message":{"content":"hi"}}`))

	time.Sleep(30 * time.Millisecond)
	if frames := rt.snapshot(); len(frames) != 0 {
		t.Fatalf("invalid upstream must not reach the room, got %d frames", len(frames))
	}
}
