package hub

import (
	log "log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBufferSize = 64
	writeTimeout   = 10 * time.Second
)

// Transport 底层连接需要的最小能力，*websocket.Conn 天然满足
type Transport interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Conn 单个客户端连接
// 每个连接独占一条发送队列，推送顺序即入队顺序
type Conn struct {
	ws        Transport
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Uint64
}

func NewConn(ws Transport) *Conn {
	return &Conn{
		ws:   ws,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// WritePump 把发送队列里的数据写到底层连接，写失败即关闭连接
func (c *Conn) WritePump() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Warn("ws write failed, closing connection", "err", err)
				c.Close()
				return
			}
		}
	}
}

// enqueue 非阻塞入队，队列满或连接已关闭时丢弃该条推送
// 丢弃只计数，永远不向调用方报错
func (c *Conn) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		c.dropped.Add(1)
		log.Warn("ws send buffer full, dropping event", "dropped_total", c.dropped.Load())
		return false
	}
}

// Dropped 返回被丢弃的推送条数
func (c *Conn) Dropped() uint64 {
	return c.dropped.Load()
}

// Close 幂等关闭
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}
