package channel

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ReadSize is the largest chunk taken from a TCP stream in one read
const ReadSize = 4096

// pending bounds how many received chunks wait for the idle tick
const pending = 256

// source delivers whole chunks from a blocking transport
type source interface {
	ReadChunk() ([]byte, error)
	Close() error
}

// streamChannel turns a blocking source into a non-blocking one. A reader
// goroutine owns the transport reads; Poll only ever does a non-blocking
// receive from the buffered chunks.
type streamChannel struct {
	src  source
	name string
	log  *slog.Logger

	chunks  chan string
	stop    chan struct{}
	readErr error // written before chunks is closed

	dead      bool
	closeOnce sync.Once
	closeErr  error
}

func newStream(src source, name string, logger *slog.Logger) *streamChannel {
	s := &streamChannel{
		src:    src,
		name:   name,
		log:    logger.With("channel", "live", "peer", name),
		chunks: make(chan string, pending),
		stop:   make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *streamChannel) readLoop() {
	defer close(s.chunks)
	for {
		data, err := s.src.ReadChunk()
		if err != nil {
			s.readErr = err
			return
		}
		if len(data) == 0 {
			continue
		}
		select {
		case s.chunks <- string(data):
		case <-s.stop:
			return
		}
	}
}

// Poll returns one received chunk, or "" if none has arrived since the last poll
func (s *streamChannel) Poll() (string, error) {
	if s.dead {
		return "", nil
	}

	select {
	case chunk, ok := <-s.chunks:
		if !ok {
			s.degrade()
			return "", nil
		}
		if strings.TrimSpace(chunk) == QuitToken {
			s.log.Info("quit received")
			s.dead = true
			if err := s.Close(); err != nil {
				s.log.Warn("close failed", "error", err)
			}
			return "", ErrQuit
		}
		return chunk, nil
	default:
		return "", nil
	}
}

func (s *streamChannel) degrade() {
	s.dead = true
	s.log.Warn("connection lost, no further commands", "error", s.readErr)
	if err := s.Close(); err != nil {
		s.log.Debug("close after connection loss", "error", err)
	}
}

func (s *streamChannel) Kind() Kind {
	if s.dead {
		return KindNone
	}
	return KindLive
}

// Close stops the reader and releases the connection exactly once
func (s *streamChannel) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.closeErr = wrapClose(s.name, s.src.Close())
	})
	return s.closeErr
}

type tcpSource struct {
	conn net.Conn
	buf  []byte
}

func (t *tcpSource) ReadChunk() ([]byte, error) {
	n, err := t.conn.Read(t.buf)
	if n > 0 {
		return t.buf[:n], nil
	}
	return nil, err
}

func (t *tcpSource) Close() error {
	return t.conn.Close()
}

// DialTCP connects to the controller at addr (host:port)
func DialTCP(addr string, timeout time.Duration, logger *slog.Logger) (Channel, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to controller: %w", err)
	}
	logger.Info("connected to controller", "addr", addr)
	return NewConn(conn, logger), nil
}

// NewConn wraps an established connection as a live channel. The channel owns conn.
func NewConn(conn net.Conn, logger *slog.Logger) Channel {
	return newStream(&tcpSource{conn: conn, buf: make([]byte, ReadSize)}, conn.RemoteAddr().String(), logger)
}

type wsSource struct {
	conn *websocket.Conn
}

// ReadChunk returns one message; each message is one command chunk
func (w *wsSource) ReadChunk() ([]byte, error) {
	_, data, err := w.conn.ReadMessage()
	return data, err
}

func (w *wsSource) Close() error {
	_ = w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return w.conn.Close()
}

// DialWebSocket connects to a ws:// or wss:// controller
func DialWebSocket(url string, timeout time.Duration, logger *slog.Logger) (Channel, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: timeout,
	}

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to controller: %w", err)
	}
	logger.Info("connected to controller", "url", url)
	return newStream(&wsSource{conn: conn}, url, logger), nil
}
