package rpcclient

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/evmclient/evm-go/pkg/ethrpc"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSClient is a websocket-enabled RPC client. It keeps a persistent
// connection to the node, requests are multiplexed over it and matched to
// responses by their IDs, so it can be used from multiple goroutines.
type WSClient struct {
	Client
	ws       *websocket.Conn
	done     chan struct{}
	requests chan *ethrpc.Request
	shutdown chan struct{}

	respLock     sync.Mutex
	respChannels map[uint64]chan *ethrpc.Response
}

const (
	// Message limit for receiving side.
	wsReadLimit = 10 * 1024 * 1024

	// Disconnection timeout.
	wsPongLimit = 60 * time.Second

	// Ping period for connection liveness check.
	wsPingPeriod = wsPongLimit / 2

	// Write deadline.
	wsWriteLimit = wsPingPeriod / 2
)

// ErrWSConnLost is returned for requests that can't be completed because
// the connection is closed.
var ErrWSConnLost = errors.New("connection lost")

// NewWS returns a new WSClient ready to use (with established websocket
// connection). You need to use websocket URL for it like `ws://1.2.3.4:8546`.
func NewWS(ctx context.Context, endpoint string, opts Options) (*WSClient, error) {
	dialer := websocket.Dialer{HandshakeTimeout: opts.DialTimeout}
	ws, resp, err := dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	wsc := &WSClient{
		ws:           ws,
		shutdown:     make(chan struct{}),
		done:         make(chan struct{}),
		requests:     make(chan *ethrpc.Request),
		respChannels: make(map[uint64]chan *ethrpc.Response),
	}
	err = initClient(ctx, &wsc.Client, endpoint, opts)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}
	wsc.Client.cli = nil
	wsc.Client.requestF = wsc.makeWsRequest

	go wsc.wsReader()
	go wsc.wsWriter()
	return wsc, nil
}

// Close closes connection to the remote side rendering this client instance
// unusable.
func (c *WSClient) Close() {
	// Closing shutdown channel sends a signal to wsWriter to break out of the
	// loop. In doing so it does ws.Close() closing the network connection
	// which in turn makes wsReader receive an error from ws.ReadJSON() and
	// also break out of the loop closing c.done channel in its shutdown
	// sequence.
	close(c.shutdown)
	<-c.done
}

func (c *WSClient) wsReader() {
	c.ws.SetReadLimit(wsReadLimit)
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(wsPongLimit))
	})
	for {
		resp := new(ethrpc.Response)
		_ = c.ws.SetReadDeadline(time.Now().Add(wsPongLimit))
		err := c.ws.ReadJSON(resp)
		if err != nil {
			// Timeout/connection loss/malformed response.
			c.log.Debug("websocket read failed", zap.Error(err))
			break
		}
		id, err := strconv.ParseUint(string(resp.ID), 10, 64)
		if err != nil {
			// Subscription notifications and responses to someone else.
			continue
		}
		c.respLock.Lock()
		ch, ok := c.respChannels[id]
		delete(c.respChannels, id)
		c.respLock.Unlock()
		if ok {
			ch <- resp
		}
	}
	close(c.done)
	c.respLock.Lock()
	for id, ch := range c.respChannels {
		close(ch)
		delete(c.respChannels, id)
	}
	c.respLock.Unlock()
}

func (c *WSClient) wsWriter() {
	pingTicker := time.NewTicker(wsPingPeriod)
	defer c.ws.Close()
	defer pingTicker.Stop()
	for {
		select {
		case <-c.shutdown:
			return
		case <-c.done:
			return
		case req := <-c.requests:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.RequestTimeout))
			if err := c.ws.WriteJSON(req); err != nil {
				return
			}
		case <-pingTicker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(wsWriteLimit))
			if err := c.ws.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}

func (c *WSClient) makeWsRequest(r *ethrpc.Request) (*ethrpc.Response, error) {
	ch := make(chan *ethrpc.Response, 1)
	c.respLock.Lock()
	select {
	case <-c.done:
		c.respLock.Unlock()
		return nil, ErrWSConnLost
	default:
	}
	c.respChannels[r.ID] = ch
	c.respLock.Unlock()

	select {
	case <-c.done:
		return nil, ErrWSConnLost
	case c.requests <- r:
	}
	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, ErrWSConnLost
		}
		return resp, nil
	case <-time.After(c.opts.RequestTimeout):
		c.respLock.Lock()
		delete(c.respChannels, r.ID)
		c.respLock.Unlock()
		return nil, errors.New("response timeout")
	}
}
