package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// User. one websocket connection streaming multi-stop requests.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*multiStopRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &multiStopRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

/*
MultiStop. reads one request frame and writes back the planned route, or an error envelope when
the request is invalid or cannot be routed. a non-nil error means the connection is broken.
*/
func (u *User) MultiStop(ctx context.Context) error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		// control frame
		return nil
	}

	if err := validateRequest(req); err != nil {
		return u.write(newWsErrorResponse(req.ID, http.StatusBadRequest, err.Error()))
	}

	order, dist, pathPolyline, points, err := u.hub.routingService.MultiStop(ctx, req.coordinates())
	if err != nil {
		return u.write(newWsErrorResponse(req.ID, statusCode(err), err.Error()))
	}

	resp := envelope{"data": NewMultiStopResponse(req.ID, order, dist, pathPolyline, points)}
	return u.write(resp)
}

func newWsErrorResponse(id string, status int, message string) envelope {
	return envelope{
		"id": id,
		"error": map[string]string{
			"code":    http.StatusText(status),
			"message": message,
		},
	}
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu             sync.RWMutex
	seq            uint
	us             []*User
	ns             map[uint]*User
	routingService RoutingService
}

func NewHub(routingService RoutingService) *Hub {
	return &Hub{
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

// Remove. closes the user's connection and forgets it.
func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(user)
}

func (h *Hub) remove(user *User) {
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)
	user.conn.Close()

	// us is sorted by id, ids are assigned in increasing order
	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for len(h.us) > 0 {
		h.remove(h.us[0])
	}
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}
