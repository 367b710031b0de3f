package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgCourseSaved   MessageType = "course_saved"
	MsgCourseDeleted MessageType = "course_deleted"
	MsgError         MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages viewer WebSocket connections per course. Viewers get notified
// when the course they watch is saved or deleted; the fan-out is read-only.
type Hub struct {
	// courseID -> connID -> conn
	viewers map[string]map[string]*Connection

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one viewer connection
type Connection struct {
	CourseID string
	ConnID   string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to fan out to a course's viewers
type BroadcastMessage struct {
	CourseID string
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		viewers:    make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.viewers[conn.CourseID] == nil {
				h.viewers[conn.CourseID] = make(map[string]*Connection)
			}
			h.viewers[conn.CourseID][conn.ConnID] = conn
			log.Printf("Viewer %s connected to course %s", conn.ConnID, conn.CourseID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.viewers[conn.CourseID]; ok {
				if existing, ok := conns[conn.ConnID]; ok && existing == conn {
					delete(conns, conn.ConnID)
					close(conn.Send)
					log.Printf("Viewer %s disconnected from course %s", conn.ConnID, conn.CourseID)
				}
				if len(conns) == 0 {
					delete(h.viewers, conn.CourseID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			if conns, ok := h.viewers[msg.CourseID]; ok {
				for _, conn := range conns {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastCourse sends a message to all viewers of a course (implements
// service.Broadcaster)
func (h *Hub) BroadcastCourse(courseID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		CourseID: courseID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
