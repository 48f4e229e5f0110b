package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gatorkeys/internal/chat"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
	chatUC chat.ChatUsecase
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(8 * 1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { _ = c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var env struct {
			Type     string     `json:"type"`
			To       *uuid.UUID `json:"to"`
			ThreadID *uuid.UUID `json:"thread_id"`
			Body     string     `json:"body"`
			TempID   string     `json:"tempId"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			c.send <- []byte(`{"type":"error","error":"invalid_json"}`)
			continue
		}
		switch env.Type {
		case "message":
			cmd := chat.SendMessageCommand{SenderID: c.userID, ThreadID: env.ThreadID, Body: env.Body}
			if env.To != nil {
				cmd.ReceiverID = *env.To
			}
			dto, err := c.chatUC.SendMessage(context.Background(), cmd)
			if err != nil {
				c.send <- []byte(`{"type":"error","error":"send_failed"}`)
				continue
			}
			ack, _ := json.Marshal(map[string]any{
				"type":    "ack",
				"tempId":  env.TempID,
				"message": dto,
			})
			c.send <- ack
			evt, _ := json.Marshal(map[string]any{"type": "message", "message": dto})
			c.hub.NotifyUser(context.Background(), dto.ReceiverID, evt)
		default:
			c.send <- []byte(`{"type":"error","error":"unsupported_type"}`)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker((pongWait * 9) / 10)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) Serve() {
	go c.writePump()
	c.readPump()
}
