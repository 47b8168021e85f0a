package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Client requests frames from a Server over one websocket connection.
// It is not safe for concurrent use.
type Client struct {
	c *websocket.Conn
}

// Dial connects to a frame server, such as ws://localhost:8080/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %s: %w", url, err)
	}
	// An uncompressed RGBA frame bounds the PNG size.
	c.SetReadLimit(DefaultMaxPixels*4 + 1<<20)
	return &Client{c: c}, nil
}

// FrameError is a refusal reported by the server.
type FrameError struct {
	Message string
}

func (e *FrameError) Error() string {
	return "server: " + e.Message
}

// FramePNG sends req and returns the encoded frame.
func (cl *Client) FramePNG(ctx context.Context, req FrameRequest) ([]byte, error) {
	if err := wsjson.Write(ctx, cl.c, req); err != nil {
		return nil, err
	}

	typ, data, err := cl.c.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ == websocket.MessageText {
		var resp ErrorResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, err
		}
		return nil, &FrameError{Message: resp.Error}
	}
	return data, nil
}

// Frame is FramePNG followed by decoding.
func (cl *Client) Frame(ctx context.Context, req FrameRequest) (image.Image, error) {
	data, err := cl.FramePNG(ctx, req)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("png.Decode: %w", err)
	}
	return img, nil
}

func (cl *Client) Close() error {
	return cl.c.Close(websocket.StatusNormalClosure, "")
}
