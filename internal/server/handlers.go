package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Tyrowin/moodsync/internal/assistant"
	"github.com/Tyrowin/moodsync/internal/auth"
	"github.com/Tyrowin/moodsync/internal/users"
)

const serviceVersion = "2.0"

// Deps are the collaborators behind the HTTP surface.
type Deps struct {
	Hub       *Hub
	Users     *users.Directory
	Tokens    *auth.Tokens
	Assistant *assistant.Service
	Logger    zerolog.Logger
}

// Server holds shared dependencies for all HTTP handlers.
type Server struct {
	hub       *Hub
	users     *users.Directory
	tokens    *auth.Tokens
	assistant *assistant.Service
	log       zerolog.Logger
	upgrader  websocket.Upgrader
}

// NewServer creates the HTTP handlers over deps. The WebSocket upgrader
// enforces the hub's origin allow-list.
func NewServer(deps Deps) *Server {
	origins := newOriginPolicy(deps.Hub.cfg.AllowedOrigins, deps.Logger)
	return &Server{
		hub:       deps.Hub,
		users:     deps.Users,
		tokens:    deps.Tokens,
		assistant: deps.Assistant,
		log:       deps.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.checkOrigin,
		},
	}
}

// JSON sends a JSON response with the given status code.
func (s *Server) JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn().Err(err).Msg("error writing JSON response")
	}
}

// Error sends a {success:false, message} response.
func (s *Server) Error(w http.ResponseWriter, status int, message string) {
	s.JSON(w, status, map[string]any{"success": false, "message": message})
}

// WebSocketHandler upgrades the request and registers a new client with the
// hub, which launches the pump goroutines. The connection is closed right
// away when the hub has already shut down.
func (s *Server) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("addr", r.RemoteAddr).Msg("WebSocket upgrade failed")
		return
	}

	client := NewClient(conn, s.hub, r.RemoteAddr)
	if !s.hub.admit(client) {
		s.log.Warn().Str("addr", r.RemoteAddr).Msg("hub is shut down; closing WebSocket connection")
		if err := conn.Close(); err != nil && !isExpectedCloseError(err) {
			s.log.Warn().Err(err).Str("addr", r.RemoteAddr).Msg("error closing client connection")
		}
	}
}

// Root describes the service.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	s.JSON(w, http.StatusOK, map[string]any{
		"message":  "MoodSync Server is running!",
		"version":  serviceVersion,
		"features": []string{"Real-time Chat", "Mood Detection", "AI Support", "Emotional Matching"},
	})
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	ActiveConnections int    `json:"activeConnections"`
	ActiveRooms       int    `json:"activeRooms"`
	ActiveMatches     int    `json:"activeMatches"`
	RegisteredUsers   int    `json:"registeredUsers"`
}

// Health reports hub counts and the number of registered accounts.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	s.JSON(w, http.StatusOK, HealthResponse{
		Status:            "OK",
		Timestamp:         time.Now().UTC().Format(time.RFC3339Nano),
		ActiveConnections: s.hub.ConnectionCount(),
		ActiveRooms:       s.hub.RoomCount(),
		ActiveMatches:     s.hub.MatchCount(),
		RegisteredUsers:   s.users.Count(),
	})
}

// TestPageHandler serves an HTML page for joining a room and chatting over
// the WebSocket endpoint by hand.
func (s *Server) TestPageHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(testPage)); err != nil {
		s.log.Warn().Err(err).Msg("error writing HTML response")
	}
}

const testPage = `<!DOCTYPE html>
<html>
<head>
    <title>MoodSync WebSocket Test</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        #messages {
            border: 1px solid #ccc;
            height: 300px;
            padding: 10px;
            overflow-y: scroll;
            margin: 10px 0;
            background-color: #f9f9f9;
        }
        input[type="text"], select { padding: 5px; margin-right: 10px; }
        #messageInput { width: 300px; }
        button {
            padding: 5px 15px;
            background-color: #007cba;
            color: white;
            border: none;
            cursor: pointer;
        }
        button:hover { background-color: #005a87; }
        .status { margin: 10px 0; padding: 5px; border-radius: 3px; }
        .connected { background-color: #d4edda; color: #155724; }
        .disconnected { background-color: #f8d7da; color: #721c24; }
    </style>
</head>
<body>
    <h1>MoodSync WebSocket Test</h1>

    <div id="status" class="status disconnected">Disconnected</div>

    <div>
        <input type="text" id="username" placeholder="Name" value="tester">
        <input type="text" id="roomId" placeholder="Room" value="lobby">
        <select id="mood">
            <option>happy</option><option>sad</option><option>anxious</option>
            <option>angry</option><option>tired</option><option>calm</option>
            <option>excited</option><option>depressed</option>
        </select>
        <button id="connectButton" onclick="toggleConnection()">Connect</button>
    </div>
    <div style="margin-top: 10px">
        <input type="text" id="messageInput" placeholder="Type a message..." disabled>
        <button id="sendButton" onclick="sendMessage()" disabled>Send</button>
    </div>

    <div id="messages"></div>

    <script>
        let ws = null;
        const userId = Date.now();
        const messagesDiv = document.getElementById('messages');
        const messageInput = document.getElementById('messageInput');
        const sendButton = document.getElementById('sendButton');
        const connectButton = document.getElementById('connectButton');
        const statusDiv = document.getElementById('status');

        function field(id) { return document.getElementById(id).value.trim(); }

        function addMessage(label, text, color) {
            const el = document.createElement('div');
            el.style.margin = '5px 0';
            el.style.color = color;
            const strong = document.createElement('strong');
            strong.textContent = label + ': ';
            el.appendChild(strong);
            el.appendChild(document.createTextNode(text));
            messagesDiv.appendChild(el);
            messagesDiv.scrollTop = messagesDiv.scrollHeight;
        }

        function emit(event, data) {
            ws.send(JSON.stringify({ event: event, data: data }));
        }

        function updateStatus(connected) {
            statusDiv.textContent = connected ? 'Connected' : 'Disconnected';
            statusDiv.className = 'status ' + (connected ? 'connected' : 'disconnected');
            messageInput.disabled = !connected;
            sendButton.disabled = !connected;
            connectButton.textContent = connected ? 'Disconnect' : 'Connect';
        }

        function connect() {
            const scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
            ws = new WebSocket(scheme + location.host + '/ws');

            ws.onopen = function() {
                updateStatus(true);
                emit('join_room', { roomId: field('roomId'), userId: userId, username: field('username'), mood: field('mood') });
            };

            ws.onmessage = function(event) {
                const frame = JSON.parse(event.data);
                const d = frame.data || {};
                switch (frame.event) {
                case 'receive_message':
                    addMessage(d.sender || d.username || 'someone', d.text, d.isAI ? 'purple' : (d.isSystem ? 'gray' : 'green'));
                    break;
                case 'user_joined':
                    addMessage('presence', d.username + ' joined feeling ' + d.mood, 'gray');
                    break;
                case 'user_left':
                    addMessage('presence', d.username + ' left', 'gray');
                    break;
                case 'user_typing':
                    break;
                default:
                    addMessage(frame.event, event.data, 'gray');
                }
            };

            ws.onclose = function() {
                addMessage('status', 'Connection closed', 'gray');
                updateStatus(false);
                ws = null;
            };

            ws.onerror = function() {
                addMessage('status', 'Connection error', 'red');
            };
        }

        function toggleConnection() {
            if (ws && ws.readyState === WebSocket.OPEN) {
                ws.close();
            } else {
                connect();
            }
        }

        function sendMessage() {
            const text = messageInput.value.trim();
            if (text && ws && ws.readyState === WebSocket.OPEN) {
                emit('send_message', { roomId: field('roomId'), userId: userId, username: field('username'), text: text, mood: field('mood') });
                addMessage('You', text, 'blue');
                messageInput.value = '';
            }
        }

        messageInput.addEventListener('keypress', function(e) {
            if (e.key === 'Enter') {
                sendMessage();
            }
        });
    </script>
</body>
</html>`
