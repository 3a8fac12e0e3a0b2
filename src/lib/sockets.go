package lib

import (
	"log"

	"github.com/zishang520/socket.io/v2/socket"
)

var socketServer *socket.Server

func SetSocketServer(s *socket.Server) {
	socketServer = s
}

func GetSocketServer() *socket.Server {
	return socketServer
}

// SocketEmit broadcasts an event to every connected client. Receivers
// filter on the event name, e.g. notification-<userID>.
func SocketEmit(event string, data any) {
	if socketServer == nil {
		log.Printf("[ws] No server instance. Dropping %s\n", event)
		return
	}
	socketServer.Emit(event, data)
}
