package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	constants "emoguchi/constants/game"
	"emoguchi/services/game"
	"emoguchi/services/socket_io/handlers"
	socketio_types "emoguchi/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the gin router and registers the
// game events on every new connection. Events before join_room have no
// session and are rejected by the handlers themselves.
func (sio *MySocketServer) Start(router *gin.Engine, service *game.Service) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	// Audio clips travel inside events, so the buffer must fit the largest
	// accepted clip plus framing.
	c.SetMaxHttpBufferSize(constants.MaxAudioBytes + 1024*1024)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.PlayerConnections = make(map[string]*socket.Socket)
	sio.Sessions = make(map[socket.SocketId]*socketio_types.Session)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		base := (*socketio_types.SocketServer)(sio)

		fmt.Println("An individual just connected!: ", client.Id())

		// Join a room (also the reconnection path)
		client.On("join_room", handlers.HandleJoinRoom(service, client, base))

		// Host starts a round
		client.On("start_round", handlers.HandleStartRound(service, client, base))

		// Speaker delivers the performance
		client.On("audio_send", handlers.HandleAudioSend(service, client, base))

		// Listener votes on the emotion
		client.On("submit_vote", handlers.HandleSubmitVote(service, client, base))

		// Voluntary exit
		client.On("leave_room", handlers.HandleLeaveRoom(service, client, base))

		// Host resets a finished game
		client.On("restart_game", handlers.HandleRestartGame(service, client, base))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(service, client, base))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
