package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
)

func init() {
	logger.Init("error", true)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func staticBuilder(name string) ChartBuilder {
	return func(ctx context.Context, milestone string) (*model.ChartResponse, error) {
		return &model.ChartResponse{Milestone: name, Unit: "items"}, nil
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(staticBuilder("v1.0"), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{Send: make(chan []byte, 8), Milestone: "v1.0"}
	hub.Register(client)
	waitFor(t, func() bool { return hub.SubscriberCount() == 1 }, "cliente não registrado")

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.SubscriberCount() == 0 }, "cliente não removido")

	// O canal do cliente é fechado na remoção
	select {
	case _, open := <-client.Send:
		if open {
			t.Error("esperado canal fechado após unregister")
		}
	case <-time.After(time.Second):
		t.Error("canal do cliente não foi fechado")
	}
}

func TestHubBroadcastPerMilestone(t *testing.T) {
	hub := NewHub(staticBuilder("v1.0"), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a := &Client{Send: make(chan []byte, 8), Milestone: "v1.0"}
	b := &Client{Send: make(chan []byte, 8), Milestone: "v2.0"}
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.SubscriberCount() == 2 }, "clientes não registrados")

	hub.Broadcast("v1.0", []byte("payload"))

	select {
	case msg := <-a.Send:
		if string(msg) != "payload" {
			t.Errorf("payload inesperado: %s", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("assinante do milestone não recebeu o broadcast")
	}

	select {
	case msg := <-b.Send:
		t.Errorf("assinante de outro milestone recebeu broadcast: %s", msg)
	default:
	}
}

// TestHubRefreshDeliversChart cobre o ciclo de atualização: o hub
// recomputa o gráfico e envia para os assinantes
func TestHubRefreshDeliversChart(t *testing.T) {
	hub := NewHub(staticBuilder("v1.0"), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{Send: make(chan []byte, 8), Milestone: "v1.0"}
	hub.Register(client)

	select {
	case msg := <-client.Send:
		if len(msg) == 0 {
			t.Error("mensagem de refresh vazia")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nenhum refresh recebido")
	}
}

// TestHubFullBufferDoesNotBlock garante que um assinante lento nunca
// trava o broadcast
func TestHubFullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub(staticBuilder("v1.0"), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Buffer de tamanho 1, já cheio
	client := &Client{Send: make(chan []byte, 1), Milestone: "v1.0"}
	client.Send <- []byte("old")
	hub.Register(client)
	waitFor(t, func() bool { return hub.SubscriberCount() == 1 }, "cliente não registrado")

	done := make(chan struct{})
	go func() {
		hub.Broadcast("v1.0", []byte("new"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast bloqueou em cliente com buffer cheio")
	}
}

func TestHubContextCancelClosesClients(t *testing.T) {
	hub := NewHub(staticBuilder("v1.0"), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := &Client{Send: make(chan []byte, 8), Milestone: "v1.0"}
	hub.Register(client)
	waitFor(t, func() bool { return hub.SubscriberCount() == 1 }, "cliente não registrado")

	cancel()

	select {
	case _, open := <-client.Send:
		if open {
			t.Error("esperado canal fechado após encerramento do hub")
		}
	case <-time.After(2 * time.Second):
		t.Error("canal do cliente não foi fechado no encerramento")
	}
}
