package events

import (
	"context"
	"encoding/json"
	"testing"

	"go-storefront/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToSubscribersOfEmail(t *testing.T) {
	b := NewBus()
	mine, cancelMine := b.Subscribe("a@b.co")
	defer cancelMine()
	other, cancelOther := b.Subscribe("z@b.co")
	defer cancelOther()

	assert.Equal(t, 1, b.Publish("a@b.co"))

	select {
	case <-mine:
	default:
		t.Fatal("expected a pending signal")
	}
	select {
	case <-other:
		t.Fatal("signal leaked to another shopper")
	default:
	}
}

func TestBusCoalescesAndNeverBlocks(t *testing.T) {
	b := NewBus()
	ch, cancel := b.Subscribe("a@b.co")
	defer cancel()

	assert.Equal(t, 1, b.Publish("a@b.co"))
	assert.Equal(t, 0, b.Publish("a@b.co"))

	<-ch
	select {
	case <-ch:
		t.Fatal("expected exactly one pending signal")
	default:
	}
}

func TestBusCancel(t *testing.T) {
	b := NewBus()
	_, cancel := b.Subscribe("a@b.co")
	assert.Equal(t, 1, b.Subscribers("a@b.co"))

	cancel()
	cancel()

	assert.Zero(t, b.Subscribers("a@b.co"))
	assert.Zero(t, b.Publish("a@b.co"))
}

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func TestOrderPublisher(t *testing.T) {
	ch := &fakeChannel{}
	p := NewOrderPublisher(ch, "storefront", zerolog.Nop())

	err := p.OrderPlaced(context.Background(), "a@b.co", models.Order{
		ID:          "o1",
		OrderNumber: "ORD-1001",
		TotalAmount: 2400,
		Items:       []models.OrderItem{{Title: "Oxford", Price: 1200, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "storefront", ch.exchange)
	assert.Equal(t, OrderPlacedRoutingKey, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var evt OrderPlaced
	require.NoError(t, json.Unmarshal(ch.msg.Body, &evt))
	assert.Equal(t, "ORD-1001", evt.OrderNumber)
	assert.EqualValues(t, 2400, evt.TotalAmount)
	assert.Equal(t, 1, evt.Items)
}
