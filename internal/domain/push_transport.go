package domain

import "context"

//go:generate mockgen -source=push_transport.go -destination=push_transport_mock.go -package=domain

// PushTransport delivers an encoded payload to one subscription.
// A non-2xx answer is returned as *TransportError together with its status code.
type PushTransport interface {
	Send(ctx context.Context, sub *PushSubscription, payload []byte) (int, error)
}
