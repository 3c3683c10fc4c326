package ltcode

import (
	"fmt"
	"sync"

	"github.com/ddritzenhoff/ltcode/internal/utils/ringbuffer"
)

// DefaultPacketQueueLen is the queue length used if NewPacketQueue is called with 0.
const DefaultPacketQueueLen = 32

// A PacketQueue hands packets from a producer to a consumer running on another goroutine.
type PacketQueue struct {
	mx     sync.Mutex
	queue  ringbuffer.RingBuffer[*Packet]
	maxLen int
	sent   chan struct{} // used to notify Add that a packet was dequeued

	closeErr  error
	closed    chan struct{}
	closeOnce sync.Once

	// hasData lets the consumer know there's more data in the queue.
	hasData func()
}

// NewPacketQueue creates a queue holding up to maxLen packets.
// hasData is called after every Add and must not block.
func NewPacketQueue(maxLen int, hasData func()) *PacketQueue {
	if maxLen <= 0 {
		maxLen = DefaultPacketQueueLen
	}
	if hasData == nil {
		hasData = func() {}
	}
	q := &PacketQueue{
		maxLen:  maxLen,
		hasData: hasData,
		sent:    make(chan struct{}, 1),
		closed:  make(chan struct{}),
	}
	q.queue.Init(maxLen)
	return q
}

// Add queues a new packet.
// Once maxLen packets are queued, Add blocks until the queue size has reduced.
// It returns an error wrapping ErrQueueClosed once the queue is closed.
func (q *PacketQueue) Add(p *Packet) error {
	q.mx.Lock()

	for {
		select {
		case <-q.closed:
			q.mx.Unlock()
			return q.closeErr
		default:
		}
		if q.queue.Len() < q.maxLen {
			q.queue.PushBack(p)
			q.mx.Unlock()
			q.hasData()
			return nil
		}
		select {
		case <-q.sent: // drain the queue so we don't loop immediately
		default:
		}
		q.mx.Unlock()
		select {
		case <-q.closed:
			return q.closeErr
		case <-q.sent:
		}
		q.mx.Lock()
	}
}

// Peek gets the next packet.
// If actually consumed, Pop needs to be called before the next call to Peek.
// It returns nil if the queue is empty.
func (q *PacketQueue) Peek() *Packet {
	q.mx.Lock()
	defer q.mx.Unlock()
	if q.queue.Empty() {
		return nil
	}
	return q.queue.PeekFront()
}

// Pop removes the packet returned by Peek.
func (q *PacketQueue) Pop() {
	q.mx.Lock()
	defer q.mx.Unlock()
	_ = q.queue.PopFront()
	select {
	case q.sent <- struct{}{}:
	default:
	}
}

// Len returns the number of queued packets.
func (q *PacketQueue) Len() int {
	q.mx.Lock()
	defer q.mx.Unlock()
	return q.queue.Len()
}

// CloseWithError closes the queue. Blocked and future calls to Add return an error
// wrapping ErrQueueClosed and e. Queued packets can still be consumed.
func (q *PacketQueue) CloseWithError(e error) {
	q.closeOnce.Do(func() {
		q.closeErr = ErrQueueClosed
		if e != nil {
			q.closeErr = fmt.Errorf("%w: %w", ErrQueueClosed, e)
		}
		close(q.closed)
	})
}

// Closed is closed once CloseWithError has been called.
func (q *PacketQueue) Closed() <-chan struct{} {
	return q.closed
}
