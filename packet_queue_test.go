package ltcode

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Packet Queue", func() {
	var (
		queue   *PacketQueue
		queued  chan struct{}
		maxLen  = 4
		packets []*Packet
	)

	BeforeEach(func() {
		queued = make(chan struct{}, 100)
		queue = NewPacketQueue(maxLen, func() { queued <- struct{}{} })
		packets = make([]*Packet, maxLen+1)
		for i := range packets {
			packets[i] = &Packet{Length: 10, Size: 1, Seed: Seed(i + 1), Data: []byte{byte(i)}}
		}
	})

	It("returns nil when there's nothing queued", func() {
		Expect(queue.Peek()).To(BeNil())
		Expect(queue.Len()).To(BeZero())
	})

	It("queues packets in order", func() {
		Expect(queue.Add(packets[0])).To(Succeed())
		Expect(queue.Add(packets[1])).To(Succeed())
		Expect(queued).To(HaveLen(2))
		Expect(queue.Len()).To(Equal(2))

		Expect(queue.Peek()).To(Equal(packets[0]))
		// peeking doesn't dequeue
		Expect(queue.Peek()).To(Equal(packets[0]))
		queue.Pop()
		Expect(queue.Peek()).To(Equal(packets[1]))
		queue.Pop()
		Expect(queue.Peek()).To(BeNil())
	})

	It("uses the default length", func() {
		q := NewPacketQueue(0, nil)
		for i := 0; i < DefaultPacketQueueLen; i++ {
			Expect(q.Add(&Packet{})).To(Succeed())
		}
		Expect(q.Len()).To(Equal(DefaultPacketQueueLen))
	})

	It("blocks when the maximum number of packets have been queued", func() {
		for i := 0; i < maxLen; i++ {
			Expect(queue.Add(packets[i])).To(Succeed())
		}
		errChan := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			errChan <- queue.Add(packets[maxLen])
		}()
		Consistently(errChan, 50*time.Millisecond).ShouldNot(Receive())
		Expect(queue.Peek()).To(Equal(packets[0]))
		queue.Pop()
		Eventually(errChan).Should(Receive(BeNil()))
		for i := 1; i <= maxLen; i++ {
			Expect(queue.Peek()).To(Equal(packets[i]))
			queue.Pop()
		}
	})

	It("returns an error when adding to a closed queue", func() {
		testErr := errors.New("test error")
		queue.CloseWithError(testErr)
		err := queue.Add(packets[0])
		Expect(err).To(MatchError(ErrQueueClosed))
		Expect(err).To(MatchError(testErr))
		Expect(queue.Closed()).To(BeClosed())
	})

	It("unblocks Add when closed", func() {
		for i := 0; i < maxLen; i++ {
			Expect(queue.Add(packets[i])).To(Succeed())
		}
		errChan := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			errChan <- queue.Add(packets[maxLen])
		}()
		Consistently(errChan, 50*time.Millisecond).ShouldNot(Receive())
		queue.CloseWithError(nil)
		Eventually(errChan).Should(Receive(MatchError(ErrQueueClosed)))
		// queued packets can still be consumed
		Expect(queue.Peek()).To(Equal(packets[0]))
	})

	It("can be closed more than once", func() {
		queue.CloseWithError(nil)
		queue.CloseWithError(errors.New("ignored"))
		Expect(queue.Add(packets[0])).To(MatchError(ErrQueueClosed))
		Expect(queue.Add(packets[0]).Error()).ToNot(ContainSubstring("ignored"))
	})
})
