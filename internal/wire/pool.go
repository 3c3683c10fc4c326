package wire

import (
	"sync"
)

var pool sync.Pool

func init() {
	pool.New = func() interface{} {
		return &Packet{fromPool: true}
	}
}

// GetPacket returns a packet whose Data is size zero bytes.
func GetPacket(size int) *Packet {
	p := pool.Get().(*Packet)
	if cap(p.Data) < size {
		p.Data = make([]byte, size)
	} else {
		p.Data = p.Data[:size]
		clear(p.Data)
	}
	return p
}

// PutPacket hands a packet back once nobody references it or its Data anymore.
func PutPacket(p *Packet) {
	if !p.fromPool {
		return
	}
	p.Length, p.Size, p.Seed = 0, 0, 0
	pool.Put(p)
}
