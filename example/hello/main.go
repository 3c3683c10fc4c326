package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/ddritzenhoff/ltcode"
	"github.com/ddritzenhoff/ltcode/internal/wire"
)

const message = "Hello, World! "

// datagrams carries JSON encoded packets from the sender to the receiver.
var datagrams = make(chan []byte, 16)

// We start a sender that encodes the message into packets and sends them as JSON datagrams,
// and a receiver that decodes datagrams until it has the whole message.
func main() {
	done := make(chan struct{})
	go func() {
		if err := sender(done); err != nil {
			log.Fatal(err)
		}
	}()

	msg, err := receiver()
	close(done)
	if err != nil {
		panic(err)
	}
	if msg != strings.Repeat(message, 10000) {
		panic("message corrupted")
	}
	fmt.Printf("Receiver: Got %d bytes, starting with %q\n", len(msg), msg[:len(message)])
}

// Start a sender that produces packets until the receiver is done
func sender(done <-chan struct{}) error {
	enc, err := ltcode.NewEncoder(nil)
	if err != nil {
		return err
	}
	str, err := enc.Encode([]byte(strings.Repeat(message, 10000)))
	if err != nil {
		return err
	}
	fmt.Printf("Sender: Encoding %d symbols with seed %d\n", str.NumSymbols(), enc.Seed())
	for {
		p := str.Next()
		b, err := wire.MarshalJSON(p)
		if err != nil {
			return err
		}
		ltcode.ReleasePacket(p)
		select {
		case datagrams <- b:
		case <-done:
			return nil
		}
	}
}

func receiver() (string, error) {
	dec, err := ltcode.NewDecoder(nil)
	if err != nil {
		return "", err
	}
	for data := range datagrams {
		p, err := wire.UnmarshalJSON(data)
		if err != nil {
			return "", err
		}
		done, err := dec.Decode(p)
		if err != nil {
			return "", err
		}
		if done {
			fmt.Printf("Receiver: Decoded after %d packets\n", dec.Received())
			break
		}
	}
	return dec.ResultString()
}
